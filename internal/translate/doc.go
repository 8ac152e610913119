// Package translate decides whether a transcript needs machine translation
// and performs it through a Translator.
package translate
