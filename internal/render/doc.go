// Package render turns generated cards into presentation output: card views
// with palette colours, the single HTML page served by the API, and styled
// terminal blocks for the command-line client.
package render
