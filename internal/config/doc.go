// Package config loads application settings from a .env file, an optional
// config.yaml and NOTECARDS_* environment variables, then validates them.
// Only the Gemini API key is mandatory; everything else has a default.
package config
