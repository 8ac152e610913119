package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv sets environment variables for the duration of the test.
// An empty value unsets the variable.
func setupEnv(t *testing.T, envVars map[string]string) {
	t.Helper()
	for name, value := range envVars {
		t.Setenv(name, value)
		if value == "" {
			require.NoError(t, os.Unsetenv(name))
		}
	}
}

// noFiles keeps tests independent of any .env or config.yaml in the working directory.
var noFiles = Options{}

func TestLoadDefaults(t *testing.T) {
	setupEnv(t, map[string]string{
		"GEMINI_API_KEY":               "test-api-key",
		"NOTECARDS_LLM_GEMINI_API_KEY": "",
		"NOTECARDS_SERVER_PORT":        "",
		"NOTECARDS_SERVER_LOG_LEVEL":   "",
		"PORT":                         "",
		"REDIS_URL":                    "",
	})

	cfg, err := LoadWithOptions(noFiles)

	require.NoError(t, err, "LoadWithOptions() should not return an error with default values")
	require.NotNil(t, cfg)
	assert.Equal(t, 8080, cfg.Server.Port, "Default server port should be 8080")
	assert.Equal(t, "info", cfg.Server.LogLevel, "Default log level should be 'info'")
	assert.Equal(t, "test-api-key", cfg.LLM.GeminiAPIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.ModelName)
	assert.Equal(t, "en", cfg.Transcript.DefaultLanguage)
	assert.Equal(t, "https://www.youtube.com", cfg.Transcript.WatchBaseURL)
	assert.Empty(t, cfg.Cache.RedisURL)
	assert.False(t, cfg.UI.RandomColors)
	assert.Equal(t, "test-api-key", cfg.TranslateAPIKey(), "translate key should fall back to the Gemini key")
}

func TestLoadEnvOverrides(t *testing.T) {
	setupEnv(t, map[string]string{
		"NOTECARDS_LLM_GEMINI_API_KEY":          "prefixed-key",
		"NOTECARDS_SERVER_PORT":                 "9090",
		"NOTECARDS_SERVER_LOG_LEVEL":            "debug",
		"NOTECARDS_TRANSCRIPT_DEFAULT_LANGUAGE": "de",
		"NOTECARDS_TRANSLATE_API_KEY":           "translate-key",
		"NOTECARDS_UI_RANDOM_COLORS":            "true",
		"NOTECARDS_CACHE_REDIS_URL":             "redis://localhost:6379/0",
		"PORT":                                  "",
	})

	cfg, err := LoadWithOptions(noFiles)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "prefixed-key", cfg.LLM.GeminiAPIKey)
	assert.Equal(t, "de", cfg.Transcript.DefaultLanguage)
	assert.Equal(t, "translate-key", cfg.TranslateAPIKey())
	assert.True(t, cfg.UI.RandomColors)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Cache.RedisURL)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		errMsg  string
	}{
		{
			name: "missing API key",
			envVars: map[string]string{
				"GEMINI_API_KEY":               "",
				"NOTECARDS_LLM_GEMINI_API_KEY": "",
			},
			errMsg: "validation failed",
		},
		{
			name: "invalid log level",
			envVars: map[string]string{
				"GEMINI_API_KEY":             "test-api-key",
				"NOTECARDS_SERVER_LOG_LEVEL": "verbose",
			},
			errMsg: "validation failed",
		},
		{
			name: "port out of range",
			envVars: map[string]string{
				"GEMINI_API_KEY":        "test-api-key",
				"NOTECARDS_SERVER_PORT": "70000",
				"PORT":                  "",
			},
			errMsg: "validation failed",
		},
		{
			name: "invalid translate endpoint",
			envVars: map[string]string{
				"GEMINI_API_KEY":               "test-api-key",
				"NOTECARDS_TRANSLATE_ENDPOINT": "not a url",
			},
			errMsg: "validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupEnv(t, tt.envVars)

			cfg, err := LoadWithOptions(noFiles)

			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()

	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("NOTECARDS_LLM_MODEL_NAME=gemini-from-dotenv\n"), 0o600))

	yaml := "llm:\n  gemini_api_key: file-key\nserver:\n  log_level: warn\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	setupEnv(t, map[string]string{
		"GEMINI_API_KEY":               "",
		"NOTECARDS_LLM_GEMINI_API_KEY": "",
		"NOTECARDS_SERVER_LOG_LEVEL":   "",
		"NOTECARDS_LLM_MODEL_NAME":     "",
	})
	// godotenv writes straight into the process environment.
	t.Cleanup(func() { _ = os.Unsetenv("NOTECARDS_LLM_MODEL_NAME") })

	cfg, err := LoadWithOptions(Options{EnvFile: envFile, ConfigPaths: []string{dir}})

	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.LLM.GeminiAPIKey)
	assert.Equal(t, "warn", cfg.Server.LogLevel)
	assert.Equal(t, "gemini-from-dotenv", cfg.LLM.ModelName)
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	setupEnv(t, map[string]string{"GEMINI_API_KEY": "test-api-key"})

	cfg, err := LoadWithOptions(Options{EnvFile: filepath.Join(t.TempDir(), "missing.env")})

	require.NoError(t, err)
	assert.Equal(t, "test-api-key", cfg.LLM.GeminiAPIKey)
}
