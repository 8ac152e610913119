package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the application reads.
const EnvPrefix = "NOTECARDS"

// defaults lists every configuration key with its default value.
// Keys without a sensible default map to the zero value so they can still be bound.
var defaults = map[string]any{
	"server.port":                  8080,
	"server.log_level":             "info",
	"server.read_timeout_seconds":  15,
	"server.write_timeout_seconds": 120,

	"llm.gemini_api_key":       "",
	"llm.model_name":           "gemini-2.0-flash",
	"llm.temperature":          0.7,
	"llm.max_retries":          3,
	"llm.retry_delay_seconds":  2,
	"llm.prompt_template_path": "",

	"transcript.default_language":     "en",
	"transcript.watch_base_url":       "https://www.youtube.com",
	"transcript.http_timeout_seconds": 20,
	"transcript.max_retries":          2,

	"translate.api_key":  "",
	"translate.endpoint": "",

	"cache.redis_url":   "",
	"cache.ttl_minutes": 60,
	"cache.max_entries": 256,

	"ui.background_image_path": "",
	"ui.random_colors":         false,

	"ratelimit.requests_per_minute": 10,
	"ratelimit.burst":               3,
}

// aliases are additional environment variable names accepted for a key.
var aliases = map[string][]string{
	"llm.gemini_api_key": {"GEMINI_API_KEY"},
	"cache.redis_url":    {"REDIS_URL"},
	"server.port":        {"PORT"},
}

// Load configuration from a .env file, an optional config.yaml and environment variables.
// config.yaml is looked up in $NOTECARDS_CONFIG first, then the working directory.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	paths := []string{"."}
	if dir := os.Getenv(EnvPrefix + "_CONFIG"); dir != "" {
		paths = append([]string{dir}, paths...)
	}
	return LoadWithOptions(Options{EnvFile: ".env", ConfigPaths: paths})
}

// Options controls where Load looks for configuration files.
type Options struct {
	// EnvFile is loaded into the process environment if it exists. Variables
	// that are already set are not overwritten.
	EnvFile string

	// ConfigPaths are searched for a config.yaml file.
	ConfigPaths []string
}

// LoadWithOptions is Load with explicit file locations.
func LoadWithOptions(opts Options) (*Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read env file %s: %w", opts.EnvFile, err)
		}
	}

	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range opts.ConfigPaths {
		v.AddConfigPath(p)
	}
	if len(opts.ConfigPaths) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal only sees env values for keys that are explicitly bound.
	for key := range defaults {
		names := append([]string{envName(key)}, aliases[key]...)
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// envName returns the primary environment variable name for a key.
func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
