package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	LLM        LLMConfig        `mapstructure:"llm" validate:"required"`
	Transcript TranscriptConfig `mapstructure:"transcript" validate:"required"`
	Translate  TranslateConfig  `mapstructure:"translate" validate:"required"`
	Cache      CacheConfig      `mapstructure:"cache"`
	UI         UIConfig         `mapstructure:"ui"`
	RateLimit  RateLimitConfig  `mapstructure:"ratelimit"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel            string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds" validate:"gte=0"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds" validate:"gte=0"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	// GeminiAPIKey is the only credential the application cannot start without.
	GeminiAPIKey string  `mapstructure:"gemini_api_key" validate:"required"`
	ModelName    string  `mapstructure:"model_name" validate:"required"`
	Temperature  float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`

	// MaxRetries is the number of retries after the first attempt for transient failures.
	MaxRetries        int `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" validate:"gte=0,lte=60"`

	// PromptTemplatePath overrides the built-in prompt template when set.
	PromptTemplatePath string `mapstructure:"prompt_template_path"`
}

// TranscriptConfig controls caption retrieval.
type TranscriptConfig struct {
	// DefaultLanguage is the preferred caption track language and the output language of the cards.
	DefaultLanguage    string `mapstructure:"default_language" validate:"required"`
	WatchBaseURL       string `mapstructure:"watch_base_url" validate:"required,url"`
	HTTPTimeoutSeconds int    `mapstructure:"http_timeout_seconds" validate:"gt=0"`
	MaxRetries         int    `mapstructure:"max_retries" validate:"gte=0,lte=10"`
}

// TranslateConfig controls the machine-translation client.
type TranslateConfig struct {
	// APIKey falls back to LLM.GeminiAPIKey when empty.
	APIKey   string `mapstructure:"api_key"`
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`
}

// CacheConfig controls transcript caching. An empty RedisURL keeps the cache in memory only.
type CacheConfig struct {
	RedisURL   string `mapstructure:"redis_url"`
	TTLMinutes int    `mapstructure:"ttl_minutes" validate:"gte=0"`
	MaxEntries int    `mapstructure:"max_entries" validate:"gte=0"`
}

// UIConfig contains page rendering settings.
type UIConfig struct {
	// BackgroundImagePath is read once at startup and inlined into the page.
	BackgroundImagePath string `mapstructure:"background_image_path"`

	// RandomColors picks card colors at random instead of cycling the palette.
	RandomColors bool `mapstructure:"random_colors"`
}

// RateLimitConfig limits how often cards can be generated.
type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute" validate:"gte=0"`
	Burst             int `mapstructure:"burst" validate:"gte=0"`
}

// TranslateAPIKey returns the key used for the translation service.
func (c *Config) TranslateAPIKey() string {
	if c.Translate.APIKey != "" {
		return c.Translate.APIKey
	}
	return c.LLM.GeminiAPIKey
}
