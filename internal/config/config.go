// Package config provides configuration loading and validation for the
// card agent. Values come from built-in defaults, an optional JSON file and
// environment variables, in that order of precedence.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Provider names accepted in LLMConfig.Provider.
const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Default model names and token budget for the extraction call.
const (
	DefaultAnthropicModel = "claude-sonnet-4-5-20250929"
	DefaultGeminiModel    = "gemini-2.5-flash"
	DefaultMaxTokens      = 4096
)

// Config is the complete runtime configuration.
type Config struct {
	LLM       LLMConfig       `json:"llm"`
	Server    ServerConfig    `json:"server"`
	Log       LogConfig       `json:"log"`
	Rendering RenderingConfig `json:"rendering"`
	RateLimit RateLimitConfig `json:"rate_limit"`
	Limits    Limits          `json:"limits"`
}

// LLMConfig selects and parameterizes the extraction model.
type LLMConfig struct {
	Provider        string `json:"provider,omitempty" validate:"oneof=anthropic gemini"`
	Model           string `json:"model,omitempty"`
	MaxTokens       int    `json:"max_tokens,omitempty" validate:"gt=0"`
	BaseURL         string `json:"base_url,omitempty" validate:"omitempty,url"`
	AnthropicAPIKey string `json:"anthropic_api_key,omitempty"`
	GeminiAPIKey    string `json:"gemini_api_key,omitempty"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port                   int    `json:"port,omitempty" validate:"gt=0,lte=65535"`
	AllowedOrigin          string `json:"allowed_origin,omitempty"`
	ShutdownTimeoutSeconds int    `json:"shutdown_timeout_seconds,omitempty" validate:"gte=0"`
}

// LogConfig controls the logrus logger.
type LogConfig struct {
	Level  string `json:"level,omitempty" validate:"oneof=debug info warn error"`
	Format string `json:"format,omitempty" validate:"oneof=text json"`
}

// RenderingConfig controls the headless browser used to rasterize cards.
type RenderingConfig struct {
	ChromePath     string `json:"chrome_path,omitempty"`
	FontsDir       string `json:"fonts_dir,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" validate:"gt=0"`
}

// RateLimitConfig holds per-client request budgets for the API routes.
type RateLimitConfig struct {
	Enabled        bool `json:"enabled"`
	ParsePerMinute int  `json:"parse_per_minute,omitempty" validate:"gt=0"`
	CardPerMinute  int  `json:"card_per_minute,omitempty" validate:"gt=0"`
	// Whitelist lists client addresses that are never limited.
	Whitelist []string `json:"whitelist,omitempty"`
}

// Limits carries the bounds enforced on uploads and extracted profiles. The
// same values are formatted into the extraction prompt, so changing them
// changes the contract the model is asked to honor.
type Limits struct {
	RatingMin                 int     `json:"rating_min" validate:"gte=0"`
	RatingMax                 int     `json:"rating_max" validate:"gtefield=RatingMin"`
	SkillCount                int     `json:"skill_count" validate:"gt=0"`
	SkillScoreMin             int     `json:"skill_score_min" validate:"gte=0"`
	SkillScoreMax             int     `json:"skill_score_max" validate:"gtefield=SkillScoreMin"`
	MaxFileSizeBytes          int64   `json:"max_file_size_bytes" validate:"gt=0"`
	AcceptedMediaType         string  `json:"accepted_media_type" validate:"required"`
	ConfidenceThreshold       float64 `json:"confidence_threshold" validate:"gte=0,lte=1"`
	SparseMinRoles            int     `json:"sparse_min_roles" validate:"gte=0"`
	SparseMinMeaningfulSkills int     `json:"sparse_min_meaningful_skills" validate:"gte=0"`
	ResponsePrefixChars       int     `json:"response_prefix_chars" validate:"gt=0"`
	ValidationPreviewChars    int     `json:"validation_preview_chars" validate:"gt=0"`
}

// DefaultLimits returns the production bounds.
func DefaultLimits() Limits {
	return Limits{
		RatingMin:                 65,
		RatingMax:                 98,
		SkillCount:                6,
		SkillScoreMin:             0,
		SkillScoreMax:             99,
		MaxFileSizeBytes:          10 * 1024 * 1024,
		AcceptedMediaType:         "application/pdf",
		ConfidenceThreshold:       0.5,
		SparseMinRoles:            2,
		SparseMinMeaningfulSkills: 3,
		ResponsePrefixChars:       500,
		ValidationPreviewChars:    1000,
	}
}

// Default returns a Config populated with every default.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:  ProviderAnthropic,
			MaxTokens: DefaultMaxTokens,
		},
		Server: ServerConfig{
			Port:                   8080,
			AllowedOrigin:          "*",
			ShutdownTimeoutSeconds: 10,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Rendering: RenderingConfig{
			FontsDir:       "public/fonts",
			TimeoutSeconds: 30,
		},
		RateLimit: RateLimitConfig{
			Enabled:        true,
			ParsePerMinute: 10,
			CardPerMinute:  30,
		},
		Limits: DefaultLimits(),
	}
}

// Load builds a Config from defaults, the JSON file at path (skipped when path
// is empty) and the process environment. The result is not validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.LLM.fillModel()

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, "failed to get current directory")
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read config file %s", path)
	}

	if err := json.Unmarshal(data, c); err != nil {
		return errors.Wrap(err, "failed to parse config JSON")
	}
	return nil
}

// ApplyEnv overrides fields from environment variables looked up through
// lookup. Malformed numeric or boolean values are reported by name.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.Wrapf(err, "invalid %s", key)
		}
		*dst = n
		return nil
	}

	str("ANTHROPIC_API_KEY", &c.LLM.AnthropicAPIKey)
	str("GEMINI_API_KEY", &c.LLM.GeminiAPIKey)
	str("LLM_PROVIDER", &c.LLM.Provider)
	str("LLM_MODEL", &c.LLM.Model)
	str("LLM_BASE_URL", &c.LLM.BaseURL)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("CHROME_PATH", &c.Rendering.ChromePath)
	str("FONTS_DIR", &c.Rendering.FontsDir)
	str("ALLOWED_ORIGIN", &c.Server.AllowedOrigin)

	c.LLM.Provider = strings.ToLower(c.LLM.Provider)
	c.Log.Level = strings.ToLower(c.Log.Level)
	c.Log.Format = strings.ToLower(c.Log.Format)

	if err := num("PORT", &c.Server.Port); err != nil {
		return err
	}
	if err := num("RATE_LIMIT_PARSE_PER_MINUTE", &c.RateLimit.ParsePerMinute); err != nil {
		return err
	}
	if err := num("RATE_LIMIT_CARD_PER_MINUTE", &c.RateLimit.CardPerMinute); err != nil {
		return err
	}
	if v, ok := lookup("RATE_LIMIT_WHITELIST"); ok && strings.TrimSpace(v) != "" {
		c.RateLimit.Whitelist = c.RateLimit.Whitelist[:0]
		for _, ip := range strings.Split(v, ",") {
			if ip = strings.TrimSpace(ip); ip != "" {
				c.RateLimit.Whitelist = append(c.RateLimit.Whitelist, ip)
			}
		}
	}
	if v, ok := lookup("RATE_LIMIT_ENABLED"); ok && strings.TrimSpace(v) != "" {
		enabled, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return errors.Wrap(err, "invalid RATE_LIMIT_ENABLED")
		}
		c.RateLimit.Enabled = enabled
	}

	return nil
}

func (l *LLMConfig) fillModel() {
	if l.Model != "" {
		return
	}
	switch l.Provider {
	case ProviderGemini:
		l.Model = DefaultGeminiModel
	default:
		l.Model = DefaultAnthropicModel
	}
}

// APIKey returns the key for the configured provider.
func (l LLMConfig) APIKey() string {
	if l.Provider == ProviderGemini {
		return l.GeminiAPIKey
	}
	return l.AnthropicAPIKey
}

// Validate checks field ranges and cross-field constraints. It does not
// require an API key; see RequireAPIKey.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "config error")
	}
	return nil
}

// RequireAPIKey validates c and additionally requires a key for the
// configured provider. Commands that call the model use this.
func (c *Config) RequireAPIKey() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.LLM.APIKey() == "" {
		env := "ANTHROPIC_API_KEY"
		if c.LLM.Provider == ProviderGemini {
			env = "GEMINI_API_KEY"
		}
		return errors.Errorf("config error: %s is required for provider %q", env, c.LLM.Provider)
	}
	return nil
}
