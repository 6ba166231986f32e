package config

import (
	"errors"
	"fmt"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/models"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"io/fs"
	"strings"
	"time"
)

// Startup fails with one of these when a mandatory secret is absent.
var (
	ErrMissingBotToken      = errors.New("TELEGRAM_BOT_TOKEN is not set")
	ErrMissingGenerativeKey = errors.New("GEMINI_API_KEY is not set")
)

// Config holds the application configuration parameters.
// Each field corresponds to an expected environment variable.
type Config struct {
	// Logging
	EnvLogsLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	EnvLogFileName string `env:"LOG_FILE" envDefault:"bot.log"`

	// Secrets, bot token and generative key are mandatory
	EnvBotToken         string `env:"TELEGRAM_BOT_TOKEN"`
	EnvGenerativeApiKey string `env:"GEMINI_API_KEY"`
	EnvWeatherApiKey    string `env:"WEATHER_API_KEY"`
	EnvTranslateApiKey  string `env:"TRANSLATION_API_KEY"`
	EnvDictionaryApiKey string `env:"DICTIONARY_API_KEY"`

	// Generative provider: gemini, deepseek or openrouter
	EnvGenerativeName    string `env:"GENERATIVE_NAME" envDefault:"gemini"`
	EnvGenerativeModel   string `env:"GENERATIVE_MODEL" envDefault:"gemini-2.0-flash"`
	EnvGenerativeBaseURL string `env:"GENERATIVE_BASE_URL"`

	// Service endpoints
	EnvWeatherApiEndpoint    string        `env:"WEATHER_API_ENDPOINT" envDefault:"https://api.openweathermap.org/data/2.5/weather"`
	EnvTranslateApiEndpoint  string        `env:"TRANSLATE_API_ENDPOINT" envDefault:"https://api.mymemory.translated.net/get"`
	EnvDictionaryApiEndpoint string        `env:"DICTIONARY_API_ENDPOINT" envDefault:"https://api.dictionaryapi.dev/api/v2/entries"`
	EnvHTTPClientTimeout     time.Duration `env:"HTTP_CLIENT_TIMEOUT" envDefault:"10s"`

	// Accepted for compatibility with older deployments, never used
	EnvDatabaseURL string `env:"DATABASE_URL"`

	// Webhook server. The public base URL is the first of WEBHOOK_URL,
	// VERCEL_URL and RENDER_EXTERNAL_URL that is set.
	EnvHTTPAddr          string `env:"HTTP_ADDR" envDefault:":8080"`
	EnvWebhookURL        string `env:"WEBHOOK_URL"`
	EnvVercelURL         string `env:"VERCEL_URL"`
	EnvRenderExternalURL string `env:"RENDER_EXTERNAL_URL"`

	// Integrations to switch off, comma separated (e.g. "weather,dictionary")
	EnvDisabledCapabilities []string `env:"DISABLED_CAPABILITIES" envSeparator:","`
}

// NewConfig loads envFile (a missing file is not an error), parses the
// environment and validates the mandatory secrets.
// Returns the configuration or an error wrapping ErrMissingBotToken / ErrMissingGenerativeKey.
func NewConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("load %s: %w", envFile, err)
			}
			logrus.Debugf("Env file %s not found, using process environment", envFile)
		}
	}

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.EnvDatabaseURL != "" {
		logrus.Warn("DATABASE_URL is set but the bot keeps no database, ignoring it")
	}
	return config, nil
}

// Validate checks that the secrets required at startup are present.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.EnvBotToken) == "" {
		return ErrMissingBotToken
	}
	if strings.TrimSpace(c.EnvGenerativeApiKey) == "" {
		return ErrMissingGenerativeKey
	}
	return nil
}

// WebhookBaseURL returns the public base URL of the deployment, picking
// WEBHOOK_URL, then VERCEL_URL, then RENDER_EXTERNAL_URL. Bare hosts get
// an https scheme. Empty when none is set.
func (c *Config) WebhookBaseURL() string {
	base := c.EnvWebhookURL
	if base == "" {
		base = c.EnvVercelURL
	}
	if base == "" {
		base = c.EnvRenderExternalURL
	}
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base != "" && !strings.Contains(base, "://") {
		base = "https://" + base
	}
	return base
}

// Capabilities returns the integrations available to handler groups.
// An integration is available when it is configured and not listed in DISABLED_CAPABILITIES.
func (c *Config) Capabilities() models.CapabilitySet {
	disabled := make(map[models.Capability]bool, len(c.EnvDisabledCapabilities))
	for _, name := range c.EnvDisabledCapabilities {
		disabled[models.Capability(strings.ToLower(strings.TrimSpace(name)))] = true
	}

	configured := map[models.Capability]bool{
		models.CapabilityGenerative:  c.EnvGenerativeApiKey != "",
		models.CapabilityWeather:     c.EnvWeatherApiEndpoint != "",
		models.CapabilityTranslation: c.EnvTranslateApiEndpoint != "",
		models.CapabilityDictionary:  c.EnvDictionaryApiEndpoint != "",
	}

	caps := models.NewCapabilitySet()
	for capability, ok := range configured {
		if ok && !disabled[capability] {
			caps[capability] = struct{}{}
		}
	}
	return caps
}
