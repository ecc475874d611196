package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	Auth       AuthConfig

	// Intent routing specifics
	Classifier ClassifierConfig
	Session    SessionConfig
	Router     RouterConfig
	Fallback   FallbackConfig
	History    HistoryConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type AuthConfig struct {
	// APIKey guards the public API when set; empty disables the check.
	APIKey string
}

type ClassifierConfig struct {
	MinConfidence        float64
	MultiIntentThreshold float64
	ClarificationMargin  float64
	DefaultLanguage      string
	Timezone             string
	CacheSize            int
	CacheTTLSeconds      int
}

type SessionConfig struct {
	TimeoutMinutes         int
	CleanupIntervalMinutes int
}

type RouterConfig struct {
	HandlerTimeoutSeconds int
}

type FallbackConfig struct {
	DefaultStrategy   string
	HistoryEnabled    bool
	EscalationEnabled bool
}

type HistoryConfig struct {
	Capacity int
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	cfg.Auth.APIKey = viper.GetString("auth.api_key")
	if apiKey := viper.GetString("api_key"); apiKey != "" {
		cfg.Auth.APIKey = apiKey
	}

	// Classifier
	cfg.Classifier.MinConfidence = viper.GetFloat64("classifier.min_confidence")
	cfg.Classifier.MultiIntentThreshold = viper.GetFloat64("classifier.multi_intent_threshold")
	cfg.Classifier.ClarificationMargin = viper.GetFloat64("classifier.clarification_margin")
	cfg.Classifier.DefaultLanguage = viper.GetString("classifier.default_language")
	cfg.Classifier.Timezone = viper.GetString("classifier.timezone")
	cfg.Classifier.CacheSize = viper.GetInt("classifier.cache_size")
	cfg.Classifier.CacheTTLSeconds = viper.GetInt("classifier.cache_ttl_seconds")

	// Session
	cfg.Session.TimeoutMinutes = viper.GetInt("session.timeout_minutes")
	cfg.Session.CleanupIntervalMinutes = viper.GetInt("session.cleanup_interval_minutes")

	// Router
	cfg.Router.HandlerTimeoutSeconds = viper.GetInt("router.handler_timeout_seconds")

	// Fallback
	cfg.Fallback.DefaultStrategy = viper.GetString("fallback.default_strategy")
	cfg.Fallback.HistoryEnabled = viper.GetBool("fallback.history_enabled")
	cfg.Fallback.EscalationEnabled = viper.GetBool("fallback.escalation_enabled")

	// History
	cfg.History.Capacity = viper.GetInt("history.capacity")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.HTTPServer.Port <= 0 || cfg.HTTPServer.Port > 65535 {
		return fmt.Errorf("http_server.port out of range: %d", cfg.HTTPServer.Port)
	}
	if cfg.Classifier.MinConfidence < 0 || cfg.Classifier.MinConfidence > 1 {
		return fmt.Errorf("classifier.min_confidence out of range: %f", cfg.Classifier.MinConfidence)
	}
	if cfg.Classifier.MultiIntentThreshold < 0 || cfg.Classifier.MultiIntentThreshold > 1 {
		return fmt.Errorf("classifier.multi_intent_threshold out of range: %f", cfg.Classifier.MultiIntentThreshold)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	// Classifier defaults
	viper.SetDefault("classifier.min_confidence", 0.3)
	viper.SetDefault("classifier.multi_intent_threshold", 0.6)
	viper.SetDefault("classifier.clarification_margin", 0.15)
	viper.SetDefault("classifier.default_language", "en")
	viper.SetDefault("classifier.timezone", "UTC")
	viper.SetDefault("classifier.cache_size", 512)
	viper.SetDefault("classifier.cache_ttl_seconds", 300)

	// Session defaults
	viper.SetDefault("session.timeout_minutes", 30)
	viper.SetDefault("session.cleanup_interval_minutes", 5)

	// Router defaults
	viper.SetDefault("router.handler_timeout_seconds", 30)

	// Fallback defaults
	viper.SetDefault("fallback.default_strategy", "ask_clarification")
	viper.SetDefault("fallback.history_enabled", true)
	viper.SetDefault("fallback.escalation_enabled", true)

	// History defaults
	viper.SetDefault("history.capacity", 10000)
}
