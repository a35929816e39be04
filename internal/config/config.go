package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Supported DATABASE_DRIVER values.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	AppPort            int    `mapstructure:"APP_PORT"`
	DatabaseDriver     string `mapstructure:"DATABASE_DRIVER"`
	DatabasePath       string `mapstructure:"DATABASE_PATH"`
	DatabaseURL        string `mapstructure:"DATABASE_URL"`
	LLMBaseURL         string `mapstructure:"LLM_BASE_URL"`
	LLMAPIKey          string `mapstructure:"LLM_API_KEY"`
	ChatModel          string `mapstructure:"CHAT_MODEL"`
	VisionModel        string `mapstructure:"VISION_MODEL"`
	TTSModel           string `mapstructure:"TTS_MODEL"`
	TTSVoice           string `mapstructure:"TTS_VOICE"`
	HistoryTokenBudget int    `mapstructure:"HISTORY_TOKEN_BUDGET"`
	LogLevel           string `mapstructure:"LOG_LEVEL"`
	CORSOrigins        string `mapstructure:"CORS_ORIGINS"`
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c *Config) validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	default:
		return errors.New("DATABASE_DRIVER must be sqlite or postgres")
	}
	return nil
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("DATABASE_DRIVER", DriverSQLite)
	viper.SetDefault("DATABASE_PATH", "/data/plearn.db")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("LLM_BASE_URL", "https://api.openai.com/v1")
	viper.SetDefault("LLM_API_KEY", "")
	viper.SetDefault("CHAT_MODEL", "gpt-4o-mini")
	viper.SetDefault("VISION_MODEL", "gpt-4o-mini")
	viper.SetDefault("TTS_MODEL", "tts-1")
	viper.SetDefault("TTS_VOICE", "alloy")
	viper.SetDefault("HISTORY_TOKEN_BUDGET", 3000)
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("CORS_ORIGINS", "*")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
