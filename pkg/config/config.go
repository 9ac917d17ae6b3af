package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Database
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// CORS
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// FPL API
	FPLBaseURL              string        `mapstructure:"FPL_BASE_URL"`
	FPLTimeout              time.Duration `mapstructure:"FPL_TIMEOUT"`
	FPLRateLimit            int           `mapstructure:"FPL_RATE_LIMIT"`
	CircuitBreakerThreshold int           `mapstructure:"CIRCUIT_BREAKER_THRESHOLD"`

	// Background refresh
	DataFetchInterval    string `mapstructure:"DATA_FETCH_INTERVAL"`
	PredictionRetention  string `mapstructure:"PREDICTION_RETENTION"`
	EnableBackgroundJobs bool   `mapstructure:"ENABLE_BACKGROUND_JOBS"`

	// Prediction engine
	PredictionWorkers int     `mapstructure:"PREDICTION_WORKERS"`
	ScoringStrategy   string  `mapstructure:"SCORING_STRATEGY"` // "rules" or "regression"
	FormWindow        int     `mapstructure:"FORM_WINDOW"`
	RecentFormWeight  float64 `mapstructure:"RECENT_FORM_WEIGHT"`
	HomeAdvantage     float64 `mapstructure:"HOME_ADVANTAGE"`

	// Transfer optimizer
	PricePenalty      float64 `mapstructure:"PRICE_PENALTY"`
	MaxPlayersPerTeam int     `mapstructure:"MAX_PLAYERS_PER_TEAM"`

	// Logging
	LogLevel string `mapstructure:"LOG_LEVEL"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DATABASE_URL", "data/fpl.db")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")

	viper.SetDefault("FPL_BASE_URL", "https://fantasy.premierleague.com/api")
	viper.SetDefault("FPL_TIMEOUT", "30s")
	viper.SetDefault("FPL_RATE_LIMIT", 5) // requests per second
	viper.SetDefault("CIRCUIT_BREAKER_THRESHOLD", 5)

	viper.SetDefault("DATA_FETCH_INTERVAL", "2h")
	viper.SetDefault("PREDICTION_RETENTION", "720h") // keep predictions for ~30 days
	viper.SetDefault("ENABLE_BACKGROUND_JOBS", true)

	viper.SetDefault("PREDICTION_WORKERS", 8)
	viper.SetDefault("SCORING_STRATEGY", "rules")
	viper.SetDefault("FORM_WINDOW", 5)
	viper.SetDefault("RECENT_FORM_WEIGHT", 0.6)
	viper.SetDefault("HOME_ADVANTAGE", 0.8)

	viper.SetDefault("PRICE_PENALTY", 0.5)
	viper.SetDefault("MAX_PLAYERS_PER_TEAM", 3)

	viper.SetDefault("LOG_LEVEL", "")

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse CORS origins from comma-separated string
	if corsStr := viper.GetString("CORS_ORIGINS"); corsStr != "" {
		config.CorsOrigins = strings.Split(corsStr, ",")
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
