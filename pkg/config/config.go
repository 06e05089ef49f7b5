package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Database
	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"` // "postgres" or "sqlite"
	DatabaseURL    string `mapstructure:"DATABASE_URL"`

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// CollegeFootballData API
	CFBDAPIKey              string        `mapstructure:"CFBD_API_KEY"`
	CFBDRateLimit           int           `mapstructure:"CFBD_RATE_LIMIT"`
	MaxWeeks                int           `mapstructure:"MAX_WEEKS"`
	ExternalAPITimeout      time.Duration `mapstructure:"EXTERNAL_API_TIMEOUT"`
	CircuitBreakerThreshold int           `mapstructure:"CIRCUIT_BREAKER_THRESHOLD"`

	// Pipeline
	Seasons          []int   `mapstructure:"-"` // parsed from comma-separated SEASONS

	PipelineInterval string  `mapstructure:"PIPELINE_INTERVAL"`
	BettingProvider  string  `mapstructure:"BETTING_PROVIDER"`
	EdgeThreshold    float64 `mapstructure:"EDGE_THRESHOLD"`
	RollingWindow    int     `mapstructure:"ROLLING_WINDOW"`

	// Startup Configuration
	SkipInitialIngest    bool `mapstructure:"SKIP_INITIAL_INGEST"`
	EnableBackgroundJobs bool `mapstructure:"ENABLE_BACKGROUND_JOBS"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_URL", "cfb_analytics.db")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("CFBD_API_KEY", "")
	viper.SetDefault("CFBD_RATE_LIMIT", 5) // requests per second
	viper.SetDefault("MAX_WEEKS", 18)
	viper.SetDefault("EXTERNAL_API_TIMEOUT", "30s")
	viper.SetDefault("CIRCUIT_BREAKER_THRESHOLD", 5) // consecutive failures before opening
	viper.SetDefault("SEASONS", "2024")
	viper.SetDefault("PIPELINE_INTERVAL", "6h")
	viper.SetDefault("BETTING_PROVIDER", "DraftKings")
	viper.SetDefault("EDGE_THRESHOLD", 1.0)
	viper.SetDefault("ROLLING_WINDOW", 3)
	viper.SetDefault("SKIP_INITIAL_INGEST", false)
	viper.SetDefault("ENABLE_BACKGROUND_JOBS", true)

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

	// Parse seasons from comma-separated string
	if seasonsStr := viper.GetString("SEASONS"); seasonsStr != "" {
		for _, part := range strings.Split(seasonsStr, ",") {
			year, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return nil, fmt.Errorf("invalid season %q in SEASONS: %w", part, err)
			}
			config.Seasons = append(config.Seasons, year)
		}
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
