package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Addr         string   `mapstructure:"addr"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type RecognizerConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type CityDataConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type RetentionConfig struct {
	Days     int           `mapstructure:"days"`
	Interval time.Duration `mapstructure:"interval"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Recognizer RecognizerConfig `mapstructure:"recognizer"`
	CityData   CityDataConfig   `mapstructure:"citydata"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Retention  RetentionConfig  `mapstructure:"retention"`
	Log        LogConfig        `mapstructure:"log"`
}

// Load reads configuration from an optional yaml file plus RESTCONNECT_*
// environment variables, which take precedence.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Keys without a real default still need to be registered so that
	// AutomaticEnv can populate them through Unmarshal.
	v.SetDefault("recognizer.base_url", "")
	v.SetDefault("citydata.base_url", "")
	v.SetDefault("database.dsn", "")
	v.SetDefault("auth.jwt_secret", "")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allow_origins", []string{"*"})
	v.SetDefault("recognizer.timeout", 30*time.Second)
	v.SetDefault("citydata.timeout", 10*time.Second)
	v.SetDefault("citydata.cache_ttl", 15*time.Minute)
	v.SetDefault("retention.days", 90)
	v.SetDefault("retention.interval", time.Hour)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.SetEnvPrefix("RESTCONNECT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Recognizer.BaseURL == "" {
		return errors.New("recognizer.base_url is required")
	}
	if c.CityData.BaseURL == "" {
		return errors.New("citydata.base_url is required")
	}
	if c.Database.DSN == "" {
		return errors.New("database.dsn is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	if c.Retention.Days <= 0 {
		return errors.New("retention.days must be positive")
	}
	return nil
}
