// Package config holds the application configuration, loaded from a YAML
// file, MOTIONGEN_* environment variables and command-line flags via viper.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the resolved application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Kolada  KoladaConfig  `mapstructure:"kolada"`
	Scraper ScraperConfig `mapstructure:"scraper"`
	LLM     LLMConfig     `mapstructure:"llm"`

	// KPIOverrides points at a YAML file that overrides the built-in
	// statistic type registry. Empty means defaults only.
	KPIOverrides string `mapstructure:"kpi_overrides"`

	Debug bool `mapstructure:"debug"`
	Quiet bool `mapstructure:"quiet"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// KoladaConfig configures the Kolada API client.
type KoladaConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	MaxFallbackYears  int           `mapstructure:"max_fallback_years"`
}

// ScraperConfig configures the crime statistics scraper.
type ScraperConfig struct {
	PageURL           string        `mapstructure:"page_url"`
	Mode              string        `mapstructure:"mode"` // static or dynamic
	UserAgent         string        `mapstructure:"user_agent"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
}

// LLMConfig configures the motion generation provider.
type LLMConfig struct {
	Provider    string        `mapstructure:"provider"`
	Model       string        `mapstructure:"model"`
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	MaxRetries  int           `mapstructure:"max_retries"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Temperature float64       `mapstructure:"temperature"`
}

// SetDefaults registers default values on a viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 5*time.Minute)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("kolada.base_url", "https://api.kolada.se/v2")
	v.SetDefault("kolada.timeout", 10*time.Second)
	v.SetDefault("kolada.requests_per_second", 10.0)
	v.SetDefault("kolada.max_fallback_years", 2)

	v.SetDefault("scraper.page_url", "https://bra.se/statistik/kriminalstatistik.html")
	v.SetDefault("scraper.mode", "static")
	v.SetDefault("scraper.user_agent", "sd-motion-generator/1.0")
	v.SetDefault("scraper.timeout", 30*time.Second)
	v.SetDefault("scraper.requests_per_second", 1.0)

	v.SetDefault("llm.provider", "xai")
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.timeout", 60*time.Second)
	v.SetDefault("llm.temperature", 0.7)
}

// Load unmarshals and validates the configuration from a viper instance.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks constraints the type system cannot express.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if c.Scraper.Mode != "static" && c.Scraper.Mode != "dynamic" {
		return fmt.Errorf("scraper.mode must be static or dynamic, got %q", c.Scraper.Mode)
	}
	if c.Kolada.MaxFallbackYears < 0 {
		return fmt.Errorf("kolada.max_fallback_years must not be negative")
	}
	return nil
}
