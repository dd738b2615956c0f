package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all user-facing configuration for osrs-drops.
type Config struct {
	Data   DataConfig   `toml:"data"`
	Server ServerConfig `toml:"server"`
	Wiki   WikiConfig   `toml:"wiki"`
	Scrape ScrapeConfig `toml:"scrape"`
}

type DataConfig struct {
	Dir string `toml:"dir"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// WikiConfig describes the wiki being fetched from and how.
type WikiConfig struct {
	BaseURL        string `toml:"base_url"`
	UserAgent      string `toml:"user_agent"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Retries        int    `toml:"retries"`
}

type ScrapeConfig struct {
	RateLimit float64 `toml:"rate_limit"`
}

// Timeout returns the request timeout as a duration.
func (w WikiConfig) Timeout() time.Duration {
	return time.Duration(w.TimeoutSeconds) * time.Second
}

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	return &Config{
		Data:   DataConfig{Dir: "data"},
		Server: ServerConfig{Host: "localhost", Port: 8080},
		Wiki: WikiConfig{
			BaseURL:        "https://oldschool.runescape.wiki",
			UserAgent:      "osrs-drops/1.0 (+https://github.com/intelligrit/osrs-drops)",
			TimeoutSeconds: 30,
		},
		Scrape: ScrapeConfig{RateLimit: 1.0},
	}
}

// Load reads a TOML config file. If the file does not exist, built-in
// defaults are returned without error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
