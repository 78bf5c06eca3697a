package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type ServerConfig struct {
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

type SessionConfig struct {
	ExpiryHours int `toml:"expiry_hours"`
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
}

type AIConfig struct {
	// ProcessingDelay simulates inference latency on the extraction
	// endpoints. Zero disables the delay.
	ProcessingDelayMs int `toml:"processing_delay_ms"`
}

type DemoConfig struct {
	Seed     bool   `toml:"seed"`
	Username string `toml:"username"`
	Password string `toml:"password"`
}

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Session SessionConfig `toml:"session"`
	Auth    AuthConfig    `toml:"auth"`
	AI      AIConfig      `toml:"ai"`
	Demo    DemoConfig    `toml:"demo"`
}

// LoadConfig reads the TOML config file, filling defaults first. A
// missing file is fine for the demo; defaults apply.
func LoadConfig(filepath string) (*Config, error) {
	config := Defaults()

	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return config, nil
	}

	if _, err := toml.DecodeFile(filepath, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", filepath, err)
	}

	if config.Session.ExpiryHours <= 0 {
		config.Session.ExpiryHours = 24
	}

	return config, nil
}

// Defaults returns the configuration used when no file is present.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:     3000,
			LogLevel: "info",
		},
		Session: SessionConfig{
			ExpiryHours: 24,
		},
		Auth: AuthConfig{
			JWTSecret: "meetminder-demo-secret",
		},
		AI: AIConfig{
			ProcessingDelayMs: 1500,
		},
		Demo: DemoConfig{
			Seed:     true,
			Username: "demo",
			Password: "demo1234",
		},
	}
}

// SessionExpiry returns the configured session lifetime.
func (c *Config) SessionExpiry() time.Duration {
	return time.Duration(c.Session.ExpiryHours) * time.Hour
}

// ProcessingDelay returns the simulated AI latency.
func (c *Config) ProcessingDelay() time.Duration {
	return time.Duration(c.AI.ProcessingDelayMs) * time.Millisecond
}
