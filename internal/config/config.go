// config/config.go - Application configuration
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is loaded from an optional YAML file, then overridden by
// environment variables. Every field has a default so the binary runs
// with no configuration at all.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Stripe   StripeConfig   `yaml:"stripe"`
	Vacation VacationConfig `yaml:"vacation"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type StripeConfig struct {
	SecretKey     string `yaml:"secret_key"`
	WebhookSecret string `yaml:"webhook_secret"`
	SuccessURL    string `yaml:"success_url"`
	CancelURL     string `yaml:"cancel_url"`
}

type VacationConfig struct {
	BaseURL      string `yaml:"base_url"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
}

// Load reads path (skipped when empty or missing) and applies env
// overrides on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server:   ServerConfig{Port: "8080"},
		Database: DatabaseConfig{Path: "data/timetrack.db"},
		Stripe: StripeConfig{
			SuccessURL: "http://localhost:8080/billing/success",
			CancelURL:  "http://localhost:8080/billing/cancel",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	overrideEnv(&cfg.Server.Port, "PORT")
	overrideEnv(&cfg.Database.Path, "DB_PATH")
	overrideEnv(&cfg.Stripe.SecretKey, "STRIPE_SECRET_KEY")
	overrideEnv(&cfg.Stripe.WebhookSecret, "STRIPE_WEBHOOK_SECRET")
	overrideEnv(&cfg.Stripe.SuccessURL, "STRIPE_SUCCESS_URL")
	overrideEnv(&cfg.Stripe.CancelURL, "STRIPE_CANCEL_URL")
	overrideEnv(&cfg.Vacation.BaseURL, "VACATION_BASE_URL")
	overrideEnv(&cfg.Vacation.ClientID, "VACATION_CLIENT_ID")
	overrideEnv(&cfg.Vacation.ClientSecret, "VACATION_CLIENT_SECRET")

	return cfg, nil
}

func overrideEnv(dest *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dest = v
	}
}
