package config

import (
	"fmt"
	"os"
	"time"

	"github.com/Scrimzay/plunderpunk/internal/board"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the server's environment.
type Config struct {
	Port              string        `env:"PORT" envDefault:"8080"`
	GinMode           string        `env:"GIN_MODE" envDefault:"debug"`
	DBPath            string        `env:"DB_PATH" envDefault:"plunderpunk.db"`
	AppName           string        `env:"APP_NAME" envDefault:"plunderpunk"`
	RulesPath         string        `env:"RULES_PATH"`
	BroadcastInterval time.Duration `env:"BROADCAST_INTERVAL" envDefault:"1s"`
	SessionIdleTTL    time.Duration `env:"SESSION_IDLE_TTL" envDefault:"30m"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.BroadcastInterval <= 0 {
		return Config{}, fmt.Errorf("broadcast interval must be positive, got %s", cfg.BroadcastInterval)
	}
	if cfg.SessionIdleTTL <= 0 {
		return Config{}, fmt.Errorf("session idle ttl must be positive, got %s", cfg.SessionIdleTTL)
	}
	return cfg, nil
}

// LoadRules reads a YAML rules file over the defaults. Keys left out of the
// file keep their default value. An empty path means defaults only.
func LoadRules(path string) (board.Rules, error) {
	rules := board.DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("read rules: %w", err)
	}
	return ParseRules(data)
}

func ParseRules(data []byte) (board.Rules, error) {
	rules := board.DefaultRules()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return board.DefaultRules(), fmt.Errorf("parse rules: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return board.DefaultRules(), fmt.Errorf("validate rules: %w", err)
	}
	return rules, nil
}
