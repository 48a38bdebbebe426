// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Game configures the local terminal game.
type Game struct {
	SettingsPath string `env:"ASSEMBLY_SETTINGS_PATH" envDefault:"assemblyline.db"`
	Player       string `env:"ASSEMBLY_PLAYER" envDefault:"local"`
	Seed         uint64 `env:"ASSEMBLY_SEED"` // 0 picks a time based seed
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"LOG_FORMAT" envDefault:"text"`
	LogFile      string `env:"LOG_FILE"` // Logs are discarded when empty
}

// SSH configures the multi-player SSH server.
type SSH struct {
	Host            string        `env:"SSH_HOST" envDefault:"::"`
	Port            string        `env:"SSH_PORT" envDefault:"2222"`
	HostKeyPath     string        `env:"SSH_HOST_KEY" envDefault:"/app/keys/host_key"`
	SettingsPath    string        `env:"ASSEMBLY_SETTINGS_PATH" envDefault:"/app/data/assemblyline.db"`
	MetricsAddr     string        `env:"METRICS_ADDR" envDefault:":9090"` // Empty disables the endpoint
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"text"`
}

// Web configures the landing page server.
type Web struct {
	Host           string `env:"WEB_HOST" envDefault:"0.0.0.0"`
	Port           string `env:"WEB_PORT" envDefault:"8080"`
	SSHDisplayHost string `env:"SSH_DISPLAY_HOST" envDefault:"your-server.com"`
	SSHPort        string `env:"SSH_PORT" envDefault:"2222"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
