package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/deal-atlas/pkg/services/analytics"
	"github.com/spf13/viper"
)

const EnvPrefix = "DEAL_ATLAS"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Sync     SyncConfig     `mapstructure:"sync"`
	Sources  SourcesConfig  `mapstructure:"sources"`
	Forecast ForecastConfig `mapstructure:"forecast"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

type SyncConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
	Profile  string `mapstructure:"profile"`
}

// SourcesConfig points at the ini file holding CRM connection profiles.
type SourcesConfig struct {
	Path string `mapstructure:"path"`
}

type ForecastConfig struct {
	DefaultMonths int `mapstructure:"default_months"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("store.path", "deal-atlas.db")
	v.SetDefault("sync.enabled", false)
	v.SetDefault("sync.schedule", "@every 1h")
	v.SetDefault("sync.profile", "crm")
	v.SetDefault("sources.path", "")
	v.SetDefault("forecast.default_months", 6)
}

// Load reads the optional config file at path and overlays DEAL_ATLAS_* environment
// variables, e.g. DEAL_ATLAS_SERVER_PORT.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port: %d", c.Server.Port)
	}
	if c.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}
	if c.Forecast.DefaultMonths <= 0 || c.Forecast.DefaultMonths > analytics.MaxForecastMonths {
		return fmt.Errorf("forecast.default_months must be between 1 and %d, got %d",
			analytics.MaxForecastMonths, c.Forecast.DefaultMonths)
	}
	if c.Sync.Enabled && c.Sync.Profile == "" {
		return fmt.Errorf("sync.profile is required when sync is enabled")
	}
	return nil
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
