package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/joestump/shutterly/internal/model"
)

type Config struct {
	DB struct {
		Driver string
		DSN    string
	}
	Theme struct {
		Default model.Theme
	}
	Seed bool
}

// Load reads config from environment (SHUTTERLY_ prefix) and optional shutterly.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SHUTTERLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("shutterly")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.dsn", "shutterly.db")
	v.SetDefault("theme.default", string(model.ThemeLight))
	v.SetDefault("seed", false)

	cfg := &Config{}
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Theme.Default = model.Theme(v.GetString("theme.default"))
	cfg.Seed = v.GetBool("seed")

	switch cfg.DB.Driver {
	case "sqlite3", "mysql", "postgres":
	default:
		return nil, fmt.Errorf("invalid SHUTTERLY_DB_DRIVER %q (sqlite3, mysql, postgres)", cfg.DB.Driver)
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("SHUTTERLY_DB_DSN is required")
	}
	if err := model.ValidateTheme(cfg.Theme.Default); err != nil {
		return nil, fmt.Errorf("invalid SHUTTERLY_THEME_DEFAULT: %w", err)
	}

	return cfg, nil
}
