package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	AccessTTL  time.Duration `mapstructure:"access_ttl"`
	RefreshTTL time.Duration `mapstructure:"refresh_ttl"`
}

type AlertConfig struct {
	From         string `mapstructure:"from"`
	To           string `mapstructure:"to"`
	SMTPServer   string `mapstructure:"smtp_server"`
	SMTPPort     string `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	AuthDisabled bool   `mapstructure:"auth_disabled"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Alert    AlertConfig    `mapstructure:"alert"`
}

// Load reads configuration from config.yaml (optional) with environment
// overrides, e.g. INVAUDIT_DATABASE_URL or INVAUDIT_JWT_SECRET.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("INVAUDIT")
	v.AutomaticEnv()

	v.SetDefault("server.address", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("jwt.access_ttl", 15*time.Minute)
	v.SetDefault("jwt.refresh_ttl", 7*24*time.Hour)

	if err := v.ReadInConfig(); err != nil {
		// The config file is optional; env vars can carry everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// Bind the settings that have no default so AutomaticEnv picks them up
	// even without a config file.
	for _, key := range []string{"database.url", "jwt.secret", "redis.password", "redis.db",
		"alert.from", "alert.to", "alert.smtp_server", "alert.smtp_port",
		"alert.smtp_user", "alert.smtp_password", "alert.auth_disabled"} {
		_ = v.BindEnv(key)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if c.Database.URL == "" {
		return nil, fmt.Errorf("database.url is required (INVAUDIT_DATABASE_URL)")
	}
	if c.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt.secret is required (INVAUDIT_JWT_SECRET)")
	}

	return &c, nil
}
