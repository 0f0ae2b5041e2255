// Package config loads metagraph configuration from metagraph.yml
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the metagraph configuration
type Config struct {
	Store  StoreConfig  `mapstructure:"store"`
	Server ServerConfig `mapstructure:"server"`
	Redis  RedisConfig  `mapstructure:"redis"`
}

// StoreConfig selects and configures the graph store backend
type StoreConfig struct {
	// Driver is one of "sqlite" or "postgres"
	Driver string `mapstructure:"driver"`
	// Path is the SQLite database path
	Path string `mapstructure:"path"`
	// URL is the PostgreSQL connection string
	URL string `mapstructure:"url"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// RedisConfig represents the optional response cache configuration
type RedisConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
	// TTLSeconds bounds how long rendered entities stay cached
	TTLSeconds int `mapstructure:"ttl_seconds"`
}

// Load loads the configuration from metagraph.yml or metagraph.yaml
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "metagraph.db")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.ttl_seconds", 30)

	v.SetConfigName("metagraph")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Store.Driver != "sqlite" && config.Store.Driver != "postgres" {
		return nil, fmt.Errorf("unknown store driver: %s", config.Store.Driver)
	}
	if config.Store.Driver == "postgres" && config.Store.URL == "" {
		return nil, fmt.Errorf("store.url is required for the postgres driver")
	}

	return &config, nil
}

// ListenAddress returns the host:port the server binds to
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
