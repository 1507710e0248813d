// Package redis provides configuration for the optional cross-replica run lock.
package redis

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Default configuration values
const (
	DefaultAddress = "localhost:6379"
	DefaultLockTTL = 6 * time.Hour
)

// Config holds Redis connection settings.
type Config struct {
	Enabled  bool          `env:"REDIS_ENABLED"  yaml:"enabled"`
	Address  string        `env:"REDIS_ADDRESS"  yaml:"address"`
	Password string        `env:"REDIS_PASSWORD" json:"-"       yaml:"password"`
	DB       int           `env:"REDIS_DB"       yaml:"db"`
	LockTTL  time.Duration `env:"REDIS_LOCK_TTL" yaml:"lock_ttl"`
}

// LoadFromViper loads Redis configuration from Viper.
func LoadFromViper(v *viper.Viper) *Config {
	cfg := &Config{
		Enabled:  v.GetBool("redis.enabled"),
		Address:  DefaultAddress,
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
		LockTTL:  DefaultLockTTL,
	}
	if addr := v.GetString("redis.address"); addr != "" {
		cfg.Address = addr
	}
	if ttl := v.GetDuration("redis.lock_ttl"); ttl > 0 {
		cfg.LockTTL = ttl
	}
	return cfg
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Address == "" {
		return errors.New("redis address must be specified")
	}
	if c.LockTTL <= 0 {
		return errors.New("redis lock ttl must be positive")
	}
	return nil
}
