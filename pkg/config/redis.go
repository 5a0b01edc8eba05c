package config

import "github.com/redis/go-redis/v9"

// RedisConfig holds the token-verification cache configuration. The cache is
// optional; when disabled the verifier runs uncached.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD" env-default:""`
	DB       int    `env:"REDIS_DB" env-default:"0"`
	Enabled  bool   `env:"REDIS_ENABLED" env-default:"false"`
}

// ToOptions converts the config to go-redis client options.
func (r RedisConfig) ToOptions() *redis.Options {
	return &redis.Options{
		Addr:     r.Addr,
		Password: r.Password,
		DB:       r.DB,
	}
}
