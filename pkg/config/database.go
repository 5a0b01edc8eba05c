package config

import "fmt"

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host     string `env:"IRRIDASH_PG_HOST" env-default:"localhost"`
	Port     uint16 `env:"IRRIDASH_PG_PORT" env-default:"5432"`
	Database string `env:"IRRIDASH_PG_DATABASE" env-default:"irridash_db"`
	User     string `env:"IRRIDASH_PG_USER" env-default:"irridash"`
	Password string `env:"IRRIDASH_PG_PASSWORD" env-default:"pwd"`
	Schema   string `env:"IRRIDASH_PG_SCHEMA" env-default:"public"`
}

// ToDatabaseURL converts the config to a PostgreSQL connection URL.
func (d DatabaseConfig) ToDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable&search_path=%s,public",
		d.User, d.Password, d.Host, d.Port, d.Database, d.Schema)
}
