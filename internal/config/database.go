package config

import "os"

const (
	databaseURLEnv          = "DATABASE_URL"
	databaseAutoMigrateEnv  = "DATABASE_AUTO_MIGRATE"
	databaseMaxOpenConnsEnv = "DATABASE_MAX_OPEN_CONNS"
	databaseMaxIdleConnsEnv = "DATABASE_MAX_IDLE_CONNS"

	defaultDatabaseMaxOpenConns = 10
	defaultDatabaseMaxIdleConns = 5
)

type DatabaseConfig struct {
	URL          string
	AutoMigrate  bool
	MaxOpenConns int
	MaxIdleConns int
}

func LoadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		URL:          os.Getenv(databaseURLEnv),
		AutoMigrate:  os.Getenv(databaseAutoMigrateEnv) == "true",
		MaxOpenConns: positiveIntEnv(databaseMaxOpenConnsEnv, defaultDatabaseMaxOpenConns),
		MaxIdleConns: positiveIntEnv(databaseMaxIdleConnsEnv, defaultDatabaseMaxIdleConns),
	}
}

func (c *DatabaseConfig) Validate() error {
	if c == nil || c.URL == "" {
		return ErrDatabaseURLMissing
	}
	return nil
}
