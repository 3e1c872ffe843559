package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	CORS   CORSConfig   `mapstructure:"cors"   validate:"required"`
	Store  StoreConfig  `mapstructure:"store"  validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Host            string        `mapstructure:"host"             validate:"required"`
	Port            int           `mapstructure:"port"             validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level"        validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// CORSConfig controls the cross-origin policy applied to every route.
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"   validate:"min=1,dive,required"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"           validate:"gte=0"`
}

// StoreConfig selects how the task store assigns identifiers and how it
// treats an update whose body id disagrees with the path id.
type StoreConfig struct {
	IDPolicy       string `mapstructure:"id_policy"       validate:"required,oneof=auto client"`
	MismatchPolicy string `mapstructure:"mismatch_policy" validate:"required,oneof=force reject"`
}
