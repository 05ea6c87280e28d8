package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound     = goerr.New("configuration file not found")
	ErrInvalidConfig      = goerr.New("invalid configuration")
	ErrDuplicateCategory  = goerr.New("duplicate category ID")
	ErrMissingTitle       = goerr.New("title is required")
	ErrInvalidStrategies  = goerr.New("strategies must not contain empty entries")
	ErrMissingDependency  = goerr.New("required flag is not set")
	ErrInvalidBackend     = goerr.New("invalid repository backend")
	ErrConflictingOptions = goerr.New("conflicting options")
)

// Context keys for error values
const (
	ConfigPathKey    = "config_path"
	CategoryIDKey    = "category_id"
	CategoryIndexKey = "category_index"
	FlagKey          = "flag"
	BackendKey       = "backend"
)
