// Package validation checks configuration values before they are applied.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Both report failures as an
// INVALID_CONFIG AppError carrying the offending fields in its details.
//
// # Struct Tag Validation
//
//	type Config struct {
//	    InitialCapacity int `mapstructure:"initial_capacity" validate:"gte=0"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
// For scopes keys to a configuration section, and Struct folds tag
// violations into the same report:
//
//	v := validation.For("observability").
//	    Between("sample_rate", cfg.SampleRate, 0, 1).
//	    Check(!cfg.Enabled || cfg.Endpoint != "", "endpoint", "is required when enabled").
//	    Struct(cfg)
//	if appErr := v.Validate(); appErr != nil { ... }
package validation
