package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound    = goerr.New("configuration file not found")
	ErrInvalidConfig     = goerr.New("invalid configuration")
	ErrDuplicateFieldID  = goerr.New("duplicate field ID")
	ErrDuplicateOptionID = goerr.New("duplicate option ID")
	ErrUnknownFieldID    = goerr.New("unknown field ID")
	ErrInvalidFieldKind  = goerr.New("invalid field kind")
	ErrMissingName       = goerr.New("name is required")
	ErrNegativeFee       = goerr.New("fee must not be negative")
)

// Context keys for error values
const (
	ConfigPathKey  = "config_path"
	FieldIDKey     = "field_id"
	FieldKindKey   = "field_kind"
	OptionIDKey    = "option_id"
	FieldIndexKey  = "field_index"
	OptionIndexKey = "option_index"
)
