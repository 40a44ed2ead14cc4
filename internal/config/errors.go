package config

import "errors"

// ErrInvalidConfig wraps every configuration validation failure.
// Fatal to the scan.
var ErrInvalidConfig = errors.New("invalid config")
