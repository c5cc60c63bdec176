package credentials

import "errors"

// Configuration errors, all fatal to startup
var (
	ErrConfigNotReadable = errors.New("configuration file not readable")
	ErrMissingField      = errors.New("missing required configuration field")
	ErrInvalidAddress    = errors.New("invalid EC2 address, expected user@host[:port]")
	ErrKeyFileNotFound   = errors.New("PEM key file not found")
	ErrKeyFilePermission = errors.New("PEM key file not readable")
)
