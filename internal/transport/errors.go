package transport

import "errors"

var (
	// ErrInvalidProxyAddress is returned when the proxy address is not "host:port".
	ErrInvalidProxyAddress = errors.New("invalid proxy address format: expected host:port")

	// ErrInvalidTimeout is returned when the client timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")
)
