package auth

import (
	"errors"
	"fmt"
)

// ErrTokenNotFound is returned by a TokenStore that holds no token.
var ErrTokenNotFound = errors.New("oauth token not found")

// ConfigError reports a missing or malformed client credentials file.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("configuration error: %v", e.Err)
	}
	return fmt.Sprintf("configuration error in %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// AuthExchangeError reports that an authorization code could not be exchanged for a token.
type AuthExchangeError struct {
	Err error
}

func (e *AuthExchangeError) Error() string {
	return fmt.Sprintf("unable to retrieve token from Google: %v", e.Err)
}

func (e *AuthExchangeError) Unwrap() error { return e.Err }
