package auth

import "errors"

// Auth domain errors
var (
	ErrInvalidToken = errors.New("invalid or malformed token")
	ErrTokenExpired = errors.New("token expired")
)
