// Package service provides business logic services for Filebridge.
package service

import "errors"

// Service errors. Business rule violations are reported with the
// sentinels in the domain package; ErrInternalError covers everything
// that is the server's fault rather than the caller's.
var (
	ErrInvalidUsername = errors.New("invalid username: must not be empty")
	ErrInvalidPassword = errors.New("invalid password: must not be empty")
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrInternalError   = errors.New("internal server error")
)
