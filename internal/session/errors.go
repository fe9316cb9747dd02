package session

import "errors"

var (
	ErrInvalidOTP   = errors.New("Invalid OTP")
	ErrTransport    = errors.New("Network request failed")
	ErrRoleRequired = errors.New("A valid role is required")
)
