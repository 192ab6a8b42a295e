package auth

import "errors"

var (
	ErrValidation         = errors.New("validation_error")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrEmailTaken         = errors.New("email_taken")
)
