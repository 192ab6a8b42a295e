package vote

import "errors"

var (
	ErrValidation   = errors.New("validation_error")
	ErrNotFound     = errors.New("not_found")
	ErrAlreadyVoted = errors.New("already_voted")
)
