package project

import "errors"

var (
	// ErrInvalidInput indicates a creation payload without a usable key
	// or name.
	ErrInvalidInput = errors.New("invalid project input")
	// ErrInvalidPayload indicates a stored snapshot missing its project
	// key, the one field that cannot be defaulted.
	ErrInvalidPayload = errors.New("invalid project payload")
)
