package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrMissingCredential = errors.New("gemini api key not configured")
	ErrProviderFailure   = errors.New("provider failure")
)
