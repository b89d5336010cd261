package domain

import "errors"

var (
	// ErrMissingCredentials means no generation backend could be configured.
	ErrMissingCredentials = errors.New("generation service credentials missing")
	// ErrGenerationFailed hides the underlying provider failure from callers.
	ErrGenerationFailed = errors.New("generation service failed")
)
