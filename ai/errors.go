package ai

import "errors"

var (
	// ErrEmptyResponse indicates the completion service returned no choices.
	ErrEmptyResponse = errors.New("generation service returned no choices")
)
