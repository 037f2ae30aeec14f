package domain

import "errors"

var (
	// ErrItemNotFound signals a missing item.
	ErrItemNotFound = errors.New("item not found")
	// ErrNoteNotFound signals a missing note.
	ErrNoteNotFound = errors.New("note not found")
	// ErrInvalidInput signals a malformed request payload.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCapabilityUnavailable signals that a generative tier is not configured
	// or not reachable. Recovered by advancing the fallback chain.
	ErrCapabilityUnavailable = errors.New("capability unavailable")
	// ErrGenerationFailed signals a timeout, network error, or malformed
	// response from a generative tier. Recovered by advancing the fallback chain.
	ErrGenerationFailed = errors.New("generation failed")
	// ErrValidationFailed signals well-formed output that violates the
	// ItemRecord invariants. Recovered by advancing the fallback chain.
	ErrValidationFailed = errors.New("validation failed")
)
