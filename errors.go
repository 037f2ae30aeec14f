package inventa

import "github.com/inventa-app/inventa/internal/domain"

// Sentinel errors returned by the SDK. Match with errors.Is.
var (
	ErrItemNotFound          = domain.ErrItemNotFound
	ErrNoteNotFound          = domain.ErrNoteNotFound
	ErrInvalidInput          = domain.ErrInvalidInput
	ErrValidationFailed      = domain.ErrValidationFailed
	ErrGenerationFailed      = domain.ErrGenerationFailed
	ErrCapabilityUnavailable = domain.ErrCapabilityUnavailable
)
