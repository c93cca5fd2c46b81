package types

import (
	"errors"
	"fmt"
)

// Configuration errors detected when a Set is built. These are load-time
// failures; the matcher itself never raises them.
var (
	ErrEmptyPattern = errors.New("signature pattern is empty")
	ErrMissingMIME  = errors.New("signature MIME type is required")
	ErrMissingID    = errors.New("signature ID is required")
)

// ValidateSignature checks signature consistency and required fields.
// Returns error if the signature is malformed.
func ValidateSignature(s *Signature) error {
	if s == nil {
		return fmt.Errorf("signature is nil")
	}
	if s.ID == "" {
		return ErrMissingID
	}
	if s.MIME == "" {
		return fmt.Errorf("signature %s: %w", s.ID, ErrMissingMIME)
	}
	if len(s.Pattern) == 0 {
		return fmt.Errorf("signature %s: %w", s.ID, ErrEmptyPattern)
	}
	if s.Offset < 0 {
		return fmt.Errorf("signature %s: offset must be non-negative, got %d", s.ID, s.Offset)
	}
	return nil
}
