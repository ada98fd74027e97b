package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/tbourn/go-music-backend/internal/domain"
)

// SongValidator checks song payloads. It is safe for concurrent use.
type SongValidator struct {
	v *validator.Validate
}

// NewSongValidator returns a ready SongValidator.
func NewSongValidator() *SongValidator {
	return &SongValidator{v: newValidate()}
}

// ValidateSongPayload requires title, year, genre and performer; duration
// must not be negative when present.
func (s *SongValidator) ValidateSongPayload(p domain.SongPayload) error {
	return check(s.v, p)
}
