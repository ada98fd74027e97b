package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/tbourn/go-music-backend/internal/domain"
)

// AlbumValidator checks album payloads. It is safe for concurrent use.
type AlbumValidator struct {
	v *validator.Validate
}

// NewAlbumValidator returns a ready AlbumValidator.
func NewAlbumValidator() *AlbumValidator {
	return &AlbumValidator{v: newValidate()}
}

// ValidateAlbumPayload requires a non-blank name and a year.
func (a *AlbumValidator) ValidateAlbumPayload(p domain.AlbumPayload) error {
	return check(a.v, p)
}
