// Package services defines the business logic for albums and songs.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// The values are *domain.ClientError, so the HTTP layer reports them to the
// client verbatim as "fail" envelopes. Any other error a service returns is
// treated as unexpected.
package services

import "github.com/tbourn/go-music-backend/internal/domain"

// Album-related errors.
var (
	// ErrAlbumNotFound indicates that the requested album does not exist,
	// either as the target of an operation or as a song's albumId.
	ErrAlbumNotFound = domain.NewNotFoundError("Album not found")
)

// Song-related errors.
var (
	// ErrSongNotFound indicates that the requested song does not exist.
	ErrSongNotFound = domain.NewNotFoundError("Song not found")
)
