// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Album
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, so they work
// inside transactions. They hold no business rules.
//
// Error semantics:
//   - A missing album yields ErrNotFound (gorm.ErrRecordNotFound).
//   - Other DB errors are propagated as returned by GORM.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-music-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateAlbum inserts a new album with an "album-<uuid>" ID.
func CreateAlbum(ctx context.Context, db *gorm.DB, name string, year int) (*domain.Album, error) {
	now := time.Now().UTC()
	a := &domain.Album{
		ID:        "album-" + uuid.NewString(),
		Name:      name,
		Year:      year,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// GetAlbum fetches a single album by ID, or ErrNotFound.
func GetAlbum(ctx context.Context, db *gorm.DB, id string) (*domain.Album, error) {
	var a domain.Album
	if err := db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAlbum replaces the name and year of an album. It returns ErrNotFound
// when no row matched.
func UpdateAlbum(ctx context.Context, db *gorm.DB, id, name string, year int) error {
	res := db.WithContext(ctx).
		Model(&domain.Album{}).
		Where("id = ?", id).
		Updates(map[string]any{"name": name, "year": year, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAlbum removes an album. Songs that referenced it keep existing with a
// NULL album_id. It returns ErrNotFound when no row matched.
func DeleteAlbum(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Album{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
