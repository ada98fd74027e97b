// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Song
// model, including filtered and paginated listings.
package repo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-music-backend/internal/domain"
)

// SongFields is the column set written by CreateSong and UpdateSong.
type SongFields struct {
	Title     string
	Year      int
	Genre     string
	Performer string
	Duration  *int
	AlbumID   *string
}

// CreateSong inserts a new song with a "song-<uuid>" ID.
func CreateSong(ctx context.Context, db *gorm.DB, f SongFields) (*domain.Song, error) {
	now := time.Now().UTC()
	s := &domain.Song{
		ID:        "song-" + uuid.NewString(),
		Title:     f.Title,
		Year:      f.Year,
		Genre:     f.Genre,
		Performer: f.Performer,
		Duration:  f.Duration,
		AlbumID:   f.AlbumID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// GetSong fetches a single song by ID, or ErrNotFound.
func GetSong(ctx context.Context, db *gorm.DB, id string) (*domain.Song, error) {
	var s domain.Song
	if err := db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateSong replaces every mutable column of a song, including clearing
// duration and album_id when they are nil. It returns ErrNotFound when no
// row matched.
func UpdateSong(ctx context.Context, db *gorm.DB, id string, f SongFields) error {
	res := db.WithContext(ctx).
		Model(&domain.Song{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"title":      f.Title,
			"year":       f.Year,
			"genre":      f.Genre,
			"performer":  f.Performer,
			"duration":   f.Duration,
			"album_id":   f.AlbumID,
			"updated_at": time.Now().UTC(),

			"title_folded":     domain.Fold(f.Title),
			"performer_folded": domain.Fold(f.Performer),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSong removes a song. It returns ErrNotFound when no row matched.
func DeleteSong(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Song{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountSongs returns the number of songs matching filter.
func CountSongs(ctx context.Context, db *gorm.DB, filter domain.SongFilter) (int64, error) {
	var total int64
	err := applySongFilter(db.WithContext(ctx).Model(&domain.Song{}), filter).
		Count(&total).Error
	return total, err
}

// ListSongsPage returns a page of song summaries matching filter, ordered by
// creation time (oldest first) and then ID for a stable order.
func ListSongsPage(ctx context.Context, db *gorm.DB, filter domain.SongFilter, offset, limit int) ([]domain.SongSummary, error) {
	out := []domain.SongSummary{}
	err := applySongFilter(db.WithContext(ctx).Model(&domain.Song{}), filter).
		Select("id", "title", "performer").
		Order("created_at asc").
		Order("id asc").
		Offset(offset).
		Limit(limit).
		Scan(&out).Error
	return out, err
}

// ListSongsByAlbum returns the summaries of all songs in an album.
func ListSongsByAlbum(ctx context.Context, db *gorm.DB, albumID string) ([]domain.SongSummary, error) {
	out := []domain.SongSummary{}
	err := db.WithContext(ctx).
		Model(&domain.Song{}).
		Select("id", "title", "performer").
		Where("album_id = ?", albumID).
		Order("created_at asc").
		Order("id asc").
		Scan(&out).Error
	return out, err
}

// applySongFilter adds case-insensitive substring conditions. Terms are
// folded here and matched against the folded columns, so the database's
// LOWER (ASCII-only on SQLite) is never involved.
func applySongFilter(q *gorm.DB, f domain.SongFilter) *gorm.DB {
	if f.Title != "" {
		q = q.Where("title_folded LIKE ? ESCAPE '\\'", "%"+escapeLike(domain.Fold(f.Title))+"%")
	}
	if f.Performer != "" {
		q = q.Where("performer_folded LIKE ? ESCAPE '\\'", "%"+escapeLike(domain.Fold(f.Performer))+"%")
	}
	return q
}

// backfillSongFolds fills the folded search columns of rows written before
// they existed.
func backfillSongFolds(db *gorm.DB) error {
	var batch []domain.Song
	return db.Where("title_folded = '' OR performer_folded = ''").
		FindInBatches(&batch, 500, func(tx *gorm.DB, _ int) error {
			for i := range batch {
				s := &batch[i]
				err := tx.Model(&domain.Song{}).Where("id = ?", s.ID).UpdateColumns(map[string]any{
					"title_folded":     domain.Fold(s.Title),
					"performer_folded": domain.Fold(s.Performer),
				}).Error
				if err != nil {
					return err
				}
			}
			return nil
		}).Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
