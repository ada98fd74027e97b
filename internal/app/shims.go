package app

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-music-backend/internal/domain"
	"github.com/tbourn/go-music-backend/internal/http/middleware"
	"github.com/tbourn/go-music-backend/internal/repo"
)

// albumRepo adapts the repository free functions to services.AlbumRepo.
type albumRepo struct{}

func (albumRepo) CreateAlbum(ctx context.Context, db *gorm.DB, name string, year int) (*domain.Album, error) {
	return repo.CreateAlbum(ctx, db, name, year)
}

func (albumRepo) GetAlbum(ctx context.Context, db *gorm.DB, id string) (*domain.Album, error) {
	return repo.GetAlbum(ctx, db, id)
}

func (albumRepo) UpdateAlbum(ctx context.Context, db *gorm.DB, id, name string, year int) error {
	return repo.UpdateAlbum(ctx, db, id, name, year)
}

func (albumRepo) DeleteAlbum(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteAlbum(ctx, db, id)
}

func (albumRepo) ListSongsByAlbum(ctx context.Context, db *gorm.DB, albumID string) ([]domain.SongSummary, error) {
	return repo.ListSongsByAlbum(ctx, db, albumID)
}

// songRepo adapts the repository free functions to services.SongRepo.
type songRepo struct{}

func (songRepo) CreateSong(ctx context.Context, db *gorm.DB, f repo.SongFields) (*domain.Song, error) {
	return repo.CreateSong(ctx, db, f)
}

func (songRepo) GetSong(ctx context.Context, db *gorm.DB, id string) (*domain.Song, error) {
	return repo.GetSong(ctx, db, id)
}

func (songRepo) UpdateSong(ctx context.Context, db *gorm.DB, id string, f repo.SongFields) error {
	return repo.UpdateSong(ctx, db, id, f)
}

func (songRepo) DeleteSong(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteSong(ctx, db, id)
}

func (songRepo) CountSongs(ctx context.Context, db *gorm.DB, f domain.SongFilter) (int64, error) {
	return repo.CountSongs(ctx, db, f)
}

func (songRepo) ListSongsPage(ctx context.Context, db *gorm.DB, f domain.SongFilter, offset, limit int) ([]domain.SongSummary, error) {
	return repo.ListSongsPage(ctx, db, f, offset, limit)
}

func (songRepo) GetAlbum(ctx context.Context, db *gorm.DB, id string) (*domain.Album, error) {
	return repo.GetAlbum(ctx, db, id)
}

// idempotencyStore persists replayable create responses in the database.
type idempotencyStore struct {
	db  *gorm.DB
	ttl time.Duration
}

func (s idempotencyStore) Lookup(ctx context.Context, scope, key string, now time.Time) (*middleware.StoredResponse, error) {
	rec, err := repo.GetIdempotency(ctx, s.db, scope, key, now)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &middleware.StoredResponse{Status: rec.Status, Body: rec.Body, RequestHash: rec.RequestHash}, nil
}

// Save stores res. A clash with an expired record is resolved by purging
// expired records and retrying once.
func (s idempotencyStore) Save(ctx context.Context, scope, key string, res middleware.StoredResponse) error {
	_, err := repo.CreateIdempotency(ctx, s.db, scope, key, res.RequestHash, res.Status, res.Body, s.ttl)
	if !errors.Is(err, repo.ErrDuplicate) {
		return err
	}
	if n, perr := repo.PurgeExpiredIdempotency(ctx, s.db, time.Now().UTC()); perr != nil || n == 0 {
		return middleware.ErrIdempotencyConflict
	}
	_, err = repo.CreateIdempotency(ctx, s.db, scope, key, res.RequestHash, res.Status, res.Body, s.ttl)
	if errors.Is(err, repo.ErrDuplicate) {
		return middleware.ErrIdempotencyConflict
	}
	return err
}
