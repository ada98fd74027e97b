// Package services – AlbumService
//
// This file implements the AlbumService, which manages album resources and
// assembles the album detail view (album plus its songs). Missing albums are
// reported as ErrAlbumNotFound; every other repository failure propagates
// unchanged.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/go-music-backend/internal/domain"
)

// AlbumRepo defines the repository contract required by AlbumService.
type AlbumRepo interface {
	// CreateAlbum inserts a new album and returns it with its generated ID.
	CreateAlbum(ctx context.Context, db *gorm.DB, name string, year int) (*domain.Album, error)

	// GetAlbum fetches an album by ID.
	GetAlbum(ctx context.Context, db *gorm.DB, id string) (*domain.Album, error)

	// UpdateAlbum replaces name and year; gorm.ErrRecordNotFound when absent.
	UpdateAlbum(ctx context.Context, db *gorm.DB, id, name string, year int) error

	// DeleteAlbum removes an album; gorm.ErrRecordNotFound when absent.
	DeleteAlbum(ctx context.Context, db *gorm.DB, id string) error

	// ListSongsByAlbum returns the songs that reference the album.
	ListSongsByAlbum(ctx context.Context, db *gorm.DB, albumID string) ([]domain.SongSummary, error)
}

// AlbumService provides album CRUD on top of AlbumRepo.
type AlbumService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the album repository used by this service.
	Repo AlbumRepo
}

// NewAlbumService constructs an AlbumService.
func NewAlbumService(db *gorm.DB, r AlbumRepo) *AlbumService {
	return &AlbumService{DB: db, Repo: r}
}

// AddAlbum stores a new album and returns its ID.
func (s *AlbumService) AddAlbum(ctx context.Context, p domain.AlbumPayload) (string, error) {
	a, err := s.Repo.CreateAlbum(ctx, s.DB, p.Name, derefInt(p.Year))
	if err != nil {
		return "", err
	}
	return a.ID, nil
}

// GetAlbumByID returns the album together with its songs.
func (s *AlbumService) GetAlbumByID(ctx context.Context, id string) (*domain.AlbumDetail, error) {
	a, err := s.Repo.GetAlbum(ctx, s.DB, id)
	if err != nil {
		return nil, albumErr(err)
	}
	songs, err := s.Repo.ListSongsByAlbum(ctx, s.DB, id)
	if err != nil {
		return nil, err
	}
	if songs == nil {
		songs = []domain.SongSummary{}
	}
	return &domain.AlbumDetail{Album: *a, Songs: songs}, nil
}

// EditAlbumByID replaces the album's name and year.
func (s *AlbumService) EditAlbumByID(ctx context.Context, id string, p domain.AlbumPayload) error {
	return albumErr(s.Repo.UpdateAlbum(ctx, s.DB, id, p.Name, derefInt(p.Year)))
}

// DeleteAlbumByID removes the album. Its songs are kept and detached.
func (s *AlbumService) DeleteAlbumByID(ctx context.Context, id string) error {
	return albumErr(s.Repo.DeleteAlbum(ctx, s.DB, id))
}

// albumErr maps a missing row to ErrAlbumNotFound.
func albumErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrAlbumNotFound
	}
	return err
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
