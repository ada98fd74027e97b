// Package services – SongService
//
// This file implements the SongService: song CRUD plus a paginated search by
// title and performer. Search terms are trimmed here; the repository folds
// them and matches them against case-folded copies of the columns.
package services

import (
	"context"
	"errors"
	"math"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-music-backend/internal/domain"
	"github.com/tbourn/go-music-backend/internal/repo"
)

// SongRepo defines the repository contract required by SongService.
type SongRepo interface {
	// CreateSong inserts a new song and returns it with its generated ID.
	CreateSong(ctx context.Context, db *gorm.DB, f repo.SongFields) (*domain.Song, error)

	// GetSong fetches a song by ID.
	GetSong(ctx context.Context, db *gorm.DB, id string) (*domain.Song, error)

	// UpdateSong replaces all mutable song columns.
	UpdateSong(ctx context.Context, db *gorm.DB, id string, f repo.SongFields) error

	// DeleteSong removes a song.
	DeleteSong(ctx context.Context, db *gorm.DB, id string) error

	// CountSongs returns the number of songs matching the filter.
	CountSongs(ctx context.Context, db *gorm.DB, f domain.SongFilter) (int64, error)

	// ListSongsPage returns a page of songs matching the filter.
	ListSongsPage(ctx context.Context, db *gorm.DB, f domain.SongFilter, offset, limit int) ([]domain.SongSummary, error)

	// GetAlbum resolves a song's albumId.
	GetAlbum(ctx context.Context, db *gorm.DB, id string) (*domain.Album, error)
}

// SongService provides song CRUD and search on top of SongRepo.
type SongService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the song repository used by this service.
	Repo SongRepo
}

// NewSongService constructs a SongService.
func NewSongService(db *gorm.DB, r SongRepo) *SongService {
	return &SongService{DB: db, Repo: r}
}

// AddSong stores a new song and returns its ID. A non-empty albumId must
// reference an existing album.
func (s *SongService) AddSong(ctx context.Context, p domain.SongPayload) (string, error) {
	f, err := s.fields(ctx, p)
	if err != nil {
		return "", err
	}
	song, err := s.Repo.CreateSong(ctx, s.DB, f)
	if err != nil {
		return "", err
	}
	return song.ID, nil
}

// GetSongs returns a page of song summaries matching filter and the total
// number of matches. Out-of-range paging values fall back to defaults; a page
// too far out for its offset to fit in an int is empty.
func (s *SongService) GetSongs(ctx context.Context, filter domain.SongFilter, page, pageSize int) ([]domain.SongSummary, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	filter = trimFilter(filter)
	total, err := s.Repo.CountSongs(ctx, s.DB, filter)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 || page-1 > math.MaxInt/pageSize {
		return []domain.SongSummary{}, total, nil
	}
	offset := (page - 1) * pageSize

	items, err := s.Repo.ListSongsPage(ctx, s.DB, filter, offset, pageSize)
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []domain.SongSummary{}
	}
	return items, total, nil
}

// GetSongByID returns a single song.
func (s *SongService) GetSongByID(ctx context.Context, id string) (*domain.Song, error) {
	song, err := s.Repo.GetSong(ctx, s.DB, id)
	if err != nil {
		return nil, songErr(err)
	}
	return song, nil
}

// EditSongByID replaces every field of the song. Omitted optional fields are
// cleared.
func (s *SongService) EditSongByID(ctx context.Context, id string, p domain.SongPayload) error {
	f, err := s.fields(ctx, p)
	if err != nil {
		return err
	}
	return songErr(s.Repo.UpdateSong(ctx, s.DB, id, f))
}

// DeleteSongByID removes the song.
func (s *SongService) DeleteSongByID(ctx context.Context, id string) error {
	return songErr(s.Repo.DeleteSong(ctx, s.DB, id))
}

// fields converts a payload into repository columns, resolving albumId.
// An empty albumId is stored as NULL.
func (s *SongService) fields(ctx context.Context, p domain.SongPayload) (repo.SongFields, error) {
	f := repo.SongFields{
		Title:     p.Title,
		Year:      derefInt(p.Year),
		Genre:     p.Genre,
		Performer: p.Performer,
		Duration:  p.Duration,
	}
	if p.AlbumID != nil && strings.TrimSpace(*p.AlbumID) != "" {
		if _, err := s.Repo.GetAlbum(ctx, s.DB, *p.AlbumID); err != nil {
			return f, albumErr(err)
		}
		f.AlbumID = p.AlbumID
	}
	return f, nil
}

func trimFilter(f domain.SongFilter) domain.SongFilter {
	return domain.SongFilter{
		Title:     strings.TrimSpace(f.Title),
		Performer: strings.TrimSpace(f.Performer),
	}
}

// songErr maps a missing row to ErrSongNotFound.
func songErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrSongNotFound
	}
	return err
}
