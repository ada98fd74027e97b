package repo

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/tbourn/go-music-backend/internal/domain"
)

func intPtr(i int) *int { return &i }

func TestCreateAndGetSong(t *testing.T) {
	db := newTestDB(t, &domain.Album{}, &domain.Song{})
	ctx := context.Background()

	s, err := CreateSong(ctx, db, SongFields{Title: "Fix You", Year: 2005, Genre: "Rock", Performer: "Coldplay", Duration: intPtr(295)})
	if err != nil {
		t.Fatalf("CreateSong: %v", err)
	}
	if !strings.HasPrefix(s.ID, "song-") {
		t.Fatalf("unexpected song id %q", s.ID)
	}

	got, err := GetSong(ctx, db, s.ID)
	if err != nil {
		t.Fatalf("GetSong: %v", err)
	}
	if got.Title != "Fix You" || got.Duration == nil || *got.Duration != 295 || got.AlbumID != nil {
		t.Fatalf("unexpected song: %+v", got)
	}
	if _, err := GetSong(ctx, db, "song-missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateSong_UnknownAlbum_ForeignKeyError(t *testing.T) {
	db := newTestDB(t, &domain.Album{}, &domain.Song{})
	missing := "album-nope"
	_, err := CreateSong(context.Background(), db, SongFields{Title: "t", Year: 1, Genre: "g", Performer: "p", AlbumID: &missing})
	if err == nil {
		t.Fatalf("expected foreign key violation")
	}
}

func TestUpdateSong_ClearsOptionalFields(t *testing.T) {
	db := newTestDB(t, &domain.Album{}, &domain.Song{})
	ctx := context.Background()

	a, _ := CreateAlbum(ctx, db, "A", 2000)
	s, _ := CreateSong(ctx, db, SongFields{Title: "t", Year: 2000, Genre: "g", Performer: "p", Duration: intPtr(10), AlbumID: &a.ID})

	if err := UpdateSong(ctx, db, s.ID, SongFields{Title: "t2", Year: 2001, Genre: "g2", Performer: "p2"}); err != nil {
		t.Fatalf("UpdateSong: %v", err)
	}
	got, _ := GetSong(ctx, db, s.ID)
	if got.Title != "t2" || got.Year != 2001 || got.Genre != "g2" || got.Performer != "p2" {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.Duration != nil || got.AlbumID != nil {
		t.Fatalf("expected optional fields cleared, got duration=%v album=%v", got.Duration, got.AlbumID)
	}

	if err := UpdateSong(ctx, db, "song-missing", SongFields{Title: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteSong(t *testing.T) {
	db := newTestDB(t, &domain.Album{}, &domain.Song{})
	ctx := context.Background()

	s, _ := CreateSong(ctx, db, SongFields{Title: "t", Year: 1, Genre: "g", Performer: "p"})
	if err := DeleteSong(ctx, db, s.ID); err != nil {
		t.Fatalf("DeleteSong: %v", err)
	}
	if err := DeleteSong(ctx, db, s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListSongs_FilterCountAndPage(t *testing.T) {
	db := newTestDB(t, &domain.Album{}, &domain.Song{})
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []domain.Song{
		{ID: "song-1", Title: "Yellow", Year: 2000, Genre: "Rock", Performer: "Coldplay", CreatedAt: base},
		{ID: "song-2", Title: "Yellow Submarine", Year: 1966, Genre: "Pop", Performer: "The Beatles", CreatedAt: base.Add(time.Second)},
		{ID: "song-3", Title: "Clocks", Year: 2002, Genre: "Rock", Performer: "Coldplay", CreatedAt: base.Add(2 * time.Second)},
		{ID: "song-4", Title: "100%_Pure", Year: 2010, Genre: "Pop", Performer: "Someone", CreatedAt: base.Add(3 * time.Second)},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	cases := []struct {
		name   string
		filter domain.SongFilter
		want   []string
	}{
		{"all", domain.SongFilter{}, []string{"song-1", "song-2", "song-3", "song-4"}},
		{"title substring", domain.SongFilter{Title: "yellow"}, []string{"song-1", "song-2"}},
		{"performer substring", domain.SongFilter{Performer: "cold"}, []string{"song-1", "song-3"}},
		{"both", domain.SongFilter{Title: "yel", Performer: "coldplay"}, []string{"song-1"}},
		{"like wildcards are literal", domain.SongFilter{Title: "%_"}, []string{"song-4"}},
		{"no match", domain.SongFilter{Title: "zzz"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			total, err := CountSongs(ctx, db, tc.filter)
			if err != nil {
				t.Fatalf("CountSongs: %v", err)
			}
			if int(total) != len(tc.want) {
				t.Fatalf("count = %d, want %d", total, len(tc.want))
			}
			page, err := ListSongsPage(ctx, db, tc.filter, 0, 10)
			if err != nil {
				t.Fatalf("ListSongsPage: %v", err)
			}
			got := make([]string, 0, len(page))
			for _, s := range page {
				got = append(got, s.ID)
			}
			if strings.Join(got, ",") != strings.Join(tc.want, ",") {
				t.Fatalf("ids = %v, want %v", got, tc.want)
			}
		})
	}

	page, err := ListSongsPage(ctx, db, domain.SongFilter{}, 1, 2)
	if err != nil {
		t.Fatalf("ListSongsPage: %v", err)
	}
	if len(page) != 2 || page[0].ID != "song-2" || page[1].ID != "song-3" {
		t.Fatalf("unexpected page: %+v", page)
	}
	if page[0].Title != "Yellow Submarine" || page[0].Performer != "The Beatles" {
		t.Fatalf("summary projection incomplete: %+v", page[0])
	}
}

func TestListSongsByAlbum(t *testing.T) {
	db := newTestDB(t, &domain.Album{}, &domain.Song{})
	ctx := context.Background()

	a, _ := CreateAlbum(ctx, db, "A", 2000)
	b, _ := CreateAlbum(ctx, db, "B", 2001)
	for _, title := range []string{"one", "two"} {
		if _, err := CreateSong(ctx, db, SongFields{Title: title, Year: 2000, Genre: "g", Performer: "p", AlbumID: &a.ID}); err != nil {
			t.Fatalf("CreateSong: %v", err)
		}
	}
	if _, err := CreateSong(ctx, db, SongFields{Title: "other", Year: 2000, Genre: "g", Performer: "p", AlbumID: &b.ID}); err != nil {
		t.Fatalf("CreateSong: %v", err)
	}

	got, err := ListSongsByAlbum(ctx, db, a.ID)
	if err != nil {
		t.Fatalf("ListSongsByAlbum: %v", err)
	}
	titles := []string{}
	for _, s := range got {
		titles = append(titles, s.Title)
	}
	sort.Strings(titles)
	if strings.Join(titles, ",") != "one,two" {
		t.Fatalf("unexpected titles: %v", titles)
	}

	empty, err := ListSongsByAlbum(ctx, db, "album-none")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v err=%v", empty, err)
	}
}

func TestEscapeLike(t *testing.T) {
	if got := escapeLike(`a%b_c\d`); got != `a\%b\_c\\d` {
		t.Fatalf("escapeLike = %q", got)
	}
}

func TestListSongs_NonASCIICaseInsensitive(t *testing.T) {
	db := newTestDB(t, &domain.Album{}, &domain.Song{})
	ctx := context.Background()

	s, err := CreateSong(ctx, db, SongFields{Title: "Élan Vital", Year: 2020, Genre: "Pop", Performer: "Ünal"})
	if err != nil {
		t.Fatalf("CreateSong: %v", err)
	}

	for _, f := range []domain.SongFilter{
		{Title: "élan"},
		{Title: "ÉLAN"},
		{Title: "Élan"},
		{Title: "vital"},
		{Performer: "ünal"},
		{Performer: "ÜNAL"},
	} {
		total, err := CountSongs(ctx, db, f)
		if err != nil || total != 1 {
			t.Fatalf("CountSongs(%+v) = %d, %v; want 1", f, total, err)
		}
		page, err := ListSongsPage(ctx, db, f, 0, 10)
		if err != nil || len(page) != 1 || page[0].ID != s.ID {
			t.Fatalf("ListSongsPage(%+v) = %+v, %v", f, page, err)
		}
	}

	// Renames keep the folded columns current.
	if err := UpdateSong(ctx, db, s.ID, SongFields{Title: "Ölüdeniz", Year: 2020, Genre: "Pop", Performer: "Ünal"}); err != nil {
		t.Fatalf("UpdateSong: %v", err)
	}
	if n, _ := CountSongs(ctx, db, domain.SongFilter{Title: "élan"}); n != 0 {
		t.Fatalf("old title still matches: %d", n)
	}
	if n, _ := CountSongs(ctx, db, domain.SongFilter{Title: "ÖLÜ"}); n != 1 {
		t.Fatalf("new title not found: %d", n)
	}
}

func TestAutoMigrate_BackfillsFoldedColumns(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	// A row from before the folded columns existed.
	if err := db.Exec(`INSERT INTO songs (id, title, year, genre, performer, created_at, updated_at)
		VALUES ('song-legacy', 'Été', 1999, 'g', 'Zoë', ?, ?)`, time.Now(), time.Now()).Error; err != nil {
		t.Fatalf("insert legacy row: %v", err)
	}
	if n, _ := CountSongs(ctx, db, domain.SongFilter{Title: "été"}); n != 0 {
		t.Fatalf("legacy row matched before backfill: %d", n)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate (backfill): %v", err)
	}
	if n, _ := CountSongs(ctx, db, domain.SongFilter{Title: "ÉTÉ", Performer: "zoë"}); n != 1 {
		t.Fatalf("legacy row not backfilled: %d", n)
	}
}
