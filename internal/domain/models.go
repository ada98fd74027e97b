// Package domain defines the persistence models for albums and songs, plus
// the request payloads the validators check. These types are mapped with
// GORM and form the core data layer of the music API.
package domain

import "time"

// Album is a music album. Songs may reference it through Song.AlbumID.
//
// Fields:
//   - ID: "album-<uuid>" primary key.
//   - Name: album title.
//   - Year: release year.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM (not exposed).
type Album struct {
	ID        string    `json:"id"   gorm:"type:varchar(50);primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Year      int       `json:"year" gorm:"not null"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the database table name for Album.
func (Album) TableName() string { return "albums" }

// Song is a single track. It optionally belongs to an album; deleting the
// album detaches the song instead of removing it.
type Song struct {
	ID        string    `json:"id"        gorm:"type:varchar(50);primaryKey"`
	Title     string    `json:"title"     gorm:"type:varchar(255);not null;index:idx_song_title"`
	Year      int       `json:"year"      gorm:"not null"`
	Genre     string    `json:"genre"     gorm:"type:varchar(100);not null"`
	Performer string    `json:"performer" gorm:"type:varchar(255);not null;index:idx_song_performer"`
	Duration  *int      `json:"duration"`
	AlbumID   *string   `json:"albumId"   gorm:"type:varchar(50);index"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	// Case-folded copies of Title and Performer, matched by song search.
	TitleFolded     string `json:"-" gorm:"type:text;not null;default:''"`
	PerformerFolded string `json:"-" gorm:"type:text;not null;default:''"`

	Album *Album `json:"-" gorm:"foreignKey:AlbumID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

// TableName returns the database table name for Song.
func (Song) TableName() string { return "songs" }

// SongSummary is the compact song projection used in listings.
type SongSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Performer string `json:"performer"`
}

// AlbumDetail is an album together with the songs that reference it.
type AlbumDetail struct {
	Album
	Songs []SongSummary `json:"songs"`
}

// SongFilter narrows song listings. Empty fields match everything; non-empty
// fields are case-insensitive substring matches.
type SongFilter struct {
	Title     string
	Performer string
}

// AlbumPayload is the request body for creating or replacing an album.
type AlbumPayload struct {
	Name string `json:"name" validate:"required,notblank,max=255"`
	Year *int   `json:"year" validate:"required"`
}

// SongPayload is the request body for creating or replacing a song.
type SongPayload struct {
	Title     string  `json:"title"     validate:"required,notblank,max=255"`
	Year      *int    `json:"year"      validate:"required"`
	Genre     string  `json:"genre"     validate:"required,notblank,max=100"`
	Performer string  `json:"performer" validate:"required,notblank,max=255"`
	Duration  *int    `json:"duration"  validate:"omitempty,gte=0"`
	AlbumID   *string `json:"albumId"   validate:"omitempty,max=50"`
}
