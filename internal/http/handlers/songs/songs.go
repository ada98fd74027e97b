// Package songs is the HTTP plugin for song resources.
package songs

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-music-backend/internal/domain"
	"github.com/tbourn/go-music-backend/internal/http/outcome"
	"github.com/tbourn/go-music-backend/internal/utils"
)

// Service defines the song operations consumed by the handlers.
type Service interface {
	AddSong(ctx context.Context, p domain.SongPayload) (string, error)
	GetSongs(ctx context.Context, filter domain.SongFilter, page, pageSize int) ([]domain.SongSummary, int64, error)
	GetSongByID(ctx context.Context, id string) (*domain.Song, error)
	EditSongByID(ctx context.Context, id string, p domain.SongPayload) error
	DeleteSongByID(ctx context.Context, id string) error
}

// Validator checks a song payload.
type Validator interface {
	ValidateSongPayload(p domain.SongPayload) error
}

// Plugin mounts the song routes.
type Plugin struct {
	svc       Service
	validator Validator
}

// New returns the song plugin bound to svc and v.
func New(svc Service, v Validator) *Plugin {
	return &Plugin{svc: svc, validator: v}
}

func (p *Plugin) Name() string { return "songs" }

func (p *Plugin) Register(r gin.IRouter) {
	r.POST("/songs", p.PostSong)
	r.GET("/songs", p.ListSongs)
	r.GET("/songs/:id", p.GetSong)
	r.PUT("/songs/:id", p.PutSong)
	r.DELETE("/songs/:id", p.DeleteSong)
}

// CreatedData is the data member of a successful create.
type CreatedData struct {
	SongID string `json:"songId" example:"song-0b6f8e2a-1c3d-4e5f-8a9b-7c6d5e4f3a2b"`
}

// SongData is the data member of GET /songs/{id}.
type SongData struct {
	Song *domain.Song `json:"song"`
}

// ListData is the data member of GET /songs.
type ListData struct {
	Songs      []domain.SongSummary `json:"songs"`
	Pagination utils.Pagination     `json:"pagination"`
}

// PostSong godoc
// @ID          postSong
// @Summary     Create a song
// @Description albumId is optional; an unknown album yields 404.
// @Tags        Songs
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header  string              false  "Replay-safe create key"
// @Param       body             body    domain.SongPayload  true   "Song payload"
// @Success     201  {object}  outcome.Envelope{data=songs.CreatedData}
// @Failure     400  {object}  outcome.Envelope
// @Failure     404  {object}  outcome.Envelope
// @Failure     413  {object}  outcome.ProtocolPayload
// @Failure     415  {object}  outcome.ProtocolPayload
// @Failure     500  {object}  outcome.Envelope
// @Router      /songs [post]
func (p *Plugin) PostSong(c *gin.Context) {
	payload, ok := p.bind(c)
	if !ok {
		return
	}
	id, err := p.svc.AddSong(c.Request.Context(), payload)
	if err != nil {
		outcome.Fail(c, err)
		return
	}
	outcome.Respond(c, http.StatusCreated, outcome.Data(CreatedData{SongID: id}))
}

// ListSongs godoc
// @ID          listSongs
// @Summary     List songs (paginated)
// @Description title and performer are case-insensitive substring filters.
// @Tags        Songs
// @Produce     json
// @Param       title      query  string  false  "Title contains"
// @Param       performer  query  string  false  "Performer contains"
// @Param       page       query  int     false  "Page number"     minimum(1) default(1)
// @Param       page_size  query  int     false  "Items per page"  minimum(1) maximum(100) default(20)
// @Success     200  {object}  outcome.Envelope{data=songs.ListData}
// @Failure     500  {object}  outcome.Envelope
// @Router      /songs [get]
func (p *Plugin) ListSongs(c *gin.Context) {
	page, pageSize := utils.ClampPage(c.Query("page"), c.Query("page_size"))
	filter := domain.SongFilter{Title: c.Query("title"), Performer: c.Query("performer")}

	items, total, err := p.svc.GetSongs(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		outcome.Fail(c, err)
		return
	}
	if items == nil {
		items = []domain.SongSummary{}
	}
	outcome.Respond(c, http.StatusOK, outcome.Data(ListData{
		Songs:      items,
		Pagination: utils.NewPagination(page, pageSize, total),
	}))
}

// GetSong godoc
// @ID          getSong
// @Summary     Get a song
// @Tags        Songs
// @Produce     json
// @Param       id   path  string  true  "Song ID"
// @Success     200  {object}  outcome.Envelope{data=songs.SongData}
// @Failure     404  {object}  outcome.Envelope
// @Failure     500  {object}  outcome.Envelope
// @Router      /songs/{id} [get]
func (p *Plugin) GetSong(c *gin.Context) {
	song, err := p.svc.GetSongByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		outcome.Fail(c, err)
		return
	}
	outcome.Respond(c, http.StatusOK, outcome.Data(SongData{Song: song}))
}

// PutSong godoc
// @ID          putSong
// @Summary     Replace a song
// @Tags        Songs
// @Accept      json
// @Produce     json
// @Param       id    path  string              true  "Song ID"
// @Param       body  body  domain.SongPayload  true  "Song payload"
// @Success     200  {object}  outcome.Envelope
// @Failure     400  {object}  outcome.Envelope
// @Failure     404  {object}  outcome.Envelope
// @Failure     500  {object}  outcome.Envelope
// @Router      /songs/{id} [put]
func (p *Plugin) PutSong(c *gin.Context) {
	payload, ok := p.bind(c)
	if !ok {
		return
	}
	if err := p.svc.EditSongByID(c.Request.Context(), c.Param("id"), payload); err != nil {
		outcome.Fail(c, err)
		return
	}
	outcome.Respond(c, http.StatusOK, outcome.Message("Song updated"))
}

// DeleteSong godoc
// @ID          deleteSong
// @Summary     Delete a song
// @Tags        Songs
// @Produce     json
// @Param       id   path  string  true  "Song ID"
// @Success     200  {object}  outcome.Envelope
// @Failure     404  {object}  outcome.Envelope
// @Failure     500  {object}  outcome.Envelope
// @Router      /songs/{id} [delete]
func (p *Plugin) DeleteSong(c *gin.Context) {
	if err := p.svc.DeleteSongByID(c.Request.Context(), c.Param("id")); err != nil {
		outcome.Fail(c, err)
		return
	}
	outcome.Respond(c, http.StatusOK, outcome.Message("Song deleted"))
}

func (p *Plugin) bind(c *gin.Context) (domain.SongPayload, bool) {
	var payload domain.SongPayload
	if err := outcome.BindJSON(c, &payload); err != nil {
		outcome.Fail(c, err)
		return payload, false
	}
	if err := p.validator.ValidateSongPayload(payload); err != nil {
		outcome.Fail(c, err)
		return payload, false
	}
	return payload, true
}
