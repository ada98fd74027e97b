// Package albums is the HTTP plugin for album resources:
//   - POST   /albums
//   - GET    /albums/{id}
//   - PUT    /albums/{id}
//   - DELETE /albums/{id}
//
// Handlers bind and validate the payload, call the service, and record an
// outcome. Writing the response is left to the outcome normalizer.
package albums

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-music-backend/internal/domain"
	"github.com/tbourn/go-music-backend/internal/http/outcome"
)

// Service defines the album operations consumed by the handlers.
//
// Implementations must be safe for concurrent use and honor ctx.
type Service interface {
	AddAlbum(ctx context.Context, p domain.AlbumPayload) (string, error)
	GetAlbumByID(ctx context.Context, id string) (*domain.AlbumDetail, error)
	EditAlbumByID(ctx context.Context, id string, p domain.AlbumPayload) error
	DeleteAlbumByID(ctx context.Context, id string) error
}

// Validator checks an album payload. A failure is a *domain.ClientError.
type Validator interface {
	ValidateAlbumPayload(p domain.AlbumPayload) error
}

// Plugin mounts the album routes.
type Plugin struct {
	svc       Service
	validator Validator
}

// New returns the album plugin bound to svc and v.
func New(svc Service, v Validator) *Plugin {
	return &Plugin{svc: svc, validator: v}
}

// Name implements plugin.Plugin.
func (p *Plugin) Name() string { return "albums" }

// Register implements plugin.Plugin.
func (p *Plugin) Register(r gin.IRouter) {
	r.POST("/albums", p.PostAlbum)
	r.GET("/albums/:id", p.GetAlbum)
	r.PUT("/albums/:id", p.PutAlbum)
	r.DELETE("/albums/:id", p.DeleteAlbum)
}

// CreatedData is the data member of a successful create.
type CreatedData struct {
	AlbumID string `json:"albumId" example:"album-3f1c2b7e-8d4a-4c55-9b0e-6a1f2d3c4b5a"`
}

// AlbumData is the data member of GET /albums/{id}.
type AlbumData struct {
	Album *domain.AlbumDetail `json:"album"`
}

// PostAlbum godoc
// @ID          postAlbum
// @Summary     Create an album
// @Tags        Albums
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header  string               false  "Replay-safe create key"
// @Param       body             body    domain.AlbumPayload  true   "Album payload"
// @Success     201  {object}  outcome.Envelope{data=albums.CreatedData}
// @Failure     400  {object}  outcome.Envelope
// @Failure     413  {object}  outcome.ProtocolPayload
// @Failure     415  {object}  outcome.ProtocolPayload
// @Failure     500  {object}  outcome.Envelope
// @Router      /albums [post]
func (p *Plugin) PostAlbum(c *gin.Context) {
	payload, ok := p.bind(c)
	if !ok {
		return
	}
	id, err := p.svc.AddAlbum(c.Request.Context(), payload)
	if err != nil {
		outcome.Fail(c, err)
		return
	}
	outcome.Respond(c, http.StatusCreated, outcome.Data(CreatedData{AlbumID: id}))
}

// GetAlbum godoc
// @ID          getAlbum
// @Summary     Get an album with its songs
// @Tags        Albums
// @Produce     json
// @Param       id   path  string  true  "Album ID"
// @Success     200  {object}  outcome.Envelope{data=albums.AlbumData}
// @Failure     404  {object}  outcome.Envelope
// @Failure     500  {object}  outcome.Envelope
// @Router      /albums/{id} [get]
func (p *Plugin) GetAlbum(c *gin.Context) {
	album, err := p.svc.GetAlbumByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		outcome.Fail(c, err)
		return
	}
	outcome.Respond(c, http.StatusOK, outcome.Data(AlbumData{Album: album}))
}

// PutAlbum godoc
// @ID          putAlbum
// @Summary     Replace an album
// @Tags        Albums
// @Accept      json
// @Produce     json
// @Param       id    path  string               true  "Album ID"
// @Param       body  body  domain.AlbumPayload  true  "Album payload"
// @Success     200  {object}  outcome.Envelope
// @Failure     400  {object}  outcome.Envelope
// @Failure     404  {object}  outcome.Envelope
// @Failure     500  {object}  outcome.Envelope
// @Router      /albums/{id} [put]
func (p *Plugin) PutAlbum(c *gin.Context) {
	payload, ok := p.bind(c)
	if !ok {
		return
	}
	if err := p.svc.EditAlbumByID(c.Request.Context(), c.Param("id"), payload); err != nil {
		outcome.Fail(c, err)
		return
	}
	outcome.Respond(c, http.StatusOK, outcome.Message("Album updated"))
}

// DeleteAlbum godoc
// @ID          deleteAlbum
// @Summary     Delete an album
// @Description Songs of the album are kept and detached.
// @Tags        Albums
// @Produce     json
// @Param       id   path  string  true  "Album ID"
// @Success     200  {object}  outcome.Envelope
// @Failure     404  {object}  outcome.Envelope
// @Failure     500  {object}  outcome.Envelope
// @Router      /albums/{id} [delete]
func (p *Plugin) DeleteAlbum(c *gin.Context) {
	if err := p.svc.DeleteAlbumByID(c.Request.Context(), c.Param("id")); err != nil {
		outcome.Fail(c, err)
		return
	}
	outcome.Respond(c, http.StatusOK, outcome.Message("Album deleted"))
}

func (p *Plugin) bind(c *gin.Context) (domain.AlbumPayload, bool) {
	var payload domain.AlbumPayload
	if err := outcome.BindJSON(c, &payload); err != nil {
		outcome.Fail(c, err)
		return payload, false
	}
	if err := p.validator.ValidateAlbumPayload(payload); err != nil {
		outcome.Fail(c, err)
		return payload, false
	}
	return payload, true
}
