package layout

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paneldeck/paneldeck/internal/auth"
	httperr "github.com/paneldeck/paneldeck/internal/core/errors"
	"github.com/paneldeck/paneldeck/internal/core/httpbody"
)

const (
	msgInvalidJSON   = "Invalid JSON"
	msgNotArray      = "Layout must be an array"
	msgUnauthorized  = "Unauthorized"
	msgLoadFailed    = "Failed to load layout"
	msgSaveFailed    = "Failed to save layout"
	msgBodyTooLarge  = "Request body exceeds maximum allowed size"
	msgReadBodyError = "Failed to read request body"
)

// Response is the body of both layout endpoints.
type Response struct {
	Layout json.RawMessage `json:"layout"`
}

// Handler exposes the layout Service over HTTP.
type Handler struct {
	svc          *Service
	maxBodyBytes int64
}

// NewHandler creates the layout handler.
func NewHandler(svc *Service, maxBodySizeMB int) *Handler {
	return &Handler{svc: svc, maxBodyBytes: httpbody.MaxBytesFromMB(maxBodySizeMB)}
}

// RegisterRoutes registers the layout routes.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/dashboard-layout", h.HandleGet)
	r.POST("/dashboard-layout", h.HandleSave)
}

// HandleGet handles GET /dashboard-layout.
func (h *Handler) HandleGet(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	user, ok := auth.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httperr.New(httperr.HttpUnauthorizedError, msgUnauthorized))
		return
	}

	layout, err := h.svc.Get(c.Request.Context(), user.ID())
	if err != nil {
		slog.Error("Failed to load dashboard layout", "user_id", user.ID(), "error", err)
		c.JSON(http.StatusInternalServerError, httperr.New(httperr.HttpInternalError, msgLoadFailed))
		return
	}

	c.JSON(http.StatusOK, Response{Layout: layout})
}

// HandleSave handles POST /dashboard-layout with a {"layout": [...]} body.
func (h *Handler) HandleSave(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	user, ok := auth.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httperr.New(httperr.HttpUnauthorizedError, msgUnauthorized))
		return
	}

	body, err := httpbody.Read(c, h.maxBodyBytes)
	if err != nil {
		if errors.Is(err, httpbody.ErrTooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, httperr.New(httperr.HttpInvalidJsonError, msgBodyTooLarge))
			return
		}
		c.JSON(http.StatusInternalServerError, httperr.New(httperr.HttpInternalError, msgReadBodyError))
		return
	}

	if !json.Valid(body) {
		slog.Warn("Invalid layout body", "user_id", user.ID(), "bytes", len(body))
		c.JSON(http.StatusBadRequest, httperr.New(httperr.HttpInvalidJsonError, msgInvalidJSON))
		return
	}

	// A body that is valid JSON but not an object has no layout key.
	var req map[string]json.RawMessage
	_ = json.Unmarshal(body, &req)

	stored, err := h.svc.Save(c.Request.Context(), user.ID(), req["layout"])
	if errors.Is(err, ErrInvalidLayout) {
		c.JSON(http.StatusBadRequest, httperr.New(httperr.HttpInvalidRequestError, msgNotArray))
		return
	}
	if err != nil {
		slog.Error("Failed to save dashboard layout", "user_id", user.ID(), "error", err)
		c.JSON(http.StatusInternalServerError, httperr.New(httperr.HttpInternalError, msgSaveFailed))
		return
	}

	c.JSON(http.StatusOK, Response{Layout: stored})
}
