package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paneldeck/paneldeck/internal/auth"
	httperr "github.com/paneldeck/paneldeck/internal/core/errors"
	"github.com/paneldeck/paneldeck/internal/core/httpbody"
	"github.com/paneldeck/paneldeck/internal/telemetry"
)

// Handler exposes the Service over HTTP.
type Handler struct {
	svc          *Service
	cache        *ResponseCache
	metrics      *telemetry.Metrics
	maxBodyBytes int64
}

// NewHandler creates the metrics-get handler. cache and metrics may be nil.
func NewHandler(svc *Service, cache *ResponseCache, metrics *telemetry.Metrics, maxBodySizeMB int) *Handler {
	if svc == nil {
		panic("metrics: service must not be nil")
	}
	return &Handler{
		svc:          svc,
		cache:        cache,
		metrics:      metrics,
		maxBodyBytes: httpbody.MaxBytesFromMB(maxBodySizeMB),
	}
}

// RegisterRoutes registers the metrics route.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/metrics-get", h.HandleGet)
}

// HandleGet handles POST /metrics-get.
func (h *Handler) HandleGet(c *gin.Context) {
	start := time.Now()
	op := "unknown"
	status := http.StatusOK
	defer func() {
		h.metrics.ObserveRequest(op, status, time.Since(start))
	}()

	c.Header("Cache-Control", "no-store")

	body, err := httpbody.Read(c, h.maxBodyBytes)
	if err != nil {
		status = writeError(c, bodyError(err))
		return
	}

	req, err := ParseRequest(body)
	if err != nil {
		slog.Warn("Invalid metrics request", "error", err, "payload_size", len(body))
		status = writeError(c, err)
		return
	}
	op = req.Op.String()

	user, _ := auth.GetClaims(c)
	if err := h.svc.Validate(req, user); err != nil {
		status = writeError(c, err)
		return
	}

	payload, hit, err := h.cache.Do(c.Request.Context(), req.CacheKey(), func(ctx context.Context) (Response, error) {
		return h.svc.Execute(ctx, req)
	})
	if err != nil {
		slog.Error("Failed to compute metric",
			"collection", req.Collection,
			"op", op,
			"error", err)
		status = writeError(c, err)
		return
	}

	if h.cache != nil {
		if hit {
			c.Header("X-Cache", "HIT")
		} else {
			c.Header("X-Cache", "MISS")
		}
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

func bodyError(err error) *requestError {
	if errors.Is(err, httpbody.ErrTooLarge) {
		return &requestError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgBodyTooLarge,
			err:        ErrInvalidRequest,
		}
	}
	return &requestError{
		statusCode: http.StatusInternalServerError,
		errorType:  httperr.HttpInternalError,
		message:    msgReadBodyFailed,
		err:        err,
	}
}

// writeError serializes err as the JSON error body and returns the status written.
func writeError(c *gin.Context, err error) int {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		c.JSON(reqErr.statusCode, httperr.New(reqErr.errorType, reqErr.message))
		return reqErr.statusCode
	}

	c.JSON(http.StatusInternalServerError, httperr.New(httperr.HttpInternalError, msgAggregationFailed))
	return http.StatusInternalServerError
}
