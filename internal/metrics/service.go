// Package metrics computes dashboard metrics over paged document collections.
package metrics

import (
	"context"
	"log/slog"

	"github.com/paneldeck/paneldeck/internal/auth"
	"github.com/paneldeck/paneldeck/internal/collection"
	"github.com/paneldeck/paneldeck/internal/core/storage"
	"github.com/paneldeck/paneldeck/internal/telemetry"
)

// CollectionLookup resolves collection slugs.
type CollectionLookup interface {
	Lookup(slug string) (*collection.Collection, bool)
}

// Service is the aggregation engine. It holds no per-request state.
type Service struct {
	finder   storage.DocumentFinder
	registry CollectionLookup
	metrics  *telemetry.Metrics
}

// NewService creates a metrics service. metrics may be nil.
func NewService(finder storage.DocumentFinder, registry CollectionLookup, metrics *telemetry.Metrics) *Service {
	if finder == nil {
		panic("metrics: document finder must not be nil")
	}
	if registry == nil {
		panic("metrics: collection registry must not be nil")
	}
	return &Service{
		finder:   finder,
		registry: registry,
		metrics:  metrics,
	}
}

// Validate runs the request-level checks in the order the dashboard expects:
// collection present, known, visible to user, operator supported, then field
// present for operators that read one. No page is fetched.
func (s *Service) Validate(req *Request, user *auth.Claims) error {
	if req.Collection == "" {
		return invalidRequest(msgCollectionRequired)
	}

	c, ok := s.registry.Lookup(req.Collection)
	if !ok {
		return collectionNotFound()
	}
	if c.HiddenFor(user) {
		slog.Warn("Metrics requested for hidden collection",
			"collection", req.Collection,
			"user_id", userID(user))
		return collectionHidden()
	}

	if req.opErr != nil {
		return req.opErr
	}

	if req.Op.RequiresField() && req.Field == "" {
		return invalidRequest(msgFieldRequired)
	}
	return nil
}

// Get validates req for user and computes its response.
func (s *Service) Get(ctx context.Context, req *Request, user *auth.Claims) (Response, error) {
	if err := s.Validate(req, user); err != nil {
		return nil, err
	}
	return s.Execute(ctx, req)
}

func userID(user *auth.Claims) string {
	if user == nil {
		return ""
	}
	return user.ID()
}
