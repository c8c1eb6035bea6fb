package metrics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/paneldeck/paneldeck/internal/core/aggregation"
	"github.com/paneldeck/paneldeck/internal/core/document"
	"github.com/paneldeck/paneldeck/internal/core/storage"
)

// Execute computes the response for an already validated request.
func (s *Service) Execute(ctx context.Context, req *Request) (Response, error) {
	switch req.Op.Kind() {
	case aggregation.KindCount:
		return s.count(ctx, req)
	case aggregation.KindTemporal:
		return s.temporal(ctx, req)
	case aggregation.KindNumeric:
		return s.numeric(ctx, req)
	}
	if req.All {
		return s.dump(ctx, req)
	}
	return s.page(ctx, req)
}

// count needs only the source's total, so it asks for the smallest possible page.
func (s *Service) count(ctx context.Context, req *Request) (Response, error) {
	result, err := s.fetch(ctx, req, 1, 1, req.Sort)
	if err != nil {
		return nil, err
	}
	return &ScalarResponse{
		Op:         string(req.Op),
		Collection: req.Collection,
		Value:      result.TotalDocs,
		TotalDocs:  result.TotalDocs,
	}, nil
}

// temporal reads the top document under an ascending (earliest) or descending
// (latest) sort on the field.
func (s *Service) temporal(ctx context.Context, req *Request) (Response, error) {
	result, err := s.fetch(ctx, req, 1, 1, req.Op.SortKey(req.Field))
	if err != nil {
		return nil, err
	}

	var top document.Document
	var raw interface{}
	if len(result.Docs) > 0 {
		top = result.Docs[0]
		raw, _ = document.Lookup(top, req.Field)
	}

	resp := &ScalarResponse{
		Op:         string(req.Op),
		Collection: req.Collection,
		Field:      req.Field,
		Value:      document.NormalizeTime(raw),
		TotalDocs:  result.TotalDocs,
	}
	if req.IncludeDocs {
		resp.Doc = top
	}
	return resp, nil
}

// numeric folds every value that coerces to a finite number. Only those values
// count toward MaxDocs.
func (s *Service) numeric(ctx context.Context, req *Request) (Response, error) {
	acc := aggregation.NewAccumulator()

	res, err := s.scan(ctx, req, func(doc document.Document) bool {
		raw, ok := document.Lookup(doc, req.Field)
		if !ok {
			return false
		}
		n, ok := document.ToNumber(raw)
		if !ok {
			return false
		}
		acc.Add(n)
		return true
	})
	if err != nil {
		return nil, err
	}

	processed := res.processed
	validCount := acc.ValidCount()
	truncated := res.truncated

	return &ScalarResponse{
		Op:         string(req.Op),
		Collection: req.Collection,
		Field:      req.Field,
		Value:      acc.Result(req.Op),
		TotalDocs:  res.totalDocs,
		Processed:  &processed,
		ValidCount: &validCount,
		Truncated:  &truncated,
	}, nil
}

// dump returns every scanned document, up to MaxDocs.
func (s *Service) dump(ctx context.Context, req *Request) (Response, error) {
	docs := []document.Document{}

	res, err := s.scan(ctx, req, func(doc document.Document) bool {
		docs = append(docs, doc)
		return true
	})
	if err != nil {
		return nil, err
	}

	return &DumpResponse{
		Collection: req.Collection,
		Docs:       docs,
		TotalDocs:  res.totalDocs,
		Processed:  res.processed,
		Truncated:  res.truncated,
	}, nil
}

// page passes one source page through untouched.
func (s *Service) page(ctx context.Context, req *Request) (Response, error) {
	result, err := s.fetch(ctx, req, req.Page, req.Limit, req.Sort)
	if err != nil {
		return nil, err
	}
	docs := result.Docs
	if docs == nil {
		docs = []document.Document{}
	}
	return &PageResponse{
		Collection:  req.Collection,
		Docs:        docs,
		TotalDocs:   result.TotalDocs,
		Limit:       result.Limit,
		Page:        result.Page,
		TotalPages:  result.TotalPages,
		HasNextPage: result.HasNextPage,
		HasPrevPage: result.HasPrevPage,
	}, nil
}

type scanResult struct {
	totalDocs int
	processed int
	pages     int
	truncated bool
}

// scan is the pagination driver shared by the numeric operators and the dump.
//
// Without All it fetches the requested page once. With All it starts at page 1 and
// advances while the source reports a next page, stopping early once visit has
// accepted MaxDocs documents. visit reports whether a document counts toward that cap.
// totalDocs is taken from the first page only.
func (s *Service) scan(ctx context.Context, req *Request, visit func(document.Document) bool) (scanResult, error) {
	var res scanResult

	pageNumber := req.Page
	if req.All {
		pageNumber = 1
	}

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		result, err := s.fetch(ctx, req, pageNumber, req.Limit, req.Sort)
		if err != nil {
			return res, err
		}
		if res.pages == 0 {
			res.totalDocs = result.TotalDocs
		}
		res.pages++

		for _, doc := range result.Docs {
			if !visit(doc) {
				continue
			}
			res.processed++
			if req.All && res.processed >= req.MaxDocs {
				res.truncated = true
				s.metrics.ObserveTruncated(req.Op.String())
				s.logScan(req, res)
				return res, nil
			}
		}

		// An empty page ends the scan even if the source claims more.
		if !req.All || !result.HasNextPage || len(result.Docs) == 0 {
			s.logScan(req, res)
			return res, nil
		}
		pageNumber++
	}
}

func (s *Service) fetch(ctx context.Context, req *Request, page, limit int, sort string) (*storage.Page, error) {
	result, err := s.finder.Find(ctx, storage.FindParams{
		Collection: req.Collection,
		Where:      req.Where,
		Page:       page,
		Limit:      limit,
		Depth:      req.Depth,
		Sort:       sort,
	})
	if err != nil {
		return nil, fmt.Errorf("find %s page %d: %w", req.Collection, page, err)
	}
	s.metrics.ObservePage(req.Collection, len(result.Docs))
	return result, nil
}

func (s *Service) logScan(req *Request, res scanResult) {
	slog.Debug("Metric scan finished",
		"collection", req.Collection,
		"op", req.Op.String(),
		"all", req.All,
		"pages", res.pages,
		"processed", res.processed,
		"truncated", res.truncated)
}
