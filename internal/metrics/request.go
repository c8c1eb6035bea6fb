package metrics

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/paneldeck/paneldeck/internal/core/aggregation"
	"github.com/paneldeck/paneldeck/internal/core/document"
	"github.com/paneldeck/paneldeck/internal/core/where"
)

// Request bounds. Out-of-range inputs are clamped, never rejected.
const (
	DefaultLimit   = 25
	MaxLimit       = 1000
	DefaultPage    = 1
	MaxPage        = 100000
	DefaultDepth   = 0
	MaxDepth       = 10
	DefaultMaxDocs = 2000
	MaxMaxDocs     = 100000
)

// Request is a validated, normalized metrics-get request.
type Request struct {
	Collection  string
	Field       string
	Op          aggregation.Operator
	Where       where.Expr
	Limit       int
	Page        int
	Depth       int
	Sort        string
	All         bool
	MaxDocs     int
	IncludeDocs bool

	rawWhere map[string]interface{}
	// opErr is reported by Service.Validate once the collection is known to be visible.
	opErr *requestError
}

// ParseRequest decodes a metrics-get body. Numeric options follow the dashboard
// client's loose typing: numeric strings, booleans and null are accepted and
// coerced, anything non-finite falls back to the default.
func ParseRequest(body []byte) (*Request, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, invalidJSON()
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, invalidJSON()
	}

	fields, _ := raw.(map[string]interface{})
	return newRequest(fields)
}

func newRequest(fields map[string]interface{}) (*Request, error) {
	req := &Request{}
	req.Collection, _ = fields["collection"].(string)
	req.Field, _ = fields["field"].(string)
	req.Sort, _ = fields["sort"].(string)

	switch op := fields["op"].(type) {
	case nil:
	case string:
		parsed, err := aggregation.ParseOperator(op)
		if err != nil {
			req.opErr = invalidRequest(fmt.Sprintf("%s %q", msgUnsupportedOperator, op))
		}
		req.Op = parsed
	default:
		req.opErr = invalidRequest(msgUnsupportedOperator)
	}

	if w, ok := fields["where"].(map[string]interface{}); ok {
		expr, err := where.Parse(w)
		if err != nil {
			return nil, invalidRequest(fmt.Sprintf("%s: %s", msgInvalidWhere, strings.TrimPrefix(err.Error(), where.ErrInvalidFilter.Error()+": ")))
		}
		req.Where = expr
		req.rawWhere = w
	}

	req.Depth = clampInt(fields, "depth", DefaultDepth, 0, MaxDepth)
	req.Limit = clampInt(fields, "limit", DefaultLimit, 1, MaxLimit)
	req.Page = clampInt(fields, "page", DefaultPage, 1, MaxPage)
	req.MaxDocs = clampInt(fields, "maxDocs", DefaultMaxDocs, 1, MaxMaxDocs)
	req.All = truthy(fields["all"])
	req.IncludeDocs = truthy(fields["includeDocs"])

	return req, nil
}

// clampInt floors the numeric value of fields[key] into [min, max].
// Missing and non-finite values yield fallback.
func clampInt(fields map[string]interface{}, key string, fallback, min, max int) int {
	v, present := fields[key]
	if !present {
		return fallback
	}
	num := looseNumber(v)
	if math.IsNaN(num) || math.IsInf(num, 0) {
		return fallback
	}
	num = math.Floor(num)
	if num < float64(min) {
		return min
	}
	if num > float64(max) {
		return max
	}
	return int(num)
}

// looseNumber converts a decoded JSON value the way a dashboard form field is read:
// null and empty strings are zero, booleans are 0 or 1, objects are not numbers.
func looseNumber(v interface{}) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case bool:
		if t {
			return 1
		}
		return 0
	case json.Number:
		f, _ := strconv.ParseFloat(string(t), 64)
		return f
	case float64:
		return t
	case string:
		if strings.TrimSpace(t) == "" {
			return 0
		}
		if f, ok := document.ToNumber(t); ok {
			return f
		}
	}
	return math.NaN()
}

// truthy reports whether a decoded JSON value counts as "on".
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case json.Number:
		f, err := strconv.ParseFloat(string(t), 64)
		return err != nil || f != 0
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		return t != ""
	}
	return true
}

// CacheKey identifies the normalized request; identical keys produce identical
// responses for the same underlying data.
func (r *Request) CacheKey() string {
	normalized := struct {
		Collection  string                 `json:"collection"`
		Field       string                 `json:"field"`
		Op          string                 `json:"op"`
		Where       map[string]interface{} `json:"where"`
		Limit       int                    `json:"limit"`
		Page        int                    `json:"page"`
		Depth       int                    `json:"depth"`
		Sort        string                 `json:"sort"`
		All         bool                   `json:"all"`
		MaxDocs     int                    `json:"maxDocs"`
		IncludeDocs bool                   `json:"includeDocs"`
	}{
		Collection:  r.Collection,
		Field:       r.Field,
		Op:          string(r.Op),
		Where:       r.rawWhere,
		Limit:       r.Limit,
		Page:        r.Page,
		Depth:       r.Depth,
		Sort:        r.Sort,
		All:         r.All,
		MaxDocs:     r.MaxDocs,
		IncludeDocs: r.IncludeDocs,
	}
	// Marshal cannot fail: every value is a string, number, bool or a decoded JSON tree.
	raw, _ := json.Marshal(normalized)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
