package metrics

import (
	"github.com/paneldeck/paneldeck/internal/core/document"
)

// Response is one of ScalarResponse, DumpResponse or PageResponse.
type Response interface {
	isResponse()
}

// ScalarResponse answers an aggregating operator.
// Value is an int for count, *string for earliest/latest and *float64 for the
// numeric operators; nil pointers encode as null.
type ScalarResponse struct {
	Op         string            `json:"op"`
	Collection string            `json:"collection"`
	Field      string            `json:"field,omitempty"`
	Value      interface{}       `json:"value"`
	TotalDocs  int               `json:"totalDocs"`
	Processed  *int              `json:"processed,omitempty"`
	ValidCount *int              `json:"validCount,omitempty"`
	Truncated  *bool             `json:"truncated,omitempty"`
	Doc        document.Document `json:"doc,omitempty"`
}

// DumpResponse answers an exhaustive scan without an operator.
type DumpResponse struct {
	Collection string              `json:"collection"`
	Docs       []document.Document `json:"docs"`
	TotalDocs  int                 `json:"totalDocs"`
	Processed  int                 `json:"processed"`
	Truncated  bool                `json:"truncated"`
}

// PageResponse passes one page of documents through with its pagination metadata.
type PageResponse struct {
	Collection  string              `json:"collection"`
	Docs        []document.Document `json:"docs"`
	TotalDocs   int                 `json:"totalDocs"`
	Limit       int                 `json:"limit"`
	Page        int                 `json:"page"`
	TotalPages  int                 `json:"totalPages"`
	HasNextPage bool                `json:"hasNextPage"`
	HasPrevPage bool                `json:"hasPrevPage"`
}

func (*ScalarResponse) isResponse() {}
func (*DumpResponse) isResponse()   {}
func (*PageResponse) isResponse()   {}
