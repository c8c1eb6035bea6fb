package metrics

import (
	"errors"
	"net/http"

	httperr "github.com/paneldeck/paneldeck/internal/core/errors"
)

var (
	// ErrInvalidRequest marks request validation errors that should return HTTP 400.
	ErrInvalidRequest = errors.New("invalid metrics request")

	// ErrCollectionNotFound is returned for an unknown collection slug (HTTP 404).
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrCollectionHidden is returned when the caller may not see the collection (HTTP 403).
	ErrCollectionHidden = errors.New("collection is hidden")
)

const (
	msgInvalidJSON         = "Invalid JSON"
	msgCollectionRequired  = "Collection is required"
	msgFieldRequired       = "Field is required for aggregation"
	msgCollectionNotFound  = "Collection not found"
	msgCollectionHidden    = "Collection is hidden"
	msgBodyTooLarge        = "Request body exceeds maximum allowed size"
	msgReadBodyFailed      = "Failed to read request body"
	msgAggregationFailed   = "Failed to compute metric"
	msgUnsupportedOperator = "Unsupported operator"
	msgInvalidWhere        = "Invalid where filter"
)

// requestError carries the HTTP error shape from validation back to the handler.
// It unwraps to one of the package sentinels.
type requestError struct {
	statusCode int
	errorType  string
	message    string
	err        error
}

func (e *requestError) Error() string {
	return e.message
}

func (e *requestError) Unwrap() error {
	return e.err
}

func invalidRequest(message string) *requestError {
	return &requestError{
		statusCode: http.StatusBadRequest,
		errorType:  httperr.HttpInvalidRequestError,
		message:    message,
		err:        ErrInvalidRequest,
	}
}

func invalidJSON() *requestError {
	return &requestError{
		statusCode: http.StatusBadRequest,
		errorType:  httperr.HttpInvalidJsonError,
		message:    msgInvalidJSON,
		err:        ErrInvalidRequest,
	}
}

func collectionNotFound() *requestError {
	return &requestError{
		statusCode: http.StatusNotFound,
		errorType:  httperr.HttpCollectionNotFoundError,
		message:    msgCollectionNotFound,
		err:        ErrCollectionNotFound,
	}
}

func collectionHidden() *requestError {
	return &requestError{
		statusCode: http.StatusForbidden,
		errorType:  httperr.HttpCollectionHiddenError,
		message:    msgCollectionHidden,
		err:        ErrCollectionHidden,
	}
}
