package errors

const (
	HttpInternalError           = "internal_error"
	HttpInvalidJsonError        = "invalid_json"
	HttpInvalidRequestError     = "invalid_request"
	HttpUnauthorizedError       = "unauthorized"
	HttpCollectionNotFoundError = "collection_not_found"
	HttpCollectionHiddenError   = "collection_hidden"
)

// ErrorResponse is the error body every endpoint returns. Error is the human
// readable message the dashboard displays.
type ErrorResponse struct {
	Error     string `json:"error"`
	ErrorType string `json:"error_type,omitempty"`
}

// New builds an ErrorResponse.
func New(errorType, message string) ErrorResponse {
	return ErrorResponse{Error: message, ErrorType: errorType}
}
