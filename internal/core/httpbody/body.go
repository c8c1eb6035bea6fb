// Package httpbody reads size-limited JSON request bodies.
package httpbody

import (
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
)

// ErrTooLarge is returned when a body exceeds the configured limit.
var ErrTooLarge = errors.New("request body exceeds maximum allowed size")

// DefaultMaxBytes applies when a handler is configured with a non-positive limit.
const DefaultMaxBytes = 1 << 20

// MaxBytesFromMB converts a megabyte setting into a byte limit.
func MaxBytesFromMB(mb int) int64 {
	if mb <= 0 {
		return DefaultMaxBytes
	}
	return int64(mb) * 1024 * 1024
}

// Read drains the request body, refusing anything over maxBytes.
func Read(c *gin.Context, maxBytes int64) ([]byte, error) {
	if c.Request.Body == nil {
		return nil, nil
	}
	limited := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if int64(len(body)) > maxBytes {
		return nil, ErrTooLarge
	}
	return body, nil
}
