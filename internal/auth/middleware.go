// Package auth gates the dashboard endpoints behind a JWT issued by the host CMS.
package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	apierrors "github.com/paneldeck/paneldeck/internal/core/errors"
)

const (
	claimsKey = "claims"

	// TokenCookie is the cookie the host CMS admin panel stores its session token in.
	TokenCookie = "payload-token"
)

// ErrMissingToken is returned when a request carries no token at all.
var ErrMissingToken = errors.New("missing token")

// Claims represents JWT claims. Sub is the user id.
type Claims struct {
	Sub   string   `json:"sub"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// ID returns the user id layouts are keyed by.
func (c *Claims) ID() string {
	if c.Sub != "" {
		return c.Sub
	}
	return c.Subject
}

// HasRole reports whether the user carries role.
func (c *Claims) HasRole(role string) bool {
	return c != nil && slices.Contains(c.Roles, role)
}

// Middleware rejects requests without a valid HMAC-signed token with 401.
// The token is read from "Authorization: Bearer <token>", "Authorization: JWT <token>"
// or the host CMS session cookie.
func Middleware(secret string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		tokenString, err := extractToken(c)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid signing method")
			}
			return key, nil
		})
		if err != nil || !token.Valid || claims.ID() == "" {
			if err == nil {
				err = errors.New("token has no subject")
			}
			abortUnauthorized(c, err)
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

func extractToken(c *gin.Context) (string, error) {
	if header := c.GetHeader("Authorization"); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if !found || (scheme != "Bearer" && scheme != "JWT") || token == "" {
			return "", errors.New("invalid authorization header format")
		}
		return token, nil
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie, nil
	}
	return "", ErrMissingToken
}

func abortUnauthorized(c *gin.Context, err error) {
	slog.Debug("[Auth] Rejected request", "path", c.Request.URL.Path, "reason", err.Error())
	c.AbortWithStatusJSON(http.StatusUnauthorized, apierrors.ErrorResponse{
		Error:     "Unauthorized",
		ErrorType: apierrors.HttpUnauthorizedError,
	})
}

// GetClaims extracts claims from the gin context.
func GetClaims(c *gin.Context) (*Claims, bool) {
	claims, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}

	cl, ok := claims.(*Claims)
	return cl, ok
}

// SetClaims stores claims on the context the way Middleware does.
func SetClaims(c *gin.Context, claims *Claims) {
	c.Set(claimsKey, claims)
}
