package collection

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paneldeck/paneldeck/internal/auth"
)

// Summary is one entry of the collections listing.
type Summary struct {
	Slug   string   `json:"slug"`
	Label  string   `json:"label"`
	Fields []string `json:"fields"`
	Hidden *bool    `json:"hidden"`
}

// ListResponse is the collections-get response body.
type ListResponse struct {
	Total       int       `json:"total"`
	Collections []Summary `json:"collections"`
}

// Visible lists the collections user may see.
func (r *Registry) Visible(user *auth.Claims) ListResponse {
	summaries := make([]Summary, 0, len(r.ordered))
	for _, c := range r.ordered {
		if c.HiddenFor(user) {
			continue
		}
		summaries = append(summaries, Summary{
			Slug:   c.Slug,
			Label:  c.Label(),
			Fields: c.FieldNames(),
			Hidden: c.StaticHidden(),
		})
	}
	return ListResponse{Total: len(summaries), Collections: summaries}
}

// RegisterRoutes registers the collection listing route.
func (r *Registry) RegisterRoutes(router gin.IRouter) {
	router.POST("/collections-get", r.HandleList)
}

// HandleList handles POST /collections-get. The request body is ignored.
func (r *Registry) HandleList(c *gin.Context) {
	user, _ := auth.GetClaims(c)
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, r.Visible(user))
}
