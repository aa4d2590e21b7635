package search

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/andreslomelig/NovaFolio/internal/shared/server/respond"
)

const (
	defaultLimit = 30
	maxLimit     = 100
)

// Handler wires the search endpoint to an Engine.
type Handler struct {
	Engine Engine
}

// NewHandler constructs a Handler.
func NewHandler(engine Engine) *Handler {
	return &Handler{Engine: engine}
}

// RegisterRoutes attaches the search route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search", h.search)
}

func (h *Handler) search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", gin.H{"q": "required"})
		return
	}

	limit := defaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", gin.H{"limit": "must be an integer"})
			return
		}
		limit = n
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	hits, err := h.Engine.Search(c.Request.Context(), q, strings.TrimSpace(c.Query("case_id")), limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if hits == nil {
		hits = []Hit{}
	}
	respond.OK(c, gin.H{"items": hits})
}
