package cases

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andreslomelig/NovaFolio/internal/shared/server/respond"
)

// CaseResponse is the wire shape of a case.
type CaseResponse struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(cs Case) CaseResponse {
	return CaseResponse{
		ID:        cs.ID,
		ClientID:  cs.ClientID,
		Title:     cs.Title,
		Status:    cs.Status,
		CreatedAt: cs.CreatedAt,
	}
}

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches case routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/cases", h.list)
	rg.POST("/cases", h.create)
	rg.GET("/cases/:id", h.get)
	rg.PATCH("/cases/:id", h.update)
	rg.DELETE("/cases/:id", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	clientID := strings.TrimSpace(c.Query("client_id"))
	if clientID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", gin.H{"client_id": "required"})
		return
	}

	items, err := h.Svc.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	out := make([]CaseResponse, 0, len(items))
	for _, cs := range items {
		out = append(out, toResponse(cs))
	}
	respond.OK(c, gin.H{"items": out})
}

type createCaseRequest struct {
	ClientID string `json:"client_id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
}

func (h *Handler) create(c *gin.Context) {
	var req createCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", gin.H{"body": "invalid json"})
		return
	}
	title := strings.TrimSpace(req.Title)
	if strings.TrimSpace(req.ClientID) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", gin.H{"client_id": "required"})
		return
	}
	if title == "" || len(title) > 200 {
		respond.Error(c, http.StatusBadRequest, "validation_error", gin.H{"title": "must be 1-200 characters"})
		return
	}
	if req.Status != "" && !ValidStatus(req.Status) {
		respond.Error(c, http.StatusBadRequest, "validation_error", gin.H{"status": "must be open or closed"})
		return
	}

	cs, err := h.Svc.Create(c.Request.Context(), strings.TrimSpace(req.ClientID), title, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrClientNotFound):
			respond.Error(c, http.StatusNotFound, "client_not_found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{"id": cs.ID})
}

func (h *Handler) get(c *gin.Context) {
	cs, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", nil)
		}
		return
	}
	respond.OK(c, toResponse(cs))
}

type updateCaseRequest struct {
	Title  *string `json:"title"`
	Status *string `json:"status"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", gin.H{"body": "invalid json"})
		return
	}
	if req.Title == nil && req.Status == nil {
		respond.Error(c, http.StatusBadRequest, "no_fields", nil)
		return
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" || len(title) > 200 {
			respond.Error(c, http.StatusBadRequest, "validation_error", gin.H{"title": "must be 1-200 characters"})
			return
		}
	}
	if req.Status != nil && !ValidStatus(*req.Status) {
		respond.Error(c, http.StatusBadRequest, "validation_error", gin.H{"status": "must be open or closed"})
		return
	}

	err := h.Svc.Update(c.Request.Context(), c.Param("id"), UpdateParams{Title: req.Title, Status: req.Status})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}
