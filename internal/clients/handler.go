package clients

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andreslomelig/NovaFolio/internal/shared/server/respond"
)

// ClientResponse is the wire shape of a client.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(client Client) ClientResponse {
	tags := client.Tags
	if tags == nil {
		tags = []string{}
	}
	return ClientResponse{
		ID:        client.ID,
		Name:      client.Name,
		Tags:      tags,
		CreatedAt: client.CreatedAt,
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

// RegisterRoutes attaches client routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/clients", h.list)
	rg.POST("/clients", h.create)
	rg.GET("/clients/:id", h.get)
	rg.PATCH("/clients/:id", h.update)
	rg.DELETE("/clients/:id", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	out := make([]ClientResponse, 0, len(items))
	for _, client := range items {
		out = append(out, toResponse(client))
	}
	respond.OK(c, gin.H{"items": out})
}

type createClientRequest struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

func (h *Handler) create(c *gin.Context) {
	var req createClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", gin.H{"body": "invalid json"})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 200 {
		respond.Error(c, http.StatusBadRequest, "validation_error", gin.H{"name": "must be 1-200 characters"})
		return
	}

	client, err := h.Svc.Create(c.Request.Context(), name, req.Tags)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{"id": client.ID})
}

func (h *Handler) get(c *gin.Context) {
	client, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", nil)
		}
		return
	}
	respond.OK(c, toResponse(client))
}

type updateClientRequest struct {
	Name *string   `json:"name"`
	Tags *[]string `json:"tags"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", gin.H{"body": "invalid json"})
		return
	}
	if req.Name == nil && req.Tags == nil {
		respond.Error(c, http.StatusBadRequest, "no_fields", nil)
		return
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" || len(name) > 200 {
			respond.Error(c, http.StatusBadRequest, "validation_error", gin.H{"name": "must be 1-200 characters"})
			return
		}
	}

	err := h.Svc.Update(c.Request.Context(), c.Param("id"), UpdateParams{Name: req.Name, Tags: req.Tags})
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
