package documents

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/andreslomelig/NovaFolio/internal/shared/server/respond"
)

const maxUploadSize = 50 << 20 // 50MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/documents", h.list)
	rg.POST("/documents/upload", h.upload)
	rg.GET("/documents/:id", h.get)
	rg.PATCH("/documents/:id", h.rename)
	rg.DELETE("/documents/:id", h.remove)
	rg.POST("/documents/:id/reindex", h.reindex)
	rg.GET("/documents/:id/html", h.htmlPreview)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "multipart_file_required", nil)
		return
	}
	caseID := strings.TrimSpace(c.PostForm("case_id"))
	if caseID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", gin.H{"case_id": "required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", gin.H{"file": "unreadable"})
		return
	}
	defer file.Close()

	mime := fileHeader.Header.Get("Content-Type")
	doc, err := h.Svc.Upload(c.Request.Context(), caseID, fileHeader.Filename, mime, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrCaseNotFound):
			respond.Error(c, http.StatusNotFound, "case_not_found", nil)
		case errors.Is(err, ErrUnsupportedMime):
			respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_media_type", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", gin.H{"file": "invalid"})
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{"id": doc.ID, "url": doc.StorageURL})
}

func (h *Handler) list(c *gin.Context) {
	caseID := strings.TrimSpace(c.Query("case_id"))
	if caseID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", gin.H{"case_id": "required"})
		return
	}

	docs, err := h.Svc.List(c.Request.Context(), caseID, c.Query("q"))
	if err != nil {
		switch {
		case errors.Is(err, ErrCaseNotFound):
			respond.Error(c, http.StatusNotFound, "case_not_found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", nil)
		}
		return
	}

	items := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		items = append(items, toResponse(doc))
	}
	respond.OK(c, gin.H{"items": items})
}

func (h *Handler) get(c *gin.Context) {
	doc, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", nil)
		}
		return
	}
	respond.OK(c, toResponse(doc))
}

type renameRequest struct {
	Name string `json:"name"`
}

func (h *Handler) rename(c *gin.Context) {
	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", gin.H{"name": "required"})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 255 {
		respond.Error(c, http.StatusBadRequest, "validation_error", gin.H{"name": "must be 1-255 characters"})
		return
	}

	if err := h.Svc.Rename(c.Request.Context(), c.Param("id"), name); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", gin.H{"name": "invalid"})
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

func (h *Handler) reindex(c *gin.Context) {
	if err := h.Svc.RequestReindex(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", nil)
		}
		return
	}
	respond.JSON(c, http.StatusAccepted, gin.H{"status": "queued"})
}

func (h *Handler) htmlPreview(c *gin.Context) {
	html, err := h.Svc.HTMLPreview(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", nil)
		case errors.Is(err, ErrUnsupportedMime):
			respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_media_type", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", nil)
		}
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
