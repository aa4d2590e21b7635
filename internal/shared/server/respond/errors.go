package respond

import (
	"github.com/gin-gonic/gin"

	"github.com/andreslomelig/NovaFolio/internal/shared/telemetry"
)

// ErrorResponse is the wire format for every error the API returns. Error
// carries a stable machine-readable code ("case_not_found",
// "unsupported_media_type", ...); Details carries optional field-level info
// for validation failures.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// Error sends a standardized error response and logs it.
func Error(c *gin.Context, status int, code string, details interface{}) {
	telemetry.Error("http.error", map[string]any{
		"status":     status,
		"code":       code,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	})

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:   code,
		Details: details,
	})
}
