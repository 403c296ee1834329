// Package respond writes the JSON error bodies shared by all handlers.
package respond

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mdobak/go-xerrors"

	"auction_backend/internal/platform/validation"
)

// Error writes {"error": msg} with status.
func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// FieldErrors writes a 400 carrying per-field messages.
func FieldErrors(c *gin.Context, fe validation.FieldErrors) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fe})
}

// BindError converts a ShouldBind failure into a field error response.
func BindError(c *gin.Context, err error) {
	fe := validation.FromBindError(err)
	slog.Warn("request validation failed", "path", c.FullPath(), "fields", fe, "remote_addr", c.ClientIP())
	FieldErrors(c, fe)
}

// ServerError logs err with its stack trace and writes a generic 500.
func ServerError(c *gin.Context, err error) {
	slog.LogAttrs(c.Request.Context(), slog.LevelError, "request failed",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("error", err.Error()),
		slog.String("stack", xerrors.Sprint(err)),
	)
	Error(c, http.StatusInternalServerError, "internal server error")
}
