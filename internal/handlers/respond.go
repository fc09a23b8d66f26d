// Package handlers provides the HTTP handlers for the command API.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akshatworkmail12-bit/jarvis/internal/apperrors"
)

// respondError writes the standard error envelope, mapping the error code to
// an HTTP status.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		appErr = &apperrors.Error{Code: apperrors.CodeUnknown, Message: err.Error()}
	}

	status := http.StatusInternalServerError
	switch appErr.Code {
	case apperrors.CodeValidation:
		status = http.StatusBadRequest
	case apperrors.CodeRateLimit:
		status = http.StatusTooManyRequests
	case apperrors.CodeLLM:
		status = http.StatusBadGateway
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	}

	c.JSON(status, gin.H{"success": false, "error": appErr})
}
