package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akshatworkmail12-bit/jarvis/internal/apperrors"
	"github.com/akshatworkmail12-bit/jarvis/internal/providers/system"
	"github.com/akshatworkmail12-bit/jarvis/internal/validation"
)

// SpeechStatus reports speech output availability. The voice provider
// satisfies this.
type SpeechStatus interface {
	Enabled() bool
	IsSpeaking() bool
}

// ElementClicker locates a described on-screen element and clicks it. The
// vision provider satisfies this.
type ElementClicker interface {
	FindAndClickElement(ctx context.Context, description string, threshold float64) error
}

// defaultClickThreshold requires at least medium confidence before a
// described element is clicked.
const defaultClickThreshold = 0.7

// SystemHandler exposes host information, the detected application list and
// direct screen automation.
type SystemHandler struct {
	system  *system.Service
	voice   SpeechStatus
	clicker ElementClicker
}

// NewSystemHandler creates a new SystemHandler instance.
func NewSystemHandler(svc *system.Service, voice SpeechStatus, clicker ElementClicker) *SystemHandler {
	return &SystemHandler{system: svc, voice: voice, clicker: clicker}
}

// Info returns host, CPU, memory and disk information.
func (h *SystemHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": h.system.Info()})
}

// Apps returns the detected installed applications.
func (h *SystemHandler) Apps(c *gin.Context) {
	apps := h.system.InstalledApps()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"apps": apps, "count": len(apps)},
	})
}

// Status reports overall capability availability.
func (h *SystemHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"system": h.system.Info(),
			"voice": gin.H{
				"enabled":  h.voice.Enabled(),
				"speaking": h.voice.IsSpeaking(),
			},
			"capabilities": gin.H{
				"typing":          true,
				"keyboard":        true,
				"app_management":  true,
				"file_operations": true,
			},
			"status": "operational",
		},
	})
}

type screenClickRequest struct {
	Description string  `json:"description" binding:"required"`
	Threshold   float64 `json:"threshold"`
}

// ScreenClick finds a described element on screen and clicks it.
func (h *SystemHandler) ScreenClick(c *gin.Context) {
	var req screenClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("Invalid request: "+err.Error(), "description"))
		return
	}

	description := validation.Sanitize(req.Description)
	if description == "" {
		respondError(c, apperrors.Validation("Description cannot be empty", "description"))
		return
	}
	threshold := req.Threshold
	if threshold <= 0 {
		threshold = defaultClickThreshold
	}

	if err := h.clicker.FindAndClickElement(c.Request.Context(), description, threshold); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"description": description, "clicked": true},
	})
}
