package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akshatworkmail12-bit/jarvis/internal/apperrors"
)

// URLBrowser opens an explicit URL in the default browser. The media
// provider satisfies this.
type URLBrowser interface {
	BrowseURL(rawURL string) error
}

// MediaHandler handles direct browsing requests.
type MediaHandler struct {
	media URLBrowser
}

// NewMediaHandler creates a new MediaHandler instance.
func NewMediaHandler(media URLBrowser) *MediaHandler {
	return &MediaHandler{media: media}
}

type browseRequest struct {
	URL string `json:"url" binding:"required"`
}

// Browse validates and opens a URL in the default browser.
func (h *MediaHandler) Browse(c *gin.Context) {
	var req browseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("Invalid request: "+err.Error(), "url"))
		return
	}

	if err := h.media.BrowseURL(req.URL); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"url": req.URL, "opened": true},
	})
}
