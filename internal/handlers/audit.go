package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/akshatworkmail12-bit/jarvis/internal/audit"
)

// AuditHandler exposes the recent action audit trail.
type AuditHandler struct {
	audit *audit.Service
}

// NewAuditHandler creates a new AuditHandler instance.
func NewAuditHandler(svc *audit.Service) *AuditHandler {
	return &AuditHandler{audit: svc}
}

// Recent returns the latest audit entries, newest first.
func (h *AuditHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.audit.Recent(limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"entries": entries, "count": len(entries)},
	})
}
