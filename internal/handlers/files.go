package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/akshatworkmail12-bit/jarvis/internal/apperrors"
	"github.com/akshatworkmail12-bit/jarvis/internal/providers/files"
	"github.com/akshatworkmail12-bit/jarvis/internal/validation"
)

// FileOpener launches a path with its default application. The system
// provider satisfies this.
type FileOpener interface {
	OpenFile(path string) error
}

// FileHandler handles file search and management requests. Every path
// parameter is validated and resolved beneath the configured search
// locations before a filesystem operation runs.
type FileHandler struct {
	files  *files.Service
	opener FileOpener
}

// NewFileHandler creates a new FileHandler instance.
func NewFileHandler(svc *files.Service, opener FileOpener) *FileHandler {
	return &FileHandler{files: svc, opener: opener}
}

// Search looks up files and folders by name under the configured locations.
func (h *FileHandler) Search(c *gin.Context) {
	query := validation.Sanitize(c.Query("q"))
	if query == "" {
		respondError(c, apperrors.Validation("Search query is required", "q"))
		return
	}

	fileType := c.Query("type")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	results, err := h.files.Search(query, fileType, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"query":   query,
			"results": results,
			"count":   len(results),
		},
	})
}

// Info returns metadata for a single file or folder.
func (h *FileHandler) Info(c *gin.Context) {
	path, err := validation.ValidatePath(c.Query("path"))
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.files.Info(path)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

type openFileRequest struct {
	Path string `json:"path" binding:"required"`
}

// Open launches a file or folder with its default application. Files must
// carry an allowed extension; folders are opened as-is.
func (h *FileHandler) Open(c *gin.Context) {
	var req openFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("Invalid request: "+err.Error(), "path"))
		return
	}

	path, err := validation.ValidatePath(req.Path)
	if err != nil {
		respondError(c, err)
		return
	}

	full, info, err := h.files.Resolve(path)
	if err != nil {
		respondError(c, err)
		return
	}
	if !info.IsDir() && !validation.ValidateFileExtension(full, "") {
		respondError(c, apperrors.Validation("File type not allowed", "path"))
		return
	}

	if err := h.opener.OpenFile(full); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"file_path": full, "opened": true},
	})
}

// List returns the entries of a folder, folders first. Hidden entries are
// excluded unless show_hidden is set.
func (h *FileHandler) List(c *gin.Context) {
	path, err := validation.ValidatePath(c.Query("path"))
	if err != nil {
		respondError(c, err)
		return
	}
	showHidden, _ := strconv.ParseBool(c.DefaultQuery("show_hidden", "false"))

	entries, err := h.files.List(path, showHidden)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"path":    path,
			"entries": entries,
			"count":   len(entries),
		},
	})
}

type createFileRequest struct {
	Path string `json:"path" binding:"required"`
	Type string `json:"type"`
}

// Create makes an empty file or a directory. The final name component is
// sanitized, and new files must carry an allowed extension.
func (h *FileHandler) Create(c *gin.Context) {
	var req createFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("Invalid request: "+err.Error(), "path"))
		return
	}

	path, err := validation.ValidatePath(req.Path)
	if err != nil {
		respondError(c, err)
		return
	}
	path = filepath.Join(filepath.Dir(path), validation.SanitizeFilename(filepath.Base(path)))

	kind := req.Type
	if kind == "" {
		kind = "file"
	}
	if kind == "file" && !validation.ValidateFileExtension(path, "") {
		respondError(c, apperrors.Validation("File type not allowed", "path"))
		return
	}

	result, err := h.files.Create(path, kind)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}
