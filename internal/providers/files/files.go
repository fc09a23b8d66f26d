// Package files implements file and folder search, lookup, listing and
// creation across a configured set of locations. Relative paths are always
// resolved beneath those locations; nothing outside them is ever touched.
package files

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/akshatworkmail12-bit/jarvis/internal/apperrors"
	"github.com/akshatworkmail12-bit/jarvis/internal/models"
)

// Service searches the filesystem beneath its configured locations only.
type Service struct {
	locations  []string
	maxResults int
	log        *zap.SugaredLogger
}

// NewService creates the provider.
func NewService(locations []string, maxResults int, log *zap.SugaredLogger) *Service {
	if maxResults <= 0 {
		maxResults = 50
	}
	return &Service{locations: locations, maxResults: maxResults, log: log}
}

// Search returns files and folders whose name contains the query,
// case-insensitively. A non-empty fileType restricts matches to that
// extension. maxResults caps the result count; zero means the configured
// default.
func (s *Service) Search(query, fileType string, maxResults int) ([]models.FileResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.Validation("Search query cannot be empty", "query")
	}
	if maxResults <= 0 || maxResults > s.maxResults {
		maxResults = s.maxResults
	}

	needle := strings.ToLower(query)
	wantExt := ""
	if fileType != "" {
		wantExt = "." + strings.ToLower(strings.TrimPrefix(fileType, "."))
	}

	results := make([]models.FileResult, 0, maxResults)
	for _, location := range s.locations {
		if len(results) >= maxResults {
			break
		}
		if _, err := os.Stat(location); err != nil {
			continue
		}

		_ = filepath.WalkDir(location, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil // unreadable entries are skipped, not fatal
			}
			if len(results) >= maxResults {
				return filepath.SkipAll
			}
			if path == location {
				return nil
			}

			name := d.Name()
			if !strings.Contains(strings.ToLower(name), needle) {
				return nil
			}
			if wantExt != "" {
				if d.IsDir() || !strings.EqualFold(filepath.Ext(name), wantExt) {
					return nil
				}
			}

			if r, ok := describe(path, d); ok {
				results = append(results, r)
			}
			return nil
		})
	}

	sortResults(results)

	s.log.Infow("file search complete", "query", query, "count", len(results))
	return results, nil
}

// Resolve maps a validated relative path onto the first configured location
// that contains it.
func (s *Service) Resolve(relPath string) (string, os.FileInfo, error) {
	for _, location := range s.locations {
		full := filepath.Join(location, relPath)
		if info, err := os.Stat(full); err == nil {
			return full, info, nil
		}
	}
	return "", nil, apperrors.NotFound("File not found", relPath)
}

// Info describes a single file or folder.
func (s *Service) Info(relPath string) (models.FileResult, error) {
	full, info, err := s.Resolve(relPath)
	if err != nil {
		return models.FileResult{}, err
	}
	return describeInfo(full, info), nil
}

// List returns the entries of a folder, folders first. Dot-prefixed entries
// are excluded unless showHidden is set.
func (s *Service) List(relPath string, showHidden bool) ([]models.FileResult, error) {
	full, info, err := s.Resolve(relPath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, apperrors.Validation("Path is not a directory", "path")
	}

	entries, err := os.ReadDir(full)
	if err != nil {
		return nil, apperrors.FileSearch("cannot list directory: "+err.Error(), "list_directory", relPath)
	}

	results := make([]models.FileResult, 0, len(entries))
	for _, e := range entries {
		if !showHidden && strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if r, ok := describe(filepath.Join(full, e.Name()), e); ok {
			results = append(results, r)
		}
	}
	sortResults(results)

	s.log.Infow("directory listed", "path", relPath, "count", len(results))
	return results, nil
}

// Create makes an empty file or a directory. Targets without a parent
// component go beneath the primary location; nested targets must resolve to
// an existing directory.
func (s *Service) Create(relPath, kind string) (models.FileResult, error) {
	if len(s.locations) == 0 {
		return models.FileResult{}, apperrors.System("no file locations configured", "create", relPath)
	}

	base := s.locations[0]
	if dir := filepath.Dir(relPath); dir != "." {
		full, info, err := s.Resolve(dir)
		if err != nil {
			return models.FileResult{}, err
		}
		if !info.IsDir() {
			return models.FileResult{}, apperrors.Validation("Parent path is not a directory", "path")
		}
		base = full
	}

	target := filepath.Join(base, filepath.Base(relPath))
	if _, err := os.Stat(target); err == nil {
		return models.FileResult{}, apperrors.Validation("Path already exists", "path")
	}

	switch kind {
	case "directory":
		if err := os.Mkdir(target, 0755); err != nil {
			return models.FileResult{}, apperrors.System("failed to create directory: "+err.Error(), "create_directory", relPath)
		}
	case "file":
		if err := os.WriteFile(target, nil, 0644); err != nil {
			return models.FileResult{}, apperrors.System("failed to create file: "+err.Error(), "create_file", relPath)
		}
	default:
		return models.FileResult{}, apperrors.Validation("Type must be file or directory", "type")
	}

	info, err := os.Stat(target)
	if err != nil {
		return models.FileResult{}, apperrors.System("failed to stat created path: "+err.Error(), "create", relPath)
	}
	s.log.Infow("created path", "path", target, "type", kind)
	return describeInfo(target, info), nil
}

// Folders first, then alphabetically.
func sortResults(results []models.FileResult) {
	sort.Slice(results, func(i, j int) bool {
		if (results[i].Type == "folder") != (results[j].Type == "folder") {
			return results[i].Type == "folder"
		}
		return strings.ToLower(results[i].Name) < strings.ToLower(results[j].Name)
	})
}

func describe(path string, d fs.DirEntry) (models.FileResult, bool) {
	info, err := d.Info()
	if err != nil {
		return models.FileResult{}, false
	}
	return describeInfo(path, info), true
}

func describeInfo(path string, info os.FileInfo) models.FileResult {
	r := models.FileResult{
		Path:     path,
		Name:     filepath.Base(path),
		Size:     info.Size(),
		Modified: info.ModTime().Format(time.RFC3339),
	}
	if info.IsDir() {
		r.Type = "folder"
	} else {
		r.Type = "file"
		r.Extension = strings.ToLower(filepath.Ext(path))
	}
	return r
}
