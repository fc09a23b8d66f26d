// Package validation provides input sanitization and validation for
// untrusted command text, paths and URLs. It runs before interpretation and
// dispatch so malformed input never reaches the LLM prompt or a capability
// provider.
package validation

import (
	"html"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/akshatworkmail12-bit/jarvis/internal/apperrors"
)

// maxCommandLength caps command input at 10KB.
const maxCommandLength = 10000

// dangerousPatterns are stripped from all sanitized input.
var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)on\w+\s*=`),
	regexp.MustCompile(`(?i)eval\s*\(`),
	regexp.MustCompile(`(?i)exec\s*\(`),
	regexp.MustCompile(`(?i)import\s*\(`),
	regexp.MustCompile(`(?i)subprocess\s*\(`),
	regexp.MustCompile(`(?i)os\.system\s*\(`),
}

// suspiciousPatterns reject a command outright rather than being stripped.
var suspiciousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\.\./`),             // path traversal
	regexp.MustCompile(`\\x[0-9a-fA-F]{2}`), // hex escapes
	regexp.MustCompile(`%[0-9a-fA-F]{2}`),   // percent escapes
}

var urlPattern = regexp.MustCompile(
	`(?i)^https?://` +
		`((?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,6}\.?` +
		`|localhost` +
		`|\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
		`(?::\d+)?` +
		`(?:/?|[/?]\S+)$`)

// AllowedExtensions maps file categories to permitted extensions.
var AllowedExtensions = map[string][]string{
	"images":        {".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp"},
	"documents":     {".pdf", ".doc", ".docx", ".txt", ".rtf", ".odt"},
	"spreadsheets":  {".xls", ".xlsx", ".csv", ".ods"},
	"presentations": {".ppt", ".pptx", ".odp"},
	"archives":      {".zip", ".rar", ".7z", ".tar", ".gz"},
	"code":          {".go", ".js", ".html", ".css", ".json", ".xml", ".yaml", ".yml"},
	"media":         {".mp4", ".avi", ".mov", ".mp3", ".wav", ".flac"},
}

// Sanitize HTML-escapes the input, strips every dangerous pattern, then
// collapses internal whitespace. It is a fixed point: sanitizing already
// sanitized text returns it unchanged.
func Sanitize(input string) string {
	// Unescape first so entity-encoded payloads are caught by the pattern
	// strip, and so repeated sanitization does not re-escape ampersands.
	s := html.UnescapeString(input)

	// Stripping can splice two halves of a pattern together, so repeat
	// until no pattern matches.
	for changed := true; changed; {
		changed = false
		for _, p := range dangerousPatterns {
			if p.MatchString(s) {
				s = p.ReplaceAllString(s, "")
				changed = true
			}
		}
	}

	s = html.EscapeString(s)
	return strings.Join(strings.Fields(s), " ")
}

// ValidateCommand checks a raw user command and returns its sanitized form.
func ValidateCommand(command string) (string, error) {
	if strings.TrimSpace(command) == "" {
		return "", apperrors.Validation("Command cannot be empty", "command")
	}
	if len(command) > maxCommandLength {
		return "", apperrors.Validation("Command too long", "command")
	}
	for _, p := range suspiciousPatterns {
		if p.MatchString(command) {
			return "", apperrors.Validation("Command contains suspicious patterns", "command")
		}
	}
	return Sanitize(command), nil
}

// ValidatePath performs a structural check on a relative filesystem path.
// It does not resolve symlinks or verify existence.
func ValidatePath(path string) (string, error) {
	if path == "" {
		return "", apperrors.Validation("File path cannot be empty", "file_path")
	}

	normalized := filepath.Clean(path)
	if strings.Contains(normalized, "..") {
		return "", apperrors.Validation("Invalid file path", "file_path")
	}
	if strings.HasPrefix(normalized, string(filepath.Separator)) {
		return "", apperrors.Validation("Invalid file path", "file_path")
	}
	if strings.ContainsAny(normalized, `<>|"*?`) {
		return "", apperrors.Validation("File path contains invalid characters", "file_path")
	}

	return normalized, nil
}

// ValidateURL accepts http(s) URLs whose host is a domain, localhost or a
// dotted-quad IP.
func ValidateURL(url string) (string, error) {
	if url == "" {
		return "", apperrors.Validation("URL cannot be empty", "url")
	}
	if !urlPattern.MatchString(url) {
		return "", apperrors.Validation("Invalid URL format", "url")
	}
	return url, nil
}

// ValidateFileExtension reports whether the path's extension is allowed for
// the given category, or for any category when category is empty.
func ValidateFileExtension(path, category string) bool {
	if path == "" {
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))

	if category != "" {
		for _, allowed := range AllowedExtensions[category] {
			if ext == allowed {
				return true
			}
		}
		return false
	}

	for _, extensions := range AllowedExtensions {
		for _, allowed := range extensions {
			if ext == allowed {
				return true
			}
		}
	}
	return false
}

var filenameDangerousChars = strings.NewReplacer(
	"<", "_", ">", "_", ":", "_", `"`, "_", "|", "_",
	"?", "_", "*", "_", "/", "_", `\`, "_",
)

// SanitizeFilename strips path components and dangerous characters from a
// filename.
func SanitizeFilename(name string) string {
	if name == "" {
		return "unnamed"
	}
	name = filepath.Base(name)
	name = filenameDangerousChars.Replace(name)
	if len(name) > 255 {
		ext := filepath.Ext(name)
		name = name[:255-len(ext)] + ext
	}
	return name
}
