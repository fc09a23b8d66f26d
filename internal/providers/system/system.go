// Package system implements the System capability: application launch,
// folder and file opening, keyboard input and guarded command execution.
package system

import (
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/akshatworkmail12-bit/jarvis/internal/apperrors"
	"github.com/akshatworkmail12-bit/jarvis/internal/providers/browser"
)

// Service provides OS-level operations. The installed-app cache is scanned
// once at construction and refreshed on demand.
type Service struct {
	osType string
	log    *zap.SugaredLogger

	appsMu sync.RWMutex
	apps   map[string]string // lower-case name -> executable path
}

// NewService creates the provider and scans for installed applications in
// the background.
func NewService(log *zap.SugaredLogger) *Service {
	s := &Service{
		osType: runtime.GOOS,
		log:    log,
		apps:   make(map[string]string),
	}
	go s.scanInstalledApps()
	return s
}

// InstalledApps returns the cached application names, sorted.
func (s *Service) InstalledApps() []string {
	s.appsMu.RLock()
	defer s.appsMu.RUnlock()

	names := make([]string, 0, len(s.apps))
	for name := range s.apps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Service) scanInstalledApps() {
	found := make(map[string]string)
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			info, err := e.Info()
			if err != nil || info.Mode()&0111 == 0 {
				continue
			}
			name := strings.ToLower(e.Name())
			if _, ok := found[name]; !ok {
				found[name] = filepath.Join(dir, e.Name())
			}
		}
	}

	s.appsMu.Lock()
	s.apps = found
	s.appsMu.Unlock()
	s.log.Infow("installed application scan complete", "count", len(found))
}

// OpenApplication resolves a matching executable from the target name and
// the interpreter's hints, then launches it detached.
func (s *Service) OpenApplication(name string, hints []string) error {
	candidates := make([]string, 0, len(hints)+3)
	candidates = append(candidates, hints...)
	candidates = append(candidates,
		name,
		strings.ToLower(name),
		strings.ReplaceAll(strings.ToLower(name), " ", "-"),
	)

	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}

		path := s.lookupApp(candidate)
		if path == "" {
			if resolved, err := exec.LookPath(candidate); err == nil {
				path = resolved
			}
		}
		if path == "" {
			continue
		}

		if err := exec.Command(path).Start(); err != nil {
			s.log.Warnw("launch failed", "app", candidate, "path", path, "error", err)
			continue
		}
		s.log.Infow("opened application", "app", name, "path", path)
		return nil
	}

	return apperrors.Application("no matching executable found", "open_app", name)
}

func (s *Service) lookupApp(name string) string {
	s.appsMu.RLock()
	defer s.appsMu.RUnlock()
	return s.apps[strings.ToLower(name)]
}

// knownFolders maps spoken folder names to home subdirectories.
var knownFolders = map[string]string{
	"downloads": "Downloads",
	"documents": "Documents",
	"desktop":   "Desktop",
	"pictures":  "Pictures",
	"music":     "Music",
	"videos":    "Videos",
	"home":      "",
}

// OpenFolder resolves a folder by known name first, then the interpreter's
// path templates. Further resolution steps belong to the caller.
func (s *Service) OpenFolder(name string, pathHints []string) error {
	home, _ := os.UserHomeDir()

	if sub, ok := knownFolders[strings.ToLower(strings.TrimSpace(name))]; ok && home != "" {
		target := filepath.Join(home, sub)
		if _, err := os.Stat(target); err == nil {
			return s.openPath(target)
		}
	}

	for _, hint := range pathHints {
		expanded := expandPath(hint, home)
		if info, err := os.Stat(expanded); err == nil && info.IsDir() {
			return s.openPath(expanded)
		}
	}

	return apperrors.System("folder not found", "open_folder", name)
}

func expandPath(p, home string) string {
	if strings.HasPrefix(p, "~") {
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return os.ExpandEnv(p)
}

// OpenFile opens a file or folder with the default application.
func (s *Service) OpenFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return apperrors.System("path does not exist", "open_file", path)
	}
	return s.openPath(path)
}

func (s *Service) openPath(path string) error {
	var cmd *exec.Cmd
	switch s.osType {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("explorer", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return apperrors.System("failed to open path: "+err.Error(), "open_path", path)
	}
	s.log.Infow("opened path", "path", path)
	return nil
}

// TypeText injects keystrokes through the desktop automation tool.
func (s *Service) TypeText(text string, interval time.Duration) error {
	delayMs := int(interval / time.Millisecond)

	var cmd *exec.Cmd
	switch s.osType {
	case "darwin":
		script := strings.ReplaceAll(text, `"`, `\"`)
		cmd = exec.Command("osascript", "-e",
			`tell application "System Events" to keystroke "`+script+`"`)
	default:
		cmd = exec.Command("xdotool", "type", "--delay", strconv.Itoa(delayMs), "--", text)
	}

	if err := cmd.Run(); err != nil {
		return apperrors.System("failed to type text: "+err.Error(), "type_text", truncateTarget(text))
	}
	return nil
}

// PressKey presses a key or a '+'-joined combination.
func (s *Service) PressKey(combo string) error {
	var cmd *exec.Cmd
	switch s.osType {
	case "darwin":
		cmd = exec.Command("osascript", "-e",
			`tell application "System Events" to key code (key code of "`+combo+`")`)
	default:
		cmd = exec.Command("xdotool", "key", "--", combo)
	}
	if err := cmd.Run(); err != nil {
		return apperrors.System("failed to press key: "+err.Error(), "press_key", combo)
	}
	return nil
}

// SearchWeb opens a Google search for the query in the default browser.
func (s *Service) SearchWeb(query string) error {
	searchURL := "https://www.google.com/search?q=" + url.QueryEscape(query)
	if err := browser.Open(searchURL); err != nil {
		return apperrors.System("failed to search web: "+err.Error(), "search_web", query)
	}
	s.log.Infow("performed web search", "query", query)
	return nil
}

// ExecuteSystemCommand runs a shell command. Deny-list screening happens in
// the dispatcher before this is ever reached.
func (s *Service) ExecuteSystemCommand(command string) error {
	var cmd *exec.Cmd
	if s.osType == "windows" {
		cmd = exec.Command("cmd", "/C", command)
	} else {
		cmd = exec.Command("sh", "-c", command)
	}
	if err := cmd.Run(); err != nil {
		return apperrors.System("failed to execute system command: "+err.Error(),
			"system_command", truncateTarget(command))
	}
	s.log.Infow("executed system command", "command", truncateTarget(command))
	return nil
}

func truncateTarget(s string) string {
	if len(s) > 100 {
		return s[:100]
	}
	return s
}
