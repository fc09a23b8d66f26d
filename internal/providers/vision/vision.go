// Package vision implements the Vision capability: screen capture, LLM
// sub-analysis, clicking by percentage coordinates and scrolling.
package vision

import (
	"context"
	"encoding/base64"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/akshatworkmail12-bit/jarvis/internal/apperrors"
	"github.com/akshatworkmail12-bit/jarvis/internal/models"
)

// Analyzer runs the vision prompt contract. The interpreter satisfies this.
type Analyzer interface {
	AnalyzeScreen(ctx context.Context, screenshotBase64, query string) (*models.VisionAnalysis, error)
}

// Scroll directions accepted by ScrollScreen.
var validDirections = map[string]bool{
	"up": true, "down": true, "left": true, "right": true,
}

// ValidDirection reports whether dir is an accepted scroll direction.
func ValidDirection(dir string) bool {
	return validDirections[dir]
}

// Service provides screen operations.
type Service struct {
	analyzer Analyzer
	osType   string
	log      *zap.SugaredLogger
}

// NewService creates the provider.
func NewService(analyzer Analyzer, log *zap.SugaredLogger) *Service {
	return &Service{analyzer: analyzer, osType: runtime.GOOS, log: log}
}

// AnalyzeScreen captures the screen and runs it through the vision prompt.
func (s *Service) AnalyzeScreen(ctx context.Context, query string) (*models.VisionAnalysis, error) {
	screenshot, err := s.captureScreenBase64(ctx)
	if err != nil {
		return nil, err
	}
	return s.analyzer.AnalyzeScreen(ctx, screenshot, query)
}

func (s *Service) captureScreenBase64(ctx context.Context) (string, error) {
	tmp := filepath.Join(os.TempDir(), "jarvis-screen.png")
	defer os.Remove(tmp)

	var attempts [][]string
	if s.osType == "darwin" {
		attempts = [][]string{{"screencapture", "-x", tmp}}
	} else {
		attempts = [][]string{
			{"gnome-screenshot", "-f", tmp},
			{"scrot", "--overwrite", tmp},
		}
	}

	captured := false
	for _, args := range attempts {
		if _, err := exec.LookPath(args[0]); err != nil {
			continue
		}
		if err := exec.CommandContext(ctx, args[0], args[1:]...).Run(); err == nil {
			captured = true
			break
		}
	}
	if !captured {
		return "", apperrors.Vision("no screen capture tool available", "capture_screen", "")
	}

	data, err := os.ReadFile(tmp)
	if err != nil {
		return "", apperrors.Vision("reading screenshot failed: "+err.Error(), "capture_screen", "")
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// ClickPosition clicks at screen coordinates given as percentages (0-100)
// of the display dimensions.
func (s *Service) ClickPosition(xPercent, yPercent float64) error {
	if xPercent < 0 || xPercent > 100 || yPercent < 0 || yPercent > 100 {
		return apperrors.Vision("position out of range", "click_position", "")
	}

	width, height, err := s.displaySize()
	if err != nil {
		return err
	}

	x := int(xPercent / 100 * float64(width))
	y := int(yPercent / 100 * float64(height))

	if err := exec.Command("xdotool", "mousemove", "--sync",
		strconv.Itoa(x), strconv.Itoa(y), "click", "1").Run(); err != nil {
		return apperrors.Vision("click failed: "+err.Error(), "click_position", "")
	}
	s.log.Infow("clicked position", "x", x, "y", y)
	return nil
}

func (s *Service) displaySize() (int, int, error) {
	out, err := exec.Command("xdotool", "getdisplaygeometry").Output()
	if err != nil {
		return 0, 0, apperrors.Vision("cannot determine display size: "+err.Error(), "display_size", "")
	}
	fields := strings.Fields(strings.TrimSpace(string(out)))
	if len(fields) != 2 {
		return 0, 0, apperrors.Vision("unexpected display geometry output", "display_size", "")
	}
	w, err1 := strconv.Atoi(fields[0])
	h, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil {
		return 0, 0, apperrors.Vision("unexpected display geometry output", "display_size", "")
	}
	return w, h, nil
}

// ScrollScreen scrolls in the given direction. The direction must already be
// validated by the caller; unknown values fail here as a last line.
func (s *Service) ScrollScreen(direction string, amount int) error {
	if !ValidDirection(direction) {
		return apperrors.Validation("Invalid scroll direction: "+direction, "direction")
	}
	if amount <= 0 {
		amount = 3
	}

	// X11 buttons: 4 up, 5 down, 6 left, 7 right.
	button := map[string]string{"up": "4", "down": "5", "left": "6", "right": "7"}[direction]
	for n := 0; n < amount; n++ {
		if err := exec.Command("xdotool", "click", button).Run(); err != nil {
			return apperrors.Vision("scroll failed: "+err.Error(), "scroll", direction)
		}
	}
	s.log.Infow("scrolled", "direction", direction, "amount", amount)
	return nil
}

// ConfidenceValue maps the vision contract's confidence labels onto [0,1].
func ConfidenceValue(confidence string) float64 {
	switch strings.ToLower(confidence) {
	case "high":
		return 0.9
	case "medium":
		return 0.7
	case "low":
		return 0.3
	default:
		return 0.5
	}
}

// FindAndClickElement analyzes the screen for a described element and clicks
// it when the verdict is CLICK with confidence at or above threshold.
func (s *Service) FindAndClickElement(ctx context.Context, description string, threshold float64) error {
	result, err := s.AnalyzeScreen(ctx, description)
	if err != nil {
		return err
	}

	if result.Action != models.VisionActionClick ||
		result.Position == nil || result.Position.X == nil || result.Position.Y == nil {
		return apperrors.Vision("element not found", "find_and_click", description)
	}
	if ConfidenceValue(result.Confidence) < threshold {
		return apperrors.Vision("element found but confidence too low: "+result.Confidence,
			"find_and_click", description)
	}

	return s.ClickPosition(*result.Position.X, *result.Position.Y)
}
