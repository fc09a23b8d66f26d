// Package dispatch maps interpreted intents onto capability providers with
// per-action input contracts and failure isolation.
package dispatch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/akshatworkmail12-bit/jarvis/internal/models"
	"github.com/akshatworkmail12-bit/jarvis/internal/providers/vision"
)

// SystemProvider is the System capability surface.
type SystemProvider interface {
	OpenApplication(name string, hints []string) error
	OpenFolder(name string, pathHints []string) error
	OpenFile(path string) error
	TypeText(text string, interval time.Duration) error
	PressKey(combo string) error
	ExecuteSystemCommand(command string) error
	SearchWeb(query string) error
}

// VisionProvider is the screen automation surface.
type VisionProvider interface {
	AnalyzeScreen(ctx context.Context, query string) (*models.VisionAnalysis, error)
	ClickPosition(xPercent, yPercent float64) error
	ScrollScreen(direction string, amount int) error
}

// MediaProvider is the media and browser surface.
type MediaProvider interface {
	PlayYoutubeVideo(ctx context.Context, query string) error
	SearchYoutube(query string) error
	OpenWebsite(ctx context.Context, siteName string) (string, error)
}

// FileProvider is the file search surface.
type FileProvider interface {
	Search(query, fileType string, maxResults int) ([]models.FileResult, error)
}

// Conversationalist generates free-form replies. The interpreter satisfies
// this.
type Conversationalist interface {
	ConversationReply(ctx context.Context, message string, lastActions []string) (string, error)
}

// deniedCommandSubstrings blocks destructive system commands regardless of
// what the sanitizer already stripped.
var deniedCommandSubstrings = []string{
	"format", "del ", "rmdir", "shutdown", "reboot",
	"rm -rf", "sudo rm", "dd if=", ":(){ :|:& };:",
	"fork bomb", "virus", "malware",
}

const defaultTypeInterval = 50 * time.Millisecond

// Dispatcher routes intents to capability providers.
type Dispatcher struct {
	system SystemProvider
	vis    VisionProvider
	media  MediaProvider
	files  FileProvider
	conv   Conversationalist
	log    *zap.SugaredLogger
}

// New creates a Dispatcher over the given providers.
func New(system SystemProvider, vis VisionProvider, media MediaProvider,
	files FileProvider, conv Conversationalist, log *zap.SugaredLogger) *Dispatcher {
	return &Dispatcher{
		system: system,
		vis:    vis,
		media:  media,
		files:  files,
		conv:   conv,
		log:    log,
	}
}

// Dispatch executes one intent and always returns a result: capability
// failures and panics are converted into ActionResult{Success: false} at
// this boundary and never propagate to the caller.
func (d *Dispatcher) Dispatch(ctx context.Context, intent *models.Intent, originalCommand string) (result *models.ActionResult) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Errorw("handler panicked", "action", intent.Action, "panic", r)
			result = &models.ActionResult{
				Success:  false,
				Action:   intent.Action.Slug(),
				Response: fmt.Sprintf("Error executing %s: %v", intent.Action, r),
				Error:    fmt.Sprint(r),
			}
		}
	}()

	switch intent.Action {
	case models.ActionConversation:
		return d.handleConversation(ctx, intent, originalCommand)
	case models.ActionOpenApp:
		return d.handleOpenApp(intent)
	case models.ActionOpenFolder:
		return d.handleOpenFolder(intent)
	case models.ActionSearchWeb:
		return d.handleSearchWeb(intent)
	case models.ActionSearchYoutube:
		return d.handleSearchYoutube(intent)
	case models.ActionPlayYoutube:
		return d.handlePlayYoutube(ctx, intent)
	case models.ActionOpenWebsite:
		return d.handleOpenWebsite(ctx, intent)
	case models.ActionTypeText:
		return d.handleTypeText(intent)
	case models.ActionPressKey:
		return d.handlePressKey(intent)
	case models.ActionScroll:
		return d.handleScroll(intent)
	case models.ActionSearchFiles:
		return d.handleSearchFiles(intent)
	case models.ActionOpenFile:
		return d.handleOpenFile(intent)
	case models.ActionScreenClick:
		return d.handleScreenClick(ctx, intent, originalCommand)
	case models.ActionScreenAnalyze:
		return d.handleScreenAnalyze(ctx, intent, originalCommand)
	case models.ActionSystemCommand:
		return d.handleSystemCommand(intent)
	default:
		// Outside the closed set: terminal unhandled outcome, no
		// capability is invoked.
		return &models.ActionResult{
			Success:  false,
			Action:   intent.Action.Slug(),
			Response: "Unknown action",
		}
	}
}

func (d *Dispatcher) handleConversation(ctx context.Context, intent *models.Intent, originalCommand string) *models.ActionResult {
	// Conversation always succeeds: a failed generation falls back to the
	// interpreter-supplied response text.
	response, err := d.conv.ConversationReply(ctx, originalCommand, nil)
	if err != nil || response == "" {
		if err != nil {
			d.log.Warnw("conversation reply failed, using interpreted response", "error", err)
		}
		response = intent.Response
	}
	if response == "" {
		response = "I'm not sure how to respond to that."
	}
	return &models.ActionResult{
		Success:  true,
		Action:   "conversation",
		Response: response,
		Data:     map[string]any{"type": "chat_response"},
	}
}

func (d *Dispatcher) handleOpenApp(intent *models.Intent) *models.ActionResult {
	err := d.system.OpenApplication(intent.Target, intent.ExecutableHints)
	return d.boolResult(intent, err,
		fmt.Sprintf("Couldn't find %s", intent.Target),
		map[string]any{"app_name": intent.Target})
}

func (d *Dispatcher) handleOpenFolder(intent *models.Intent) *models.ActionResult {
	err := d.system.OpenFolder(intent.Target, intent.FolderPaths)
	if err != nil {
		// Search fallback runs before any direct-path attempt: the folder
		// may live outside the known-folder map and path templates.
		if results, searchErr := d.files.Search(intent.Target, "", 1); searchErr == nil {
			for _, r := range results {
				if r.Type == "folder" {
					err = d.system.OpenFile(r.Path)
					break
				}
			}
		}
	}
	if err != nil {
		// Direct-path check is the last resolution step.
		if openErr := d.system.OpenFile(intent.Target); openErr == nil {
			err = nil
		}
	}
	return d.boolResult(intent, err,
		fmt.Sprintf("Couldn't find %s folder", intent.Target),
		map[string]any{"folder_name": intent.Target})
}

func (d *Dispatcher) handleSearchWeb(intent *models.Intent) *models.ActionResult {
	err := d.system.SearchWeb(intent.Target)
	return d.boolResult(intent, err, "Web search failed",
		map[string]any{"query": intent.Target})
}

func (d *Dispatcher) handleSearchYoutube(intent *models.Intent) *models.ActionResult {
	err := d.media.SearchYoutube(intent.Target)
	return d.boolResult(intent, err, "YouTube search failed",
		map[string]any{"query": intent.Target})
}

func (d *Dispatcher) handlePlayYoutube(ctx context.Context, intent *models.Intent) *models.ActionResult {
	if err := d.media.PlayYoutubeVideo(ctx, intent.Target); err == nil {
		return &models.ActionResult{
			Success:  true,
			Action:   "play_youtube",
			Response: d.responseOr(intent, fmt.Sprintf("Playing %s", intent.Target)),
			Data:     map[string]any{"video_query": intent.Target},
		}
	} else {
		d.log.Warnw("direct playback failed, falling back to search",
			"query", intent.Target, "error", err)
	}

	// Fallback: report the plain search's outcome, never a bare failure
	// from the resolver.
	searchErr := d.media.SearchYoutube(intent.Target)
	return &models.ActionResult{
		Success:  searchErr == nil,
		Action:   "play_youtube",
		Response: d.fallbackResponse(intent, searchErr),
		Data:     map[string]any{"video_query": intent.Target, "fallback": "search"},
	}
}

func (d *Dispatcher) fallbackResponse(intent *models.Intent, searchErr error) string {
	if searchErr != nil {
		return fmt.Sprintf("Couldn't play %s", intent.Target)
	}
	return fmt.Sprintf("Couldn't play %s directly, opened a YouTube search instead", intent.Target)
}

func (d *Dispatcher) handleOpenWebsite(ctx context.Context, intent *models.Intent) *models.ActionResult {
	url, err := d.media.OpenWebsite(ctx, intent.Target)
	return d.boolResult(intent, err,
		fmt.Sprintf("Couldn't open %s", intent.Target),
		map[string]any{"website": intent.Target, "url": url})
}

func (d *Dispatcher) handleTypeText(intent *models.Intent) *models.ActionResult {
	err := d.system.TypeText(intent.Target, defaultTypeInterval)
	return d.boolResult(intent, err, "Failed to type text",
		map[string]any{"text": intent.Target})
}

func (d *Dispatcher) handlePressKey(intent *models.Intent) *models.ActionResult {
	key := intent.ParamString("key", intent.Target)
	err := d.system.PressKey(key)
	return d.boolResult(intent, err, "Failed to press key",
		map[string]any{"key": key})
}

func (d *Dispatcher) handleScroll(intent *models.Intent) *models.ActionResult {
	direction := intent.ParamString("direction", intent.Target)
	if direction == "" {
		direction = "down"
	}
	direction = strings.ToLower(direction)
	amount := intent.ParamInt("amount", 3)

	// Direction is validated before any capability call; an invalid value
	// is a validation failure, not a capability failure.
	if !vision.ValidDirection(direction) {
		return &models.ActionResult{
			Success:  false,
			Action:   "scroll",
			Response: fmt.Sprintf("Invalid scroll direction: %s", direction),
			Data:     map[string]any{"direction": direction},
		}
	}

	err := d.vis.ScrollScreen(direction, amount)
	return d.boolResult(intent, err, "Failed to scroll",
		map[string]any{"direction": direction, "amount": amount})
}

func (d *Dispatcher) handleSearchFiles(intent *models.Intent) *models.ActionResult {
	fileType := intent.ParamString("file_type", "")
	results, err := d.files.Search(intent.Target, fileType, 0)
	if err != nil {
		return d.errorResult(intent.Action, err)
	}

	response := intent.Response
	if response == "" {
		response = fmt.Sprintf("Found %d results", len(results))
	}
	// The count is reported even when zero.
	return &models.ActionResult{
		Success:  len(results) > 0,
		Action:   "search_files",
		Response: response,
		Data: map[string]any{
			"query":     intent.Target,
			"file_type": fileType,
			"results":   results,
			"count":     len(results),
		},
	}
}

func (d *Dispatcher) handleOpenFile(intent *models.Intent) *models.ActionResult {
	results, err := d.files.Search(intent.Target, "", 1)
	if err == nil && len(results) > 0 {
		openErr := d.system.OpenFile(results[0].Path)
		return &models.ActionResult{
			Success:  openErr == nil,
			Action:   "open_file",
			Response: openResponse(openErr, results[0].Name),
			Data:     map[string]any{"file": results[0]},
		}
	}

	// Direct-path check as the last resolution step.
	if openErr := d.system.OpenFile(intent.Target); openErr == nil {
		return &models.ActionResult{
			Success:  true,
			Action:   "open_file",
			Response: fmt.Sprintf("Opening %s", intent.Target),
			Data:     map[string]any{"path": intent.Target},
		}
	}

	return &models.ActionResult{
		Success:  false,
		Action:   "open_file",
		Response: "File not found",
		Data:     map[string]any{"query": intent.Target},
	}
}

func openResponse(err error, name string) string {
	if err != nil {
		return fmt.Sprintf("Couldn't open %s", name)
	}
	return fmt.Sprintf("Opening %s", name)
}

func (d *Dispatcher) handleScreenClick(ctx context.Context, intent *models.Intent, originalCommand string) *models.ActionResult {
	analysis, err := d.vis.AnalyzeScreen(ctx, originalCommand)
	if err != nil {
		return d.errorResult(intent.Action, err)
	}

	// A click is attempted only when the verdict is CLICK, both
	// coordinates are present, and confidence is at least medium. There is
	// no blind-click path.
	if analysis.Action == models.VisionActionClick &&
		analysis.Position != nil &&
		analysis.Position.X != nil && analysis.Position.Y != nil &&
		vision.ConfidenceValue(analysis.Confidence) >= vision.ConfidenceValue("medium") {

		clickErr := d.vis.ClickPosition(*analysis.Position.X, *analysis.Position.Y)
		response := analysis.Response
		if response == "" {
			response = "Clicked"
		}
		if clickErr != nil {
			response = "Click failed"
		}
		return &models.ActionResult{
			Success:  clickErr == nil,
			Action:   "screen_click",
			Response: response,
			Data: map[string]any{
				"position":   analysis.Position,
				"confidence": analysis.Confidence,
			},
		}
	}

	return &models.ActionResult{
		Success:  false,
		Action:   "screen_click",
		Response: "Couldn't identify click target",
		Data:     map[string]any{"verdict": analysis.Action, "confidence": analysis.Confidence},
	}
}

func (d *Dispatcher) handleScreenAnalyze(ctx context.Context, intent *models.Intent, originalCommand string) *models.ActionResult {
	analysis, err := d.vis.AnalyzeScreen(ctx, originalCommand)
	if err != nil {
		return &models.ActionResult{
			Success:  false,
			Action:   "screen_analyze",
			Response: "Couldn't analyze screen",
			Error:    err.Error(),
		}
	}

	response := analysis.Response
	if response == "" {
		response = "Screen analyzed"
	}
	return &models.ActionResult{
		Success:  true,
		Action:   "screen_analyze",
		Response: response,
		Data:     map[string]any{"analysis": analysis},
	}
}

func (d *Dispatcher) handleSystemCommand(intent *models.Intent) *models.ActionResult {
	// Deny-list screening is independent of the sanitizer's generic checks
	// and runs before the provider is touched.
	lower := strings.ToLower(intent.Target)
	for _, denied := range deniedCommandSubstrings {
		if strings.Contains(lower, denied) {
			d.log.Warnw("blocked dangerous system command", "command", intent.Target)
			return &models.ActionResult{
				Success:  false,
				Action:   "system_command",
				Response: "Command blocked for safety",
				Data:     map[string]any{"command": intent.Target},
			}
		}
	}

	err := d.system.ExecuteSystemCommand(intent.Target)
	return d.boolResult(intent, err, "System command failed",
		map[string]any{"command": intent.Target})
}

// boolResult builds the standard success/failure result for a capability
// call: the interpreter's response text on success, the failure message
// otherwise.
func (d *Dispatcher) boolResult(intent *models.Intent, err error, failureResponse string, data map[string]any) *models.ActionResult {
	if err != nil {
		d.log.Warnw("action failed", "action", intent.Action, "target", intent.Target, "error", err)
		return &models.ActionResult{
			Success:  false,
			Action:   intent.Action.Slug(),
			Response: failureResponse,
			Data:     data,
			Error:    err.Error(),
		}
	}
	return &models.ActionResult{
		Success:  true,
		Action:   intent.Action.Slug(),
		Response: d.responseOr(intent, "Done"),
		Data:     data,
	}
}

func (d *Dispatcher) responseOr(intent *models.Intent, def string) string {
	if intent.Response != "" {
		return intent.Response
	}
	return def
}

// errorResult converts a provider error into the standard failure shape.
func (d *Dispatcher) errorResult(action models.Action, err error) *models.ActionResult {
	d.log.Errorw("action error", "action", action, "error", err)
	return &models.ActionResult{
		Success:  false,
		Action:   action.Slug(),
		Response: fmt.Sprintf("Error executing %s: %s", action, err.Error()),
		Error:    err.Error(),
	}
}
