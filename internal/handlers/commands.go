package handlers

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/akshatworkmail12-bit/jarvis/internal/apperrors"
	"github.com/akshatworkmail12-bit/jarvis/internal/audit"
	"github.com/akshatworkmail12-bit/jarvis/internal/dispatch"
	"github.com/akshatworkmail12-bit/jarvis/internal/interpreter"
	"github.com/akshatworkmail12-bit/jarvis/internal/middleware"
	"github.com/akshatworkmail12-bit/jarvis/internal/models"
	"github.com/akshatworkmail12-bit/jarvis/internal/providers/system"
	"github.com/akshatworkmail12-bit/jarvis/internal/providers/voice"
	"github.com/akshatworkmail12-bit/jarvis/internal/validation"
)

// CommandHandler runs the full command pipeline: validation, interpretation,
// dispatch, audit and optional speech.
type CommandHandler struct {
	interp *interpreter.Interpreter
	disp   *dispatch.Dispatcher
	system *system.Service
	voice  *voice.Service
	audit  *audit.Service
	events *Hub
	log    *zap.SugaredLogger
}

// NewCommandHandler creates a new CommandHandler instance.
func NewCommandHandler(interp *interpreter.Interpreter, disp *dispatch.Dispatcher,
	sys *system.Service, vc *voice.Service, aud *audit.Service, events *Hub,
	log *zap.SugaredLogger) *CommandHandler {
	return &CommandHandler{
		interp: interp,
		disp:   disp,
		system: sys,
		voice:  vc,
		audit:  aud,
		events: events,
		log:    log,
	}
}

// Execute interprets a free-text command and dispatches the resulting action.
func (h *CommandHandler) Execute(c *gin.Context) {
	var req models.ExecuteCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("Command is required", "command"))
		return
	}

	sanitized, err := validation.ValidateCommand(req.Command)
	if err != nil {
		respondError(c, err)
		return
	}

	start := time.Now()

	intent, err := h.interp.Interpret(c.Request.Context(), sanitized, interpreter.Context{
		DetectedApps: h.system.InstalledApps(),
		LastActions:  req.LastActions,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	result := h.disp.Dispatch(c.Request.Context(), intent, sanitized)
	result.ExecutionTime = time.Since(start).Seconds()

	h.audit.LogAction(c.GetString(middleware.RequestIDKey), c.ClientIP(), sanitized, result)

	if result.Response != "" {
		h.voice.Speak(result.Response)
	}

	h.events.Broadcast(Event{
		Type: "action_result",
		Data: result,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
		"interpretation": models.Interpretation{
			Action:    intent.Action,
			Target:    intent.Target,
			Reasoning: intent.Reasoning,
		},
	})
}

// Interpret returns the structured intent for a command without executing it.
func (h *CommandHandler) Interpret(c *gin.Context) {
	var req models.ExecuteCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("Command is required", "command"))
		return
	}

	sanitized, err := validation.ValidateCommand(req.Command)
	if err != nil {
		respondError(c, err)
		return
	}

	intent, err := h.interp.Interpret(c.Request.Context(), sanitized, interpreter.Context{
		DetectedApps: h.system.InstalledApps(),
		LastActions:  req.LastActions,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": intent})
}

// seedCommands is the static completion pool, merged with detected apps.
var seedCommands = []string{
	"open chrome",
	"open downloads folder",
	"search for",
	"play music on youtube",
	"scroll down",
	"take a screenshot and tell me what you see",
	"type hello world",
	"press enter",
	"find my documents",
	"what can you do",
}

// Suggest returns command completions for a partial input.
func (h *CommandHandler) Suggest(c *gin.Context) {
	var req models.SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("Partial command is required", "partial_command"))
		return
	}

	partial := strings.ToLower(validation.Sanitize(req.PartialCommand))
	if partial == "" {
		respondError(c, apperrors.Validation("Partial command is required", "partial_command"))
		return
	}

	pool := make([]string, 0, len(seedCommands))
	pool = append(pool, seedCommands...)
	for _, app := range h.system.InstalledApps() {
		pool = append(pool, "open "+app)
	}

	var suggestions []string
	for _, cmd := range pool {
		if strings.HasPrefix(strings.ToLower(cmd), partial) {
			suggestions = append(suggestions, cmd)
		}
	}
	sort.Strings(suggestions)
	if len(suggestions) > 5 {
		suggestions = suggestions[:5]
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"suggestions": suggestions},
	})
}
