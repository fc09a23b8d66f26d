// Package interpreter turns free-text commands into structured intents by
// round-tripping through the LLM and recovering JSON from its replies.
package interpreter

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/akshatworkmail12-bit/jarvis/internal/apperrors"
	"github.com/akshatworkmail12-bit/jarvis/internal/llm"
	"github.com/akshatworkmail12-bit/jarvis/internal/models"
)

// maxPromptApps caps how many detected application names are embedded in the
// interpretation prompt.
const maxPromptApps = 50

// Context carries situational information embedded into prompts.
type Context struct {
	DetectedApps []string
	SystemStatus string
	LastActions  []string
}

// Interpreter builds prompts, calls the LLM and recovers structured results.
type Interpreter struct {
	client llm.Client
	osType string
	log    *zap.SugaredLogger
}

// New creates an Interpreter bound to an LLM client.
func New(client llm.Client, log *zap.SugaredLogger) *Interpreter {
	return &Interpreter{
		client: client,
		osType: runtime.GOOS,
		log:    log,
	}
}

// Interpret turns a sanitized user command into an Intent. It fails with an
// LLM error only when the external call cannot be completed; an undecodable
// response degrades to a CONVERSATION intent instead.
func (i *Interpreter) Interpret(ctx context.Context, command string, ictx Context) (*models.Intent, error) {
	if strings.TrimSpace(command) == "" {
		return nil, apperrors.Validation("Command cannot be empty", "command")
	}

	i.log.Infow("interpreting command", "command", truncate(command, 100))

	prompt := i.buildCommandPrompt(command, ictx)
	raw, err := i.client.Chat(ctx, []llm.Message{llm.TextMessage("user", prompt)}, false)
	if err != nil {
		return nil, err
	}

	intent, decoded := recoverIntent(raw)
	if decoded {
		i.log.Infow("command interpreted", "action", intent.Action)
	} else {
		i.log.Warnw("no recoverable intent in response, degrading to conversation")
	}
	return intent, nil
}

func (i *Interpreter) buildCommandPrompt(command string, ictx Context) string {
	appsText := "Scanning..."
	if len(ictx.DetectedApps) > 0 {
		apps := ictx.DetectedApps
		if len(apps) > maxPromptApps {
			apps = apps[:maxPromptApps]
		}
		appsText = strings.Join(apps, ", ")
	}

	sysText := i.osType
	if ictx.SystemStatus != "" {
		sysText = i.osType + " (" + ictx.SystemStatus + ")"
	}

	return fmt.Sprintf(`You are Jarvis with COMPLETE system control capabilities.

CRITICAL: Respond with VALID JSON only. No markdown, no extra text.

Available Actions:
1. OPEN_APP - Open application
2. OPEN_FOLDER - Open folder
3. SEARCH_WEB - Google search
4. SEARCH_YOUTUBE - YouTube search (search only)
5. PLAY_YOUTUBE - Play YouTube video directly
6. OPEN_WEBSITE - Open website (for specific sites)
7. SCREEN_CLICK - Click on screen
8. SCREEN_ANALYZE - Analyze screen
9. TYPE_TEXT - Type text
10. PRESS_KEY - Press key/combination
11. SCROLL - Scroll up/down
12. SEARCH_FILES - Search files/folders
13. OPEN_FILE - Open specific file/folder
14. CONVERSATION - General chat
15. SYSTEM_COMMAND - Execute command

System: %s
Detected Apps: %s

JSON Format:
{
    "action": "ACTION_TYPE",
    "target": "target/query",
    "reasoning": "why this action",
    "executable_hints": ["possible", "executables"],
    "folder_paths": ["possible/paths"],
    "params": {"direction": "up/down", "amount": 3, "key": "enter"},
    "response": "user message"
}

CRITICAL YOUTUBE RULES:
1. PLAY_YOUTUBE = When user wants to PLAY/WATCH/LISTEN
   - Keywords: "play", "watch", "listen", "put on"
   - Examples: "play despacito", "watch tutorial", "listen to music"
2. SEARCH_YOUTUBE = ONLY when user explicitly says "search"
3. OPEN_WEBSITE = When opening YouTube homepage: target should be "youtube"

Examples:
"open chrome" -> {"action": "OPEN_APP", "target": "chrome", "response": "Opening Chrome"}
"play despacito" -> {"action": "PLAY_YOUTUBE", "target": "despacito", "response": "Playing despacito"}
"open youtube" -> {"action": "OPEN_WEBSITE", "target": "youtube", "response": "Opening YouTube"}
"scroll down" -> {"action": "SCROLL", "target": "down", "params": {"direction": "down", "amount": 3}, "response": "Scrolling"}

Now interpret: %s`, sysText, appsText, command)
}

// AnalyzeScreen runs the vision prompt contract against a base64 screenshot.
// An undecodable reply degrades to an INFORMATION verdict carrying the raw
// text; only a failed call is an error.
func (i *Interpreter) AnalyzeScreen(ctx context.Context, screenshotBase64, query string) (*models.VisionAnalysis, error) {
	prompt := fmt.Sprintf(`Analyze this screenshot and help with: "%s"

Respond with JSON ONLY:
{
    "action": "CLICK" | "INFORMATION" | "NOT_FOUND",
    "target_description": "what to interact with",
    "approximate_position": {"x": percent_x, "y": percent_y},
    "confidence": "high" | "medium" | "low",
    "reasoning": "what you found",
    "response": "user message"
}

For clicks: provide x,y as percentages (0-100) of screen size.
For information: describe what you see.`, query)

	raw, err := i.client.Chat(ctx, []llm.Message{llm.VisionMessage(prompt, screenshotBase64)}, true)
	if err != nil {
		return nil, err
	}

	analysis, decoded := recoverVisionAnalysis(raw)
	if decoded {
		i.log.Infow("screen analysis completed", "verdict", analysis.Action)
	} else {
		i.log.Warnw("no recoverable vision analysis, degrading to information verdict")
	}
	return analysis, nil
}

// ConversationReply generates a natural-language reply, with recent actions
// as context. This contract is schema-free.
func (i *Interpreter) ConversationReply(ctx context.Context, message string, lastActions []string) (string, error) {
	var b strings.Builder
	if len(lastActions) > 0 {
		recent := lastActions
		if len(recent) > 3 {
			recent = recent[len(recent)-3:]
		}
		fmt.Fprintf(&b, "Recent actions: %s\n", strings.Join(recent, ", "))
	}
	fmt.Fprintf(&b, "\nUser message: %q\n\n", message)
	b.WriteString("Respond naturally as a helpful AI assistant. Be concise but friendly. No need for JSON formatting.")

	raw, err := i.client.Chat(ctx, []llm.Message{llm.TextMessage("user", b.String())}, false)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
