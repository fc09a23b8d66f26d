package interpreter

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/akshatworkmail12-bit/jarvis/internal/models"
)

// LLM replies wrap JSON in prose or code fences often enough that recovery
// is a two-stage parse: strip fence markers, extract the widest {...} span,
// then decode. Decode failure is a normal path, not an error.

var fencePattern = regexp.MustCompile("```json\\s*|\\s*```")

// extractBraceSpan returns the substring from the first '{' to the last '}'
// (a greedy match), or "" when no such span exists.
func extractBraceSpan(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}

// recoverIntent decodes an Intent from raw LLM output. The second return
// value reports whether structured JSON was recovered; when false, the
// intent is the CONVERSATION fallback carrying the trimmed raw text.
func recoverIntent(raw string) (*models.Intent, bool) {
	text := strings.TrimSpace(fencePattern.ReplaceAllString(strings.TrimSpace(raw), ""))

	if span := extractBraceSpan(text); span != "" {
		var intent models.Intent
		if err := json.Unmarshal([]byte(span), &intent); err == nil && intent.Action != "" {
			if intent.Params == nil {
				intent.Params = map[string]any{}
			}
			return &intent, true
		}
	}

	return &models.Intent{
		Action:          models.ActionConversation,
		Reasoning:       "Parse error - treating as conversation",
		ExecutableHints: []string{},
		FolderPaths:     []string{},
		Params:          map[string]any{},
		Response:        text,
	}, false
}

// recoverVisionAnalysis decodes a VisionAnalysis, degrading to a neutral
// INFORMATION verdict at screen center when no JSON can be recovered.
func recoverVisionAnalysis(raw string) (*models.VisionAnalysis, bool) {
	text := strings.TrimSpace(fencePattern.ReplaceAllString(strings.TrimSpace(raw), ""))

	if span := extractBraceSpan(text); span != "" {
		var analysis models.VisionAnalysis
		if err := json.Unmarshal([]byte(span), &analysis); err == nil && analysis.Action != "" {
			return &analysis, true
		}
	}

	center := 50.0
	return &models.VisionAnalysis{
		Action:            models.VisionActionInformation,
		TargetDescription: "general screen content",
		Position:          &models.Position{X: &center, Y: &center},
		Confidence:        "medium",
		Reasoning:         "Could not parse structured response",
		Response:          text,
	}, false
}
