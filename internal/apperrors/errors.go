// Package apperrors defines the typed error taxonomy shared across the
// command pipeline. Every error carries a stable error_code for the API
// envelope plus a details map for diagnostics.
package apperrors

import "fmt"

// Stable error codes surfaced to API clients.
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeRateLimit   = "RATE_LIMIT_ERROR"
	CodeLLM         = "LLM_ERROR"
	CodeCommand     = "COMMAND_ERROR"
	CodeSystem      = "SYSTEM_ERROR"
	CodeApplication = "APPLICATION_ERROR"
	CodeVision      = "VISION_ERROR"
	CodeVoice       = "VOICE_ERROR"
	CodeFileSearch  = "FILE_SEARCH_ERROR"
	CodeNotFound    = "FILE_NOT_FOUND"
	CodeUnknown     = "UNKNOWN_ERROR"
)

// Error is a structured application error.
type Error struct {
	Code    string         `json:"error_code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Validation reports malformed or unsafe input for a named field.
func Validation(message, field string) *Error {
	details := map[string]any{}
	if field != "" {
		details["field"] = field
	}
	return &Error{Code: CodeValidation, Message: message, Details: details}
}

// RateLimit reports an admission denial with the configured limit and a
// reset hint in Unix seconds.
func RateLimit(message string, limit int, resetTime int64) *Error {
	return &Error{
		Code:    CodeRateLimit,
		Message: message,
		Details: map[string]any{"limit": limit, "reset_time": resetTime},
	}
}

// LLM reports a failed or unusable external interpretation call.
func LLM(message, provider, model string) *Error {
	details := map[string]any{}
	if provider != "" {
		details["provider"] = provider
	}
	if model != "" {
		details["model"] = model
	}
	return &Error{Code: CodeLLM, Message: message, Details: details}
}

// Command reports that interpretation produced no usable intent.
func Command(message, command string) *Error {
	details := map[string]any{}
	if command != "" {
		details["command"] = command
	}
	return &Error{Code: CodeCommand, Message: message, Details: details}
}

// System reports a failed OS-level operation against a target.
func System(message, operation, target string) *Error {
	return operational(CodeSystem, message, operation, target)
}

// Application reports a failed application-level operation.
func Application(message, operation, target string) *Error {
	return operational(CodeApplication, message, operation, target)
}

// Vision reports a failed screen-vision operation.
func Vision(message, operation, target string) *Error {
	return operational(CodeVision, message, operation, target)
}

// Voice reports a failed speech operation.
func Voice(message, operation string) *Error {
	return operational(CodeVoice, message, operation, "")
}

// FileSearch reports a failed file lookup or listing.
func FileSearch(message, operation, target string) *Error {
	return operational(CodeFileSearch, message, operation, target)
}

// NotFound reports a path that does not exist beneath any allowed location.
func NotFound(message, path string) *Error {
	details := map[string]any{}
	if path != "" {
		details["path"] = path
	}
	return &Error{Code: CodeNotFound, Message: message, Details: details}
}

func operational(code, message, operation, target string) *Error {
	details := map[string]any{}
	if operation != "" {
		details["operation"] = operation
	}
	if target != "" {
		details["target"] = target
	}
	return &Error{Code: code, Message: message, Details: details}
}
