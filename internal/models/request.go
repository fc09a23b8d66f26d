package models

import "time"

// ExecuteCommandRequest is the inbound shape for command execution and
// interpretation endpoints.
type ExecuteCommandRequest struct {
	Command     string   `json:"command" binding:"required"`
	UserID      string   `json:"user_id"`
	LastActions []string `json:"last_actions"`
}

// SuggestRequest asks for completions of a partially typed command.
type SuggestRequest struct {
	PartialCommand string `json:"partial_command" binding:"required"`
}

// Interpretation is the summary of an Intent echoed back to the caller.
type Interpretation struct {
	Action    Action `json:"action"`
	Target    string `json:"target"`
	Reasoning string `json:"reasoning"`
}

// AuditEntry is one recorded dispatch, kept for diagnostics.
type AuditEntry struct {
	ID            string    `json:"id"`
	RequestID     string    `json:"request_id"`
	ClientIP      string    `json:"client_ip"`
	Command       string    `json:"command"`
	Action        string    `json:"action"`
	Success       bool      `json:"success"`
	Response      string    `json:"response"`
	ExecutionTime float64   `json:"execution_time"`
	CreatedAt     time.Time `json:"created_at"`
}
