package models

// ActionResult is the outcome of dispatching one interpreted command.
// It is created once by the dispatcher and never mutated afterwards.
type ActionResult struct {
	Success       bool           `json:"success"`
	Action        string         `json:"action"`
	Response      string         `json:"response"`
	Data          map[string]any `json:"data,omitempty"`
	Error         string         `json:"error,omitempty"`
	ExecutionTime float64        `json:"execution_time,omitempty"`
}

// FileResult describes one file-search match.
type FileResult struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Size      int64  `json:"size"`
	Extension string `json:"extension,omitempty"`
	Modified  string `json:"modified,omitempty"`
}
