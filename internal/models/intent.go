package models

// Intent is the structured result of interpreting a natural-language command.
type Intent struct {
	Action          Action         `json:"action"`
	Target          string         `json:"target"`
	Reasoning       string         `json:"reasoning"`
	ExecutableHints []string       `json:"executable_hints"`
	FolderPaths     []string       `json:"folder_paths"`
	Params          map[string]any `json:"params"`
	Response        string         `json:"response"`
}

// ParamString returns a string parameter, falling back to def when the key
// is missing or not a string.
func (i *Intent) ParamString(key, def string) string {
	if i.Params == nil {
		return def
	}
	if v, ok := i.Params[key].(string); ok && v != "" {
		return v
	}
	return def
}

// ParamInt returns an integer parameter. JSON numbers decode as float64, so
// both forms are accepted.
func (i *Intent) ParamInt(key string, def int) int {
	if i.Params == nil {
		return def
	}
	switch v := i.Params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

// Position is a screen coordinate expressed as percentages (0-100) of the
// screen dimensions. Pointers distinguish "absent" from zero.
type Position struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

// Vision analysis verdicts.
const (
	VisionActionClick       = "CLICK"
	VisionActionInformation = "INFORMATION"
	VisionActionNotFound    = "NOT_FOUND"
)

// VisionAnalysis is the structured result of a screen-vision sub-analysis.
type VisionAnalysis struct {
	Action            string    `json:"action"`
	TargetDescription string    `json:"target_description"`
	Position          *Position `json:"approximate_position"`
	Confidence        string    `json:"confidence"`
	Reasoning         string    `json:"reasoning"`
	Response          string    `json:"response"`
}
