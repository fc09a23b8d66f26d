package vision_test

import (
	"testing"

	"github.com/akshatworkmail12-bit/jarvis/internal/providers/vision"
)

func TestValidDirection(t *testing.T) {
	for _, dir := range []string{"up", "down", "left", "right"} {
		if !vision.ValidDirection(dir) {
			t.Errorf("%q should be valid", dir)
		}
	}
	for _, dir := range []string{"", "sideways", "UP", "diagonal"} {
		if vision.ValidDirection(dir) {
			t.Errorf("%q should be invalid", dir)
		}
	}
}

func TestConfidenceValue(t *testing.T) {
	tests := []struct {
		confidence string
		want       float64
	}{
		{"high", 0.9},
		{"HIGH", 0.9},
		{"medium", 0.7},
		{"low", 0.3},
		{"", 0.5},
		{"unsure", 0.5},
	}
	for _, tt := range tests {
		if got := vision.ConfidenceValue(tt.confidence); got != tt.want {
			t.Errorf("ConfidenceValue(%q) = %v, want %v", tt.confidence, got, tt.want)
		}
	}
}
