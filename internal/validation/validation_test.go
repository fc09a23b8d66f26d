package validation_test

import (
	"strings"
	"testing"

	"github.com/akshatworkmail12-bit/jarvis/internal/validation"
)

func TestSanitizeStripsDangerousPatterns(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"script tag", `open <script>alert(1)</script>chrome`, "open chrome"},
		{"javascript scheme", "go to javascript:void(0)", "go to void(0)"},
		{"event handler", `click onload= something`, "click something"},
		{"eval call", "run eval (code)", "run code)"},
		{"spliced pattern", "ev<script></script>al(1)", "1)"},
		{"plain text", "open chrome", "open chrome"},
		{"whitespace collapse", "open    chrome\n\tnow", "open chrome now"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validation.Sanitize(tt.input)
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"open chrome",
		`<script>alert("x")</script>hello`,
		"tom & jerry",
		"a < b && b > c",
		"&amp;amp;",
	}

	for _, input := range inputs {
		once := validation.Sanitize(input)
		twice := validation.Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestValidateCommand(t *testing.T) {
	if _, err := validation.ValidateCommand(""); err == nil {
		t.Error("expected error for empty command")
	}
	if _, err := validation.ValidateCommand("   "); err == nil {
		t.Error("expected error for blank command")
	}
	if _, err := validation.ValidateCommand(strings.Repeat("a", 10001)); err == nil {
		t.Error("expected error for oversized command")
	}
	if _, err := validation.ValidateCommand("open ../etc/passwd"); err == nil {
		t.Error("expected error for path traversal")
	}
	if _, err := validation.ValidateCommand(`run \x41\x42`); err == nil {
		t.Error("expected error for hex escapes")
	}
	if _, err := validation.ValidateCommand("open %2e%2e"); err == nil {
		t.Error("expected error for percent escapes")
	}

	got, err := validation.ValidateCommand("  open chrome  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "open chrome" {
		t.Errorf("expected sanitized command, got %q", got)
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"docs/report.pdf", false},
		{"file.txt", false},
		{"", true},
		{"../secret", true},
		{"a/../../b", true},
		{"/etc/passwd", true},
		{`bad<name>.txt`, true},
		{"what?.txt", true},
	}

	for _, tt := range tests {
		_, err := validation.ValidatePath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
	}
}

func TestValidateURL(t *testing.T) {
	valid := []string{
		"https://example.com",
		"http://example.com/path?q=1",
		"https://sub.example.co.uk",
		"http://localhost:8080",
		"http://192.168.1.1/admin",
	}
	for _, u := range valid {
		if _, err := validation.ValidateURL(u); err != nil {
			t.Errorf("ValidateURL(%q) unexpected error: %v", u, err)
		}
	}

	invalid := []string{
		"",
		"ftp://example.com",
		"example.com",
		"https://",
		"javascript:alert(1)",
	}
	for _, u := range invalid {
		if _, err := validation.ValidateURL(u); err == nil {
			t.Errorf("ValidateURL(%q) expected error", u)
		}
	}
}

func TestValidateFileExtension(t *testing.T) {
	if !validation.ValidateFileExtension("photo.JPG", "images") {
		t.Error("expected .JPG to be a valid image")
	}
	if validation.ValidateFileExtension("photo.jpg", "documents") {
		t.Error("expected .jpg to be rejected for documents")
	}
	if !validation.ValidateFileExtension("notes.txt", "") {
		t.Error("expected .txt to be valid in any category")
	}
	if validation.ValidateFileExtension("payload.exe", "") {
		t.Error("expected .exe to be rejected")
	}
	if validation.ValidateFileExtension("", "images") {
		t.Error("expected empty path to be rejected")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "unnamed"},
		{"report.pdf", "report.pdf"},
		{"/tmp/../etc/passwd", "passwd"},
		{`a<b>c.txt`, "a_b_c.txt"},
	}

	for _, tt := range tests {
		if got := validation.SanitizeFilename(tt.input); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
