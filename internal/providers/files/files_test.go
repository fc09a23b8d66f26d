package files_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/akshatworkmail12-bit/jarvis/internal/apperrors"
	"github.com/akshatworkmail12-bit/jarvis/internal/providers/files"
)

func newTestService(t *testing.T) (*files.Service, string) {
	t.Helper()
	dir := t.TempDir()

	for _, name := range []string{"report.pdf", "Report-2024.txt", "notes.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "reports", "archive"), 0750); err != nil {
		t.Fatal(err)
	}

	return files.NewService([]string{dir}, 50, zap.NewNop().Sugar()), dir
}

func TestSearchMatchesCaseInsensitively(t *testing.T) {
	svc, _ := newTestService(t)

	results, err := svc.Search("REPORT", "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3 (two files plus the reports folder)", len(results))
	}

	// Folders sort before files.
	if results[0].Type != "folder" || results[0].Name != "reports" {
		t.Errorf("first result = %+v, want the reports folder", results[0])
	}
}

func TestSearchExtensionFilter(t *testing.T) {
	svc, _ := newTestService(t)

	results, err := svc.Search("report", "pdf", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Name != "report.pdf" {
		t.Errorf("results = %+v, want only report.pdf", results)
	}
	if results[0].Extension != ".pdf" {
		t.Errorf("extension = %q, want .pdf", results[0].Extension)
	}
}

func TestSearchRespectsMaxResults(t *testing.T) {
	svc, _ := newTestService(t)

	results, err := svc.Search("report", "", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("results = %d, want 1", len(results))
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Search("  ", "", 0); err == nil {
		t.Error("expected error for blank query")
	}
}

func TestSearchMissingLocationIsSkipped(t *testing.T) {
	svc := files.NewService([]string{"/nonexistent/location"}, 10, zap.NewNop().Sugar())

	results, err := svc.Search("anything", "", 0)
	if err != nil {
		t.Fatalf("missing location should not be an error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %d, want 0", len(results))
	}
}

func TestInfoDescribesFile(t *testing.T) {
	svc, dir := newTestService(t)

	result, err := svc.Info("report.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Name != "report.pdf" || result.Type != "file" {
		t.Errorf("result = %+v", result)
	}
	if result.Path != filepath.Join(dir, "report.pdf") {
		t.Errorf("path = %q, want resolution beneath the search location", result.Path)
	}
	if result.Extension != ".pdf" {
		t.Errorf("extension = %q, want .pdf", result.Extension)
	}
}

func TestInfoNestedFolder(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.Info(filepath.Join("reports", "archive"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Type != "folder" || result.Name != "archive" {
		t.Errorf("result = %+v, want the archive folder", result)
	}
}

func TestInfoMissingPath(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Info("no-such-file.txt")
	if err == nil {
		t.Fatal("expected error for missing path")
	}
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeNotFound {
		t.Errorf("err = %v, want %s", err, apperrors.CodeNotFound)
	}
}

func TestListFoldersFirstSkipsHidden(t *testing.T) {
	svc, dir := newTestService(t)
	if err := os.WriteFile(filepath.Join(dir, ".secret"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	entries, err := svc.List(".", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("entries = %d, want 4 without the hidden file", len(entries))
	}
	if entries[0].Type != "folder" || entries[0].Name != "reports" {
		t.Errorf("first entry = %+v, want the reports folder", entries[0])
	}

	entries, err = svc.List(".", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 5 {
		t.Errorf("entries = %d, want 5 with the hidden file", len(entries))
	}
}

func TestListRejectsFile(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.List("notes.md", false); err == nil {
		t.Error("listing a file should fail")
	}
}

func TestCreateFileAndDirectory(t *testing.T) {
	svc, dir := newTestService(t)

	result, err := svc.Create("todo.txt", "file")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Type != "file" || result.Name != "todo.txt" {
		t.Errorf("result = %+v", result)
	}
	if _, err := os.Stat(filepath.Join(dir, "todo.txt")); err != nil {
		t.Errorf("created file missing: %v", err)
	}

	result, err = svc.Create("projects", "directory")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Type != "folder" {
		t.Errorf("result = %+v, want a folder", result)
	}
}

func TestCreateNestedUnderExistingFolder(t *testing.T) {
	svc, dir := newTestService(t)

	if _, err := svc.Create(filepath.Join("reports", "summary.txt"), "file"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "reports", "summary.txt")); err != nil {
		t.Errorf("created file missing: %v", err)
	}
}

func TestCreateRejectsExistingPath(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Create("report.pdf", "file"); err == nil {
		t.Error("creating over an existing path should fail")
	}
}

func TestCreateRejectsUnknownType(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Create("thing.txt", "symlink"); err == nil {
		t.Error("unknown create type should fail")
	}
}
