package router_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/akshatworkmail12-bit/jarvis/internal/audit"
	"github.com/akshatworkmail12-bit/jarvis/internal/config"
	"github.com/akshatworkmail12-bit/jarvis/internal/database"
	"github.com/akshatworkmail12-bit/jarvis/internal/dispatch"
	"github.com/akshatworkmail12-bit/jarvis/internal/handlers"
	"github.com/akshatworkmail12-bit/jarvis/internal/interpreter"
	"github.com/akshatworkmail12-bit/jarvis/internal/llm"
	"github.com/akshatworkmail12-bit/jarvis/internal/models"
	"github.com/akshatworkmail12-bit/jarvis/internal/providers/files"
	"github.com/akshatworkmail12-bit/jarvis/internal/providers/media"
	"github.com/akshatworkmail12-bit/jarvis/internal/providers/system"
	"github.com/akshatworkmail12-bit/jarvis/internal/providers/vision"
	"github.com/akshatworkmail12-bit/jarvis/internal/providers/voice"
	"github.com/akshatworkmail12-bit/jarvis/internal/ratelimit"
	"github.com/akshatworkmail12-bit/jarvis/internal/router"
)

type noopLLM struct{}

func (noopLLM) Chat(_ context.Context, _ []llm.Message, _ bool) (string, error) {
	return `{"action": "CONVERSATION", "response": "hi"}`, nil
}

type noopSystem struct{}

func (noopSystem) OpenApplication(name string, hints []string) error  { return nil }
func (noopSystem) OpenFolder(name string, pathHints []string) error   { return nil }
func (noopSystem) OpenFile(path string) error                         { return nil }
func (noopSystem) TypeText(text string, interval time.Duration) error { return nil }
func (noopSystem) PressKey(combo string) error                        { return nil }
func (noopSystem) ExecuteSystemCommand(command string) error          { return nil }
func (noopSystem) SearchWeb(query string) error                       { return nil }

type noopVision struct{}

func (noopVision) AnalyzeScreen(ctx context.Context, query string) (*models.VisionAnalysis, error) {
	return &models.VisionAnalysis{Action: models.VisionActionNotFound}, nil
}
func (noopVision) ClickPosition(x, y float64) error                { return nil }
func (noopVision) ScrollScreen(direction string, amount int) error { return nil }

type noopMedia struct{}

func (noopMedia) PlayYoutubeVideo(ctx context.Context, query string) error { return nil }
func (noopMedia) SearchYoutube(query string) error                         { return nil }
func (noopMedia) OpenWebsite(ctx context.Context, siteName string) (string, error) {
	return "https://www." + siteName + ".com", nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	log := zap.NewNop().Sugar()

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}

	db, err := database.New(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatal(err)
	}

	limiter := ratelimit.New(cfg.RateLimits)
	t.Cleanup(limiter.Close)

	interp := interpreter.New(noopLLM{}, log)
	fileSvc := files.NewService([]string{t.TempDir()}, 10, log)
	disp := dispatch.New(noopSystem{}, noopVision{}, noopMedia{}, fileSvc, interp, log)
	sysSvc := system.NewService(log)
	mediaSvc := media.NewService(interp, log)
	visionSvc := vision.NewService(interp, log)
	voiceSvc := voice.NewService(false, "", log)
	auditSvc := audit.NewService(db, log)
	hub := handlers.NewHub(log)

	return router.New(cfg, limiter, log, router.Handlers{
		Commands: handlers.NewCommandHandler(interp, disp, sysSvc, voiceSvc, auditSvc, hub, log),
		Files:    handlers.NewFileHandler(fileSvc, noopSystem{}),
		Media:    handlers.NewMediaHandler(mediaSvc),
		System:   handlers.NewSystemHandler(sysSvc, voiceSvc, visionSvc),
		Audit:    handlers.NewAuditHandler(auditSvc),
		Events:   hub,
	})
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestVersionEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/version", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["version"] == "" {
		t.Error("expected version field")
	}
}

func TestFileSearchRequiresQuery(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/files/search", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestFileInfoMissingIs404(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/files/info?path=ghost.txt", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestMediaBrowseRejectsInvalidURL(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/media/browse", strings.NewReader(`{"url": "notaurl"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSystemStatusEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/system/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Data.Status != "operational" {
		t.Errorf("status = %q, want operational", body.Data.Status)
	}
}

func TestAPIRoutesCarryRateLimitHeaders(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/system/apps", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Header().Get("X-RateLimit-Limit") == "" {
		t.Error("expected X-RateLimit-Limit header on API routes")
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected security headers")
	}
}

func TestAuditRecentEmpty(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/audit/recent", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Count int `json:"count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !body.Success || body.Data.Count != 0 {
		t.Errorf("body = %s", w.Body.String())
	}
}
