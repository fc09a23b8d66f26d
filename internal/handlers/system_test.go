package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/akshatworkmail12-bit/jarvis/internal/apperrors"
	"github.com/akshatworkmail12-bit/jarvis/internal/handlers"
	"github.com/akshatworkmail12-bit/jarvis/internal/providers/system"
	"github.com/akshatworkmail12-bit/jarvis/internal/providers/voice"
)

type stubClicker struct {
	descriptions []string
	thresholds   []float64
	err          error
}

func (s *stubClicker) FindAndClickElement(_ context.Context, description string, threshold float64) error {
	s.descriptions = append(s.descriptions, description)
	s.thresholds = append(s.thresholds, threshold)
	return s.err
}

func newSystemRouter(t *testing.T) (*gin.Engine, *stubClicker) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop().Sugar()

	clicker := &stubClicker{}
	h := handlers.NewSystemHandler(system.NewService(log), voice.NewService(false, "", log), clicker)

	r := gin.New()
	r.GET("/status", h.Status)
	r.POST("/screen/click", h.ScreenClick)
	return r, clicker
}

func TestSystemStatusReportsVoice(t *testing.T) {
	r, _ := newSystemRouter(t)

	w := getPath(r, "/status")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Status string `json:"status"`
			Voice  struct {
				Enabled  bool `json:"enabled"`
				Speaking bool `json:"speaking"`
			} `json:"voice"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !body.Success || body.Data.Status != "operational" {
		t.Errorf("body = %s", w.Body.String())
	}
	if body.Data.Voice.Enabled || body.Data.Voice.Speaking {
		t.Errorf("voice = %+v, want disabled and silent", body.Data.Voice)
	}
}

func TestScreenClickDefaultsThreshold(t *testing.T) {
	r, clicker := newSystemRouter(t)

	w := postJSON(r, "/screen/click", `{"description": "the save button"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if len(clicker.descriptions) != 1 || clicker.descriptions[0] != "the save button" {
		t.Errorf("descriptions = %v", clicker.descriptions)
	}
	if len(clicker.thresholds) != 1 || clicker.thresholds[0] != 0.7 {
		t.Errorf("thresholds = %v, want [0.7]", clicker.thresholds)
	}
}

func TestScreenClickMissingDescription(t *testing.T) {
	r, clicker := newSystemRouter(t)

	w := postJSON(r, "/screen/click", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if len(clicker.descriptions) != 0 {
		t.Errorf("clicker must not be called, got %v", clicker.descriptions)
	}
}

func TestScreenClickElementNotFound(t *testing.T) {
	r, clicker := newSystemRouter(t)
	clicker.err = apperrors.Vision("element not found", "find_and_click", "the save button")

	w := postJSON(r, "/screen/click", `{"description": "the save button"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	var body struct {
		Error struct {
			Code string `json:"error_code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Error.Code != "VISION_ERROR" {
		t.Errorf("error_code = %q, want VISION_ERROR", body.Error.Code)
	}
}
