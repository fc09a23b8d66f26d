package ratelimit

import (
	"testing"
	"time"
)

func newTestLimiter(classes map[string]ClassLimit) (*Limiter, *time.Time) {
	l := New(classes)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestAllowAdmitsExactlyMaxRequests(t *testing.T) {
	l, _ := newTestLimiter(map[string]ClassLimit{
		"command": {MaxRequests: 3, WindowSeconds: 60},
	})
	defer l.Close()

	for i := 0; i < 3; i++ {
		if !l.Allow("client-a", "command") {
			t.Fatalf("request %d should be admitted", i+1)
		}
	}
	if l.Allow("client-a", "command") {
		t.Error("request over the limit should be denied")
	}
	if got := l.Remaining("client-a", "command"); got != 0 {
		t.Errorf("Remaining = %d, want 0", got)
	}
}

func TestAllowAfterWindowExpiry(t *testing.T) {
	l, now := newTestLimiter(map[string]ClassLimit{
		"command": {MaxRequests: 2, WindowSeconds: 60},
	})
	defer l.Close()

	if !l.Allow("client-a", "command") || !l.Allow("client-a", "command") {
		t.Fatal("initial requests should be admitted")
	}
	if l.Allow("client-a", "command") {
		t.Fatal("third request inside the window should be denied")
	}

	*now = now.Add(61 * time.Second)

	if !l.Allow("client-a", "command") {
		t.Error("request after window expiry should be admitted")
	}
}

func TestIdentifiersAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(map[string]ClassLimit{
		"command": {MaxRequests: 1, WindowSeconds: 60},
	})
	defer l.Close()

	if !l.Allow("client-a", "command") {
		t.Fatal("client-a should be admitted")
	}
	if l.Allow("client-a", "command") {
		t.Fatal("client-a should now be denied")
	}
	if !l.Allow("client-b", "command") {
		t.Error("client-b should not share client-a's window")
	}
}

func TestClassesAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(map[string]ClassLimit{
		"command":     {MaxRequests: 1, WindowSeconds: 60},
		"file_search": {MaxRequests: 1, WindowSeconds: 60},
	})
	defer l.Close()

	if !l.Allow("client-a", "command") {
		t.Fatal("command should be admitted")
	}
	if !l.Allow("client-a", "file_search") {
		t.Error("file_search should have its own window")
	}
}

func TestUnknownClassIsAlwaysAllowed(t *testing.T) {
	l, _ := newTestLimiter(map[string]ClassLimit{
		"command": {MaxRequests: 1, WindowSeconds: 60},
	})
	defer l.Close()

	for i := 0; i < 100; i++ {
		if !l.Allow("client-a", "nonexistent") {
			t.Fatal("unknown class should never be denied")
		}
	}
	if got := l.Remaining("client-a", "nonexistent"); got != -1 {
		t.Errorf("Remaining for unknown class = %d, want -1", got)
	}
}

func TestDefaultClasses(t *testing.T) {
	classes := DefaultClasses()

	want := map[string]ClassLimit{
		"command":     {MaxRequests: 60, WindowSeconds: 60},
		"api_request": {MaxRequests: 1000, WindowSeconds: 3600},
		"file_search": {MaxRequests: 20, WindowSeconds: 60},
	}
	for name, limit := range want {
		if classes[name] != limit {
			t.Errorf("class %s = %+v, want %+v", name, classes[name], limit)
		}
	}
}
