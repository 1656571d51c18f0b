package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(r.RemoteAddr))
})

func decodeCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body["code"]
}

// -----------------------------------------------------------------------------
// Auth Tests
// -----------------------------------------------------------------------------

func TestRequireAPIKey(t *testing.T) {
	h := RequireAPIKey([]string{"key-a", "key-b"})(okHandler)

	tests := []struct {
		name       string
		key        string
		wantStatus int
		wantCode   string
	}{
		{"missing", "", http.StatusUnauthorized, "AUTH001"},
		{"invalid", "key-c", http.StatusForbidden, "AUTH002"},
		{"second key", "key-b", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
			if tt.key != "" {
				req.Header.Set("X-API-Key", tt.key)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantCode != "" {
				if got := decodeCode(t, rec); got != tt.wantCode {
					t.Errorf("code = %q, want %q", got, tt.wantCode)
				}
			}
		})
	}
}

func TestRequireAPIKey_NoKeysConfigured(t *testing.T) {
	h := RequireAPIKey(nil)(okHandler)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/refresh", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

// -----------------------------------------------------------------------------
// RealIP Tests
// -----------------------------------------------------------------------------

func TestTrustedRealIP(t *testing.T) {
	h := TrustedRealIP([]string{"10.0.0.0/8", "192.168.1.5", "not-an-ip"})(okHandler)

	tests := []struct {
		name    string
		remote  string
		headers map[string]string
		want    string
	}{
		{"trusted cidr real ip", "10.1.2.3:5000", map[string]string{"X-Real-IP": "203.0.113.7"}, "203.0.113.7"},
		{"trusted single forwarded", "192.168.1.5:80", map[string]string{"X-Forwarded-For": "198.51.100.2, 10.0.0.1"}, "198.51.100.2"},
		{"untrusted keeps remote", "203.0.113.9:4000", map[string]string{"X-Real-IP": "1.2.3.4"}, "203.0.113.9:4000"},
		{"trusted invalid header", "10.1.2.3:5000", map[string]string{"X-Real-IP": "garbage"}, "10.1.2.3:5000"},
		{"trusted no header", "10.1.2.3:5000", nil, "10.1.2.3:5000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if got := rec.Body.String(); got != tt.want {
				t.Errorf("RemoteAddr = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		remote string
		want   string
	}{
		{"10.0.0.1:1234", "10.0.0.1"},
		{"[::1]:80", "::1"},
		{"203.0.113.7", "203.0.113.7"},
		{"pipe", "pipe"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = tt.remote
		if got := ClientIP(req); got != tt.want {
			t.Errorf("ClientIP(%q) = %q, want %q", tt.remote, got, tt.want)
		}
	}
}

// -----------------------------------------------------------------------------
// Rate Limit Tests
// -----------------------------------------------------------------------------

func TestRateLimiter_Allow(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(3, []string{"10.0.0.9"})
	rl.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d rejected, want allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("4th request allowed, want rejected")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("other client rejected, want allowed")
	}
	for i := 0; i < 10; i++ {
		if !rl.Allow("10.0.0.9") {
			t.Fatal("exempt client rejected")
		}
	}

	// One token refills every 20 seconds at 3 per minute.
	now = now.Add(21 * time.Second)
	if !rl.Allow("10.0.0.1") {
		t.Error("request after refill rejected, want allowed")
	}
}

func TestRateLimiter_SweepsIdleVisitors(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(10, nil)
	rl.now = func() time.Time { return now }

	rl.Allow("10.0.0.1")
	rl.Allow("10.0.0.2")
	if got := rl.Visitors(); got != 2 {
		t.Fatalf("Visitors() = %d, want 2", got)
	}

	now = now.Add(2 * visitorIdle)
	rl.Allow("10.0.0.3")
	if got := rl.Visitors(); got != 1 {
		t.Errorf("Visitors() after sweep = %d, want 1", got)
	}
}

func TestRateLimiter_Handler(t *testing.T) {
	rl := NewRateLimiter(1, nil)
	h := rl.Handler(okHandler)

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/materials", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d, want 200", first.Code)
	}

	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/materials", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second status = %d, want 429", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}
	if got := decodeCode(t, second); got != "RATE001" {
		t.Errorf("code = %q, want RATE001", got)
	}
}

// -----------------------------------------------------------------------------
// Logger Tests
// -----------------------------------------------------------------------------

type recordedRequest struct {
	method, route string
	status        int
}

type fakeRecorder struct {
	mu   sync.Mutex
	seen []recordedRequest
}

func (f *fakeRecorder) RecordRequest(method, route string, status int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, recordedRequest{method, route, status})
}

func TestLogger_RecordsRoutePattern(t *testing.T) {
	fr := &fakeRecorder{}
	r := chi.NewRouter()
	r.Use(Logger(fr))
	r.Get("/api/robots/{model}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, path := range []string{"/api/robots/A", "/api/robots/B", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	want := []recordedRequest{
		{http.MethodGet, "/api/robots/{model}", http.StatusNotFound},
		{http.MethodGet, "/api/robots/{model}", http.StatusNotFound},
		{http.MethodGet, "unmatched", http.StatusNotFound},
	}
	if len(fr.seen) != len(want) {
		t.Fatalf("recorded %d requests, want %d", len(fr.seen), len(want))
	}
	for i := range want {
		if fr.seen[i] != want[i] {
			t.Errorf("seen[%d] = %+v, want %+v", i, fr.seen[i], want[i])
		}
	}
}

func TestLogger_NilRecorder(t *testing.T) {
	h := Logger(nil)(okHandler)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
