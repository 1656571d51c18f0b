package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/JonMunkholm/industrialdepot/internal/core"
)

// value returns the sample of a counter or gauge with the given labels.
func value(t *testing.T, reg prometheus.Gatherer, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue metrics
				}
			}
			if c := m.GetCounter(); c != nil {
				return c.GetValue()
			}
			if g := m.GetGauge(); g != nil {
				return g.GetValue()
			}
			if h := m.GetHistogram(); h != nil {
				return float64(h.GetSampleCount())
			}
		}
	}
	t.Fatalf("metric %s%v not found", name, labels)
	return 0
}

func TestRecorder_TableLoaded(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	stats := core.ParseStats{Lines: 5, Kept: 3, Malformed: 1, Rejected: 1}
	r.TableLoaded("laser_cut", stats, 512, false, 10*time.Millisecond)
	r.TableLoaded("laser_cut", stats, 512, true, time.Millisecond)

	if got := value(t, reg, "catalog_table_loads_total", map[string]string{"table": "laser_cut", "cached": "false"}); got != 1 {
		t.Errorf("loads{cached=false} = %v, want 1", got)
	}
	if got := value(t, reg, "catalog_table_loads_total", map[string]string{"table": "laser_cut", "cached": "true"}); got != 1 {
		t.Errorf("loads{cached=true} = %v, want 1", got)
	}
	if got := value(t, reg, "catalog_table_rows", map[string]string{"table": "laser_cut"}); got != 3 {
		t.Errorf("rows = %v, want 3", got)
	}
	if got := value(t, reg, "catalog_rows_dropped_total", map[string]string{"table": "laser_cut", "reason": "malformed"}); got != 1 {
		t.Errorf("dropped{malformed} = %v, want 1 (cached load not counted)", got)
	}
	if got := value(t, reg, "catalog_source_bytes_total", map[string]string{"table": "laser_cut"}); got != 1024 {
		t.Errorf("bytes = %v, want 1024", got)
	}
	if got := value(t, reg, "catalog_table_load_duration_seconds", map[string]string{"table": "laser_cut"}); got != 2 {
		t.Errorf("load duration samples = %v, want 2", got)
	}
}

func TestRecorder_SourceFailed(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.TableLoaded("laser_cut", core.ParseStats{Kept: 7}, 10, false, 0)
	r.SourceFailed("laser_cut")

	if got := value(t, reg, "catalog_source_failures_total", map[string]string{"table": "laser_cut"}); got != 1 {
		t.Errorf("failures = %v, want 1", got)
	}
	if got := value(t, reg, "catalog_table_rows", map[string]string{"table": "laser_cut"}); got != 0 {
		t.Errorf("rows after failure = %v, want 0", got)
	}
}

func TestRecorder_LookupCompleted(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.LookupCompleted(core.KindCut, core.MatchExact)
	r.LookupCompleted(core.KindCut, core.MatchExact)
	r.LookupCompleted(core.KindCut, core.MatchNone)

	if got := value(t, reg, "catalog_lookups_total", map[string]string{"kind": "cut", "result": "exact"}); got != 2 {
		t.Errorf("lookups{exact} = %v, want 2", got)
	}
	if got := value(t, reg, "catalog_lookups_total", map[string]string{"kind": "cut", "result": "none"}); got != 1 {
		t.Errorf("lookups{none} = %v, want 1", got)
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{200, "2xx"},
		{302, "3xx"},
		{404, "4xx"},
		{503, "5xx"},
		{99, "unknown"},
	}
	for _, tt := range tests {
		if got := classifyStatus(tt.code); got != tt.want {
			t.Errorf("classifyStatus(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestHandler(t *testing.T) {
	reg := NewRegistry()
	r := New(reg)
	r.RecordRequest(http.MethodGet, "/api/materials", http.StatusOK, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		`http_requests_total{method="GET",route="/api/materials",status="2xx"} 1`,
		"go_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
