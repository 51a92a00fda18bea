package metric

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if r.registry == nil {
		t.Error("registry field is nil")
	}
	if r.CommandsTotal == nil {
		t.Error("CommandsTotal is nil")
	}
	if r.CommandDuration == nil {
		t.Error("CommandDuration is nil")
	}
	if r.ConnectionsTotal == nil {
		t.Error("ConnectionsTotal is nil")
	}
	if r.CacheKeys == nil {
		t.Error("CacheKeys is nil")
	}
	if r.RDBLoadSeconds == nil {
		t.Error("RDBLoadSeconds is nil")
	}
}

func TestGlobal(t *testing.T) {
	r1 := Global()
	r2 := Global()
	if r1 != r2 {
		t.Error("Global() should return the same instance")
	}
}

func scrape(t *testing.T, r *Registry) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	return string(body)
}

func TestHandler_IncludesRuntimeCollectors(t *testing.T) {
	body := scrape(t, NewRegistry())

	if !strings.Contains(body, "go_goroutines") {
		t.Error("expected go_goroutines metric")
	}
	if !strings.Contains(body, "process_") {
		t.Error("expected process metrics")
	}
}

func TestRecordCommand(t *testing.T) {
	r := NewRegistry()

	r.RecordCommand("get", 0.001)
	r.RecordCommand("get", 0.002)
	r.RecordCommand("unknown", 0.0005)

	body := scrape(t, r)

	if !strings.Contains(body, `rekv_commands_total{verb="get"} 2`) {
		t.Error(`expected rekv_commands_total{verb="get"} 2`)
	}
	if !strings.Contains(body, `rekv_commands_total{verb="unknown"} 1`) {
		t.Error(`expected rekv_commands_total{verb="unknown"} 1`)
	}
	if !strings.Contains(body, `rekv_command_duration_seconds_count{verb="get"} 2`) {
		t.Error(`expected rekv_command_duration_seconds_count{verb="get"} 2`)
	}
}

func TestConnectionsAndCacheGauges(t *testing.T) {
	r := NewRegistry()

	r.IncConnectionsTotal()
	r.IncConnectionsTotal()
	r.SetCacheKeys(42)
	r.SetRDBLoadSeconds(0.25)

	body := scrape(t, r)

	if !strings.Contains(body, "rekv_connections_total 2") {
		t.Error("expected rekv_connections_total 2")
	}
	if !strings.Contains(body, "rekv_cache_keys 42") {
		t.Error("expected rekv_cache_keys 42")
	}
	if !strings.Contains(body, "rekv_rdb_load_seconds 0.25") {
		t.Error("expected rekv_rdb_load_seconds 0.25")
	}
}

func TestConcurrentMetricUpdates(t *testing.T) {
	r := NewRegistry()

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				r.RecordCommand("get", 0.001)
				r.IncConnectionsTotal()
				r.SetCacheKeys(j)
			}
			done <- true
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	body := scrape(t, r)
	if !strings.Contains(body, "rekv_commands_total") {
		t.Error("expected rekv_commands_total after concurrent updates")
	}
}
