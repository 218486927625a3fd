package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.uber.org/goleak"

	"github.com/ward/ward/internal/config"
	"github.com/ward/ward/internal/platform/metrics"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testConfig() *config.Config {
	return &config.Config{
		Port:          "8000",
		Env:           "test",
		LogLevel:      "debug",
		DBSchema:      "public",
		MigrationsDir: "./migrations",
		CORSOrigins:   config.DefaultCORSOrigins,
		NotesPageMax:  100,
	}
}

func newTestServer(t *testing.T) (http.Handler, *metrics.Metrics) {
	t.Helper()
	m, err := metrics.New(nil)
	if err != nil {
		t.Fatalf("metrics.New: %v", err)
	}
	// No pool: any request that reaches a repository panics and surfaces as 500.
	return newServer(testConfig(), nil, zerolog.Nop(), m), m
}

func TestServer_Health(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestServer_PreflightShortCircuits(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/ward/admissions/BHT-0001/notes", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("expected allowed origin echoed, got %q", got)
	}
}

func TestServer_UnknownOriginGetsNoCORSHeader(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected request to proceed, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no ACAO header, got %q", got)
	}
}

func TestServer_BlankNoteRejectedBeforeStore(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/ward/admissions/BHT-0001/notes", strings.NewReader(`{"text":"  "}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"message"`) {
		t.Errorf("expected structured error body, got %s", rec.Body.String())
	}
}

func TestServer_MetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	srv.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `ward_http_requests_total{method="GET",route="/health",status_code="200"} 1`) {
		t.Errorf("expected /health request counted, got:\n%s", body)
	}
}

func TestNewLogger_Level(t *testing.T) {
	cfg := testConfig()

	cfg.LogLevel = "warn"
	if got := newLogger(cfg).GetLevel(); got != zerolog.WarnLevel {
		t.Errorf("expected warn level, got %v", got)
	}

	cfg.LogLevel = "nonsense"
	if got := newLogger(cfg).GetLevel(); got != zerolog.InfoLevel {
		t.Errorf("expected fallback to info, got %v", got)
	}
}

func TestMigrateTarget_Defaults(t *testing.T) {
	cfg := testConfig()
	cfg.DBSchema = "ward"
	cfg.MigrationsDir = "/srv/migrations"

	cmd := &cobra.Command{}
	cmd.Flags().String("schema", "", "")
	cmd.Flags().String("dir", "", "")

	schema, dir := migrateTarget(cmd, cfg)
	if schema != "ward" || dir != "/srv/migrations" {
		t.Errorf("expected config defaults, got %s %s", schema, dir)
	}

	cmd.Flags().Set("schema", "other")
	schema, _ = migrateTarget(cmd, cfg)
	if schema != "other" {
		t.Errorf("expected flag override, got %s", schema)
	}
}

func TestRootCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range []*cobra.Command{serveCmd(), migrateCmd(), seedCmd()} {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "migrate", "seed"} {
		if !names[want] {
			t.Errorf("missing command %s", want)
		}
	}
}
