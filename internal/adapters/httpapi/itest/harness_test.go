package itest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lier-bua/gear-catalog-api/internal/adapters/httpapi"
	"github.com/lier-bua/gear-catalog-api/internal/adapters/instrumented"
	memclock "github.com/lier-bua/gear-catalog-api/internal/adapters/memory/clock"
	memdocstore "github.com/lier-bua/gear-catalog-api/internal/adapters/memory/docstore"
	pgdocstore "github.com/lier-bua/gear-catalog-api/internal/adapters/postgres/docstore"
	postgres_testutil "github.com/lier-bua/gear-catalog-api/internal/adapters/postgres/testutil"
	sqlitedocstore "github.com/lier-bua/gear-catalog-api/internal/adapters/sqlite/docstore"
	"github.com/lier-bua/gear-catalog-api/internal/app/catalog"
	"github.com/lier-bua/gear-catalog-api/internal/app/intake"
	"github.com/lier-bua/gear-catalog-api/internal/platform/metrics"
	docstoreport "github.com/lier-bua/gear-catalog-api/internal/ports/out/docstore"
)

type backend string

const (
	backendMemory   backend = "memory"
	backendSQLite   backend = "sqlite"
	backendPostgres backend = "postgres"
)

func backendsFromEnv(t *testing.T) []backend {
	t.Helper()
	switch strings.ToLower(strings.TrimSpace(os.Getenv("ITEST_BACKEND"))) {
	case "", "memory":
		return []backend{backendMemory}
	case "sqlite":
		return []backend{backendSQLite}
	case "postgres":
		return []backend{backendPostgres}
	case "all":
		return []backend{backendMemory, backendSQLite, backendPostgres}
	default:
		t.Fatalf("unknown ITEST_BACKEND value (expected memory|sqlite|postgres|all)")
		return nil
	}
}

type testServer struct {
	baseURL string
	client  *http.Client
}

func newTestServer(t *testing.T, b backend) *testServer {
	t.Helper()

	clk := memclock.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	var store docstoreport.Store
	switch b {
	case backendPostgres:
		store = pgdocstore.NewStore(postgres_testutil.OpenMigratedPool(t))
	case backendSQLite:
		s, err := sqlitedocstore.Open(context.Background(), filepath.Join(t.TempDir(), "itest.db"))
		if err != nil {
			t.Fatalf("open sqlite: %v", err)
		}
		t.Cleanup(func() { _ = s.Close() })
		store = s
	case backendMemory:
		store = memdocstore.NewStore()
	default:
		t.Fatalf("unknown backend: %s", b)
	}

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	store = instrumented.NewStore(store, m)

	api := httpapi.NewServer(
		catalog.NewService(store),
		intake.NewService(store, clk),
		store,
		httpapi.DiagnosticsInfo{StorageBackend: string(b)},
		nil,
	)
	handler := httpapi.NewRouterWithOptions(api, httpapi.RouterOptions{
		Metrics:        m,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		baseURL: srv.URL,
		client:  srv.Client(),
	}
}

func (s *testServer) url(path string) string {
	if strings.HasPrefix(path, "/") {
		return s.baseURL + path
	}
	return s.baseURL + "/" + path
}

func (s *testServer) doJSON(t *testing.T, method string, path string, body any) (int, []byte, http.Header) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.url(path), r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out, resp.Header
}

type errorResponse struct {
	Error struct {
		Code      string         `json:"code"`
		Message   string         `json:"message"`
		Details   map[string]any `json:"details"`
		RequestId *string        `json:"requestId"`
	} `json:"error"`
}

type createdResponse struct {
	ID string `json:"id"`
}

type equipmentList struct {
	Items []map[string]any `json:"items"`
}

func mustUnmarshal[T any](t *testing.T, b []byte) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v\nbody=%s", err, string(b))
	}
	return out
}

func requireStatus(t *testing.T, status int, body []byte, want int) {
	t.Helper()
	if status != want {
		t.Fatalf("status=%d want=%d body=%s", status, want, string(body))
	}
}

func requireErrorCode(t *testing.T, status int, body []byte, wantStatus int, wantCode string) errorResponse {
	t.Helper()
	requireStatus(t, status, body, wantStatus)
	got := mustUnmarshal[errorResponse](t, body)
	if got.Error.Code != wantCode {
		t.Fatalf("error.code=%q want=%q body=%s", got.Error.Code, wantCode, string(body))
	}
	return got
}

func requireHeaderPresent(t *testing.T, h http.Header, key string) {
	t.Helper()
	if strings.TrimSpace(h.Get(key)) == "" {
		t.Fatalf("expected header %q to be present", key)
	}
}

func (s *testServer) create(t *testing.T, path string, body map[string]any) string {
	t.Helper()
	status, b, _ := s.doJSON(t, http.MethodPost, path, body)
	requireStatus(t, status, b, http.StatusCreated)
	id := mustUnmarshal[createdResponse](t, b).ID
	if id == "" {
		t.Fatalf("expected id; body=%s", string(b))
	}
	return id
}

func (s *testServer) listTitles(t *testing.T, path string) []string {
	t.Helper()
	status, b, _ := s.doJSON(t, http.MethodGet, path, nil)
	requireStatus(t, status, b, http.StatusOK)
	out := []string{}
	for _, it := range mustUnmarshal[equipmentList](t, b).Items {
		title, _ := it["title"].(string)
		out = append(out, title)
	}
	return out
}
