package httpapi

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInstrument_LogsRouteAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := New(Deps{}, logger)
	h.rt.Get("/widgets/{id}", func(w http.ResponseWriter, r *http.Request) { notFound(w) })

	rec := httptest.NewRecorder()
	h.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/widgets/7", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("decode log %q: %v", buf.String(), err)
	}
	if line["level"] != "WARN" || line["route"] != "/widgets/{id}" || line["status"] != float64(404) {
		t.Fatalf("unexpected log line: %v", line)
	}
	if line["req_id"] == "" {
		t.Fatalf("missing req_id: %v", line)
	}
}

func TestInstrument_CountsRecoveredPanicAs500(t *testing.T) {
	srv := New(Deps{}, testLogger())
	srv.rt.Put("/explode", func(http.ResponseWriter, *http.Request) { panic("boom") })
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodPut, "500"))

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/explode", nil))
	expectErr(t, rec, http.StatusInternalServerError, "internal")

	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodPut, "500")); got != before+1 {
		t.Fatalf("expected PUT 500 counter to grow by 1, got %v -> %v", before, got)
	}
}

func TestLevelFor(t *testing.T) {
	cases := map[int]slog.Level{200: slog.LevelInfo, 201: slog.LevelInfo, 400: slog.LevelWarn, 415: slog.LevelWarn, 500: slog.LevelError}
	for status, want := range cases {
		if got := levelFor(status); got != want {
			t.Fatalf("%d: expected %v, got %v", status, want, got)
		}
	}
}
