package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chrisconley/trafficreport/internal/infra"
	"github.com/chrisconley/trafficreport/internal/ingest"
	"github.com/chrisconley/trafficreport/internal/reporting"
	"github.com/chrisconley/trafficreport/internal/source"
	specs "github.com/chrisconley/trafficreport/specs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestServer(t *testing.T) (*httptest.Server, *source.MemoryStore) {
	t.Helper()
	store := source.NewMemoryStore()
	bus := infra.NewBus()
	log := zap.NewNop()
	h := NewHandlers(
		reporting.NewService(store, bus, reporting.Options{}, log),
		ingest.NewIngestor(store, bus, log),
		time.UTC,
		log,
	)
	h.now = func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) }
	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(srv.Close)
	return srv, store
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestGetReport(t *testing.T) {
	t.Run("defaults to an hourly report for today", func(t *testing.T) {
		srv, store := newTestServer(t)
		require.NoError(t, store.Record(context.Background(), specs.DetectionEventSpec{
			Direction: "dir1", VehicleType: "Car", Timestamp: time.Date(2024, 1, 1, 8, 15, 0, 0, time.UTC),
		}))

		resp, err := http.Get(srv.URL + "/reports")

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var report specs.ReportSpec
		decode(t, resp, &report)
		assert.Equal(t, "hourly", report.Config.Granularity)
		assert.Equal(t, "2024-01-01", report.Config.RangeStart)
		require.Len(t, report.Buckets, 24)
		assert.Equal(t, 1, report.Buckets[8].Dir1)
		assert.True(t, report.HasData)
	})

	t.Run("weekly report labels days", func(t *testing.T) {
		srv, _ := newTestServer(t)

		resp, err := http.Get(srv.URL + "/reports?type=weekly&start=2024-01-01&end=2024-01-07")

		require.NoError(t, err)
		var report specs.ReportSpec
		decode(t, resp, &report)
		require.Len(t, report.Buckets, 7)
		assert.Equal(t, "Monday (2024-01-01)", report.Buckets[0].Bucket.Label)
		assert.False(t, report.HasData)
	})

	t.Run("reversed range is a bad request", func(t *testing.T) {
		srv, _ := newTestServer(t)

		resp, err := http.Get(srv.URL + "/reports?type=custom&start=2024-02-01&end=2024-01-01")

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body map[string]string
		decode(t, resp, &body)
		assert.Contains(t, body["error"], "start is after end")
	})

	t.Run("reversed range on the daily kind is a bad request", func(t *testing.T) {
		srv, _ := newTestServer(t)

		resp, err := http.Get(srv.URL + "/reports?type=daily&start=2024-02-01&end=2024-01-01")

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body map[string]string
		decode(t, resp, &body)
		assert.Contains(t, body["error"], "start is after end")
	})
}

func TestPostReport(t *testing.T) {
	t.Run("builds report from explicit config", func(t *testing.T) {
		srv, _ := newTestServer(t)
		body := `{"granularity":"daily","rangeStart":"2024-01-01","rangeEnd":"2024-01-03"}`

		resp, err := http.Post(srv.URL+"/reports", "application/json", strings.NewReader(body))

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var report specs.ReportSpec
		decode(t, resp, &report)
		assert.Len(t, report.Buckets, 3)
	})

	t.Run("hourly over several days is a bad request", func(t *testing.T) {
		srv, _ := newTestServer(t)
		body := `{"granularity":"hourly","rangeStart":"2024-01-01","rangeEnd":"2024-01-03"}`

		resp, err := http.Post(srv.URL+"/reports", "application/json", strings.NewReader(body))

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		srv, _ := newTestServer(t)

		resp, err := http.Post(srv.URL+"/reports", "application/json", strings.NewReader(`{`))

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestPostDetection(t *testing.T) {
	t.Run("records a valid detection", func(t *testing.T) {
		srv, store := newTestServer(t)

		resp, err := http.Post(srv.URL+"/detections", "application/json",
			strings.NewReader(`{"direction":"South","type":"Bus","height":3.2,"distance":4}`))

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var detection specs.DetectionEventSpec
		decode(t, resp, &detection)
		assert.Equal(t, "dir2", detection.Direction)
		assert.Equal(t, 2, detection.SensorID)
		assert.NotEmpty(t, detection.ID)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		srv, store := newTestServer(t)

		resp, err := http.Post(srv.URL+"/detections", "application/json", strings.NewReader(`{"direction":"South"}`))

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Zero(t, store.Len())
	})

	t.Run("other methods are not allowed", func(t *testing.T) {
		srv, _ := newTestServer(t)

		resp, err := http.Get(srv.URL + "/detections")

		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}

type brokenWriter struct {
	header http.Header
	status int
}

func (w *brokenWriter) Header() http.Header {
	if w.header == nil {
		w.header = http.Header{}
	}
	return w.header
}

func (w *brokenWriter) WriteHeader(status int) { w.status = status }

func (w *brokenWriter) Write([]byte) (int, error) { return 0, errors.New("client went away") }

func TestWriteJSON(t *testing.T) {
	t.Run("logs encode failures", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		h := NewHandlers(nil, nil, time.UTC, zap.New(core))
		w := &brokenWriter{}

		h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})

		assert.Equal(t, http.StatusOK, w.status)
		entries := logs.FilterMessage("failed to write response").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "client went away", entries[0].ContextMap()["error"])
	})
}
