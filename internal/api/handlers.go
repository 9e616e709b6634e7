package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/chrisconley/trafficreport/internal"
	"github.com/chrisconley/trafficreport/internal/ingest"
	"github.com/chrisconley/trafficreport/internal/reporting"
	specs "github.com/chrisconley/trafficreport/specs"
	"go.uber.org/zap"
)

const maxPayloadBytes = 64 << 10

type ReportGenerator interface {
	Generate(ctx context.Context, req reporting.Request) (specs.ReportSpec, error)
	GenerateFor(ctx context.Context, config specs.ReportConfigSpec) (specs.ReportSpec, error)
}

type DetectionIngestor interface {
	Ingest(ctx context.Context, origin string, body []byte) (specs.DetectionEventSpec, error)
}

type Handlers struct {
	reports  ReportGenerator
	ingestor DetectionIngestor
	location *time.Location
	log      *zap.Logger
	now      func() time.Time
}

// NewHandlers wires the endpoints. location decides which calendar day
// "today" is when a report request omits its dates.
func NewHandlers(reports ReportGenerator, ingestor DetectionIngestor, location *time.Location, log *zap.Logger) *Handlers {
	if location == nil {
		location = time.UTC
	}
	return &Handlers{
		reports:  reports,
		ingestor: ingestor,
		location: location,
		log:      log,
		now:      time.Now,
	}
}

func (h *Handlers) health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// getReport serves GET /reports?type=weekly&start=2024-01-01&end=2024-01-07.
// type defaults to daily and both dates default to today.
func (h *Handlers) getReport(w http.ResponseWriter, r *http.Request) {
	today := h.now().In(h.location).Format("2006-01-02")
	q := r.URL.Query()
	req := reporting.Request{
		Kind:       valueOr(q.Get("type"), specs.KindDaily),
		RangeStart: valueOr(q.Get("start"), today),
		RangeEnd:   valueOr(q.Get("end"), today),
	}

	report, err := h.reports.Generate(r.Context(), req)
	if err != nil {
		h.writeReportError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

// postReport serves POST /reports with a ReportConfigSpec body.
func (h *Handlers) postReport(w http.ResponseWriter, r *http.Request) {
	var config specs.ReportConfigSpec
	if err := json.NewDecoder(io.LimitReader(r.Body, maxPayloadBytes)).Decode(&config); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid report config: "+err.Error())
		return
	}

	report, err := h.reports.GenerateFor(r.Context(), config)
	if err != nil {
		h.writeReportError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

func (h *Handlers) postDetection(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	detection, err := h.ingestor.Ingest(r.Context(), "http", body)
	if err != nil {
		if errors.Is(err, ingest.ErrInvalidPayload) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("detection ingest failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "could not record detection")
		return
	}
	h.writeJSON(w, http.StatusCreated, detection)
}

func (h *Handlers) writeReportError(w http.ResponseWriter, err error) {
	var rangeErr *internal.InvalidRangeError
	if errors.As(err, &rangeErr) {
		h.writeError(w, http.StatusBadRequest, rangeErr.Error())
		return
	}
	h.log.Error("report generation failed", zap.Error(err))
	h.writeError(w, http.StatusInternalServerError, "could not generate report")
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Warn("failed to write response", zap.Int("status", status), zap.Error(err))
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}
