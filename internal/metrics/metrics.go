// Package metrics exposes Prometheus collectors for ingestion and reporting.
package metrics

import (
	"strconv"

	"github.com/chrisconley/trafficreport/internal/infra"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DetectionsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "traffic_detections_recorded_total",
		Help: "Detections stored, by direction",
	}, []string{"direction"})

	DetectionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "traffic_detections_rejected_total",
		Help: "Sensor payloads rejected by validation, by origin",
	}, []string{"origin"})

	ReportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "traffic_reports_generated_total",
		Help: "Reports assembled, by kind and whether they had data",
	}, []string{"kind", "has_data"})

	ReportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "traffic_report_duration_seconds",
		Help:    "Time to fetch events and assemble a report",
		Buckets: prometheus.DefBuckets,
	})
)

// Subscribe keeps the counters in step with bus events.
func Subscribe(bus *infra.Bus) {
	bus.Subscribe(infra.DetectionRecorded, func(e infra.Event) {
		if ev, ok := e.(infra.DetectionRecordedEvent); ok {
			DetectionsRecorded.WithLabelValues(ev.Detection.Direction).Inc()
		}
	})
	bus.Subscribe(infra.DetectionRejected, func(e infra.Event) {
		if ev, ok := e.(infra.DetectionRejectedEvent); ok {
			DetectionsRejected.WithLabelValues(ev.Source).Inc()
		}
	})
	bus.Subscribe(infra.ReportGenerated, func(e infra.Event) {
		if ev, ok := e.(infra.ReportGeneratedEvent); ok {
			ReportsGenerated.WithLabelValues(ev.Kind, strconv.FormatBool(ev.Report.HasData)).Inc()
		}
	})
}
