// Package reporting fetches detections for a report window and assembles
// the report.
package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/chrisconley/trafficreport/internal"
	"github.com/chrisconley/trafficreport/internal/infra"
	"github.com/chrisconley/trafficreport/internal/metrics"
	"github.com/chrisconley/trafficreport/internal/source"
	specs "github.com/chrisconley/trafficreport/specs"
	"go.uber.org/zap"
)

// Options configures a Service. Zero values fall back to UTC and a ten
// second fetch deadline.
type Options struct {
	Timezone     string
	FetchTimeout time.Duration
}

type Service struct {
	source source.EventSource
	bus    *infra.Bus
	log    *zap.Logger
	opts   Options
}

func NewService(src source.EventSource, bus *infra.Bus, opts Options, log *zap.Logger) *Service {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 10 * time.Second
	}
	return &Service{source: src, bus: bus, log: log, opts: opts}
}

// Request names a report the way callers ask for it.
type Request struct {
	Kind       string
	RangeStart string
	RangeEnd   string
}

// Generate builds the report for req. Config problems come back as
// *internal.InvalidRangeError before the source is queried.
func (s *Service) Generate(ctx context.Context, req Request) (specs.ReportSpec, error) {
	config, err := internal.NewReportConfigForKind(req.Kind, req.RangeStart, req.RangeEnd, s.opts.Timezone)
	if err != nil {
		return specs.ReportSpec{}, err
	}
	return s.generate(ctx, req.Kind, config)
}

// GenerateFor builds the report for an explicit config, published as a
// custom report. An empty timezone means the service timezone.
func (s *Service) GenerateFor(ctx context.Context, config specs.ReportConfigSpec) (specs.ReportSpec, error) {
	if config.Timezone == "" {
		config.Timezone = s.opts.Timezone
	}
	return s.generate(ctx, specs.KindCustom, config)
}

func (s *Service) generate(ctx context.Context, kind string, config specs.ReportConfigSpec) (specs.ReportSpec, error) {
	started := time.Now()

	window, err := internal.ReportWindow(config)
	if err != nil {
		return specs.ReportSpec{}, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.opts.FetchTimeout)
	defer cancel()
	events, err := s.source.FetchEvents(fetchCtx, window)
	if err != nil {
		return specs.ReportSpec{}, fmt.Errorf("fetch events: %w", err)
	}

	report, err := internal.GenerateReport(config, events)
	if err != nil {
		return specs.ReportSpec{}, fmt.Errorf("generate report: %w", err)
	}

	elapsed := time.Since(started)
	metrics.ReportDuration.Observe(elapsed.Seconds())
	s.log.Info("report generated",
		zap.String("kind", kind),
		zap.String("granularity", config.Granularity),
		zap.String("start", config.RangeStart),
		zap.String("end", config.RangeEnd),
		zap.Int("events", len(events)),
		zap.Int("grand_total", report.Summary.GrandTotal),
		zap.Duration("elapsed", elapsed),
	)

	s.bus.Publish(infra.ReportGeneratedEvent{Kind: kind, Report: report})
	return report, nil
}
