package internal

import (
	"fmt"
	specs "github.com/chrisconley/trafficreport/specs"
)

type Report struct {
	Config       ReportConfig
	Buckets      []BucketCount
	Summary      ReportSummary
	Comparison   Comparison
	VehicleTypes []VehicleTypeCount
}

func (r Report) HasData() bool {
	return r.Summary.GrandTotal() > 0
}

func (r Report) ToSpec() specs.ReportSpec {
	bucketSpecs := make([]specs.BucketCountSpec, len(r.Buckets))
	for i, c := range r.Buckets {
		bucketSpecs[i] = c.ToSpec()
	}

	typeSpecs := make([]specs.VehicleTypeCountSpec, len(r.VehicleTypes))
	for i, c := range r.VehicleTypes {
		typeSpecs[i] = c.ToSpec()
	}

	return specs.ReportSpec{
		Config:       r.Config.ToSpec(),
		Buckets:      bucketSpecs,
		Summary:      r.Summary.ToSpec(),
		Comparison:   r.Comparison.ToSpec(),
		VehicleTypes: typeSpecs,
		HasData:      r.HasData(),
	}
}

// GenerateReport implements specs.GenerateReport.
// Converts specs to domain objects, builds the report, and converts back to specs.
func GenerateReport(configSpec specs.ReportConfigSpec, eventSpecs []specs.DetectionEventSpec) (specs.ReportSpec, error) {
	config, err := NewReportConfig(configSpec)
	if err != nil {
		return specs.ReportSpec{}, err
	}

	events := make([]DetectionEvent, len(eventSpecs))
	for i, spec := range eventSpecs {
		event, err := NewDetectionEvent(spec)
		if err != nil {
			return specs.ReportSpec{}, fmt.Errorf("invalid event at index %d: %w", i, err)
		}
		events[i] = event
	}

	return buildReport(config, events).ToSpec(), nil
}

// buildReport is the domain-level pipeline: buckets, counts, comparison.
func buildReport(config ReportConfig, events []DetectionEvent) Report {
	buckets := buildBuckets(config)
	counts, summary := aggregate(buckets, events, config.Granularity())

	return Report{
		Config:       config,
		Buckets:      counts,
		Summary:      summary,
		Comparison:   compare(summary.TotalDir1, summary.TotalDir2),
		VehicleTypes: countVehicleTypes(buckets, events),
	}
}
