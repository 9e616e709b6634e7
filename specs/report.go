package specs

import "time"

// GenerateReport assembles a traffic report from detection events.
//
// Process:
//  1. Build buckets for the configured range and granularity
//  2. Assign each event to the bucket whose [Start, End) contains it
//     (events outside every bucket are ignored)
//  3. Count per bucket and per direction, zero-filling empty buckets
//  4. Derive totals, averages and the peak bucket
//  5. Compare the two direction totals
//
// Returns error only when the config is invalid or an event carries an
// unknown direction. An empty event slice yields a fully populated report
// with HasData == false.
//
// Operates on the primitive types of this package only.
// See internal.GenerateReport for the reference implementation.
type GenerateReport func(config ReportConfigSpec, events []DetectionEventSpec) (ReportSpec, error)

// Compare summarizes which direction carried more traffic.
//
// See internal.Compare for the reference implementation.
type Compare func(totalDir1, totalDir2 int) ComparisonSpec

// BucketSpec is one contiguous sub-interval of a report.
type BucketSpec struct {
	// Display label.
	//
	// Hourly: "08:00 - 08:59". Daily: "2024-01-01" or "Monday (2024-01-01)".
	Label string `json:"label"`

	// Zero-based position in the report. Hourly buckets use the hour of day.
	Index int `json:"index"`

	// Inclusive start of the bucket.
	Start time.Time `json:"start"`

	// Exclusive end of the bucket. Equals the next bucket's Start.
	End time.Time `json:"end"`
}

// BucketCountSpec holds the vehicle counts observed in one bucket.
//
// Every bucket of a report has exactly one BucketCountSpec, including buckets
// with no detections (all counts zero).
type BucketCountSpec struct {
	Bucket BucketSpec `json:"bucket"`

	// Vehicles detected travelling in Direction 1.
	Dir1 int `json:"dir1"`

	// Vehicles detected travelling in Direction 2.
	Dir2 int `json:"dir2"`

	// Dir1 + Dir2.
	Total int `json:"total"`
}

// ReportSummarySpec carries totals and derived statistics across all buckets.
type ReportSummarySpec struct {
	TotalDir1  int `json:"totalDir1"`
	TotalDir2  int `json:"totalDir2"`
	GrandTotal int `json:"grandTotal"`

	// Bucket with the strictly greatest total, earliest on ties.
	//
	// Nil when GrandTotal is zero.
	PeakBucket *BucketSpec `json:"peakBucket,omitempty"`

	// Label of PeakBucket, empty when there is no peak.
	PeakLabel string `json:"peakLabel"`

	// Total of PeakBucket, zero when there is no peak.
	PeakCount int `json:"peakCount"`

	// Average vehicles per bucket, rounded to 2 decimals.
	//
	// Hourly reports divide by the number of buckets (24) whether or not every
	// hour had traffic. Daily reports divide by BucketsWithData, so days with
	// no detections do not dilute the average.
	AvgPerBucket float64 `json:"avgPerBucket"`

	// Average Direction 1 vehicles per bucket, same denominator as AvgPerBucket.
	AvgDir1 float64 `json:"avgDir1"`

	// Average Direction 2 vehicles per bucket, same denominator as AvgPerBucket.
	AvgDir2 float64 `json:"avgDir2"`

	// Number of buckets with a non-zero total.
	BucketsWithData int `json:"bucketsWithData"`
}

// ComparisonSpec compares the two direction totals.
type ComparisonSpec struct {
	// Which direction carried more vehicles.
	//
	// One of DirectionOne, DirectionTwo or DirectionTie.
	Leader string `json:"leader"`

	// |totalDir1 - totalDir2| / max(totalDir1, totalDir2) * 100, rounded to
	// 1 decimal. Zero when Leader is DirectionTie.
	PercentDifference float64 `json:"percentDifference"`

	// Human-readable sentence describing the comparison.
	//
	// Example: "Direction 1 had 66.7% more traffic than Direction 2 during this period."
	Narrative string `json:"narrative"`
}

// VehicleTypeCountSpec counts detections of one vehicle type across the report.
type VehicleTypeCountSpec struct {
	VehicleType string `json:"vehicleType"`
	Dir1        int    `json:"dir1"`
	Dir2        int    `json:"dir2"`
	Total       int    `json:"total"`

	// Share of the report's grand total, in percent rounded to 1 decimal.
	Percent float64 `json:"percent"`
}

// ReportSpec is an assembled traffic report.
//
// Constructed once per query and never mutated afterwards.
type ReportSpec struct {
	// Config the report was built from, with defaults applied.
	Config ReportConfigSpec `json:"config"`

	// One entry per bucket in order, zero-filled.
	Buckets []BucketCountSpec `json:"buckets"`

	Summary    ReportSummarySpec `json:"summary"`
	Comparison ComparisonSpec    `json:"comparison"`

	// Per vehicle type counts, ordered by Total descending then name.
	VehicleTypes []VehicleTypeCountSpec `json:"vehicleTypes"`

	// Summary.GrandTotal > 0. A presentation hint only: every other field is
	// populated either way.
	HasData bool `json:"hasData"`
}
