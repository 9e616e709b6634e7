package internal

import (
	specs "github.com/chrisconley/trafficreport/specs"
	"sort"
)

type BucketCount struct {
	Bucket Bucket
	Dir1   int
	Dir2   int
}

func (c BucketCount) Total() int {
	return c.Dir1 + c.Dir2
}

func (c BucketCount) ToSpec() specs.BucketCountSpec {
	return specs.BucketCountSpec{
		Bucket: c.Bucket.ToSpec(),
		Dir1:   c.Dir1,
		Dir2:   c.Dir2,
		Total:  c.Total(),
	}
}

type ReportSummary struct {
	TotalDir1       int
	TotalDir2       int
	PeakBucket      *Bucket
	PeakCount       int
	AvgPerBucket    Decimal
	AvgDir1         Decimal
	AvgDir2         Decimal
	BucketsWithData int
}

func (s ReportSummary) GrandTotal() int {
	return s.TotalDir1 + s.TotalDir2
}

func (s ReportSummary) ToSpec() specs.ReportSummarySpec {
	summary := specs.ReportSummarySpec{
		TotalDir1:       s.TotalDir1,
		TotalDir2:       s.TotalDir2,
		GrandTotal:      s.GrandTotal(),
		PeakCount:       s.PeakCount,
		AvgPerBucket:    s.AvgPerBucket.Float64(),
		AvgDir1:         s.AvgDir1.Float64(),
		AvgDir2:         s.AvgDir2.Float64(),
		BucketsWithData: s.BucketsWithData,
	}
	if s.PeakBucket != nil {
		peak := s.PeakBucket.ToSpec()
		summary.PeakBucket = &peak
		summary.PeakLabel = peak.Label
	}
	return summary
}

type VehicleTypeCount struct {
	VehicleType string
	Dir1        int
	Dir2        int
	Percent     Decimal
}

func (c VehicleTypeCount) Total() int {
	return c.Dir1 + c.Dir2
}

func (c VehicleTypeCount) ToSpec() specs.VehicleTypeCountSpec {
	return specs.VehicleTypeCountSpec{
		VehicleType: c.VehicleType,
		Dir1:        c.Dir1,
		Dir2:        c.Dir2,
		Total:       c.Total(),
		Percent:     c.Percent.Float64(),
	}
}

// aggregate counts events per bucket and per direction and derives the
// summary. Every bucket gets a BucketCount; events outside all buckets are
// ignored.
//
// Averages use a granularity-dependent denominator:
//   - hourly: the number of buckets, whether or not they had traffic
//   - daily: only buckets with at least one detection
func aggregate(buckets []Bucket, events []DetectionEvent, granularity Granularity) ([]BucketCount, ReportSummary) {
	counts := make([]BucketCount, len(buckets))
	for i, b := range buckets {
		counts[i] = BucketCount{Bucket: b}
	}

	for _, event := range events {
		i := locateBucket(buckets, event.Timestamp)
		if i < 0 {
			continue
		}
		if event.Direction.IsOne() {
			counts[i].Dir1++
		} else {
			counts[i].Dir2++
		}
	}

	var summary ReportSummary
	for i := range counts {
		c := &counts[i]
		summary.TotalDir1 += c.Dir1
		summary.TotalDir2 += c.Dir2
		if c.Total() > 0 {
			summary.BucketsWithData++
		}
		// Strictly greater keeps the earliest bucket on ties.
		if c.Total() > summary.PeakCount {
			summary.PeakCount = c.Total()
			summary.PeakBucket = &c.Bucket
		}
	}

	denominator := summary.BucketsWithData
	if granularity.IsHourly() {
		denominator = len(buckets)
	}
	summary.AvgPerBucket = ratio(summary.GrandTotal(), denominator, 2)
	summary.AvgDir1 = ratio(summary.TotalDir1, denominator, 2)
	summary.AvgDir2 = ratio(summary.TotalDir2, denominator, 2)

	return counts, summary
}

// countVehicleTypes breaks the in-range events down by vehicle type, ordered
// by total descending and then by name.
func countVehicleTypes(buckets []Bucket, events []DetectionEvent) []VehicleTypeCount {
	byType := make(map[string]*VehicleTypeCount)
	grandTotal := 0
	for _, event := range events {
		if locateBucket(buckets, event.Timestamp) < 0 {
			continue
		}
		c, ok := byType[event.VehicleType]
		if !ok {
			c = &VehicleTypeCount{VehicleType: event.VehicleType}
			byType[event.VehicleType] = c
		}
		if event.Direction.IsOne() {
			c.Dir1++
		} else {
			c.Dir2++
		}
		grandTotal++
	}

	result := make([]VehicleTypeCount, 0, len(byType))
	for _, c := range byType {
		c.Percent = ratio(c.Total()*100, grandTotal, 1)
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Total() != result[j].Total() {
			return result[i].Total() > result[j].Total()
		}
		return result[i].VehicleType < result[j].VehicleType
	})
	return result
}
