package internal

import (
	"fmt"
	specs "github.com/chrisconley/trafficreport/specs"
	"sort"
	"time"
)

type Bucket struct {
	label string
	index int
	start time.Time
	end   time.Time
}

func (b Bucket) Label() string {
	return b.label
}

func (b Bucket) Index() int {
	return b.index
}

func (b Bucket) Start() time.Time {
	return b.start
}

func (b Bucket) End() time.Time {
	return b.end
}

// Contains reports whether t falls in [Start, End).
func (b Bucket) Contains(t time.Time) bool {
	return !t.Before(b.start) && t.Before(b.end)
}

func (b Bucket) ToSpec() specs.BucketSpec {
	return specs.BucketSpec{
		Label: b.label,
		Index: b.index,
		Start: b.start,
		End:   b.end,
	}
}

// buildBuckets partitions the config's range into ordered, contiguous buckets.
// Each end is exactly the next bucket's start, including across DST
// transitions. A local hour skipped by a transition is a zero-length bucket.
func buildBuckets(config ReportConfig) []Bucket {
	start := config.RangeStart()
	year, month, day := start.Date()
	loc := config.Location()

	if config.Granularity().IsHourly() {
		buckets := make([]Bucket, 24)
		for h := 0; h < 24; h++ {
			buckets[h] = Bucket{
				label: fmt.Sprintf("%02d:00 - %02d:59", h, h),
				index: h,
				start: wallClock(year, month, day, h, loc),
				end:   wallClock(year, month, day, h+1, loc),
			}
		}
		return buckets
	}

	var buckets []Bucket
	for i := 0; ; i++ {
		dayStart := wallClock(year, month, day+i, 0, loc)
		if dayStart.After(config.RangeEnd()) {
			break
		}
		buckets = append(buckets, Bucket{
			label: dayLabel(dayStart, config.labels),
			index: i,
			start: dayStart,
			end:   wallClock(year, month, day+i+1, 0, loc),
		})
	}
	return buckets
}

// wallClock returns the first instant at or after the local wall time
// day hour:00 in loc. time.Date may normalise a wall time that falls in a
// DST gap to an instant before the gap; that instant is moved to the
// transition so that consecutive edges never go backwards.
func wallClock(year int, month time.Month, day, hour int, loc *time.Location) time.Time {
	t := time.Date(year, month, day, hour, 0, 0, 0, loc)
	want := time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
	got := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)

	switch {
	case got.Before(want):
		if _, end := t.ZoneBounds(); !end.IsZero() {
			return end
		}
	case got.After(want):
		if start, _ := t.ZoneBounds(); !start.IsZero() {
			return start
		}
	}
	return t
}

func dayLabel(day time.Time, labels string) string {
	if labels == specs.LabelsWeekday {
		return fmt.Sprintf("%s (%s)", day.Weekday(), day.Format(dateLayout))
	}
	return day.Format(dateLayout)
}

// locateBucket returns the position of the bucket containing t, or -1 when t
// falls outside every bucket. buckets must be ordered and contiguous.
func locateBucket(buckets []Bucket, t time.Time) int {
	i := sort.Search(len(buckets), func(i int) bool {
		return t.Before(buckets[i].end)
	})
	if i == len(buckets) || !buckets[i].Contains(t) {
		return -1
	}
	return i
}

// BuildBuckets implements specs.BuildBuckets.
func BuildBuckets(configSpec specs.ReportConfigSpec) ([]specs.BucketSpec, error) {
	config, err := NewReportConfig(configSpec)
	if err != nil {
		return nil, err
	}

	buckets := buildBuckets(config)
	bucketSpecs := make([]specs.BucketSpec, len(buckets))
	for i, b := range buckets {
		bucketSpecs[i] = b.ToSpec()
	}
	return bucketSpecs, nil
}

// ReportWindow implements specs.ReportWindow.
func ReportWindow(configSpec specs.ReportConfigSpec) (specs.TimeWindowSpec, error) {
	config, err := NewReportConfig(configSpec)
	if err != nil {
		return specs.TimeWindowSpec{}, err
	}

	buckets := buildBuckets(config)
	return specs.TimeWindowSpec{
		Start: buckets[0].start,
		End:   buckets[len(buckets)-1].end,
	}, nil
}
