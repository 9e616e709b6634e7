package internal

import (
	specs "github.com/chrisconley/trafficreport/specs"
	"time"
)

const dateLayout = "2006-01-02"

type Granularity struct {
	value string
}

var (
	Hourly = Granularity{value: specs.GranularityHourly}
	Daily  = Granularity{value: specs.GranularityDaily}
)

func (g Granularity) ToString() string {
	return g.value
}

func (g Granularity) IsHourly() bool {
	return g.value == specs.GranularityHourly
}

func (g Granularity) IsDaily() bool {
	return g.value == specs.GranularityDaily
}

type ReportConfig struct {
	granularity Granularity
	rangeStart  time.Time
	rangeEnd    time.Time
	location    *time.Location
	labels      string
}

// NewReportConfig validates spec and resolves its dates to local midnights.
// Every failure is an *InvalidRangeError.
func NewReportConfig(spec specs.ReportConfigSpec) (ReportConfig, error) {
	var granularity Granularity
	switch spec.Granularity {
	case specs.GranularityHourly:
		granularity = Hourly
	case specs.GranularityDaily:
		granularity = Daily
	default:
		return ReportConfig{}, invalidRange(spec.RangeStart, spec.RangeEnd, "unknown granularity %q", spec.Granularity)
	}

	location := time.UTC
	if spec.Timezone != "" {
		loc, err := time.LoadLocation(spec.Timezone)
		if err != nil {
			return ReportConfig{}, invalidRange(spec.RangeStart, spec.RangeEnd, "unknown timezone %q", spec.Timezone)
		}
		location = loc
	}

	labels := spec.Labels
	switch labels {
	case "":
		labels = specs.LabelsISO
	case specs.LabelsISO, specs.LabelsWeekday:
	default:
		return ReportConfig{}, invalidRange(spec.RangeStart, spec.RangeEnd, "unknown label style %q", spec.Labels)
	}

	start, err := time.ParseInLocation(dateLayout, spec.RangeStart, location)
	if err != nil {
		return ReportConfig{}, invalidRange(spec.RangeStart, spec.RangeEnd, "start is not a date")
	}
	end, err := time.ParseInLocation(dateLayout, spec.RangeEnd, location)
	if err != nil {
		return ReportConfig{}, invalidRange(spec.RangeStart, spec.RangeEnd, "end is not a date")
	}

	if start.After(end) {
		return ReportConfig{}, invalidRange(spec.RangeStart, spec.RangeEnd, "start is after end")
	}
	if granularity.IsHourly() && !start.Equal(end) {
		return ReportConfig{}, invalidRange(spec.RangeStart, spec.RangeEnd, "hourly reports cover a single day")
	}

	return ReportConfig{
		granularity: granularity,
		rangeStart:  start,
		rangeEnd:    end,
		location:    location,
		labels:      labels,
	}, nil
}

func (c ReportConfig) Granularity() Granularity {
	return c.granularity
}

func (c ReportConfig) RangeStart() time.Time {
	return c.rangeStart
}

func (c ReportConfig) RangeEnd() time.Time {
	return c.rangeEnd
}

func (c ReportConfig) Location() *time.Location {
	return c.location
}

// ToSpec converts ReportConfig back to a spec with defaults filled in.
func (c ReportConfig) ToSpec() specs.ReportConfigSpec {
	return specs.ReportConfigSpec{
		Granularity: c.granularity.ToString(),
		RangeStart:  c.rangeStart.Format(dateLayout),
		RangeEnd:    c.rangeEnd.Format(dateLayout),
		Timezone:    c.location.String(),
		Labels:      c.labels,
	}
}

// NewReportConfigForKind builds the config for one of the named report kinds.
// An empty rangeEnd means rangeStart, and a start after the end is rejected
// for every kind. Daily reports break the start date down by hour. Weekly
// reports label days with their weekday; monthly and custom reports use ISO
// dates.
func NewReportConfigForKind(kind, rangeStart, rangeEnd, timezone string) (specs.ReportConfigSpec, error) {
	if rangeEnd == "" {
		rangeEnd = rangeStart
	}
	start, err := time.Parse(dateLayout, rangeStart)
	if err != nil {
		return specs.ReportConfigSpec{}, invalidRange(rangeStart, rangeEnd, "start is not a date")
	}
	end, err := time.Parse(dateLayout, rangeEnd)
	if err != nil {
		return specs.ReportConfigSpec{}, invalidRange(rangeStart, rangeEnd, "end is not a date")
	}
	if start.After(end) {
		return specs.ReportConfigSpec{}, invalidRange(rangeStart, rangeEnd, "start is after end")
	}

	config := specs.ReportConfigSpec{
		Granularity: specs.GranularityDaily,
		RangeStart:  rangeStart,
		RangeEnd:    rangeEnd,
		Timezone:    timezone,
		Labels:      specs.LabelsISO,
	}

	switch kind {
	case specs.KindDaily:
		config.Granularity = specs.GranularityHourly
		config.RangeEnd = rangeStart
	case specs.KindWeekly:
		config.Labels = specs.LabelsWeekday
	case specs.KindMonthly, specs.KindCustom:
	default:
		return specs.ReportConfigSpec{}, invalidRange(rangeStart, rangeEnd, "unknown report kind %q", kind)
	}

	return config, nil
}
