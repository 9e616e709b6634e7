package specs

// Granularity values for ReportConfigSpec.
const (
	GranularityHourly = "hourly"
	GranularityDaily  = "daily"
)

// Label styles for daily buckets.
const (
	LabelsISO     = "iso"
	LabelsWeekday = "weekday"
)

// Report kinds accepted by NewReportConfigForKind in the reference implementation.
const (
	KindDaily   = "daily"
	KindWeekly  = "weekly"
	KindMonthly = "monthly"
	KindCustom  = "custom"
)

// ReportConfigSpec defines which buckets a traffic report is computed over.
//
// Daily, weekly, monthly and custom reports all share one pipeline; they
// differ only in Granularity, the date range and the label style.
type ReportConfigSpec struct {
	// Bucket size for the report.
	//
	//   - "hourly": 24 buckets covering the single day RangeStart
	//     (RangeStart must equal RangeEnd)
	//   - "daily": one bucket per calendar day in [RangeStart, RangeEnd]
	Granularity string `json:"granularity"`

	// First calendar day of the report, inclusive, formatted "2006-01-02".
	RangeStart string `json:"rangeStart"`

	// Last calendar day of the report, inclusive, formatted "2006-01-02".
	//
	// Must not be before RangeStart.
	RangeEnd string `json:"rangeEnd"`

	// IANA time zone that defines where calendar days and hours begin.
	//
	// Optional. Defaults to "UTC". Example: "Europe/Rome".
	Timezone string `json:"timezone,omitempty"`

	// Label style for daily buckets.
	//
	// Optional. "iso" (default) labels read "2024-01-01"; "weekday" labels read
	// "Monday (2024-01-01)". Hourly buckets always read "08:00 - 08:59".
	Labels string `json:"labels,omitempty"`
}

// BuildBuckets partitions the configured range into ordered, contiguous buckets.
//
// Returns InvalidRangeError (see internal.InvalidRangeError) if the range is
// reversed, or if an hourly report spans more than one day.
//
// Operates on the primitive types of this package only.
// See internal.BuildBuckets for the reference implementation.
type BuildBuckets func(config ReportConfigSpec) ([]BucketSpec, error)

// ReportWindow returns the half-open window an event source must be queried
// for to cover every bucket of config.
//
// See internal.ReportWindow for the reference implementation.
type ReportWindow func(config ReportConfigSpec) (TimeWindowSpec, error)
