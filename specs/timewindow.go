package specs

import "time"

// TimeWindowSpec represents a half-open time interval [Start, End).
//
// Used to describe report buckets and the overall query window handed to an
// event source. The start time is inclusive and the end time is exclusive,
// following standard interval notation. This ensures adjacent buckets don't
// overlap or have gaps.
type TimeWindowSpec struct {
	// Inclusive start of the time window.
	//
	// Detection events with Timestamp >= Start are included in this window.
	Start time.Time `json:"start"`

	// Exclusive end of the time window.
	//
	// Detection events with Timestamp < End are included in this window. For
	// example, the window for a report over January 2024 in UTC is
	// [2024-01-01T00:00:00Z, 2024-02-01T00:00:00Z).
	End time.Time `json:"end"`
}
