// Package source holds the event stores reports are computed from.
package source

import (
	"context"

	specs "github.com/chrisconley/trafficreport/specs"
)

// EventSource returns the detections whose timestamps fall in the half-open
// window. Results are a snapshot the caller may keep.
type EventSource interface {
	FetchEvents(ctx context.Context, window specs.TimeWindowSpec) ([]specs.DetectionEventSpec, error)
}

// Recorder persists a single detection.
type Recorder interface {
	Record(ctx context.Context, event specs.DetectionEventSpec) error
}

// Store is both an EventSource and a Recorder.
type Store interface {
	EventSource
	Recorder
}
