package internal

import (
	"fmt"
	specs "github.com/chrisconley/trafficreport/specs"
	"time"
)

type DetectionEvent struct {
	Timestamp   time.Time
	Direction   Direction
	VehicleType string
	Height      float64
	Distance    float64
}

func NewDetectionEvent(spec specs.DetectionEventSpec) (DetectionEvent, error) {
	direction, err := NewDirection(spec.Direction)
	if err != nil {
		return DetectionEvent{}, fmt.Errorf("invalid direction: %w", err)
	}

	return DetectionEvent{
		Timestamp:   spec.Timestamp,
		Direction:   direction,
		VehicleType: spec.VehicleType,
		Height:      spec.Height,
		Distance:    spec.Distance,
	}, nil
}
