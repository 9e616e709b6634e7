// Package ingest turns raw sensor payloads into stored detections.
package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chrisconley/trafficreport/internal"
	specs "github.com/chrisconley/trafficreport/specs"
)

// ErrInvalidPayload marks payloads rejected by validation.
var ErrInvalidPayload = errors.New("invalid detection payload")

// VehicleTypes lists the classifications sensors report, keyed by the
// legacy vehicle_types id.
var VehicleTypes = map[string]int{
	"Motorcycle": 1,
	"Car":        2,
	"SUV/Van":    3,
	"Bus":        4,
	"Truck":      5,
}

// SensorPayload is the JSON body a sensor posts per vehicle.
type SensorPayload struct {
	Direction string   `json:"direction"`
	Type      string   `json:"type"`
	Height    *float64 `json:"height"`
	Distance  float64  `json:"distance"`
}

// ParsePayload decodes and validates a sensor payload. Direction, type and
// height are required; the detection is stamped with receivedAt.
func ParsePayload(body []byte, receivedAt time.Time, id string) (specs.DetectionEventSpec, error) {
	var payload SensorPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return specs.DetectionEventSpec{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return payload.Detection(receivedAt, id)
}

func (p SensorPayload) Detection(receivedAt time.Time, id string) (specs.DetectionEventSpec, error) {
	direction, err := internal.ParseSensorDirection(p.Direction)
	if err != nil {
		return specs.DetectionEventSpec{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if _, ok := VehicleTypes[p.Type]; !ok {
		return specs.DetectionEventSpec{}, fmt.Errorf("%w: unknown vehicle type %q", ErrInvalidPayload, p.Type)
	}
	if p.Height == nil {
		return specs.DetectionEventSpec{}, fmt.Errorf("%w: height is required", ErrInvalidPayload)
	}
	if *p.Height < 0 || p.Distance < 0 {
		return specs.DetectionEventSpec{}, fmt.Errorf("%w: height and distance cannot be negative", ErrInvalidPayload)
	}

	return specs.DetectionEventSpec{
		ID:          id,
		SensorID:    direction.SensorID(),
		Direction:   direction.ToString(),
		VehicleType: p.Type,
		Height:      *p.Height,
		Distance:    p.Distance,
		Timestamp:   receivedAt,
	}, nil
}
