package specs

import (
	"fmt"
	"time"
)

// Direction identifiers used across spec types.
const (
	DirectionOne = "dir1"
	DirectionTwo = "dir2"
	DirectionTie = "tie"
)

// DetectionEventSpec represents a single vehicle passing one of the two
// opposing traffic sensors.
//
// Detection events are created by the ingestion collaborator and are
// read-only to report generation. Each event counts as exactly one vehicle.
type DetectionEventSpec struct {
	// Unique identifier for this detection.
	//
	// Assigned at ingestion. Report generation does not use it, but stores and
	// buses key on it. Example: "5b0c8f4e-2b62-4e0a-9f6e-0a4d1c6f7e21".
	ID string `json:"id,omitempty"`

	// Numeric sensor identifier.
	//
	// By convention sensor 1 faces Direction 1 (northbound) and sensor 2 faces
	// Direction 2 (southbound).
	SensorID int `json:"sensorID,omitempty"`

	// Direction the vehicle was travelling.
	//
	// Must be DirectionOne ("dir1") or DirectionTwo ("dir2").
	Direction string `json:"direction"`

	// Vehicle classification reported by the sensor.
	//
	// Examples: "Motorcycle", "Car", "SUV/Van", "Bus", "Truck". Free-form at
	// this level; the breakdown groups by exact string.
	VehicleType string `json:"vehicleType"`

	// Measured vehicle height in meters.
	Height float64 `json:"height"`

	// Distance between the vehicle and the sensor in meters.
	Distance float64 `json:"distance"`

	// When the vehicle was detected.
	//
	// Determines which report bucket the event falls into.
	Timestamp time.Time `json:"timestamp"`
}

// NewDetectionEvent creates a detection for the given direction at an instant.
//
// Returns error if direction is not DirectionOne or DirectionTwo.
//
// Examples:
//   - Northbound car: NewDetectionEvent("dir1", "Car", at)
//   - Southbound bus: NewDetectionEvent("dir2", "Bus", at)
func NewDetectionEvent(direction, vehicleType string, at time.Time) (DetectionEventSpec, error) {
	if direction != DirectionOne && direction != DirectionTwo {
		return DetectionEventSpec{}, fmt.Errorf("detection event: unknown direction %q", direction)
	}
	return DetectionEventSpec{
		Direction:   direction,
		VehicleType: vehicleType,
		Timestamp:   at,
	}, nil
}
