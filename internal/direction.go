package internal

import (
	"fmt"
	specs "github.com/chrisconley/trafficreport/specs"
)

type Direction struct {
	value string
}

var (
	DirectionOne = Direction{value: specs.DirectionOne}
	DirectionTwo = Direction{value: specs.DirectionTwo}
)

func NewDirection(value string) (Direction, error) {
	switch value {
	case specs.DirectionOne:
		return DirectionOne, nil
	case specs.DirectionTwo:
		return DirectionTwo, nil
	case "":
		return Direction{}, fmt.Errorf("direction is required")
	default:
		return Direction{}, fmt.Errorf("invalid direction: %q", value)
	}
}

// ParseSensorDirection maps the names sensors and the legacy schema use for
// each direction: "North"/"direction_1" face Direction 1, "South"/"direction_2"
// face Direction 2. Canonical identifiers are accepted too.
func ParseSensorDirection(value string) (Direction, error) {
	switch value {
	case "North", "direction_1", specs.DirectionOne:
		return DirectionOne, nil
	case "South", "direction_2", specs.DirectionTwo:
		return DirectionTwo, nil
	default:
		return NewDirection(value)
	}
}

func (d Direction) ToString() string {
	return d.value
}

func (d Direction) IsOne() bool {
	return d.value == specs.DirectionOne
}

func (d Direction) IsTwo() bool {
	return d.value == specs.DirectionTwo
}

// SensorID is the sensor that faces this direction.
func (d Direction) SensorID() int {
	if d.IsTwo() {
		return 2
	}
	return 1
}

// DisplayName is the name used in report narratives.
func (d Direction) DisplayName() string {
	if d.IsTwo() {
		return "Direction 2"
	}
	return "Direction 1"
}
