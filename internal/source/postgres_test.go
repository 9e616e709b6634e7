package source

import (
	"testing"
	"time"

	specs "github.com/chrisconley/trafficreport/specs"
	"github.com/stretchr/testify/assert"
)

func TestDetectionRow(t *testing.T) {
	t.Run("maps to the traffic_data table", func(t *testing.T) {
		assert.Equal(t, "traffic_data", detectionRow{}.TableName())
	})

	t.Run("round trips a detection and normalizes to UTC", func(t *testing.T) {
		rome := time.FixedZone("CET", 3600)
		event := specs.DetectionEventSpec{
			ID:          "5b0c8f4e-2b62-4e0a-9f6e-0a4d1c6f7e21",
			SensorID:    2,
			Direction:   "dir2",
			VehicleType: "Bus",
			Height:      3.2,
			Distance:    4,
			Timestamp:   time.Date(2024, 1, 1, 9, 0, 0, 0, rome),
		}

		row := toRow(event)
		back := row.toSpec()

		assert.Equal(t, time.UTC, row.Timestamp.Location())
		assert.True(t, back.Timestamp.Equal(event.Timestamp))
		back.Timestamp = event.Timestamp
		assert.Equal(t, event, back)
	})
}
