package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload(t *testing.T) {
	receivedAt := time.Date(2024, 1, 1, 8, 15, 0, 0, time.UTC)

	t.Run("maps North to direction one on sensor 1", func(t *testing.T) {
		detection, err := ParsePayload([]byte(`{"direction":"North","type":"Car","height":1.45,"distance":3}`), receivedAt, "id-1")

		require.NoError(t, err)
		assert.Equal(t, "id-1", detection.ID)
		assert.Equal(t, "dir1", detection.Direction)
		assert.Equal(t, 1, detection.SensorID)
		assert.Equal(t, "Car", detection.VehicleType)
		assert.Equal(t, 1.45, detection.Height)
		assert.Equal(t, 3.0, detection.Distance)
		assert.Equal(t, receivedAt, detection.Timestamp)
	})

	t.Run("maps South to direction two on sensor 2", func(t *testing.T) {
		detection, err := ParsePayload([]byte(`{"direction":"South","type":"SUV/Van","height":2.1}`), receivedAt, "id-2")

		require.NoError(t, err)
		assert.Equal(t, "dir2", detection.Direction)
		assert.Equal(t, 2, detection.SensorID)
	})

	t.Run("accepts zero height", func(t *testing.T) {
		_, err := ParsePayload([]byte(`{"direction":"North","type":"Motorcycle","height":0}`), receivedAt, "id")

		assert.NoError(t, err)
	})

	t.Run("rejects missing height", func(t *testing.T) {
		_, err := ParsePayload([]byte(`{"direction":"North","type":"Car"}`), receivedAt, "id")

		require.ErrorIs(t, err, ErrInvalidPayload)
		assert.Contains(t, err.Error(), "height is required")
	})

	t.Run("rejects unknown direction", func(t *testing.T) {
		_, err := ParsePayload([]byte(`{"direction":"East","type":"Car","height":1}`), receivedAt, "id")

		assert.ErrorIs(t, err, ErrInvalidPayload)
	})

	t.Run("rejects unknown vehicle type", func(t *testing.T) {
		_, err := ParsePayload([]byte(`{"direction":"North","type":"Tractor","height":1}`), receivedAt, "id")

		require.ErrorIs(t, err, ErrInvalidPayload)
		assert.Contains(t, err.Error(), `"Tractor"`)
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		_, err := ParsePayload([]byte(`{"direction":`), receivedAt, "id")

		assert.ErrorIs(t, err, ErrInvalidPayload)
	})
}
