package internal

import (
	"errors"
	"testing"
	"time"

	specs "github.com/chrisconley/trafficreport/specs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireInvalidRange(t *testing.T, err error) *InvalidRangeError {
	t.Helper()
	require.Error(t, err)
	var rangeErr *InvalidRangeError
	require.True(t, errors.As(err, &rangeErr), "expected *InvalidRangeError, got %T", err)
	return rangeErr
}

func TestNewReportConfig(t *testing.T) {
	t.Run("resolves dates to midnight in UTC by default", func(t *testing.T) {
		config, err := NewReportConfig(specs.ReportConfigSpec{
			Granularity: "daily",
			RangeStart:  "2024-01-01",
			RangeEnd:    "2024-01-07",
		})

		require.NoError(t, err)
		assert.True(t, config.Granularity().IsDaily())
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), config.RangeStart())
		assert.Equal(t, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC), config.RangeEnd())
	})

	t.Run("fills defaults in ToSpec", func(t *testing.T) {
		config, err := NewReportConfig(specs.ReportConfigSpec{
			Granularity: "hourly",
			RangeStart:  "2024-01-01",
			RangeEnd:    "2024-01-01",
		})

		require.NoError(t, err)
		assert.Equal(t, specs.ReportConfigSpec{
			Granularity: "hourly",
			RangeStart:  "2024-01-01",
			RangeEnd:    "2024-01-01",
			Timezone:    "UTC",
			Labels:      "iso",
		}, config.ToSpec())
	})

	t.Run("honours timezone", func(t *testing.T) {
		config, err := NewReportConfig(specs.ReportConfigSpec{
			Granularity: "daily",
			RangeStart:  "2024-01-01",
			RangeEnd:    "2024-01-01",
			Timezone:    "America/New_York",
		})

		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 1, 5, 0, 0, 0, time.UTC), config.RangeStart().UTC())
	})

	t.Run("with start after end returns InvalidRangeError", func(t *testing.T) {
		_, err := NewReportConfig(specs.ReportConfigSpec{
			Granularity: "daily",
			RangeStart:  "2024-02-01",
			RangeEnd:    "2024-01-01",
		})

		rangeErr := requireInvalidRange(t, err)
		assert.Equal(t, "2024-02-01", rangeErr.RangeStart)
		assert.Equal(t, "2024-01-01", rangeErr.RangeEnd)
		assert.Contains(t, err.Error(), "start is after end")
	})

	t.Run("with hourly over two days returns InvalidRangeError", func(t *testing.T) {
		_, err := NewReportConfig(specs.ReportConfigSpec{
			Granularity: "hourly",
			RangeStart:  "2024-01-01",
			RangeEnd:    "2024-01-02",
		})

		requireInvalidRange(t, err)
		assert.Contains(t, err.Error(), "single day")
	})

	t.Run("with malformed date returns InvalidRangeError", func(t *testing.T) {
		_, err := NewReportConfig(specs.ReportConfigSpec{
			Granularity: "daily",
			RangeStart:  "01/01/2024",
			RangeEnd:    "2024-01-02",
		})

		requireInvalidRange(t, err)
	})

	t.Run("with unknown granularity returns InvalidRangeError", func(t *testing.T) {
		_, err := NewReportConfig(specs.ReportConfigSpec{
			Granularity: "weekly",
			RangeStart:  "2024-01-01",
			RangeEnd:    "2024-01-07",
		})

		requireInvalidRange(t, err)
		assert.Contains(t, err.Error(), "unknown granularity")
	})

	t.Run("with unknown timezone returns InvalidRangeError", func(t *testing.T) {
		_, err := NewReportConfig(specs.ReportConfigSpec{
			Granularity: "daily",
			RangeStart:  "2024-01-01",
			RangeEnd:    "2024-01-07",
			Timezone:    "Mars/Olympus",
		})

		requireInvalidRange(t, err)
	})
}

func TestNewReportConfigForKind(t *testing.T) {
	t.Run("daily kind is hourly over the start date", func(t *testing.T) {
		config, err := NewReportConfigForKind("daily", "2024-01-01", "2024-01-31", "")

		require.NoError(t, err)
		assert.Equal(t, "hourly", config.Granularity)
		assert.Equal(t, "2024-01-01", config.RangeEnd)
	})

	t.Run("weekly kind uses weekday labels", func(t *testing.T) {
		config, err := NewReportConfigForKind("weekly", "2024-01-01", "2024-01-07", "")

		require.NoError(t, err)
		assert.Equal(t, "daily", config.Granularity)
		assert.Equal(t, "weekday", config.Labels)
	})

	t.Run("monthly and custom kinds use iso labels", func(t *testing.T) {
		for _, kind := range []string{"monthly", "custom"} {
			config, err := NewReportConfigForKind(kind, "2024-01-01", "2024-01-31", "UTC")

			require.NoError(t, err)
			assert.Equal(t, "daily", config.Granularity)
			assert.Equal(t, "iso", config.Labels)
			assert.Equal(t, "2024-01-31", config.RangeEnd)
		}
	})

	t.Run("daily kind defaults an empty end to the start", func(t *testing.T) {
		config, err := NewReportConfigForKind("daily", "2024-01-01", "", "")

		require.NoError(t, err)
		assert.Equal(t, "2024-01-01", config.RangeEnd)
	})

	t.Run("with reversed range returns InvalidRangeError for every kind", func(t *testing.T) {
		for _, kind := range []string{"daily", "weekly", "monthly", "custom"} {
			_, err := NewReportConfigForKind(kind, "2024-02-01", "2024-01-01", "")

			rangeErr := requireInvalidRange(t, err)
			assert.Equal(t, "start is after end", rangeErr.Reason, kind)
		}
	})

	t.Run("with malformed end returns InvalidRangeError", func(t *testing.T) {
		_, err := NewReportConfigForKind("daily", "2024-01-01", "tomorrow", "")

		requireInvalidRange(t, err)
	})

	t.Run("with unknown kind returns InvalidRangeError", func(t *testing.T) {
		_, err := NewReportConfigForKind("yearly", "2024-01-01", "2024-12-31", "")

		requireInvalidRange(t, err)
	})
}
