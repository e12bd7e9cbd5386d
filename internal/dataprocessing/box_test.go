package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thermalcli/internal/shared/testutil"
	"thermalcli/pkg/contracts/domain"
)

func newTestBoxAggregator(t *testing.T) *BoxAggregator {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	return NewBoxAggregator(logger)
}

func TestBoxAggregate(t *testing.T) {
	agg := newTestBoxAggregator(t)
	ts := time.Date(2024, 11, 4, 12, 0, 0, 0, time.UTC)

	rows := []domain.SensorRow{
		sensorRow("Period1", 1, 1, ts, 30, 24, 20, ""),  // out
		sensorRow("Period1", 1, 5, ts, 32, 26, 20, ""),  // out
		sensorRow("Period1", 1, 9, ts, 26, 22, 20, ""),  // in
		sensorRow("Period1", 1, 13, ts, 24, 20, 20, ""), // in
	}

	out := agg.Aggregate(rows)
	require.Len(t, out, 1)
	row := out[0]

	assert.Equal(t, "Period1", row.Period)
	assert.Equal(t, 1, row.BoxID)
	assert.Equal(t, ts, row.Timestamp)
	assert.Equal(t, 4, row.SensorCount)

	assert.InDelta(t, 23.0, row.InternalTemp, 1e-12, "all four sensors")
	assert.InDelta(t, 20.0, row.RoomTemp, 1e-12)
	assert.InDelta(t, 3.0, row.NormalizedInternal, 1e-12)

	// Surface means interior wall surface: only the in-position sensors.
	assert.InDelta(t, 25.0, row.SurfaceTemp, 1e-12)
	assert.InDelta(t, 5.0, row.NormalizedSurface, 1e-12)
}

func TestBoxAggregate_NoInSensors(t *testing.T) {
	agg := newTestBoxAggregator(t)
	ts := time.Date(2024, 11, 4, 12, 0, 0, 0, time.UTC)

	rows := []domain.SensorRow{
		sensorRow("Period1", 1, 1, ts, 30, 24, 20, ""),
		sensorRow("Period1", 1, 3, ts, 32, 26, 20, ""),
	}

	out := agg.Aggregate(rows)
	require.Len(t, out, 1)
	row := out[0]

	assert.True(t, domain.IsMissing(row.SurfaceTemp), "no interior surface without in-position sensors")
	assert.True(t, domain.IsMissing(row.NormalizedSurface))
	assert.InDelta(t, 25.0, row.InternalTemp, 1e-12)
	assert.Equal(t, 2, row.SensorCount)
}

func TestBoxAggregate_SeparatesBoxesAndBins(t *testing.T) {
	agg := newTestBoxAggregator(t)
	ts := time.Date(2024, 11, 4, 12, 0, 0, 0, time.UTC)

	rows := []domain.SensorRow{
		sensorRow("Period1", 2, 9, ts.Add(10*time.Minute), 26, 22, 20, ""),
		sensorRow("Period1", 2, 9, ts, 26, 22, 20, ""),
		sensorRow("Period1", 1, 9, ts, 28, 24, 20, ""),
	}

	out := agg.Aggregate(rows)
	require.Len(t, out, 3)

	assert.Equal(t, 1, out[0].BoxID)
	assert.Equal(t, 2, out[1].BoxID)
	assert.Equal(t, ts, out[1].Timestamp)
	assert.Equal(t, ts.Add(10*time.Minute), out[2].Timestamp)
}
