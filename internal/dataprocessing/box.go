package dataprocessing

import (
	"log/slog"
	"sort"
	"time"

	"thermalcli/pkg/contracts/domain"
)

// BoxAggregator collapses sensor-level rows sharing (period, box,
// timestamp) into one row per enclosure. Internal and room temperatures
// average all sensors of the box; the surface temperature averages only
// the "in" position sensors, because "surface" means the interior wall
// surface and only sensors 9-16 measure it.
type BoxAggregator struct {
	logger *slog.Logger
}

// NewBoxAggregator creates a box aggregator. A nil logger falls back to
// slog.Default().
func NewBoxAggregator(logger *slog.Logger) *BoxAggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &BoxAggregator{logger: logger}
}

// boxKey identifies one enclosure at one timestamp.
type boxKey struct {
	period string
	boxID  int
	ts     time.Time
}

// boxGroup accumulates one box key's sensor rows.
type boxGroup struct {
	internal           meanAccumulator
	room               meanAccumulator
	normalizedInternal meanAccumulator
	surfaceIn          meanAccumulator
	normalizedSurface  meanAccumulator
	sensors            int
}

// Aggregate rolls a sensor-level table up to box level.
func (a *BoxAggregator) Aggregate(rows []domain.SensorRow) []domain.BoxRow {
	groups := make(map[boxKey]*boxGroup)
	var order []boxKey

	for _, row := range rows {
		key := boxKey{period: row.Period, boxID: row.BoxID, ts: row.Timestamp}
		group, ok := groups[key]
		if !ok {
			group = &boxGroup{}
			groups[key] = group
			order = append(order, key)
		}

		group.internal.add(row.InternalTemp)
		group.room.add(row.RoomTemp)
		group.normalizedInternal.add(row.NormalizedInternal)
		group.sensors++

		if row.Position == domain.PositionIn {
			group.surfaceIn.add(row.SurfaceTemp)
			group.normalizedSurface.add(row.NormalizedSurface)
		}
	}

	out := make([]domain.BoxRow, 0, len(order))
	for _, key := range order {
		group := groups[key]
		out = append(out, domain.BoxRow{
			Period:             key.period,
			BoxID:              key.boxID,
			Timestamp:          key.ts,
			InternalTemp:       group.internal.value(),
			SurfaceTemp:        group.surfaceIn.value(),
			RoomTemp:           group.room.value(),
			NormalizedInternal: group.normalizedInternal.value(),
			NormalizedSurface:  group.normalizedSurface.value(),
			SensorCount:        group.sensors,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Period != out[j].Period {
			return out[i].Period < out[j].Period
		}
		if out[i].BoxID != out[j].BoxID {
			return out[i].BoxID < out[j].BoxID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})

	a.logger.Info("box-level aggregation complete",
		slog.Int("sensor_rows", len(rows)),
		slog.Int("box_rows", len(out)))

	return out
}
