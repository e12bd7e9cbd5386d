package dataprocessing

import (
	"log/slog"
	"sort"
	"time"

	"thermalcli/pkg/contracts/domain"
)

// WallAggregator collapses sensor-level rows sharing (period, box,
// wall, timestamp) into one row by first averaging the sensors of each
// position and then pivoting "out" against "in".
type WallAggregator struct {
	logger *slog.Logger
}

// NewWallAggregator creates a wall aggregator. A nil logger falls back
// to slog.Default().
func NewWallAggregator(logger *slog.Logger) *WallAggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &WallAggregator{logger: logger}
}

// wallKey identifies one wall at one timestamp.
type wallKey struct {
	period string
	boxID  int
	wallID int
	ts     time.Time
}

// positionAgg is the mean of one position's sensors at one timestamp.
type positionAgg struct {
	surface            meanAccumulator
	internal           meanAccumulator
	room               meanAccumulator
	normalizedSurface  meanAccumulator
	normalizedInternal meanAccumulator
	wallType           modeAccumulator
	sensors            int
}

// wallGroup holds both position aggregates of one wall key.
type wallGroup struct {
	out positionAgg
	in  positionAgg
}

// Aggregate rolls a sensor-level table up to wall level and computes
// the gradient chain on every row.
func (a *WallAggregator) Aggregate(rows []domain.SensorRow) []domain.WallRow {
	groups := make(map[wallKey]*wallGroup)
	var order []wallKey

	for _, row := range rows {
		key := wallKey{period: row.Period, boxID: row.BoxID, wallID: row.WallID, ts: row.Timestamp}
		group, ok := groups[key]
		if !ok {
			group = &wallGroup{}
			groups[key] = group
			order = append(order, key)
		}

		agg := &group.out
		if row.Position == domain.PositionIn {
			agg = &group.in
		}
		agg.surface.add(row.SurfaceTemp)
		agg.internal.add(row.InternalTemp)
		agg.room.add(row.RoomTemp)
		agg.normalizedSurface.add(row.NormalizedSurface)
		agg.normalizedInternal.add(row.NormalizedInternal)
		agg.wallType.add(row.WallType)
		agg.sensors++
	}

	out := make([]domain.WallRow, 0, len(order))
	for _, key := range order {
		group := groups[key]
		row := domain.WallRow{
			Period:    key.period,
			BoxID:     key.boxID,
			WallID:    key.wallID,
			Timestamp: key.ts,

			OutSurface:  group.out.surface.value(),
			InSurface:   group.in.surface.value(),
			OutInternal: group.out.internal.value(),
			InInternal:  group.in.internal.value(),

			OutNormalizedSurface:  group.out.normalizedSurface.value(),
			InNormalizedSurface:   group.in.normalizedSurface.value(),
			OutNormalizedInternal: group.out.normalizedInternal.value(),
			InNormalizedInternal:  group.in.normalizedInternal.value(),

			OutSensorCount: group.out.sensors,
			InSensorCount:  group.in.sensors,

			// Room air is shared between positions; prefer the "out"
			// reading when both are present.
			RoomTemp: preferPresent(group.out.room.value(), group.in.room.value()),

			// Box 1 carries no wall type; box 2 always does. Take it
			// from whichever position recorded one.
			WallType: preferNonEmpty(group.out.wallType.value(), group.in.wallType.value()),
		}

		computeGradients(&row)
		out = append(out, row)
	}

	sortWallRows(out)

	a.logger.Info("wall-level aggregation complete",
		slog.Int("sensor_rows", len(rows)),
		slog.Int("wall_rows", len(out)))

	return out
}

// preferPresent returns a when present, otherwise b.
func preferPresent(a, b float64) float64 {
	if !domain.IsMissing(a) {
		return a
	}
	return b
}

// preferNonEmpty returns a when non-empty, otherwise b.
func preferNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// sortWallRows orders a wall-level table by (period, box, wall,
// timestamp).
func sortWallRows(rows []domain.WallRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Period != rows[j].Period {
			return rows[i].Period < rows[j].Period
		}
		if rows[i].BoxID != rows[j].BoxID {
			return rows[i].BoxID < rows[j].BoxID
		}
		if rows[i].WallID != rows[j].WallID {
			return rows[i].WallID < rows[j].WallID
		}
		return rows[i].Timestamp.Before(rows[j].Timestamp)
	})
}
