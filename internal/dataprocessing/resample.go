package dataprocessing

import (
	"log/slog"
	"sort"
	"time"

	"thermalcli/internal/config"
	"thermalcli/pkg/contracts/domain"
)

// Resampler converts raw, possibly irregular readings into exactly one
// value per (box, sensor, bin). Bins are floored against a single
// global epoch, so a given wall-clock bin boundary is identical for
// every sensor and every period; this is what makes cross-sensor joins
// by timestamp valid.
type Resampler struct {
	logger   *slog.Logger
	binWidth time.Duration
	expected int
}

// NewResampler creates a resampler. A nil logger falls back to
// slog.Default().
func NewResampler(logger *slog.Logger, cfg config.PipelineConfig) *Resampler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resampler{
		logger:   logger,
		binWidth: cfg.BinWidth.Std(),
		expected: cfg.ExpectedCardinality(),
	}
}

// GlobalStart returns the shared bin epoch: the floor of the earliest
// timestamp across all given periods.
func (r *Resampler) GlobalStart(periods map[string]*PeriodData) time.Time {
	var earliest time.Time
	for _, period := range periods {
		for _, row := range period.Rows {
			if earliest.IsZero() || row.Timestamp.Before(earliest) {
				earliest = row.Timestamp
			}
		}
	}
	if earliest.IsZero() {
		return earliest
	}
	return earliest.Truncate(r.binWidth)
}

// binKey identifies one output bin.
type binKey struct {
	period   string
	boxID    int
	sensorID int
	bin      time.Time
}

// binAccumulator aggregates the raw samples falling into one bin.
type binAccumulator struct {
	identity domain.SensorIdentity
	surface  meanAccumulator
	internal meanAccumulator
	room     meanAccumulator
	wallType modeAccumulator
}

// Resample floors one period's raw rows onto the bin grid and averages
// duplicate samples. Numeric columns take the bin mean; the wall-type
// column takes the bin mode. The report flags every output timestamp
// whose sensor count departs from the expected full cardinality.
func (r *Resampler) Resample(period *PeriodData, globalStart time.Time) ([]domain.SensorRow, domain.ResampleReport) {
	report := domain.ResampleReport{
		GlobalStart: globalStart,
		InputRows:   len(period.Rows),
	}

	bins := make(map[binKey]*binAccumulator)
	var order []binKey

	for _, row := range period.Rows {
		key := binKey{
			period:   row.Period,
			boxID:    row.BoxID,
			sensorID: row.SensorID,
			bin:      row.Timestamp.Truncate(r.binWidth),
		}

		acc, ok := bins[key]
		if !ok {
			acc = &binAccumulator{identity: row.SensorIdentity}
			bins[key] = acc
			order = append(order, key)
		}

		acc.surface.add(row.SurfaceTemp)
		acc.internal.add(row.InternalTemp)
		acc.room.add(row.RoomTemp)
		acc.wallType.add(row.WallType)
	}

	rows := make([]domain.SensorRow, 0, len(order))
	for _, key := range order {
		acc := bins[key]
		rows = append(rows, domain.SensorRow{
			Period:             key.period,
			BoxID:              acc.identity.BoxID,
			SensorID:           acc.identity.SensorID,
			WallID:             acc.identity.WallID,
			Position:           acc.identity.Position,
			Timestamp:          key.bin,
			SurfaceTemp:        acc.surface.value(),
			InternalTemp:       acc.internal.value(),
			RoomTemp:           acc.room.value(),
			WallType:           acc.wallType.value(),
			NormalizedSurface:  domain.Missing(),
			NormalizedInternal: domain.Missing(),
		})
	}

	sortSensorRows(rows)
	report.OutputRows = len(rows)
	report.BinWarnings = r.validateCardinality(rows)

	r.logger.Info("resampled period",
		slog.String("period", period.Period),
		slog.Duration("bin_width", r.binWidth),
		slog.Time("global_start", globalStart),
		slog.Int("input_rows", report.InputRows),
		slog.Int("output_rows", report.OutputRows),
		slog.Int("bin_warnings", len(report.BinWarnings)))

	return rows, report
}

// validateCardinality counts rows per output timestamp and flags any
// bin departing from the expected boxes-times-sensors count. Gaps are
// surfaced, never fatal.
func (r *Resampler) validateCardinality(rows []domain.SensorRow) []domain.BinWarning {
	counts := make(map[time.Time]int)
	var stamps []time.Time
	for _, row := range rows {
		if _, seen := counts[row.Timestamp]; !seen {
			stamps = append(stamps, row.Timestamp)
		}
		counts[row.Timestamp]++
	}

	sort.Slice(stamps, func(i, j int) bool { return stamps[i].Before(stamps[j]) })

	var warnings []domain.BinWarning
	for _, ts := range stamps {
		if counts[ts] != r.expected {
			warnings = append(warnings, domain.BinWarning{
				Timestamp: ts,
				Count:     counts[ts],
				Expected:  r.expected,
			})
		}
	}

	if len(warnings) > 0 {
		r.logger.Warn("timestamp bins with unexpected sensor counts",
			slog.Int("bins", len(warnings)),
			slog.Int("expected_per_bin", r.expected))
	}

	return warnings
}

// sortSensorRows orders a sensor-level table by (period, box, sensor,
// timestamp).
func sortSensorRows(rows []domain.SensorRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Period != rows[j].Period {
			return rows[i].Period < rows[j].Period
		}
		if rows[i].BoxID != rows[j].BoxID {
			return rows[i].BoxID < rows[j].BoxID
		}
		if rows[i].SensorID != rows[j].SensorID {
			return rows[i].SensorID < rows[j].SensorID
		}
		return rows[i].Timestamp.Before(rows[j].Timestamp)
	})
}
