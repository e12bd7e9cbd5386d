package dataprocessing

import (
	"context"
	"log/slog"
	"sort"

	"thermalcli/internal/config"
	apperrors "thermalcli/internal/errors"
	"thermalcli/pkg/contracts/domain"
)

// Dataset holds the three output tables of a full transform run plus
// the per-period resampling reports. Tables are immutable once built;
// consumers derive new tables instead of editing these.
type Dataset struct {
	Sensor  []domain.SensorRow
	Wall    []domain.WallRow
	Box     []domain.BoxRow
	Reports map[string]domain.ResampleReport
}

// Transformer wires the resampler, the derived-quantity pass and both
// aggregators into the full sensor -> wall -> box transform.
type Transformer struct {
	logger    *slog.Logger
	resampler *Resampler
	wallAgg   *WallAggregator
	boxAgg    *BoxAggregator
}

// NewTransformer creates a transformer. A nil logger falls back to
// slog.Default().
func NewTransformer(logger *slog.Logger, cfg config.PipelineConfig) *Transformer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Transformer{
		logger:    logger,
		resampler: NewResampler(logger, cfg),
		wallAgg:   NewWallAggregator(logger),
		boxAgg:    NewBoxAggregator(logger),
	}
}

// TransformAll applies resampling, normalization and both aggregations
// to every loaded period and concatenates the results. The bin epoch is
// shared across all periods so that bin boundaries line up everywhere.
func (t *Transformer) TransformAll(ctx context.Context, periods map[string]*PeriodData) (*Dataset, error) {
	if len(periods) == 0 {
		return nil, apperrors.NewNoDataError("transform input")
	}

	globalStart := t.resampler.GlobalStart(periods)

	names := make([]string, 0, len(periods))
	for name := range periods {
		names = append(names, name)
	}
	sort.Strings(names)

	dataset := &Dataset{Reports: make(map[string]domain.ResampleReport)}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		t.logger.Info("transforming period", slog.String("period", name))

		resampled, report := t.resampler.Resample(periods[name], globalStart)
		dataset.Reports[name] = report

		sensor := ComputeNormalized(resampled)
		dataset.Sensor = append(dataset.Sensor, sensor...)
		dataset.Wall = append(dataset.Wall, t.wallAgg.Aggregate(sensor)...)
		dataset.Box = append(dataset.Box, t.boxAgg.Aggregate(sensor)...)
	}

	t.logger.Info("transform complete",
		slog.Int("sensor_rows", len(dataset.Sensor)),
		slog.Int("wall_rows", len(dataset.Wall)),
		slog.Int("box_rows", len(dataset.Box)))

	return dataset, nil
}
