package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"thermalcli/internal/config"
	apperrors "thermalcli/internal/errors"
	"thermalcli/internal/files"
	"thermalcli/internal/topology"
	"thermalcli/pkg/contracts/domain"
)

// RawRow is one cleaned sensor reading tagged with its identity and
// period. It is the unit of the pre-resample sensor-level table.
type RawRow struct {
	Period string
	domain.SensorIdentity
	domain.Reading
}

// PeriodData is one period's concatenated sensor-level table plus the
// load report describing how it was assembled.
type PeriodData struct {
	Period string
	Rows   []RawRow
	Report domain.LoadReport
}

// Loader discovers and parses the sensor files of experiment periods.
// Files parse concurrently; the merge is order-independent and the
// final table is sorted deterministically.
type Loader struct {
	logger *slog.Logger
	parser *Parser
	cfg    config.PipelineConfig
}

// NewLoader creates a period loader. A nil logger falls back to
// slog.Default().
func NewLoader(logger *slog.Logger, cfg config.PipelineConfig) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger: logger,
		parser: NewParser(logger, cfg.MetadataLines, cfg.TruncationThreshold),
		cfg:    cfg,
	}
}

// fileResult carries one file's parse outcome from the worker pool back
// to the sequential merge.
type fileResult struct {
	file     string
	identity domain.SensorIdentity
	readings []domain.Reading
	err      error
}

// LoadPeriod discovers all sensor files in dir, parses each one and
// returns the concatenated sensor-level table tagged with periodName.
// A single file's failure is non-fatal; the load fails only when zero
// files produce usable data.
func (l *Loader) LoadPeriod(ctx context.Context, dir, periodName string) (*PeriodData, error) {
	discovery := files.NewDiscovery(dir)
	csvFiles, err := discovery.FindCSVFiles(".")
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("cannot read period directory %s", dir), err)
	}

	l.logger.Info("loading period",
		slog.String("period", periodName),
		slog.String("dir", dir),
		slog.Int("files", len(csvFiles)))

	report := domain.LoadReport{
		Period:         periodName,
		FilesFound:     len(csvFiles),
		MissingSensors: make(map[int][]int),
	}

	results := make([]fileResult, len(csvFiles))
	g, ctx := errgroup.WithContext(ctx)
	for i, file := range csvFiles {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			identity, ok := topology.Identify(file.Name)
			if !ok {
				results[i] = fileResult{
					file: file.Name,
					err:  apperrors.NewIdentityError(file.Name),
				}
				return nil
			}

			readings, _, err := l.parser.ParseFile(file.Path)
			results[i] = fileResult{
				file:     file.Name,
				identity: identity,
				readings: readings,
				err:      err,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data := &PeriodData{Period: periodName}
	observed := make(map[int]map[int]bool) // box_id -> sensor_id -> present

	for _, result := range results {
		switch {
		case result.err != nil:
			l.logger.Warn("skipping sensor file",
				slog.String("period", periodName),
				slog.String("file", result.file),
				slog.String("error", result.err.Error()))
			report.FilesSkipped++
			report.Warnings = append(report.Warnings, result.err.Error())
			continue
		case len(result.readings) == 0:
			l.logger.Warn("skipping sensor file with no usable rows",
				slog.String("period", periodName),
				slog.String("file", result.file))
			report.FilesSkipped++
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("file %s decoded but yielded zero valid rows", result.file))
			continue
		}

		for _, reading := range result.readings {
			data.Rows = append(data.Rows, RawRow{
				Period:         periodName,
				SensorIdentity: result.identity,
				Reading:        reading,
			})
		}

		report.FilesLoaded++
		report.Coverage = append(report.Coverage, domain.SensorCoverage{
			File:     result.file,
			BoxID:    result.identity.BoxID,
			SensorID: result.identity.SensorID,
			WallID:   result.identity.WallID,
			Position: result.identity.Position,
			Rows:     len(result.readings),
		})

		if observed[result.identity.BoxID] == nil {
			observed[result.identity.BoxID] = make(map[int]bool)
		}
		observed[result.identity.BoxID][result.identity.SensorID] = true
	}

	if report.FilesLoaded == 0 {
		return nil, apperrors.NewNoDataError(periodName)
	}

	// Missing sensors change the validity of downstream averaging, so
	// the report always lists the absent IDs per box.
	for boxID := 1; boxID <= l.cfg.ExpectedBoxes; boxID++ {
		var missing []int
		for sensorID := 1; sensorID <= l.cfg.ExpectedSensors; sensorID++ {
			if !observed[boxID][sensorID] {
				missing = append(missing, sensorID)
			}
		}
		if len(missing) > 0 {
			report.MissingSensors[boxID] = missing
			l.logger.Warn("period is missing sensors",
				slog.String("period", periodName),
				slog.Int("box_id", boxID),
				slog.Any("sensor_ids", missing))
		}
	}

	sortRawRows(data.Rows)
	report.Rows = len(data.Rows)
	data.Report = report

	l.logger.Info("period loaded",
		slog.String("period", periodName),
		slog.Int("files_loaded", report.FilesLoaded),
		slog.Int("files_skipped", report.FilesSkipped),
		slog.Int("rows", report.Rows))

	return data, nil
}

// LoadAllPeriods loads every period subdirectory under root and returns
// a map from period name to its sensor-level table. Directories named
// "Excluded" hold files the upstream preparation step rejected and are
// not periods. A period with zero usable files is skipped with a
// warning; the call fails only when no period produces data.
func (l *Loader) LoadAllPeriods(ctx context.Context, root string) (map[string]*PeriodData, error) {
	discovery := files.NewDiscovery(root)
	dirs, err := discovery.ListDirectories(".")
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("cannot read periods root %s", root), err)
	}

	periods := make(map[string]*PeriodData)
	for _, dir := range dirs {
		if strings.EqualFold(dir.Name, "excluded") {
			continue
		}

		data, err := l.LoadPeriod(ctx, dir.Path, dir.Name)
		if err != nil {
			if apperrors.IsType(err, apperrors.ErrTypeNoData) {
				l.logger.Warn("period yielded no data, skipping",
					slog.String("period", dir.Name))
				continue
			}
			return nil, err
		}
		periods[dir.Name] = data
	}

	if len(periods) == 0 {
		return nil, apperrors.NewNoDataError(root)
	}

	return periods, nil
}

// sortRawRows orders the merged table by (box, sensor, timestamp) so
// that concurrent parse completion order never leaks into results.
func sortRawRows(rows []RawRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].BoxID != rows[j].BoxID {
			return rows[i].BoxID < rows[j].BoxID
		}
		if rows[i].SensorID != rows[j].SensorID {
			return rows[i].SensorID < rows[j].SensorID
		}
		return rows[i].Timestamp.Before(rows[j].Timestamp)
	})
}
