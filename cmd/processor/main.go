// Command processor runs the thermal experiment reconciliation
// pipeline: it loads every period folder of raw sensor files, resamples
// them onto the shared 10-minute grid, rolls the result up to wall and
// box level and exports the three tables.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"thermalcli/internal/config"
	"thermalcli/internal/dataprocessing"
	"thermalcli/internal/exporter"
	"thermalcli/internal/infrastructure"
)

func main() {
	inDir := flag.String("in", "", "root directory of period folders (defaults to the configured data dir)")
	outDir := flag.String("out", "", "output directory for exported tables (defaults to the configured reports dir)")
	writeXLSX := flag.Bool("xlsx", false, "also write the dataset as an Excel workbook")
	writeRegimes := flag.Bool("regimes", false, "also write wall-type regime segmentation for the experimental box")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	if *inDir == "" {
		*inDir = cfg.Paths.DataDir
	}
	if *outDir == "" {
		*outDir = cfg.Paths.ReportsDir
	}

	logger.Info("starting thermal data processing",
		slog.String("input_dir", *inDir),
		slog.String("output_dir", *outDir),
		slog.Duration("bin_width", cfg.Pipeline.BinWidth.Std()))

	if err := run(context.Background(), logger, cfg, *inDir, *outDir, *writeXLSX, *writeRegimes); err != nil {
		logger.Error("processing failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.Config, inDir, outDir string, writeXLSX, writeRegimes bool) error {
	loader := dataprocessing.NewLoader(logger, cfg.Pipeline)
	periods, err := loader.LoadAllPeriods(ctx, inDir)
	if err != nil {
		return err
	}

	transformer := dataprocessing.NewTransformer(logger, cfg.Pipeline)
	dataset, err := transformer.TransformAll(ctx, periods)
	if err != nil {
		return err
	}

	printCoverageSummary(periods, dataset)

	csvWriter := exporter.NewCSVWriter(logger)
	exports := []struct {
		file    string
		headers []string
		records [][]string
	}{
		{"sensor_level.csv", exporter.SensorHeader(), exporter.SensorRecords(dataset.Sensor)},
		{"wall_level.csv", exporter.WallHeader(), exporter.WallRecords(dataset.Wall)},
		{"box_level.csv", exporter.BoxHeader(), exporter.BoxRecords(dataset.Box)},
	}
	if writeRegimes {
		regimes := dataprocessing.SegmentRegimes(dataset.Wall)
		exports = append(exports, struct {
			file    string
			headers []string
			records [][]string
		}{"wall_type_regimes.csv", exporter.RegimeHeader(), exporter.RegimeRecords(regimes)})
	}

	for _, export := range exports {
		path := filepath.Join(outDir, export.file)
		if err := csvWriter.WriteSimpleCSV(path, export.headers, export.records); err != nil {
			return err
		}
	}

	if writeXLSX {
		excelWriter := exporter.NewExcelWriter(logger)
		if err := excelWriter.WriteWorkbook(filepath.Join(outDir, "thermal_dataset.xlsx"), dataset); err != nil {
			return err
		}
	}

	logger.Info("processing complete",
		slog.Int("periods", len(periods)),
		slog.Int("sensor_rows", len(dataset.Sensor)),
		slog.Int("wall_rows", len(dataset.Wall)),
		slog.Int("box_rows", len(dataset.Box)))

	return nil
}

// printCoverageSummary gives the analyst the per-period trust signals:
// which sensors are absent and which bins are under- or over-populated.
func printCoverageSummary(periods map[string]*dataprocessing.PeriodData, dataset *dataprocessing.Dataset) {
	names := make([]string, 0, len(periods))
	for name := range periods {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		report := periods[name].Report
		fmt.Printf("%s: %d/%d files loaded, %d rows\n",
			name, report.FilesLoaded, report.FilesFound, report.Rows)

		boxes := make([]int, 0, len(report.MissingSensors))
		for boxID := range report.MissingSensors {
			boxes = append(boxes, boxID)
		}
		sort.Ints(boxes)
		for _, boxID := range boxes {
			fmt.Printf("  box %d missing sensors: %v\n", boxID, report.MissingSensors[boxID])
		}

		if resample, ok := dataset.Reports[name]; ok && len(resample.BinWarnings) > 0 {
			fmt.Printf("  %d bins with unexpected sensor counts (expected %d per bin)\n",
				len(resample.BinWarnings), resample.BinWarnings[0].Expected)
		}
	}
}
