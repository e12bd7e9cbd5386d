package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"thermalcli/internal/dataprocessing"
)

// ExcelWriter writes the full transformed dataset as one workbook with
// a sheet per output table, for analysts who work in spreadsheets.
type ExcelWriter struct {
	logger *slog.Logger
}

// NewExcelWriter creates a new Excel writer instance. A nil logger
// falls back to slog.Default().
func NewExcelWriter(logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{logger: logger}
}

// WriteWorkbook writes the dataset's sensor, wall and box tables to an
// xlsx file.
func (w *ExcelWriter) WriteWorkbook(filePath string, dataset *dataprocessing.Dataset) error {
	w.logger.Info("writing Excel workbook",
		slog.String("path", filePath),
		slog.Int("sensor_rows", len(dataset.Sensor)),
		slog.Int("wall_rows", len(dataset.Wall)),
		slog.Int("box_rows", len(dataset.Box)))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name    string
		header  []string
		records [][]string
	}{
		{"Sensor", SensorHeader(), SensorRecords(dataset.Sensor)},
		{"Wall", WallHeader(), WallRecords(dataset.Wall)},
		{"Box", BoxHeader(), BoxRecords(dataset.Box)},
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.name); err != nil {
				return fmt.Errorf("failed to rename sheet %s: %w", sheet.name, err)
			}
		} else {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", sheet.name, err)
			}
		}

		if err := writeSheet(f, sheet.name, sheet.header, sheet.records); err != nil {
			return err
		}
	}

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

// writeSheet fills one sheet with a header row followed by records.
func writeSheet(f *excelize.File, sheet string, header []string, records [][]string) error {
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, record := range records {
		if err := setRow(f, sheet, i+2, record); err != nil {
			return err
		}
	}
	return nil
}

// setRow writes one row of string cells starting at column A.
func setRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("invalid cell coordinates for row %d: %w", rowNum, err)
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("failed to write row %d of sheet %s: %w", rowNum, sheet, err)
	}
	return nil
}
