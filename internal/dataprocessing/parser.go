package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	apperrors "thermalcli/internal/errors"
	"thermalcli/pkg/contracts/domain"
)

// timestampLayout is the instrument's export format: M/D/YYYY H:MM,
// no seconds, no zero padding.
const timestampLayout = "1/2/2006 15:04"

// wallTypeTypos maps known transcription typos in the wall-type column
// to their corrected values.
var wallTypeTypos = map[string]string{
	"Yraka": "Yarka",
}

// Parser reads one sensor's raw file: a fixed number of metadata lines,
// a header row located by substring matching, then data rows until the
// instrument stopped logging. Parsers are stateless across calls and
// safe for concurrent use on distinct files.
type Parser struct {
	logger              *slog.Logger
	metadataLines       int
	truncationThreshold int
	rules               []ColumnRule
	// fallbackEncodings are tried in order when the content is not
	// valid UTF-8: Latin-1, Windows-1252 (ISO-8859-1 is Latin-1 under
	// another name).
	fallbackEncodings []encoding.Encoding
}

// NewParser creates a parser with the pipeline's structural knobs.
// A nil logger falls back to slog.Default().
func NewParser(logger *slog.Logger, metadataLines, truncationThreshold int) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		logger:              logger,
		metadataLines:       metadataLines,
		truncationThreshold: truncationThreshold,
		rules:               DefaultColumnRules(),
		fallbackEncodings: []encoding.Encoding{
			charmap.ISO8859_1,
			charmap.Windows1252,
		},
	}
}

// ParseFile reads and cleans one raw sensor file into a time-ordered
// sequence of Readings. It returns an UnparsableFileError when the file
// cannot be decoded or its date column cannot be located. An empty
// result with a nil error means the file decoded but held no usable
// rows, which is an expected field condition (instrument offline).
func (p *Parser) ParseFile(path string) ([]domain.Reading, ColumnMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, apperrors.NewUnparsableFileError(filepath.Base(path), err)
	}

	content, err := p.decode(data)
	if err != nil {
		return nil, nil, apperrors.NewUnparsableFileError(filepath.Base(path), err)
	}

	header, rows, err := p.splitRecords(content)
	if err != nil {
		return nil, nil, apperrors.NewUnparsableFileError(filepath.Base(path), err)
	}

	columns := ResolveColumns(header, p.rules)
	if !columns.Has(ColumnDate) {
		return nil, nil, apperrors.NewUnparsableFileError(filepath.Base(path),
			fmt.Errorf("no date/time column found"))
	}

	p.logger.Debug("resolved raw file columns",
		slog.String("file", filepath.Base(path)),
		slog.Int("raw_rows", len(rows)),
		slog.Bool("has_surface", columns.Has(ColumnSurface)),
		slog.Bool("has_internal", columns.Has(ColumnInternal)),
		slog.Bool("has_room", columns.Has(ColumnRoom)),
		slog.Bool("has_wall_type", columns.Has(ColumnWallType)))

	rows = p.truncateAtEndOfData(rows, columns, filepath.Base(path))

	readings := make([]domain.Reading, 0, len(rows))
	for _, row := range rows {
		ts, ok := parseTimestamp(cell(row, columns, ColumnDate))
		if !ok {
			continue
		}

		readings = append(readings, domain.Reading{
			Timestamp:    ts,
			SurfaceTemp:  parseTemperature(cell(row, columns, ColumnSurface)),
			InternalTemp: parseTemperature(cell(row, columns, ColumnInternal)),
			RoomTemp:     parseTemperature(cell(row, columns, ColumnRoom)),
			WallType:     normalizeWallType(cell(row, columns, ColumnWallType)),
		})
	}

	if len(readings) == 0 {
		p.logger.Warn("raw file yielded no valid rows",
			slog.String("file", filepath.Base(path)))
	}

	return readings, columns, nil
}

// decode returns the file content as text, trying UTF-8 first and then
// the legacy single-byte encodings in order.
func (p *Parser) decode(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	for _, enc := range p.fallbackEncodings {
		out, err := enc.NewDecoder().Bytes(data)
		if err == nil {
			return string(out), nil
		}
	}
	return "", fmt.Errorf("content is not decodable with any supported encoding")
}

// splitRecords skips the metadata preamble, parses the header row and
// returns it with the remaining data rows.
func (p *Parser) splitRecords(content string) (header []string, rows [][]string, err error) {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	if len(lines) <= p.metadataLines {
		return nil, nil, fmt.Errorf("file has %d lines, expected metadata preamble of %d plus a header",
			len(lines), p.metadataLines)
	}

	reader := csv.NewReader(strings.NewReader(strings.Join(lines[p.metadataLines:], "\n")))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("malformed CSV body: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("no header row after metadata preamble")
	}

	return records[0], records[1:], nil
}

// truncateAtEndOfData applies the prefix-truncation rule: the first row
// where the configured number of required columns are simultaneously
// missing marks the end of valid data, and that row plus everything
// after it is discarded. Raw files trail off into blank rows after the
// instrument stopped logging.
func (p *Parser) truncateAtEndOfData(rows [][]string, columns ColumnMap, file string) [][]string {
	required := columns.Required()
	for i, row := range rows {
		missing := 0
		for _, role := range required {
			if strings.TrimSpace(cell(row, columns, role)) == "" {
				missing++
			}
		}
		if missing >= p.truncationThreshold {
			p.logger.Debug("end of data detected",
				slog.String("file", file),
				slog.Int("row", i),
				slog.Int("dropped_rows", len(rows)-i))
			return rows[:i]
		}
	}
	return rows
}

// cell returns the raw value of a role's column in a row, or "" when the
// role is unresolved or the row is short.
func cell(row []string, columns ColumnMap, role ColumnRole) string {
	idx, ok := columns[role]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parseTimestamp parses the instrument timestamp format. Unparseable
// values are reported as not ok and dropped by the caller.
func parseTimestamp(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}
	ts, err := time.ParseInLocation(timestampLayout, trimmed, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// parseTemperature coerces a cell to a float, treating non-numeric
// tokens as missing.
func parseTemperature(raw string) float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return domain.Missing()
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return domain.Missing()
	}
	return value
}

// normalizeWallType trims the wall-type text and corrects known
// transcription typos.
func normalizeWallType(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if fixed, ok := wallTypeTypos[trimmed]; ok {
		return fixed
	}
	return trimmed
}
