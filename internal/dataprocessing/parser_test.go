package dataprocessing

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "thermalcli/internal/errors"
	"thermalcli/internal/shared/testutil"
	"thermalcli/pkg/contracts/domain"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	return NewParser(logger, 14, 2)
}

func TestParseFile_CleanRows(t *testing.T) {
	parser := newTestParser(t)
	base := time.Date(2024, 11, 4, 12, 0, 0, 0, time.UTC)

	path := testutil.WriteRawFile(t, t.TempDir(), "GW_1.1_041124.csv", testutil.RawFile{
		MetadataLines: 14,
		Header:        testutil.DefaultHeader,
		Rows: []string{
			testutil.DataRow(base, "21.5", "22.1", "19.8", "Concrete"),
			testutil.DataRow(base.Add(time.Minute), "21.6", "22.2", "19.9", "Concrete"),
		},
	})

	readings, columns, err := parser.ParseFile(path)
	require.NoError(t, err)
	require.Len(t, readings, 2)

	assert.True(t, columns.Has(ColumnDate))
	assert.True(t, columns.Has(ColumnSurface))
	assert.True(t, columns.Has(ColumnInternal))
	assert.True(t, columns.Has(ColumnRoom))
	assert.True(t, columns.Has(ColumnWallType))

	assert.Equal(t, base, readings[0].Timestamp)
	assert.Equal(t, time.UTC, readings[0].Timestamp.Location())
	assert.Equal(t, 21.5, readings[0].SurfaceTemp)
	assert.Equal(t, 22.1, readings[0].InternalTemp)
	assert.Equal(t, 19.8, readings[0].RoomTemp)
	assert.Equal(t, "Concrete", readings[0].WallType)
}

func TestParseFile_TruncatesAtEndOfData(t *testing.T) {
	parser := newTestParser(t)
	base := time.Date(2024, 11, 4, 12, 0, 0, 0, time.UTC)

	// Five clean rows, then a row missing two required values, then
	// trailing garbage the instrument wrote while shutting down.
	rows := make([]string, 0, 8)
	for i := 0; i < 5; i++ {
		rows = append(rows, testutil.DataRow(base.Add(time.Duration(i)*time.Minute), "21.5", "22.1", "19.8", "Concrete"))
	}
	rows = append(rows,
		testutil.DataRow(base.Add(5*time.Minute), "", "", "19.8", "Concrete"),
		testutil.DataRow(base.Add(6*time.Minute), "21.5", "22.1", "19.8", "Concrete"),
		",,,,")

	path := testutil.WriteRawFile(t, t.TempDir(), "GW_1.1_041124.csv", testutil.RawFile{
		MetadataLines: 14,
		Header:        testutil.DefaultHeader,
		Rows:          rows,
	})

	readings, _, err := parser.ParseFile(path)
	require.NoError(t, err)

	// Everything from the first bad row on is gone, including the valid
	// row after it.
	assert.Len(t, readings, 5)
	for _, r := range readings {
		assert.False(t, domain.IsMissing(r.SurfaceTemp))
	}
}

func TestParseFile_SingleMissingValueSurvives(t *testing.T) {
	parser := newTestParser(t)
	base := time.Date(2024, 11, 4, 12, 0, 0, 0, time.UTC)

	path := testutil.WriteRawFile(t, t.TempDir(), "GW_1.1_041124.csv", testutil.RawFile{
		MetadataLines: 14,
		Header:        testutil.DefaultHeader,
		Rows: []string{
			testutil.DataRow(base, "", "22.1", "19.8", "Concrete"),
			testutil.DataRow(base.Add(time.Minute), "21.6", "22.2", "19.9", "Concrete"),
		},
	})

	readings, _, err := parser.ParseFile(path)
	require.NoError(t, err)
	require.Len(t, readings, 2)

	assert.True(t, domain.IsMissing(readings[0].SurfaceTemp))
	assert.Equal(t, 22.1, readings[0].InternalTemp)
}

func TestParseFile_DropsUnparseableTimestamps(t *testing.T) {
	parser := newTestParser(t)
	base := time.Date(2024, 11, 4, 12, 0, 0, 0, time.UTC)

	path := testutil.WriteRawFile(t, t.TempDir(), "GW_1.1_041124.csv", testutil.RawFile{
		MetadataLines: 14,
		Header:        testutil.DefaultHeader,
		Rows: []string{
			testutil.DataRow(base, "21.5", "22.1", "19.8", "Concrete"),
			"not-a-date,21.6,22.2,19.9,Concrete",
			testutil.DataRow(base.Add(2*time.Minute), "21.7", "22.3", "20.0", "Concrete"),
		},
	})

	readings, _, err := parser.ParseFile(path)
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, base, readings[0].Timestamp)
	assert.Equal(t, base.Add(2*time.Minute), readings[1].Timestamp)
}

func TestParseFile_NumericCoercion(t *testing.T) {
	parser := newTestParser(t)
	base := time.Date(2024, 11, 4, 12, 0, 0, 0, time.UTC)

	path := testutil.WriteRawFile(t, t.TempDir(), "GW_1.1_041124.csv", testutil.RawFile{
		MetadataLines: 14,
		Header:        testutil.DefaultHeader,
		Rows: []string{
			testutil.DataRow(base, "ERR", "22.1", " 19.8 ", "Concrete"),
		},
	})

	readings, _, err := parser.ParseFile(path)
	require.NoError(t, err)
	require.Len(t, readings, 1)

	assert.True(t, domain.IsMissing(readings[0].SurfaceTemp), "non-numeric token becomes missing")
	assert.Equal(t, 19.8, readings[0].RoomTemp, "values are trimmed before parsing")
}

func TestParseFile_WallTypeNormalization(t *testing.T) {
	parser := newTestParser(t)
	base := time.Date(2024, 11, 4, 12, 0, 0, 0, time.UTC)

	path := testutil.WriteRawFile(t, t.TempDir(), "GW_2.11_041124.csv", testutil.RawFile{
		MetadataLines: 14,
		Header:        testutil.DefaultHeader,
		Rows: []string{
			testutil.DataRow(base, "21.5", "22.1", "19.8", "Yraka"),
			testutil.DataRow(base.Add(time.Minute), "21.6", "22.2", "19.9", "  Concrete  "),
		},
	})

	readings, _, err := parser.ParseFile(path)
	require.NoError(t, err)
	require.Len(t, readings, 2)

	assert.Equal(t, "Yarka", readings[0].WallType, "known typo is corrected")
	assert.Equal(t, "Concrete", readings[1].WallType, "wall type is trimmed")
}

func TestParseFile_LegacyEncoding(t *testing.T) {
	parser := newTestParser(t)
	base := time.Date(2024, 11, 4, 12, 0, 0, 0, time.UTC)

	fixture := testutil.RawFile{
		MetadataLines: 14,
		Header:        testutil.DefaultHeader,
		Rows: []string{
			testutil.DataRow(base, "21.5", "22.1", "19.8", "B\xe9ton"),
		},
	}

	// The 0xE9 byte is invalid UTF-8; the Latin-1 fallback must decode
	// it to é.
	path := filepath.Join(t.TempDir(), "GW_1.1_041124.csv")
	require.NoError(t, os.WriteFile(path, []byte(fixture.Render()), 0644))

	readings, _, err := parser.ParseFile(path)
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, "Béton", readings[0].WallType)
}

func TestParseFile_NoDateColumn(t *testing.T) {
	parser := newTestParser(t)

	path := testutil.WriteRawFile(t, t.TempDir(), "GW_1.1_041124.csv", testutil.RawFile{
		MetadataLines: 14,
		Header:        "No,Value Heat Surface,Internal Temp",
		Rows:          []string{"1,21.5,22.1"},
	})

	_, _, err := parser.ParseFile(path)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func TestParseFile_TooShort(t *testing.T) {
	parser := newTestParser(t)

	path := filepath.Join(t.TempDir(), "GW_1.1_041124.csv")
	require.NoError(t, os.WriteFile(path, []byte("only one line\n"), 0644))

	_, _, err := parser.ParseFile(path)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func TestParseFile_Missing(t *testing.T) {
	parser := newTestParser(t)

	_, _, err := parser.ParseFile(filepath.Join(t.TempDir(), "GW_1.1_absent.csv"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func TestParseFile_NoUsableRows(t *testing.T) {
	parser := newTestParser(t)

	path := testutil.WriteRawFile(t, t.TempDir(), "GW_1.1_041124.csv", testutil.RawFile{
		MetadataLines: 14,
		Header:        testutil.DefaultHeader,
		Rows:          []string{},
	})

	readings, _, err := parser.ParseFile(path)
	require.NoError(t, err, "an empty body is a field condition, not a parse failure")
	assert.Empty(t, readings)
}
