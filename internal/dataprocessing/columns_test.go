package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveColumns(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   ColumnMap
	}{
		{
			name:   "canonical export header",
			header: []string{"Date Time", "Value Heat Surface", "Internal Temp", "Out Air Temp", "Wall Type"},
			want: ColumnMap{
				ColumnDate:     0,
				ColumnSurface:  1,
				ColumnInternal: 2,
				ColumnRoom:     3,
				ColumnWallType: 4,
			},
		},
		{
			name:   "reordered columns",
			header: []string{"Wall Type", "Out Air Temp", "Date Time", "Internal Temp", "Value Heat Surface"},
			want: ColumnMap{
				ColumnDate:     2,
				ColumnSurface:  4,
				ColumnInternal: 3,
				ColumnRoom:     1,
				ColumnWallType: 0,
			},
		},
		{
			name:   "extra columns between roles",
			header: []string{"No", "Date Time", "Battery", "Value Heat Surface (C)", "Internal Temp (C)"},
			want: ColumnMap{
				ColumnDate:     1,
				ColumnSurface:  3,
				ColumnInternal: 4,
			},
		},
		{
			name:   "case insensitive",
			header: []string{"DATE TIME", "value heat surface"},
			want: ColumnMap{
				ColumnDate:    0,
				ColumnSurface: 1,
			},
		},
		{
			name:   "first matching cell wins per role",
			header: []string{"Date Time", "Date Time 2", "Internal Temp", "Internal Temp Backup"},
			want: ColumnMap{
				ColumnDate:     0,
				ColumnInternal: 2,
			},
		},
		{
			name:   "nothing recognized",
			header: []string{"No", "Battery", "Signal"},
			want:   ColumnMap{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveColumns(tt.header, DefaultColumnRules())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveColumns_CellServesOneRole(t *testing.T) {
	// A single cell containing tokens of two rules binds only to the
	// first rule in order.
	header := []string{"Internal Temp Out Air"}
	got := ResolveColumns(header, DefaultColumnRules())

	require.True(t, got.Has(ColumnInternal))
	assert.False(t, got.Has(ColumnRoom))
}

func TestColumnMap_Required(t *testing.T) {
	tests := []struct {
		name    string
		columns ColumnMap
		want    []ColumnRole
	}{
		{
			name:    "all measurement columns present",
			columns: ColumnMap{ColumnDate: 0, ColumnSurface: 1, ColumnInternal: 2, ColumnRoom: 3},
			want:    []ColumnRole{ColumnDate, ColumnSurface, ColumnInternal, ColumnRoom},
		},
		{
			name:    "only surface resolved",
			columns: ColumnMap{ColumnDate: 0, ColumnSurface: 1},
			want:    []ColumnRole{ColumnDate, ColumnSurface},
		},
		{
			name:    "wall type never required",
			columns: ColumnMap{ColumnDate: 0, ColumnWallType: 1},
			want:    []ColumnRole{ColumnDate},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.columns.Required())
		})
	}
}
