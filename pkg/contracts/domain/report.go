package domain

import (
	"time"
)

// SensorCoverage summarises one sensor's contribution to a period load.
type SensorCoverage struct {
	File     string   `json:"file"`
	BoxID    int      `json:"box_id"`
	SensorID int      `json:"sensor_id"`
	WallID   int      `json:"wall_id"`
	Position Position `json:"position"`
	Rows     int      `json:"rows"`
}

// LoadReport is the inspectable result of loading one period directory.
// Per-file failures are recorded here instead of aborting the load.
type LoadReport struct {
	Period         string           `json:"period"`
	FilesFound     int              `json:"files_found"`
	FilesLoaded    int              `json:"files_loaded"`
	FilesSkipped   int              `json:"files_skipped"`
	Rows           int              `json:"rows"`
	Coverage       []SensorCoverage `json:"coverage"`
	MissingSensors map[int][]int    `json:"missing_sensors"` // box_id -> absent sensor IDs
	Warnings       []string         `json:"warnings,omitempty"`
}

// BinWarning flags a resampled timestamp whose sensor count departs from
// the expected full cardinality. Informational, never fatal.
type BinWarning struct {
	Timestamp time.Time `json:"timestamp"`
	Count     int       `json:"count"`
	Expected  int       `json:"expected"`
}

// ResampleReport is the inspectable result of one resampling pass.
type ResampleReport struct {
	GlobalStart time.Time    `json:"global_start"`
	InputRows   int          `json:"input_rows"`
	OutputRows  int          `json:"output_rows"`
	BinWarnings []BinWarning `json:"bin_warnings,omitempty"`
}

// LagResult is the thermal lag estimate between an outside and an inside
// surface series. Lag is expressed in minutes at the pipeline bin width.
type LagResult struct {
	LagMinutes  float64 `json:"lag_minutes"`
	Correlation float64 `json:"correlation"`
	Samples     int     `json:"samples"`
}

// Regime is a consecutive run of one wall type on one wall of the
// experimental box, with mean metrics over its bins.
type Regime struct {
	Period   string    `json:"period"`
	WallID   int       `json:"wall_id"`
	WallType string    `json:"wall_type"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Bins     int       `json:"bins"`

	MeanOutSurface    float64 `json:"mean_out_surface"`
	MeanInSurface     float64 `json:"mean_in_surface"`
	MeanTotalGradient float64 `json:"mean_total_gradient"`
}

// WallTypeChange is a detected wall-type switch event on the
// experimental box.
type WallTypeChange struct {
	Timestamp time.Time `json:"timestamp"`
	WallType  string    `json:"wall_type"`
}
