package domain

import (
	"time"
)

// SensorRow is one bin-resampled sample for one sensor. Timestamps are
// aligned to the global bin grid, so rows from different sensors and
// periods join by timestamp.
type SensorRow struct {
	Period             string    `json:"period"`
	BoxID              int       `json:"box_id"`
	SensorID           int       `json:"sensor_id"`
	WallID             int       `json:"wall_id"`
	Position           Position  `json:"position"`
	Timestamp          time.Time `json:"timestamp"`
	SurfaceTemp        float64   `json:"surface_temp"`
	InternalTemp       float64   `json:"internal_temp"`
	RoomTemp           float64   `json:"room_temp"`
	WallType           string    `json:"wall_type,omitempty"`
	NormalizedSurface  float64   `json:"normalized_surface"`
	NormalizedInternal float64   `json:"normalized_internal"`
}

// WallRow pairs the "out" and "in" position aggregates of one wall at
// one timestamp, with the derived gradient chain.
type WallRow struct {
	Period    string    `json:"period"`
	BoxID     int       `json:"box_id"`
	WallID    int       `json:"wall_id"`
	Timestamp time.Time `json:"timestamp"`

	OutSurface  float64 `json:"out_surface"`
	InSurface   float64 `json:"in_surface"`
	OutInternal float64 `json:"out_internal"`
	InInternal  float64 `json:"in_internal"`
	RoomTemp    float64 `json:"room_temp"`

	OutNormalizedSurface  float64 `json:"out_normalized_surface"`
	InNormalizedSurface   float64 `json:"in_normalized_surface"`
	OutNormalizedInternal float64 `json:"out_normalized_internal"`
	InNormalizedInternal  float64 `json:"in_normalized_internal"`

	OutSensorCount int `json:"out_sensor_count"`
	InSensorCount  int `json:"in_sensor_count"`

	WallType string `json:"wall_type,omitempty"`

	// Legacy simple gradients.
	SurfaceGradient  float64 `json:"surface_gradient"`
	InternalGradient float64 `json:"internal_gradient"`

	// Gradient chain: room air -> outer surface -> inner surface -> interior.
	GradientAirToOutSurface     float64 `json:"gradient_air_to_out_surface"`
	GradientOutToInSurface      float64 `json:"gradient_out_to_in_surface"`
	InternalAvg                 float64 `json:"internal_avg"`
	GradientInSurfaceToInternal float64 `json:"gradient_in_surface_to_internal"`
	TotalGradient               float64 `json:"total_gradient"`
}

// BoxRow is one enclosure's aggregate at one timestamp. InternalTemp and
// RoomTemp average all sensors of the box; SurfaceTemp averages only the
// "in" position sensors, since the interior wall surface is what they
// measure.
type BoxRow struct {
	Period             string    `json:"period"`
	BoxID              int       `json:"box_id"`
	Timestamp          time.Time `json:"timestamp"`
	InternalTemp       float64   `json:"internal_temp"`
	SurfaceTemp        float64   `json:"surface_temp"`
	RoomTemp           float64   `json:"room_temp"`
	NormalizedInternal float64   `json:"normalized_internal"`
	NormalizedSurface  float64   `json:"normalized_surface"`
	SensorCount        int       `json:"sensor_count"`
}
