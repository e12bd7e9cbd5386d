package domain

import (
	"math"
	"time"
)

// Position marks which side of a wall a sensor faces.
type Position string

const (
	// PositionOut is an exterior-facing sensor.
	PositionOut Position = "out"
	// PositionIn is an interior-facing sensor.
	PositionIn Position = "in"
)

// Missing returns the sentinel used for absent numeric values.
// The pipeline carries missing measurements as NaN so that arithmetic on
// them stays missing without extra branching; aggregation helpers skip
// NaN explicitly.
func Missing() float64 {
	return math.NaN()
}

// IsMissing reports whether v is the missing-value sentinel.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Reading is one cleaned sample parsed from a raw sensor file.
// Missing temperatures are NaN; a missing wall type is the empty string.
// Readings are immutable once parsed.
type Reading struct {
	Timestamp    time.Time `json:"timestamp"`
	SurfaceTemp  float64   `json:"surface_temp"`
	InternalTemp float64   `json:"internal_temp"`
	RoomTemp     float64   `json:"room_temp"`
	WallType     string    `json:"wall_type,omitempty"`
}

// SensorIdentity places a physical sensor in the experiment topology.
// WallID and Position are pure functions of SensorID.
type SensorIdentity struct {
	BoxID    int      `json:"box_id"`
	SensorID int      `json:"sensor_id"`
	WallID   int      `json:"wall_id"`
	Position Position `json:"position"`
}
