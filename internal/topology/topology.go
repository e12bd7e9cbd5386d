// Package topology is the static sensor placement table for the two
// experimental enclosures. Every sensor ID in [1,16] maps to exactly one
// (wall, position) pair; the mapping never changes at runtime.
package topology

import (
	"regexp"
	"strconv"

	"thermalcli/pkg/contracts/domain"
)

// WallCount is the number of instrumented walls per box.
const WallCount = 4

// SensorCount is the number of sensors per box.
const SensorCount = 16

// wallSensors maps wall_id to its outside- and inside-facing sensors.
// Walls 1..4 correspond to the South, East, North and West sides.
var wallSensors = map[int]struct{ out, in []int }{
	1: {out: []int{1, 2}, in: []int{9, 10}},
	2: {out: []int{3, 4}, in: []int{11, 12}},
	3: {out: []int{5, 6}, in: []int{13, 14}},
	4: {out: []int{7, 8}, in: []int{15, 16}},
}

// Resolve returns the (wall, position) placement of a sensor ID.
// ok is false for IDs outside the instrumented range.
func Resolve(sensorID int) (wallID int, position domain.Position, ok bool) {
	for id, sensors := range wallSensors {
		for _, s := range sensors.out {
			if s == sensorID {
				return id, domain.PositionOut, true
			}
		}
		for _, s := range sensors.in {
			if s == sensorID {
				return id, domain.PositionIn, true
			}
		}
	}
	return 0, "", false
}

// WallSensors returns the outside and inside sensor IDs of a wall.
func WallSensors(wallID int) (out, in []int, ok bool) {
	sensors, ok := wallSensors[wallID]
	if !ok {
		return nil, nil, false
	}
	out = append([]int(nil), sensors.out...)
	in = append([]int(nil), sensors.in...)
	return out, in, true
}

// Filename patterns for sensor raw files. The primary form embeds the
// identity as GW_<box>.<sensor>_; later field campaigns dropped the
// separator, hence the fallback.
var (
	filenamePattern         = regexp.MustCompile(`GW_(\d+)\.(\d+)_`)
	filenameFallbackPattern = regexp.MustCompile(`GW(\d+)\.(\d+)_`)
)

// ParseFilename extracts (box_id, sensor_id) from a raw file name.
// Example: GW_1.1_111025.csv -> box 1, sensor 1. Files whose names match
// neither pattern cannot be placed in the topology; ok is false.
func ParseFilename(name string) (boxID, sensorID int, ok bool) {
	match := filenamePattern.FindStringSubmatch(name)
	if match == nil {
		match = filenameFallbackPattern.FindStringSubmatch(name)
	}
	if match == nil {
		return 0, 0, false
	}

	boxID, _ = strconv.Atoi(match[1])
	sensorID, _ = strconv.Atoi(match[2])
	return boxID, sensorID, true
}

// Identify resolves a raw file name to a full sensor identity.
func Identify(name string) (domain.SensorIdentity, bool) {
	boxID, sensorID, ok := ParseFilename(name)
	if !ok {
		return domain.SensorIdentity{}, false
	}

	wallID, position, ok := Resolve(sensorID)
	if !ok {
		return domain.SensorIdentity{}, false
	}

	return domain.SensorIdentity{
		BoxID:    boxID,
		SensorID: sensorID,
		WallID:   wallID,
		Position: position,
	}, true
}
