package exporter

import (
	"strconv"
	"time"

	"thermalcli/pkg/contracts/domain"
)

// timestampFormat is the bin timestamp layout used in exported tables.
const timestampFormat = "2006-01-02 15:04"

// SensorHeader is the column set of a sensor-level export, in order.
func SensorHeader() []string {
	return []string{
		"period", "box_id", "sensor_id", "wall_id", "position", "timestamp",
		"surface_temp", "internal_temp", "room_temp", "wall_type",
		"normalized_surface", "normalized_internal",
	}
}

// SensorRecords flattens a sensor-level table to CSV records.
func SensorRecords(rows []domain.SensorRow) [][]string {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			row.Period,
			strconv.Itoa(row.BoxID),
			strconv.Itoa(row.SensorID),
			strconv.Itoa(row.WallID),
			string(row.Position),
			formatTimestamp(row.Timestamp),
			formatValue(row.SurfaceTemp),
			formatValue(row.InternalTemp),
			formatValue(row.RoomTemp),
			row.WallType,
			formatValue(row.NormalizedSurface),
			formatValue(row.NormalizedInternal),
		})
	}
	return records
}

// WallHeader is the column set of a wall-level export, in order.
func WallHeader() []string {
	return []string{
		"period", "box_id", "wall_id", "timestamp",
		"out_surface", "in_surface", "out_internal", "in_internal", "room_temp",
		"out_sensor_count", "in_sensor_count", "wall_type",
		"surface_gradient", "internal_gradient",
		"gradient_air_to_out_surface", "gradient_out_to_in_surface",
		"internal_avg", "gradient_in_surface_to_internal", "total_gradient",
	}
}

// WallRecords flattens a wall-level table to CSV records.
func WallRecords(rows []domain.WallRow) [][]string {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			row.Period,
			strconv.Itoa(row.BoxID),
			strconv.Itoa(row.WallID),
			formatTimestamp(row.Timestamp),
			formatValue(row.OutSurface),
			formatValue(row.InSurface),
			formatValue(row.OutInternal),
			formatValue(row.InInternal),
			formatValue(row.RoomTemp),
			strconv.Itoa(row.OutSensorCount),
			strconv.Itoa(row.InSensorCount),
			row.WallType,
			formatValue(row.SurfaceGradient),
			formatValue(row.InternalGradient),
			formatValue(row.GradientAirToOutSurface),
			formatValue(row.GradientOutToInSurface),
			formatValue(row.InternalAvg),
			formatValue(row.GradientInSurfaceToInternal),
			formatValue(row.TotalGradient),
		})
	}
	return records
}

// BoxHeader is the column set of a box-level export, in order.
func BoxHeader() []string {
	return []string{
		"period", "box_id", "timestamp",
		"internal_temp", "surface_temp", "room_temp",
		"normalized_internal", "normalized_surface", "sensor_count",
	}
}

// BoxRecords flattens a box-level table to CSV records.
func BoxRecords(rows []domain.BoxRow) [][]string {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			row.Period,
			strconv.Itoa(row.BoxID),
			formatTimestamp(row.Timestamp),
			formatValue(row.InternalTemp),
			formatValue(row.SurfaceTemp),
			formatValue(row.RoomTemp),
			formatValue(row.NormalizedInternal),
			formatValue(row.NormalizedSurface),
			strconv.Itoa(row.SensorCount),
		})
	}
	return records
}

// RegimeHeader is the column set of a wall-type regime export, in order.
func RegimeHeader() []string {
	return []string{
		"period", "wall_id", "wall_type", "start", "end", "bins",
		"mean_out_surface", "mean_in_surface", "mean_total_gradient",
	}
}

// RegimeRecords flattens a regime table to CSV records.
func RegimeRecords(regimes []domain.Regime) [][]string {
	records := make([][]string, 0, len(regimes))
	for _, regime := range regimes {
		records = append(records, []string{
			regime.Period,
			strconv.Itoa(regime.WallID),
			regime.WallType,
			formatTimestamp(regime.Start),
			formatTimestamp(regime.End),
			strconv.Itoa(regime.Bins),
			formatValue(regime.MeanOutSurface),
			formatValue(regime.MeanInSurface),
			formatValue(regime.MeanTotalGradient),
		})
	}
	return records
}

// formatValue renders a measurement for export; missing values become
// empty cells.
func formatValue(v float64) string {
	if domain.IsMissing(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatTimestamp renders a bin timestamp for export.
func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format(timestampFormat)
}
