package dataprocessing

import (
	"thermalcli/pkg/contracts/domain"
)

// ComputeNormalized derives the room-relative temperatures on a
// sensor-level table: normalized_X = X - room_temp, row-wise, wherever
// both operands are present. A missing operand leaves the result
// missing; no imputation. The input table is not mutated.
func ComputeNormalized(rows []domain.SensorRow) []domain.SensorRow {
	out := make([]domain.SensorRow, len(rows))
	for i, row := range rows {
		row.NormalizedSurface = row.SurfaceTemp - row.RoomTemp
		row.NormalizedInternal = row.InternalTemp - row.RoomTemp
		out[i] = row
	}
	return out
}

// computeGradients fills a wall row's derived gradient chain. Each step
// depends on the previous and stays missing when its inputs are absent.
// Sign convention: positive total_gradient means the interior is warmer
// than the outside air. Do not flip it.
func computeGradients(row *domain.WallRow) {
	// Legacy simple gradients kept for backward compatibility with the
	// first analysis campaign.
	row.SurfaceGradient = row.OutSurface - row.InSurface
	row.InternalGradient = row.OutInternal - row.InInternal

	// Heat path: room air -> outer surface -> inner surface -> interior.
	row.GradientAirToOutSurface = row.OutSurface - row.RoomTemp
	row.GradientOutToInSurface = row.InSurface - row.OutSurface
	row.InternalAvg = meanPresent(row.OutInternal, row.InInternal)
	row.GradientInSurfaceToInternal = row.InternalAvg - row.InSurface
	row.TotalGradient = row.InternalAvg - row.RoomTemp
}
