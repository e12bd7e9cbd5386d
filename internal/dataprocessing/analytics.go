package dataprocessing

import (
	"sort"
	"time"

	"thermalcli/pkg/contracts/domain"
)

// experimentalBoxID is the enclosure whose walls change material over
// the campaign; wall-type analytics only apply to it.
const experimentalBoxID = 2

// DetectWallTypeChanges scans a wall-level table in timestamp order and
// returns the events where the wall type switches. Rows without a wall
// type are ignored.
func DetectWallTypeChanges(rows []domain.WallRow) []domain.WallTypeChange {
	sorted := make([]domain.WallRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var events []domain.WallTypeChange
	last := ""
	for _, row := range sorted {
		if row.WallType == "" {
			continue
		}
		if row.WallType != last {
			events = append(events, domain.WallTypeChange{
				Timestamp: row.Timestamp,
				WallType:  row.WallType,
			})
			last = row.WallType
		}
	}
	return events
}

// SegmentRegimes splits the experimental box's wall-level rows into
// regimes: consecutive runs of one wall type on one wall, with mean
// metrics over the run's bins. Rows from other boxes are ignored.
func SegmentRegimes(rows []domain.WallRow) []domain.Regime {
	perWall := make(map[int][]domain.WallRow)
	var walls []int
	for _, row := range rows {
		if row.BoxID != experimentalBoxID || row.WallType == "" {
			continue
		}
		if _, seen := perWall[row.WallID]; !seen {
			walls = append(walls, row.WallID)
		}
		perWall[row.WallID] = append(perWall[row.WallID], row)
	}
	sort.Ints(walls)

	var regimes []domain.Regime
	for _, wallID := range walls {
		wallRows := perWall[wallID]
		sort.SliceStable(wallRows, func(i, j int) bool {
			if wallRows[i].Period != wallRows[j].Period {
				return wallRows[i].Period < wallRows[j].Period
			}
			return wallRows[i].Timestamp.Before(wallRows[j].Timestamp)
		})

		var current *regimeAccumulator
		for _, row := range wallRows {
			if current == nil || row.WallType != current.wallType || row.Period != current.period {
				if current != nil {
					regimes = append(regimes, current.finish())
				}
				current = newRegimeAccumulator(row)
			}
			current.add(row)
		}
		if current != nil {
			regimes = append(regimes, current.finish())
		}
	}

	return regimes
}

// regimeAccumulator builds one regime from consecutive rows.
type regimeAccumulator struct {
	period        string
	wallID        int
	wallType      string
	start, end    time.Time
	bins          int
	outSurface    meanAccumulator
	inSurface     meanAccumulator
	totalGradient meanAccumulator
}

func newRegimeAccumulator(row domain.WallRow) *regimeAccumulator {
	return &regimeAccumulator{
		period:   row.Period,
		wallID:   row.WallID,
		wallType: row.WallType,
		start:    row.Timestamp,
	}
}

func (r *regimeAccumulator) add(row domain.WallRow) {
	r.end = row.Timestamp
	r.bins++
	r.outSurface.add(row.OutSurface)
	r.inSurface.add(row.InSurface)
	r.totalGradient.add(row.TotalGradient)
}

func (r *regimeAccumulator) finish() domain.Regime {
	return domain.Regime{
		Period:            r.period,
		WallID:            r.wallID,
		WallType:          r.wallType,
		Start:             r.start,
		End:               r.end,
		Bins:              r.bins,
		MeanOutSurface:    r.outSurface.value(),
		MeanInSurface:     r.inSurface.value(),
		MeanTotalGradient: r.totalGradient.value(),
	}
}

// RollingMean smooths a time-indexed series with a trailing window:
// element i becomes the mean of every non-missing value whose timestamp
// lies in (t_i - window, t_i]. The inputs must be sorted by time and of
// equal length. A zero window returns a copy unchanged.
func RollingMean(times []time.Time, values []float64, window time.Duration) []float64 {
	out := make([]float64, len(values))
	if window <= 0 {
		copy(out, values)
		return out
	}

	start := 0
	var acc meanAccumulator
	for i := range values {
		// The accumulator cannot drop values, so rebuild the window
		// whenever the left edge moves. Windows are short relative to
		// the table, so this stays cheap.
		newStart := start
		for times[newStart].Add(window).Before(times[i]) || times[newStart].Add(window).Equal(times[i]) {
			newStart++
		}
		if newStart != start || i == 0 {
			start = newStart
			acc = meanAccumulator{}
			for j := start; j < i; j++ {
				acc.add(values[j])
			}
		}
		acc.add(values[i])
		out[i] = acc.value()
	}
	return out
}
