package dataprocessing

import (
	"thermalcli/pkg/contracts/domain"
)

// meanAccumulator averages values while skipping the missing sentinel.
type meanAccumulator struct {
	sum   float64
	count int
}

func (a *meanAccumulator) add(v float64) {
	if domain.IsMissing(v) {
		return
	}
	a.sum += v
	a.count++
}

// value returns the mean of the accumulated values, or missing when
// nothing was accumulated.
func (a *meanAccumulator) value() float64 {
	if a.count == 0 {
		return domain.Missing()
	}
	return a.sum / float64(a.count)
}

// modeAccumulator tracks the most frequent non-empty string. Ties break
// to the first-encountered value; this order is implementation-defined,
// matching the historical behavior of the dataset.
type modeAccumulator struct {
	counts map[string]int
	order  []string
}

func (a *modeAccumulator) add(v string) {
	if v == "" {
		return
	}
	if a.counts == nil {
		a.counts = make(map[string]int)
	}
	if _, seen := a.counts[v]; !seen {
		a.order = append(a.order, v)
	}
	a.counts[v]++
}

func (a *modeAccumulator) value() string {
	best := ""
	bestCount := 0
	for _, v := range a.order {
		if a.counts[v] > bestCount {
			best = v
			bestCount = a.counts[v]
		}
	}
	return best
}

// meanPresent averages whichever of the two values are present: both,
// either one, or missing when neither is.
func meanPresent(a, b float64) float64 {
	switch {
	case !domain.IsMissing(a) && !domain.IsMissing(b):
		return (a + b) / 2
	case !domain.IsMissing(a):
		return a
	case !domain.IsMissing(b):
		return b
	default:
		return domain.Missing()
	}
}
