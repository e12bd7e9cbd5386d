package dataprocessing

import (
	"math"
	"time"

	"thermalcli/internal/config"
	"thermalcli/pkg/contracts/domain"
)

// zScoreEpsilon guards the normalization against a near-zero standard
// deviation (a flat series).
const zScoreEpsilon = 1e-8

// LagEstimator estimates the delay at which an inside-surface series
// best correlates with a delayed copy of the outside-surface series.
// Descriptive analytics only; the single guarantee is determinism for
// identical input.
type LagEstimator struct {
	binWidth   time.Duration
	maxLag     time.Duration
	minSamples int
}

// NewLagEstimator creates a lag estimator from the pipeline knobs.
func NewLagEstimator(cfg config.PipelineConfig) *LagEstimator {
	return &LagEstimator{
		binWidth:   cfg.BinWidth.Std(),
		maxLag:     cfg.MaxLag.Std(),
		minSamples: cfg.MinLagSamples,
	}
}

// Estimate cross-correlates two aligned, equal-length series sampled at
// the bin width, searching non-negative delays up to the configured
// horizon. Rows where either series is missing are removed pairwise
// first. Returns nil when fewer valid pairs remain than the minimum:
// below that the estimate is not meaningful.
func (e *LagEstimator) Estimate(outSeries, inSeries []float64) *domain.LagResult {
	if len(outSeries) != len(inSeries) {
		return nil
	}

	outClean := make([]float64, 0, len(outSeries))
	inClean := make([]float64, 0, len(inSeries))
	for i := range outSeries {
		if domain.IsMissing(outSeries[i]) || domain.IsMissing(inSeries[i]) {
			continue
		}
		outClean = append(outClean, outSeries[i])
		inClean = append(inClean, inSeries[i])
	}

	n := len(outClean)
	if n < e.minSamples {
		return nil
	}

	outNorm := zScore(outClean)
	inNorm := zScore(inClean)

	maxLagBins := int(e.maxLag / e.binWidth)
	if maxLagBins > n-1 {
		maxLagBins = n - 1
	}

	bestLag := 0
	bestCorr := math.Inf(-1)
	for lag := 0; lag <= maxLagBins; lag++ {
		var corr float64
		for t := lag; t < n; t++ {
			corr += inNorm[t] * outNorm[t-lag]
		}
		// Strict comparison keeps the earliest lag on ties, making the
		// result deterministic.
		if corr > bestCorr {
			bestCorr = corr
			bestLag = lag
		}
	}

	return &domain.LagResult{
		LagMinutes:  float64(bestLag) * e.binWidth.Minutes(),
		Correlation: bestCorr / float64(n),
		Samples:     n,
	}
}

// zScore normalizes a series to zero mean and unit variance, with an
// epsilon against flat series.
func zScore(values []float64) []float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	std := math.Sqrt(sq / float64(len(values)))

	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = (v - mean) / (std + zScoreEpsilon)
	}
	return out
}
