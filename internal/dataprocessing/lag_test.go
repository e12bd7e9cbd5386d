package dataprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thermalcli/pkg/contracts/domain"
)

func TestLagEstimate_RecoversKnownDelay(t *testing.T) {
	estimator := NewLagEstimator(testPipelineConfig())

	// Three days of 10-minute bins with a daily cycle; the inside series
	// trails the outside one by 6 bins (60 minutes).
	const n = 432
	const delay = 6
	omega := 2 * math.Pi / 144

	outSeries := make([]float64, n)
	inSeries := make([]float64, n)
	for i := 0; i < n; i++ {
		outSeries[i] = 20 + 5*math.Sin(omega*float64(i))
		inSeries[i] = 22 + 3*math.Sin(omega*float64(i-delay))
	}

	result := estimator.Estimate(outSeries, inSeries)
	require.NotNil(t, result)

	assert.InDelta(t, 60.0, result.LagMinutes, 10.0)
	assert.Greater(t, result.Correlation, 0.9)
	assert.Equal(t, n, result.Samples)

	assert.GreaterOrEqual(t, result.LagMinutes, 0.0)
	assert.LessOrEqual(t, result.LagMinutes, 720.0)
}

func TestLagEstimate_ZeroLag(t *testing.T) {
	estimator := NewLagEstimator(testPipelineConfig())

	const n = 144
	omega := 2 * math.Pi / 144
	series := make([]float64, n)
	for i := range series {
		series[i] = math.Sin(omega * float64(i))
	}

	result := estimator.Estimate(series, series)
	require.NotNil(t, result)

	assert.Zero(t, result.LagMinutes)
	assert.InDelta(t, 1.0, result.Correlation, 0.01)
}

func TestLagEstimate_MissingPairsRemoved(t *testing.T) {
	estimator := NewLagEstimator(testPipelineConfig())

	const n = 50
	omega := 2 * math.Pi / 25
	outSeries := make([]float64, n)
	inSeries := make([]float64, n)
	for i := 0; i < n; i++ {
		outSeries[i] = math.Sin(omega * float64(i))
		inSeries[i] = outSeries[i]
	}
	outSeries[3] = domain.Missing()
	inSeries[7] = domain.Missing()

	result := estimator.Estimate(outSeries, inSeries)
	require.NotNil(t, result)

	assert.Equal(t, n-2, result.Samples, "a missing value on either side drops the pair")
	assert.Zero(t, result.LagMinutes)
}

func TestLagEstimate_TooFewSamples(t *testing.T) {
	estimator := NewLagEstimator(testPipelineConfig())

	tests := []struct {
		name      string
		outSeries []float64
		inSeries  []float64
	}{
		{
			name:      "short series",
			outSeries: []float64{1, 2, 3, 4, 5},
			inSeries:  []float64{1, 2, 3, 4, 5},
		},
		{
			name:      "long series hollowed out by gaps",
			outSeries: append([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, sparseTail(11)...),
			inSeries:  make([]float64, 20),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, estimator.Estimate(tt.outSeries, tt.inSeries))
		})
	}
}

// sparseTail builds n missing values to pad a fixture series.
func sparseTail(n int) []float64 {
	tail := make([]float64, n)
	for i := range tail {
		tail[i] = domain.Missing()
	}
	return tail
}

func TestLagEstimate_LengthMismatch(t *testing.T) {
	estimator := NewLagEstimator(testPipelineConfig())
	assert.Nil(t, estimator.Estimate(make([]float64, 20), make([]float64, 19)))
}

func TestLagEstimate_FlatSeries(t *testing.T) {
	estimator := NewLagEstimator(testPipelineConfig())

	flat := make([]float64, 50)
	for i := range flat {
		flat[i] = 21.5
	}

	result := estimator.Estimate(flat, flat)
	require.NotNil(t, result)

	assert.False(t, math.IsNaN(result.Correlation), "epsilon guards the flat series")
	assert.False(t, math.IsInf(result.Correlation, 0))
}
