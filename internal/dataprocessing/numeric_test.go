package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"thermalcli/pkg/contracts/domain"
)

func TestMeanAccumulator(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{name: "plain mean", values: []float64{1, 2, 3}, want: 2},
		{name: "missing values skipped", values: []float64{1, domain.Missing(), 3}, want: 2},
		{name: "single value", values: []float64{21.5}, want: 21.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var acc meanAccumulator
			for _, v := range tt.values {
				acc.add(v)
			}
			assert.InDelta(t, tt.want, acc.value(), 1e-12)
		})
	}
}

func TestMeanAccumulator_AllMissing(t *testing.T) {
	var acc meanAccumulator
	acc.add(domain.Missing())
	acc.add(domain.Missing())
	assert.True(t, domain.IsMissing(acc.value()))

	var empty meanAccumulator
	assert.True(t, domain.IsMissing(empty.value()))
}

func TestModeAccumulator(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{name: "clear majority", values: []string{"Concrete", "Yarka", "Concrete"}, want: "Concrete"},
		{name: "tie goes to first encountered", values: []string{"Yarka", "Concrete", "Concrete", "Yarka"}, want: "Yarka"},
		{name: "empty strings ignored", values: []string{"", "", "Concrete"}, want: "Concrete"},
		{name: "nothing accumulated", values: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var acc modeAccumulator
			for _, v := range tt.values {
				acc.add(v)
			}
			assert.Equal(t, tt.want, acc.value())
		})
	}
}

func TestMeanPresent(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{name: "both present", a: 20, b: 22, want: 21},
		{name: "only first", a: 20, b: domain.Missing(), want: 20},
		{name: "only second", a: domain.Missing(), b: 22, want: 22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, meanPresent(tt.a, tt.b))
		})
	}

	assert.True(t, domain.IsMissing(meanPresent(domain.Missing(), domain.Missing())))
}
