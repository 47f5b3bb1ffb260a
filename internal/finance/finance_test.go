package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNPV(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		rate  float64
		flows []float64
		want  float64
	}{
		{
			name:  "zero rate sums flows",
			rate:  0,
			flows: []float64{-1000, 400, 400, 400},
			want:  200,
		},
		{
			name:  "ten percent three years",
			rate:  10,
			flows: []float64{-1000, 500, 500, 500},
			want:  -1000 + 500/1.1 + 500/1.21 + 500/1.331,
		},
		{
			name:  "single flow undiscounted",
			rate:  25,
			flows: []float64{-750},
			want:  -750,
		},
		{
			name:  "empty flows",
			rate:  5,
			flows: nil,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, NPV(tt.rate, tt.flows), 1e-9)
		})
	}
}

func TestIRR(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		flows []float64
		want  float64
	}{
		{
			name:  "double in one year",
			flows: []float64{-100, 200},
			want:  100,
		},
		{
			name:  "breakeven over four equal years",
			flows: []float64{-1000, 250, 250, 250, 250},
			want:  0,
		},
		{
			name:  "classic project",
			flows: []float64{-1000, 400, 400, 400},
			want:  9.7010, // rate where NPV crosses zero
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := IRR(tt.flows)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-3)

			// The defining property: NPV at the IRR is (near) zero.
			assert.InDelta(t, 0, NPV(got, tt.flows), 1e-4)
		})
	}
}

func TestIRRErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		flows []float64
	}{
		{name: "too few flows", flows: []float64{-100}},
		{name: "no flows", flows: nil},
		{name: "all outflows", flows: []float64{-100, -50, -25}},
		{name: "all inflows", flows: []float64{100, 50, 25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := IRR(tt.flows)
			require.Error(t, err)
		})
	}
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	flows := []float64{-1000, 400, 400, 400}

	valf, trf, err := Metrics(flows, 4)
	require.NoError(t, err)

	// Discounted at 4% the project is worth more than its cost.
	assert.Greater(t, valf, 0.0)
	assert.InDelta(t, 9.7010, trf, 1e-3)
}

func TestMetricsPropagatesIRRError(t *testing.T) {
	t.Parallel()

	_, _, err := Metrics([]float64{-100, -100}, 4)
	require.Error(t, err)
}
