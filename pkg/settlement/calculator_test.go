package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var defaultPolicy = Policy{StdMoisturePct: 14, MoistureFactor: 1.5, StdImpurityPct: 1}

func TestComputeReferenceScenario(t *testing.T) {
	// 10 t net, 16% moisture against a 14% standard with factor 1.5,
	// 2% impurity.
	res := Compute(10000, 16, 2, defaultPolicy)

	assert.InDelta(t, 3.0, res.MoisturePenaltyPct, 1e-9)
	assert.InDelta(t, 300, res.MoisturePenaltyKg, 1e-9)
	assert.InDelta(t, 200, res.ImpurityPenaltyKg, 1e-9)
	assert.Equal(t, 9500.000, res.SettledKg)
}

func TestComputeNoBonusBelowStandardMoisture(t *testing.T) {
	for _, factor := range []float64{0, 0.5, 1.5, 10} {
		p := defaultPolicy
		p.MoistureFactor = factor
		res := Compute(5000, 12, 0, p)
		assert.Zero(t, res.MoisturePenaltyPct, "factor %v", factor)
		assert.Equal(t, 5000.0, res.SettledKg, "factor %v", factor)
	}
}

func TestComputeMoistureAtStandardIsFree(t *testing.T) {
	res := Compute(8000, 14, 0, defaultPolicy)
	assert.Zero(t, res.MoisturePenaltyKg)
	assert.Equal(t, 8000.0, res.SettledKg)
}

func TestComputeImpurityUsesFullMeasuredValue(t *testing.T) {
	// Impurity is discounted on the full reading, not on the excess over
	// the 1% standard.
	res := Compute(10000, 14, 1, defaultPolicy)
	assert.InDelta(t, 100, res.ImpurityPenaltyKg, 1e-9)
}

func TestComputeSettledNeverExceedsInput(t *testing.T) {
	cases := []struct {
		weight, moisture, impurity float64
	}{
		{0, 0, 0},
		{1, 99, 99},
		{12345.678, 18.4, 3.2},
		{60, 14.01, 0.01},
	}
	for _, tc := range cases {
		res := Compute(tc.weight, tc.moisture, tc.impurity, defaultPolicy)
		assert.LessOrEqual(t, res.SettledKg, tc.weight)
		assert.GreaterOrEqual(t, res.MoisturePenaltyKg, 0.0)
		assert.GreaterOrEqual(t, res.ImpurityPenaltyKg, 0.0)
	}
}

func TestComputeCoercesNegativeInputs(t *testing.T) {
	res := Compute(-100, -5, -2, Policy{StdMoisturePct: -14, MoistureFactor: -1, StdImpurityPct: -1})
	assert.Zero(t, res.SettledKg)
	assert.Zero(t, res.MoisturePenaltyKg)
	assert.Zero(t, res.ImpurityPenaltyKg)
}

func TestComputeRoundsToThreeDecimals(t *testing.T) {
	res := Compute(1000.0005, 14, 0.0001, defaultPolicy)
	assert.Equal(t, res.SettledKg, float64(int(res.SettledKg*1000))/1000)
}
