// Package settlement converts raw scale and quality readings into a
// settled weight under a tolerance policy.
package settlement

import "math"

// Policy is the tolerance policy in effect for one settlement: the farm's
// own policy or the destination warehouse's.
type Policy struct {
	StdMoisturePct float64
	MoistureFactor float64
	StdImpurityPct float64
}

type Result struct {
	MoisturePenaltyPct float64 `json:"moisture_penalty_pct"`
	MoisturePenaltyKg  float64 `json:"moisture_penalty_kg"`
	ImpurityPenaltyKg  float64 `json:"impurity_penalty_kg"`
	SettledKg          float64 `json:"settled_kg"`
}

// Compute applies moisture and impurity discounts to weightKg.
//
// Moisture is penalized only above the policy standard; drier grain earns
// no bonus. Impurity is penalized on its full measured value, not on the
// excess over the standard: the asymmetry is intentional and matches how
// warehouses settle. The standard impurity value still lives in the policy
// for manual reconciliation.
func Compute(weightKg, moisturePct, impurityPct float64, p Policy) Result {
	weightKg = clamp(weightKg)
	moisturePct = clamp(moisturePct)
	impurityPct = clamp(impurityPct)

	moisturePenaltyPct := math.Max(0, (moisturePct-clamp(p.StdMoisturePct))*clamp(p.MoistureFactor))
	moisturePenaltyKg := weightKg / 100 * moisturePenaltyPct
	impurityPenaltyKg := weightKg / 100 * impurityPct

	return Result{
		MoisturePenaltyPct: moisturePenaltyPct,
		MoisturePenaltyKg:  moisturePenaltyKg,
		ImpurityPenaltyKg:  impurityPenaltyKg,
		SettledKg:          round3(weightKg - moisturePenaltyKg - impurityPenaltyKg),
	}
}

func clamp(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
