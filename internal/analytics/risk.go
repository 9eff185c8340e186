package analytics

import "chainlens/internal/entity"

// Fixed per-category risk weights on a 0-100 scale.
var categoryRiskWeights = map[entity.AssetCategory]float64{
	entity.CategoryCash:        10,
	entity.CategoryStablecoin:  15,
	entity.CategoryMajorCrypto: 55,
	entity.CategoryDeFiToken:   75,
	entity.CategoryNFT:         90,
	entity.CategoryOther:       65,
}

const (
	riskFloor   = 10.0
	riskCeiling = 90.0
)

// RiskScore is the value-weighted average of category risk weights, clamped
// to [10, 90]. An empty or zero-value portfolio scores the floor.
func RiskScore(slices []entity.AllocationSlice) float64 {
	var weighted, total float64
	for _, s := range slices {
		if s.AbsoluteValue <= 0 {
			continue
		}
		weight, ok := categoryRiskWeights[s.Category]
		if !ok {
			weight = categoryRiskWeights[entity.CategoryOther]
		}
		weighted += weight * s.AbsoluteValue
		total += s.AbsoluteValue
	}
	if total == 0 {
		return riskFloor
	}

	score := weighted / total
	if score < riskFloor {
		return riskFloor
	}
	if score > riskCeiling {
		return riskCeiling
	}
	return score
}
