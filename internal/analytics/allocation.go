// Package analytics holds the pure derived-metric calculators: allocation
// percentages, portfolio risk scoring, least-squares price projection, and
// collection risk tiers.
package analytics

import (
	"math"
	"sort"

	"chainlens/internal/entity"
)

// categoryColors is the fixed chart palette keyed by asset category.
var categoryColors = map[entity.AssetCategory]string{
	entity.CategoryStablecoin:  "#22c55e",
	entity.CategoryMajorCrypto: "#3b82f6",
	entity.CategoryDeFiToken:   "#a855f7",
	entity.CategoryNFT:         "#f59e0b",
	entity.CategoryCash:        "#94a3b8",
	entity.CategoryOther:       "#64748b",
}

// Allocation computes per-category slices from holdings. When the portfolio
// total is zero every percentage is zero; there is no division by zero.
// Slices come out largest-first for stable chart rendering.
func Allocation(holdings []entity.TokenHolding) []entity.AllocationSlice {
	totals := make(map[entity.AssetCategory]float64)
	var grandTotal float64
	for _, h := range holdings {
		v := h.Value
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			v = 0
		}
		totals[h.Category] += v
		grandTotal += v
	}

	slices := make([]entity.AllocationSlice, 0, len(totals))
	for category, value := range totals {
		var percent float64
		if grandTotal > 0 {
			percent = math.Round(value / grandTotal * 100)
		}
		slices = append(slices, entity.AllocationSlice{
			Category:       category,
			PercentOfTotal: percent,
			AbsoluteValue:  value,
			Color:          categoryColors[category],
		})
	}

	sort.Slice(slices, func(i, j int) bool {
		if slices[i].AbsoluteValue != slices[j].AbsoluteValue {
			return slices[i].AbsoluteValue > slices[j].AbsoluteValue
		}
		return slices[i].Category < slices[j].Category
	})
	return slices
}
