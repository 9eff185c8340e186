package analytics

import (
	"time"

	"chainlens/internal/entity"
)

// CollectionRisk grades a collection into one of five tiers by additive
// scoring over ownership dispersion, trading volume, market cap, and age.
// Each factor contributes 0 (safest) to 4 (riskiest).
func CollectionRisk(c entity.NFTCollectionSummary, now time.Time) entity.RiskLabel {
	score := ownershipScore(c.Owners, c.Items) +
		volumeScore(c.Volume7d) +
		marketCapScore(c.MarketCap) +
		ageScore(c.CreatedAt, now)

	// Max combined score is 16.
	switch {
	case score <= 3:
		return entity.RiskLow
	case score <= 6:
		return entity.RiskMediumLow
	case score <= 9:
		return entity.RiskMedium
	case score <= 12:
		return entity.RiskMediumHigh
	default:
		return entity.RiskHigh
	}
}

// ownershipScore buckets the owners/items ratio. A ratio near 1 means broad
// distribution; a low ratio means a few wallets hold most of the supply.
func ownershipScore(owners, items int) int {
	if items <= 0 || owners <= 0 {
		return 4
	}
	ratio := float64(owners) / float64(items)
	switch {
	case ratio >= 0.6:
		return 0
	case ratio >= 0.4:
		return 1
	case ratio >= 0.25:
		return 2
	case ratio >= 0.1:
		return 3
	default:
		return 4
	}
}

// volumeScore buckets 7-day volume (native-currency denominated) by order of
// magnitude.
func volumeScore(volume7d float64) int {
	switch {
	case volume7d >= 10000:
		return 0
	case volume7d >= 1000:
		return 1
	case volume7d >= 100:
		return 2
	case volume7d >= 10:
		return 3
	default:
		return 4
	}
}

func marketCapScore(marketCap float64) int {
	switch {
	case marketCap >= 100000:
		return 0
	case marketCap >= 10000:
		return 1
	case marketCap >= 1000:
		return 2
	case marketCap >= 100:
		return 3
	default:
		return 4
	}
}

func ageScore(createdAt int64, now time.Time) int {
	if createdAt <= 0 {
		return 2
	}
	age := now.Sub(time.Unix(createdAt, 0))
	switch {
	case age >= 3*365*24*time.Hour:
		return 0
	case age >= 365*24*time.Hour:
		return 1
	case age >= 90*24*time.Hour:
		return 2
	case age >= 30*24*time.Hour:
		return 3
	default:
		return 4
	}
}
