package analytics

import (
	"testing"
	"time"

	"chainlens/internal/entity"
)

var riskNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func TestCollectionRisk_BlueChipProfile(t *testing.T) {
	c := entity.NFTCollectionSummary{
		Owners:    6400,
		Items:     10000,
		Volume7d:  15000,
		MarketCap: 250000,
		CreatedAt: riskNow.AddDate(-4, 0, 0).Unix(),
	}
	if got := CollectionRisk(c, riskNow); got != entity.RiskLow {
		t.Fatalf("expected Low for blue-chip profile, got %s", got)
	}
}

func TestCollectionRisk_FreshIlliquidConcentrated(t *testing.T) {
	c := entity.NFTCollectionSummary{
		Owners:    50,
		Items:     10000,
		Volume7d:  2,
		MarketCap: 40,
		CreatedAt: riskNow.AddDate(0, 0, -10).Unix(),
	}
	if got := CollectionRisk(c, riskNow); got != entity.RiskHigh {
		t.Fatalf("expected High for fresh concentrated collection, got %s", got)
	}
}

func TestCollectionRisk_MissingDataLandsMidTier(t *testing.T) {
	got := CollectionRisk(entity.NFTCollectionSummary{}, riskNow)
	// Unknown ownership and age plus zero volume scores toward the risky
	// end without data to argue otherwise.
	if got != entity.RiskHigh {
		t.Fatalf("expected High for all-unknown collection, got %s", got)
	}
}

func TestCollectionRisk_AllTiersReachable(t *testing.T) {
	cases := []struct {
		name string
		c    entity.NFTCollectionSummary
		want entity.RiskLabel
	}{
		{
			"medium-low",
			entity.NFTCollectionSummary{
				Owners: 4500, Items: 10000, Volume7d: 1200, MarketCap: 20000,
				CreatedAt: riskNow.AddDate(-2, 0, 0).Unix(),
			},
			entity.RiskMediumLow,
		},
		{
			"medium",
			entity.NFTCollectionSummary{
				Owners: 2800, Items: 10000, Volume7d: 150, MarketCap: 5000,
				CreatedAt: riskNow.AddDate(0, -6, 0).Unix(),
			},
			entity.RiskMedium,
		},
		{
			"medium-high",
			entity.NFTCollectionSummary{
				Owners: 1500, Items: 10000, Volume7d: 20, MarketCap: 500,
				CreatedAt: riskNow.AddDate(0, -2, 0).Unix(),
			},
			entity.RiskMediumHigh,
		},
	}
	for _, tc := range cases {
		if got := CollectionRisk(tc.c, riskNow); got != tc.want {
			t.Errorf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}
}
