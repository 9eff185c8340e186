package normalize

import (
	"math"
	"testing"

	"chainlens/internal/entity"
)

func TestTokenBalances_Fixture(t *testing.T) {
	raw := []entity.RawTokenBalance{
		{TokenAddress: "0xsol", Name: "Wrapped SOL", Symbol: "SOL", Decimals: 9, Balance: "3000000000", USDPrice: 100},
		{TokenAddress: "0xusdc", Name: "USD Coin", Symbol: "USDC", Decimals: 6, Balance: "100000000", USDPrice: 1},
	}

	holdings := TokenBalances(raw)
	if len(holdings) != 2 {
		t.Fatalf("expected 2 holdings, got %d", len(holdings))
	}

	sol := holdings[0]
	if sol.Balance != 3 {
		t.Fatalf("expected SOL balance 3, got %f", sol.Balance)
	}
	if sol.Value != 300 {
		t.Fatalf("expected SOL value 300, got %f", sol.Value)
	}
	if sol.Category != entity.CategoryMajorCrypto {
		t.Fatalf("expected SOL to be MajorCrypto, got %s", sol.Category)
	}

	usdc := holdings[1]
	if usdc.Value != 100 {
		t.Fatalf("expected USDC value 100, got %f", usdc.Value)
	}
	if usdc.Category != entity.CategoryStablecoin {
		t.Fatalf("expected USDC to be Stablecoin, got %s", usdc.Category)
	}

	if total := TotalValue(holdings); total != 400 {
		t.Fatalf("expected total 400, got %f", total)
	}
}

func TestTokenBalances_ValueInvariant(t *testing.T) {
	raw := []entity.RawTokenBalance{
		// usd_value from the provider disagrees with balance*price; the
		// recomputed value must win.
		{Symbol: "UNI", Decimals: 18, Balance: "2000000000000000000", USDPrice: 7, USDValue: 999},
	}
	holdings := TokenBalances(raw)
	if len(holdings) != 1 {
		t.Fatalf("expected 1 holding, got %d", len(holdings))
	}
	h := holdings[0]
	if h.Value != h.Balance*h.UnitPrice {
		t.Fatalf("value invariant broken: value=%f balance*price=%f", h.Value, h.Balance*h.UnitPrice)
	}
}

func TestTokenBalances_DropsZeroAndSpam(t *testing.T) {
	raw := []entity.RawTokenBalance{
		{Symbol: "ETH", Decimals: 18, Balance: "0", USDPrice: 3000},
		{Symbol: "SCAM", Decimals: 18, Balance: "1000000000000000000", USDPrice: 1, PossibleSpam: true},
		{Symbol: "DAI", Decimals: 18, Balance: "5000000000000000000", USDPrice: 1},
	}
	holdings := TokenBalances(raw)
	if len(holdings) != 1 {
		t.Fatalf("expected only DAI to survive, got %d holdings", len(holdings))
	}
	if holdings[0].Symbol != "DAI" {
		t.Fatalf("expected DAI, got %s", holdings[0].Symbol)
	}
}

func TestTokenBalances_MalformedBalanceBecomesZero(t *testing.T) {
	raw := []entity.RawTokenBalance{
		{Symbol: "WETH", Decimals: 18, Balance: "not-a-number", USDPrice: 3000},
	}
	if holdings := TokenBalances(raw); len(holdings) != 0 {
		t.Fatalf("malformed balance should be dropped as zero, got %d holdings", len(holdings))
	}
}

func TestTokenBalances_NonFinitePriceCoerced(t *testing.T) {
	raw := []entity.RawTokenBalance{
		{Symbol: "LINK", Decimals: 18, Balance: "1000000000000000000", USDPrice: math.NaN()},
	}
	holdings := TokenBalances(raw)
	if len(holdings) != 1 {
		t.Fatalf("expected 1 holding, got %d", len(holdings))
	}
	if holdings[0].UnitPrice != 0 || holdings[0].Value != 0 {
		t.Fatalf("NaN price must coerce to 0, got price=%f value=%f", holdings[0].UnitPrice, holdings[0].Value)
	}
	if total := TotalValue(holdings); math.IsNaN(total) {
		t.Fatal("total must never be NaN")
	}
}

func TestCategorizeSymbol(t *testing.T) {
	cases := []struct {
		symbol string
		want   entity.AssetCategory
	}{
		{"USDT", entity.CategoryStablecoin},
		{"usdc", entity.CategoryStablecoin},
		{"BTC", entity.CategoryMajorCrypto},
		{"weth", entity.CategoryMajorCrypto},
		{"AAVE", entity.CategoryDeFiToken},
		{"PEPE", entity.CategoryOther},
		{"", entity.CategoryOther},
	}
	for _, tc := range cases {
		if got := CategorizeSymbol(tc.symbol); got != tc.want {
			t.Errorf("CategorizeSymbol(%q) = %s, want %s", tc.symbol, got, tc.want)
		}
	}
}
