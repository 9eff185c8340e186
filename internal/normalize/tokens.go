// Package normalize maps raw upstream payloads into the canonical view-model
// types in internal/entity. Everything here is a pure function; all numeric
// outputs are finite.
package normalize

import (
	"math"
	"strconv"
	"strings"

	"chainlens/internal/entity"
)

var stablecoinSymbols = map[string]struct{}{
	"USDT": {}, "USDC": {}, "DAI": {}, "BUSD": {}, "TUSD": {}, "FRAX": {}, "USDP": {}, "GUSD": {}, "LUSD": {},
}

var majorCryptoSymbols = map[string]struct{}{
	"BTC": {}, "WBTC": {}, "ETH": {}, "WETH": {}, "SOL": {}, "BNB": {}, "WBNB": {}, "ADA": {}, "XRP": {},
	"DOT": {}, "AVAX": {}, "MATIC": {}, "WMATIC": {}, "LTC": {}, "TRX": {},
}

var defiTokenSymbols = map[string]struct{}{
	"AAVE": {}, "UNI": {}, "COMP": {}, "MKR": {}, "SNX": {}, "CRV": {}, "SUSHI": {}, "LDO": {},
	"YFI": {}, "BAL": {}, "1INCH": {}, "CAKE": {}, "GMX": {}, "DYDX": {},
}

// CategorizeSymbol assigns an asset category from the symbol allow-lists.
func CategorizeSymbol(symbol string) entity.AssetCategory {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if _, ok := stablecoinSymbols[s]; ok {
		return entity.CategoryStablecoin
	}
	if _, ok := majorCryptoSymbols[s]; ok {
		return entity.CategoryMajorCrypto
	}
	if _, ok := defiTokenSymbols[s]; ok {
		return entity.CategoryDeFiToken
	}
	return entity.CategoryOther
}

// Finite coerces NaN and infinities to 0 so category totals never poison
// downstream percentage math.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// TokenBalances converts raw indexer balances into holdings. Zero-balance and
// spam-flagged entries are dropped; Value is recomputed from the scaled
// balance and unit price so the invariant value == balance*unitPrice holds
// even when the provider's usd_value disagrees.
func TokenBalances(raw []entity.RawTokenBalance) []entity.TokenHolding {
	holdings := make([]entity.TokenHolding, 0, len(raw))
	for _, r := range raw {
		if r.PossibleSpam {
			continue
		}

		decimals := r.Decimals
		if decimals < 0 || decimals > 36 {
			decimals = 18
		}
		unscaled, err := strconv.ParseFloat(strings.TrimSpace(r.Balance), 64)
		if err != nil {
			unscaled = 0
		}
		balance := Finite(unscaled / math.Pow10(decimals))
		if balance <= 0 {
			continue
		}

		unitPrice := Finite(r.USDPrice)
		holdings = append(holdings, entity.TokenHolding{
			Name:      r.Name,
			Symbol:    r.Symbol,
			Address:   r.TokenAddress,
			Decimals:  decimals,
			Balance:   balance,
			UnitPrice: unitPrice,
			Value:     Finite(balance * unitPrice),
			Category:  CategorizeSymbol(r.Symbol),
		})
	}
	return holdings
}

// TotalValue sums holding values, coercing any non-finite input.
func TotalValue(holdings []entity.TokenHolding) float64 {
	var total float64
	for _, h := range holdings {
		total += Finite(h.Value)
	}
	return Finite(total)
}
