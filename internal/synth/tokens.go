package synth

import (
	"math/rand"

	"chainlens/internal/entity"
)

// referenceToken seeds wallet fallbacks with recognizable assets at plausible
// price levels.
type referenceToken struct {
	name     string
	symbol   string
	address  string
	decimals int
	price    float64
	category entity.AssetCategory
}

var referenceTokens = []referenceToken{
	{"Wrapped Ether", "WETH", "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2", 18, 3100, entity.CategoryMajorCrypto},
	{"Wrapped BTC", "WBTC", "0x2260fac5e5542a773aa44fbcfedf7c193bc2c599", 8, 64000, entity.CategoryMajorCrypto},
	{"USD Coin", "USDC", "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", 6, 1, entity.CategoryStablecoin},
	{"Tether USD", "USDT", "0xdac17f958d2ee523a2206206994597c13d831ec7", 6, 1, entity.CategoryStablecoin},
	{"Uniswap", "UNI", "0x1f9840a85d5af5bf1d1762f925bdaddc4201f984", 18, 7.2, entity.CategoryDeFiToken},
	{"Aave", "AAVE", "0x7fc66500c84a76ad7e9c93437bfc5ac33e2ddae9", 18, 92, entity.CategoryDeFiToken},
	{"ChainLink", "LINK", "0x514910771af9ca656af840dff83e8264ecf986ca", 18, 13.5, entity.CategoryOther},
}

// TokenHoldings fabricates a small wallet for the fallback path. Between 3
// and all reference tokens appear, each with a randomized balance; Value
// keeps the balance*unitPrice invariant.
func TokenHoldings() []entity.TokenHolding {
	count := 3 + rand.Intn(len(referenceTokens)-2)
	picked := rand.Perm(len(referenceTokens))[:count]

	holdings := make([]entity.TokenHolding, 0, count)
	for _, idx := range picked {
		ref := referenceTokens[idx]
		unitPrice := jitter(ref.price, 0.03)
		// Stablecoin balances look like cash buffers, everything else
		// like sub-whale positions.
		var balance float64
		if ref.category == entity.CategoryStablecoin {
			balance = 100 + rand.Float64()*5000
		} else {
			balance = rand.Float64() * 25000 / unitPrice
		}
		holdings = append(holdings, entity.TokenHolding{
			Name:      ref.name,
			Symbol:    ref.symbol,
			Address:   ref.address,
			Decimals:  ref.decimals,
			Balance:   balance,
			UnitPrice: unitPrice,
			Value:     balance * unitPrice,
			Category:  ref.category,
		})
	}
	return holdings
}

// MarketSentiment fabricates the aggregate market snapshot within realistic
// bounds.
func MarketSentiment() entity.MarketSentiment {
	btc := jitter(64000, 0.04)
	eth := jitter(3100, 0.04)
	return entity.MarketSentiment{
		BTCPriceUSD:    btc,
		BTCChange24h:   (rand.Float64()*2 - 1) * 4,
		ETHPriceUSD:    eth,
		ETHChange24h:   (rand.Float64()*2 - 1) * 5,
		TotalMarketCap: jitter(2.4e12, 0.05),
		TotalVolume24h: jitter(9e10, 0.2),
		BTCDominance:   50 + (rand.Float64()*2-1)*4,
		Simulated:      true,
	}
}
