package entity

// Raw response shapes from the market-data provider.

// RawSimplePrice maps coin id -> currency -> value, e.g.
// {"ethereum":{"usd":3120.5,"usd_24h_change":-1.2}}.
type RawSimplePrice map[string]map[string]float64

// RawMarketChart carries [timestampMillis, value] pairs.
type RawMarketChart struct {
	Prices       [][2]float64 `json:"prices"`
	MarketCaps   [][2]float64 `json:"market_caps"`
	TotalVolumes [][2]float64 `json:"total_volumes"`
}

// RawGlobalStats is the /global payload ("data" envelope).
type RawGlobalStats struct {
	Data struct {
		TotalMarketCap      map[string]float64 `json:"total_market_cap"`
		TotalVolume         map[string]float64 `json:"total_volume"`
		MarketCapPercentage map[string]float64 `json:"market_cap_percentage"`
		MarketCapChange24h  float64            `json:"market_cap_change_percentage_24h_usd"`
	} `json:"data"`
}
