package entity

// AssetCategory classifies a token holding for allocation and risk math.
type AssetCategory string

const (
	CategoryStablecoin  AssetCategory = "Stablecoin"
	CategoryMajorCrypto AssetCategory = "MajorCrypto"
	CategoryDeFiToken   AssetCategory = "DeFiToken"
	CategoryNFT         AssetCategory = "NFT"
	CategoryCash        AssetCategory = "Cash"
	CategoryOther       AssetCategory = "Other"
)

// RiskLabel is the discrete collection-risk tier shown in the UI.
type RiskLabel string

const (
	RiskLow        RiskLabel = "Low"
	RiskMediumLow  RiskLabel = "Medium-Low"
	RiskMedium     RiskLabel = "Medium"
	RiskMediumHigh RiskLabel = "Medium-High"
	RiskHigh       RiskLabel = "High"
)

// Confidence grades how much trade history backed a prediction.
type Confidence string

const (
	ConfidenceLow    Confidence = "Low"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceHigh   Confidence = "High"
)

// Trend is the direction of a fitted price series.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendFlat Trend = "flat"
	TrendDown Trend = "down"
)

// TokenHolding is one wallet position after normalization.
// Value is always Balance * UnitPrice.
type TokenHolding struct {
	Name      string        `json:"name"`
	Symbol    string        `json:"symbol"`
	Address   string        `json:"address"`
	Decimals  int           `json:"decimals"`
	Balance   float64       `json:"balance"`
	UnitPrice float64       `json:"unitPrice"`
	Value     float64       `json:"value"`
	Category  AssetCategory `json:"category"`
}

// AllocationSlice is one category's share of a portfolio.
type AllocationSlice struct {
	Category       AssetCategory `json:"category"`
	PercentOfTotal float64       `json:"percentOfTotal"`
	AbsoluteValue  float64       `json:"absoluteValue"`
	Color          string        `json:"color"`
}

// HistoryPoint is one sample of a chart series. Month-granularity series
// carry a label like "Mar" and a zero Timestamp; day-granularity series
// carry a unix-seconds Timestamp.
type HistoryPoint struct {
	Label     string  `json:"label"`
	Timestamp int64   `json:"timestamp,omitempty"`
	Value     float64 `json:"value"`
}

// NFTCollectionSummary is the normalized per-collection market card.
type NFTCollectionSummary struct {
	Address        string    `json:"address"`
	Name           string    `json:"name"`
	Symbol         string    `json:"symbol"`
	Chain          string    `json:"chain"`
	FloorPrice     float64   `json:"floorPrice"`
	Volume24h      float64   `json:"volume24h"`
	Volume7d       float64   `json:"volume7d"`
	PriceChange24h float64   `json:"priceChange24h"`
	PriceChange7d  float64   `json:"priceChange7d"`
	MarketCap      float64   `json:"marketCap"`
	Owners         int       `json:"owners"`
	Items          int       `json:"items"`
	CreatedAt      int64     `json:"createdAt,omitempty"`
	RiskLabel      RiskLabel `json:"riskLabel"`
}

// NFTAsset is a single normalized NFT with parsed metadata.
type NFTAsset struct {
	TokenAddress string `json:"tokenAddress"`
	TokenID      string `json:"tokenId"`
	Name         string `json:"name"`
	Symbol       string `json:"symbol"`
	Image        string `json:"image"`
	Description  string `json:"description"`
	Owner        string `json:"owner"`
	ContractType string `json:"contractType"`
}

// TradeRecord is one NFT sale, newest-first in any list.
type TradeRecord struct {
	BlockTimestamp int64   `json:"blockTimestamp"`
	Price          float64 `json:"price"`
	Buyer          string  `json:"buyer"`
	Seller         string  `json:"seller"`
	Marketplace    string  `json:"marketplace"`
	TokenID        string  `json:"tokenId"`
}

// PricePrediction is the least-squares projection over daily trade averages.
type PricePrediction struct {
	CurrentPrice float64    `json:"currentPrice"`
	Prediction7d float64    `json:"prediction7d"`
	Prediction30 float64    `json:"prediction30d"`
	Confidence   Confidence `json:"confidence"`
	Trend        Trend      `json:"trend"`
}

// PortfolioSummary is the full wallet-route payload.
type PortfolioSummary struct {
	Address    string            `json:"address"`
	Chain      string            `json:"chain"`
	TotalValue float64           `json:"totalValue"`
	RiskScore  float64           `json:"riskScore"`
	Holdings   []TokenHolding    `json:"holdings"`
	Allocation []AllocationSlice `json:"allocation"`
	Simulated  bool              `json:"simulated,omitempty"`
}

// PortfolioHistory is the wallet-history-route payload.
type PortfolioHistory struct {
	Address   string         `json:"address"`
	Chain     string         `json:"chain"`
	Months    int            `json:"months"`
	Series    []HistoryPoint `json:"series"`
	Simulated bool           `json:"simulated,omitempty"`
}

// TradePage is the trade-route payload; Cursor is empty on the last page and
// always empty for synthesized data.
type TradePage struct {
	Trades    []TradeRecord `json:"trades"`
	Cursor    string        `json:"cursor,omitempty"`
	Simulated bool          `json:"simulated,omitempty"`
}

// CoinHistory is the market-history-route payload.
type CoinHistory struct {
	Coin      string         `json:"coin"`
	Days      int            `json:"days"`
	Series    []HistoryPoint `json:"series"`
	Simulated bool           `json:"simulated,omitempty"`
}

// MarketSentiment is the aggregate market-route payload.
type MarketSentiment struct {
	BTCPriceUSD    float64 `json:"btcPriceUsd"`
	BTCChange24h   float64 `json:"btcChange24h"`
	ETHPriceUSD    float64 `json:"ethPriceUsd"`
	ETHChange24h   float64 `json:"ethChange24h"`
	TotalMarketCap float64 `json:"totalMarketCap"`
	TotalVolume24h float64 `json:"totalVolume24h"`
	BTCDominance   float64 `json:"btcDominance"`
	Gauge          string  `json:"gauge"`
	Simulated      bool    `json:"simulated,omitempty"`
}
