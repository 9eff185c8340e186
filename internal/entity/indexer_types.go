package entity

import jsoniter "github.com/json-iterator/go"

// Raw response shapes from the blockchain-indexing provider. Field types are
// deliberately loose (strings for numerics, RawMessage for metadata) because
// the provider is not consistent about them; the normalizer owns coercion.

// RawTokenBalance is one ERC-20 position as the indexer reports it.
// Balance arrives as an unscaled integer string.
type RawTokenBalance struct {
	TokenAddress string  `json:"token_address"`
	Name         string  `json:"name"`
	Symbol       string  `json:"symbol"`
	Decimals     int     `json:"decimals"`
	Balance      string  `json:"balance"`
	USDPrice     float64 `json:"usd_price"`
	USDValue     float64 `json:"usd_value"`
	PossibleSpam bool    `json:"possible_spam"`
}

// RawTokenBalancePage wraps a balance listing. Some endpoints return the
// array bare, others wrap it in "result"; the client tries both.
type RawTokenBalancePage struct {
	Cursor string            `json:"cursor"`
	Page   int               `json:"page"`
	Result []RawTokenBalance `json:"result"`
}

// RawNFT is a single NFT as returned by the indexer. Metadata may be a JSON
// string, an object, or null.
type RawNFT struct {
	TokenAddress string              `json:"token_address"`
	TokenID      string              `json:"token_id"`
	Name         string              `json:"name"`
	Symbol       string              `json:"symbol"`
	ContractType string              `json:"contract_type"`
	OwnerOf      string              `json:"owner_of"`
	Metadata     jsoniter.RawMessage `json:"metadata"`
}

// RawTrade is one NFT sale from the indexer trade-history endpoint.
// Price is denominated in wei and arrives as a decimal string.
type RawTrade struct {
	BlockTimestamp     string              `json:"block_timestamp"`
	Price              string              `json:"price"`
	PriceTokenAddress  string              `json:"price_token_address"`
	BuyerAddress       string              `json:"buyer_address"`
	SellerAddress      string              `json:"seller_address"`
	MarketplaceAddress string              `json:"marketplace_address"`
	Marketplace        string              `json:"marketplace"`
	TokenIDs           jsoniter.RawMessage `json:"token_ids"`
}

// RawTradePage wraps a trade listing.
type RawTradePage struct {
	Cursor string     `json:"cursor"`
	Result []RawTrade `json:"result"`
}

// RawCollectionStats is the per-collection stats endpoint payload. Several
// numeric fields alternate between string and number across provider
// versions, so they are kept raw.
type RawCollectionStats struct {
	TokenAddress string              `json:"token_address"`
	Name         string              `json:"name"`
	Symbol       string              `json:"symbol"`
	FloorPrice   jsoniter.RawMessage `json:"floor_price"`
	MarketCap    jsoniter.RawMessage `json:"market_cap"`
	Volume24h    jsoniter.RawMessage `json:"volume_24h"`
	Volume7d     jsoniter.RawMessage `json:"volume_7d"`
	Change24h    jsoniter.RawMessage `json:"floor_price_24hr_percent_change"`
	Change7d     jsoniter.RawMessage `json:"floor_price_7d_percent_change"`
	OwnersCount  jsoniter.RawMessage `json:"number_of_owners"`
	ItemsCount   jsoniter.RawMessage `json:"total_tokens"`
	CreatedAt    string              `json:"created_at"`
}

// RawTrendingPage wraps the trending-collections listing.
type RawTrendingPage struct {
	Result []RawCollectionStats `json:"result"`
}
