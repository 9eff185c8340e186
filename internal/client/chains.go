package client

import "strings"

// DefaultChainID is used when a request omits the chain or names one the
// provider does not know: Ethereum mainnet.
const DefaultChainID = "0x1"

// chainIDs maps human chain names to the indexing provider's hex encoding.
var chainIDs = map[string]string{
	"eth":       "0x1",
	"ethereum":  "0x1",
	"mainnet":   "0x1",
	"polygon":   "0x89",
	"matic":     "0x89",
	"bsc":       "0x38",
	"binance":   "0x38",
	"arbitrum":  "0xa4b1",
	"avalanche": "0xa86a",
	"avax":      "0xa86a",
	"optimism":  "0xa",
	"base":      "0x2105",
	"fantom":    "0xfa",
}

// ResolveChainID translates a human chain name into the provider encoding.
// Already-encoded hex IDs pass through unchanged.
func ResolveChainID(chain string) string {
	chain = strings.ToLower(strings.TrimSpace(chain))
	if chain == "" {
		return DefaultChainID
	}
	if strings.HasPrefix(chain, "0x") {
		return chain
	}
	if id, ok := chainIDs[chain]; ok {
		return id
	}
	return DefaultChainID
}
