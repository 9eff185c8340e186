package normalize

import (
	"strconv"
	"strings"
	"time"

	"chainlens/internal/entity"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// nftMetadata is the parsed shape of an NFT metadata document. Image URLs
// show up under several keys depending on which tool minted the token.
type nftMetadata struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	ImageSnake  string `json:"image_url"`
	ImageCamel  string `json:"imageUrl"`
}

// NFTAsset converts a raw NFT into the canonical asset shape. The metadata
// field arrives either as a JSON string or an already-parsed object; both are
// handled, and a missing or unparseable document just leaves the optional
// fields empty.
func NFTAsset(raw *entity.RawNFT) entity.NFTAsset {
	asset := entity.NFTAsset{
		TokenAddress: raw.TokenAddress,
		TokenID:      raw.TokenID,
		Name:         raw.Name,
		Symbol:       raw.Symbol,
		ContractType: raw.ContractType,
		Owner:        raw.OwnerOf,
	}

	meta := parseMetadata(raw.Metadata)
	if meta == nil {
		return asset
	}
	if meta.Name != "" {
		asset.Name = meta.Name
	}
	asset.Description = meta.Description
	asset.Image = ResolveImageURL(meta)
	return asset
}

func parseMetadata(raw jsoniter.RawMessage) *nftMetadata {
	if len(raw) == 0 {
		return nil
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	// String-encoded document: unwrap once, then parse the inner object.
	if strings.HasPrefix(trimmed, `"`) {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil
		}
		trimmed = inner
	}

	var meta nftMetadata
	if err := json.Unmarshal([]byte(trimmed), &meta); err != nil {
		return nil
	}
	return &meta
}

// ResolveImageURL picks the first populated image key (image, image_url,
// imageUrl) and rewrites ipfs:// URIs to a public gateway.
func ResolveImageURL(meta *nftMetadata) string {
	for _, candidate := range []string{meta.Image, meta.ImageSnake, meta.ImageCamel} {
		if candidate == "" {
			continue
		}
		if strings.HasPrefix(candidate, "ipfs://") {
			return "https://ipfs.io/ipfs/" + strings.TrimPrefix(candidate, "ipfs://")
		}
		return candidate
	}
	return ""
}

// CollectionStats converts raw per-collection stats into a summary. Numeric
// fields that alternate between string and number across provider versions
// go through CoerceFloat. The risk label is left empty for the analytics
// layer to assign.
func CollectionStats(raw *entity.RawCollectionStats, chain string) entity.NFTCollectionSummary {
	return entity.NFTCollectionSummary{
		Address:        raw.TokenAddress,
		Name:           raw.Name,
		Symbol:         raw.Symbol,
		Chain:          chain,
		FloorPrice:     CoerceFloat(raw.FloorPrice),
		MarketCap:      CoerceFloat(raw.MarketCap),
		Volume24h:      CoerceFloat(raw.Volume24h),
		Volume7d:       CoerceFloat(raw.Volume7d),
		PriceChange24h: CoerceFloat(raw.Change24h),
		PriceChange7d:  CoerceFloat(raw.Change7d),
		Owners:         int(CoerceFloat(raw.OwnersCount)),
		Items:          int(CoerceFloat(raw.ItemsCount)),
		CreatedAt:      parseTimestamp(raw.CreatedAt),
	}
}

// CoerceFloat reads a raw JSON value that may be a number, a numeric string,
// or null, and always returns a finite float64.
func CoerceFloat(raw jsoniter.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var asNumber float64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return Finite(asNumber)
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		v, err := strconv.ParseFloat(strings.TrimSpace(asString), 64)
		if err != nil {
			return 0
		}
		return Finite(v)
	}
	return 0
}

func parseTimestamp(s string) int64 {
	if s == "" {
		return 0
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.000Z", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Unix()
		}
	}
	return 0
}
