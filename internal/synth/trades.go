package synth

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"chainlens/internal/entity"
)

var marketplaces = []string{"opensea", "blur", "looksrare", "x2y2"}

// Trades fabricates a newest-first sale history around a base floor price.
// Timestamps step back a few hours per trade; prices wobble within the same
// 5% band the history synthesizer uses.
func Trades(tokenAddress string, floorPrice float64, count int, now time.Time) []entity.TradeRecord {
	if count <= 0 {
		count = 20
	}
	if floorPrice <= 0 {
		floorPrice = 0.1 + rand.Float64()
	}

	trades := make([]entity.TradeRecord, count)
	ts := now
	price := floorPrice
	for i := 0; i < count; i++ {
		ts = ts.Add(-time.Duration(1+rand.Intn(8)) * time.Hour)
		price = price * (1 + (rand.Float64()*2-1)*maxDailyDrift)
		if price <= 0 {
			price = floorPrice
		}
		trades[i] = entity.TradeRecord{
			BlockTimestamp: ts.Unix(),
			Price:          price,
			Buyer:          randomAddress(),
			Seller:         randomAddress(),
			Marketplace:    marketplaces[rand.Intn(len(marketplaces))],
			TokenID:        strconv.Itoa(rand.Intn(10000)),
		}
	}
	return trades
}

func randomAddress() string {
	b := make([]byte, 20)
	rand.Read(b)
	return fmt.Sprintf("0x%x", b)
}
