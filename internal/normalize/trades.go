package normalize

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"chainlens/internal/entity"

	jsoniter "github.com/json-iterator/go"
)

const weiPerEther = 1e18

// Trades converts a raw trade page into canonical records, newest first.
// Prices arrive as wei-denominated decimal strings; token_ids as a JSON
// array of strings or numbers.
func Trades(page *entity.RawTradePage) []entity.TradeRecord {
	if page == nil {
		return nil
	}
	records := make([]entity.TradeRecord, 0, len(page.Result))
	for _, r := range page.Result {
		ts := parseTradeTimestamp(r.BlockTimestamp)
		if ts == 0 {
			continue
		}
		records = append(records, entity.TradeRecord{
			BlockTimestamp: ts,
			Price:          parseWeiPrice(r.Price),
			Buyer:          r.BuyerAddress,
			Seller:         r.SellerAddress,
			Marketplace:    marketplaceName(r),
			TokenID:        firstTokenID(r.TokenIDs),
		})
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].BlockTimestamp > records[j].BlockTimestamp
	})
	return records
}

// DailyAveragePrices compresses trades into chronological (dayIndex, mean
// price) samples for regression. Zero-priced trades are ignored.
func DailyAveragePrices(trades []entity.TradeRecord) []entity.HistoryPoint {
	type bucket struct {
		sum   float64
		count int
	}
	byDay := make(map[int64]*bucket)
	for _, t := range trades {
		if t.Price <= 0 {
			continue
		}
		day := t.BlockTimestamp / 86400
		b, ok := byDay[day]
		if !ok {
			b = &bucket{}
			byDay[day] = b
		}
		b.sum += t.Price
		b.count++
	}

	days := make([]int64, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	points := make([]entity.HistoryPoint, 0, len(days))
	for _, day := range days {
		b := byDay[day]
		ts := day * 86400
		points = append(points, entity.HistoryPoint{
			Label:     time.Unix(ts, 0).UTC().Format("Jan 2"),
			Timestamp: ts,
			Value:     Finite(b.sum / float64(b.count)),
		})
	}
	return points
}

func parseTradeTimestamp(s string) int64 {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.000Z", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Unix()
		}
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	return 0
}

func parseWeiPrice(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return Finite(v / weiPerEther)
}

func marketplaceName(r entity.RawTrade) string {
	if r.Marketplace != "" {
		return r.Marketplace
	}
	return r.MarketplaceAddress
}

func firstTokenID(raw jsoniter.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var asStrings []string
	if err := json.Unmarshal(raw, &asStrings); err == nil && len(asStrings) > 0 {
		return asStrings[0]
	}
	var asNumbers []int64
	if err := json.Unmarshal(raw, &asNumbers); err == nil && len(asNumbers) > 0 {
		return strconv.FormatInt(asNumbers[0], 10)
	}
	return ""
}
