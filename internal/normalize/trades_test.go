package normalize

import (
	"testing"

	"chainlens/internal/entity"

	jsoniter "github.com/json-iterator/go"
)

func TestTrades_ParsesAndOrdersNewestFirst(t *testing.T) {
	page := &entity.RawTradePage{
		Result: []entity.RawTrade{
			{
				BlockTimestamp: "2024-03-01T10:00:00.000Z",
				Price:          "1500000000000000000", // 1.5 ETH in wei
				BuyerAddress:   "0xbuyer1",
				SellerAddress:  "0xseller1",
				Marketplace:    "opensea",
				TokenIDs:       jsoniter.RawMessage(`["101"]`),
			},
			{
				BlockTimestamp: "2024-03-05T10:00:00.000Z",
				Price:          "2000000000000000000",
				BuyerAddress:   "0xbuyer2",
				SellerAddress:  "0xseller2",
				TokenIDs:       jsoniter.RawMessage(`[202]`),
			},
		},
	}

	trades := Trades(page)
	if len(trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(trades))
	}
	if trades[0].BlockTimestamp < trades[1].BlockTimestamp {
		t.Fatal("expected newest-first ordering")
	}
	if trades[0].Price != 2 {
		t.Fatalf("expected 2 ETH, got %f", trades[0].Price)
	}
	if trades[1].Price != 1.5 {
		t.Fatalf("expected 1.5 ETH, got %f", trades[1].Price)
	}
	if trades[1].TokenID != "101" {
		t.Fatalf("expected token id from string array, got %q", trades[1].TokenID)
	}
	if trades[0].TokenID != "202" {
		t.Fatalf("expected token id from number array, got %q", trades[0].TokenID)
	}
	if trades[1].Marketplace != "opensea" {
		t.Fatalf("unexpected marketplace: %q", trades[1].Marketplace)
	}
}

func TestTrades_SkipsUnparseableTimestamps(t *testing.T) {
	page := &entity.RawTradePage{
		Result: []entity.RawTrade{
			{BlockTimestamp: "garbage", Price: "1000000000000000000"},
			{BlockTimestamp: "2024-03-05T10:00:00.000Z", Price: "1000000000000000000"},
		},
	}
	if trades := Trades(page); len(trades) != 1 {
		t.Fatalf("expected unparseable trade dropped, got %d", len(trades))
	}
}

func TestDailyAveragePrices(t *testing.T) {
	day := int64(1709596800) // 2024-03-05T00:00:00Z
	trades := []entity.TradeRecord{
		{BlockTimestamp: day + 3600, Price: 1},
		{BlockTimestamp: day + 7200, Price: 3},
		{BlockTimestamp: day + 86400, Price: 10},
		{BlockTimestamp: day + 90000, Price: 0}, // ignored
	}
	points := DailyAveragePrices(trades)
	if len(points) != 2 {
		t.Fatalf("expected 2 daily points, got %d", len(points))
	}
	if points[0].Value != 2 {
		t.Fatalf("expected first-day average 2, got %f", points[0].Value)
	}
	if points[1].Value != 10 {
		t.Fatalf("expected second-day average 10, got %f", points[1].Value)
	}
	if points[0].Timestamp >= points[1].Timestamp {
		t.Fatal("points not chronological")
	}
}
