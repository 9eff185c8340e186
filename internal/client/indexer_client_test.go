package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func newTestIndexer(t *testing.T, handler http.HandlerFunc, apiKey string) (IndexerClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewIndexerClient(srv.URL, apiKey, 5*time.Second, rate.NewLimiter(rate.Inf, 1), zap.NewNop())
	return c, srv
}

func TestIndexerClient_MissingKeyFailsWithoutCalling(t *testing.T) {
	called := false
	c, _ := newTestIndexer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, "")

	_, err := c.GetTokenBalances(context.Background(), "0x1", "0xabc")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if called {
		t.Fatal("request must not reach the upstream without an API key")
	}
}

func TestIndexerClient_SendsAPIKeyHeader(t *testing.T) {
	var gotKey string
	c, _ := newTestIndexer(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		w.Write([]byte(`[]`))
	}, "secret-key")

	if _, err := c.GetTokenBalances(context.Background(), "0x1", "0xabc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "secret-key" {
		t.Fatalf("expected X-API-Key header, got %q", gotKey)
	}
}

func TestIndexerClient_TokenBalances_PageShape(t *testing.T) {
	c, _ := newTestIndexer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"cursor":"","page":0,"result":[{"token_address":"0x1f98","symbol":"UNI","decimals":18,"balance":"5000000000000000000","usd_price":7.2}]}`))
	}, "k")

	balances, err := c.GetTokenBalances(context.Background(), "0x1", "0xabc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(balances) != 1 || balances[0].Symbol != "UNI" {
		t.Fatalf("unexpected balances: %+v", balances)
	}
}

func TestIndexerClient_TokenBalances_BareArrayShape(t *testing.T) {
	c, _ := newTestIndexer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"token_address":"0xa0b8","symbol":"USDC","decimals":6,"balance":"100000000","usd_price":1}]`))
	}, "k")

	balances, err := c.GetTokenBalances(context.Background(), "0x1", "0xabc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(balances) != 1 || balances[0].Symbol != "USDC" {
		t.Fatalf("unexpected balances: %+v", balances)
	}
}

func TestIndexerClient_TokenBalances_EmptyWallet(t *testing.T) {
	c, _ := newTestIndexer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}, "k")

	balances, err := c.GetTokenBalances(context.Background(), "0x1", "0xabc")
	if err != nil {
		t.Fatalf("empty wallet must not be an error: %v", err)
	}
	if len(balances) != 0 {
		t.Fatalf("expected no balances, got %d", len(balances))
	}
}

func TestIndexerClient_RateLimitSurfacesAsUpstreamError(t *testing.T) {
	c, _ := newTestIndexer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"message":"Rate limit exceeded"}`))
	}, "k")

	_, err := c.GetTrendingCollections(context.Background(), "0x1", 10)
	if err == nil {
		t.Fatal("expected error on 429")
	}
	if !IsRateLimited(err) {
		t.Fatalf("expected rate-limited classification, got %v", err)
	}
	var ue *UpstreamError
	if !errors.As(err, &ue) || ue.Provider != "indexer" {
		t.Fatalf("expected indexer UpstreamError, got %v", err)
	}
}

func TestIndexerClient_NotFoundClassified(t *testing.T) {
	c, _ := newTestIndexer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"no such token"}`, http.StatusNotFound)
	}, "k")

	_, err := c.GetNFTAsset(context.Background(), "0x1", "0xcol", "42")
	if !IsNotFound(err) {
		t.Fatalf("expected not-found classification, got %v", err)
	}
	if IsRateLimited(err) {
		t.Fatal("404 must not classify as rate limited")
	}
}

func TestIndexerClient_NFTAsset_EmptyBodyRejected(t *testing.T) {
	c, _ := newTestIndexer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}, "k")

	_, err := c.GetNFTAsset(context.Background(), "0x1", "0xcol", "42")
	if !errors.Is(err, ErrEmptyPayload) {
		t.Fatalf("expected ErrEmptyPayload for identity-less NFT, got %v", err)
	}
}

func TestIndexerClient_Trades(t *testing.T) {
	c, _ := newTestIndexer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"cursor":"abc","result":[{"block_timestamp":"2025-06-01T10:00:00.000Z","price":"2500000000000000000","buyer_address":"0xb1","seller_address":"0xs1","marketplace":"opensea","token_ids":["7"]}]}`))
	}, "k")

	page, err := c.GetNFTTrades(context.Background(), "0x1", "0xcol", 50, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Cursor != "abc" || len(page.Result) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if page.Result[0].Price != "2500000000000000000" {
		t.Fatalf("price must stay a raw string, got %q", page.Result[0].Price)
	}
}

func TestIndexerClient_TrendingCollections_PageShape(t *testing.T) {
	c, _ := newTestIndexer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":[{"token_address":"0xbc4c","name":"Bored Ape Yacht Club","floor_price":"12.5","total_tokens":10000}]}`))
	}, "k")

	collections, err := c.GetTrendingCollections(context.Background(), "0x1", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(collections) != 1 || collections[0].Name != "Bored Ape Yacht Club" {
		t.Fatalf("unexpected collections: %+v", collections)
	}
}

func TestIndexerClient_ServerErrorNotRetried(t *testing.T) {
	calls := 0
	c, _ := newTestIndexer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}, "k")

	_, err := c.GetCollectionStats(context.Background(), "0x1", "0xcol")
	if err == nil {
		t.Fatal("expected error on 500")
	}
	if calls != 1 {
		t.Fatalf("indexer client must not retry, made %d calls", calls)
	}
}
