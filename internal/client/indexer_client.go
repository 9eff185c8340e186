package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"chainlens/internal/entity"
	"chainlens/pkg/metrics"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrNotConfigured is returned when a route needs the indexing provider but
// no API key was supplied at startup.
var ErrNotConfigured = errors.New("blockchain indexer API key is not configured")

// IndexerClient defines the interface for the blockchain-indexing provider.
type IndexerClient interface {
	GetTokenBalances(ctx context.Context, chainID, address string) ([]entity.RawTokenBalance, error)
	GetNFTAsset(ctx context.Context, chainID, tokenAddress, tokenID string) (*entity.RawNFT, error)
	GetNFTTrades(ctx context.Context, chainID, tokenAddress string, limit int, cursor string) (*entity.RawTradePage, error)
	GetCollectionStats(ctx context.Context, chainID, tokenAddress string) (*entity.RawCollectionStats, error)
	GetTrendingCollections(ctx context.Context, chainID string, limit int) ([]entity.RawCollectionStats, error)
}

// indexerClientImpl is the fasthttp implementation of IndexerClient.
// A shared token bucket guards the provider; the free tier tolerates only a
// few requests per second across the whole process.
type indexerClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	apiKey  string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewIndexerClient creates a new instance of indexerClientImpl.
func NewIndexerClient(baseURL, apiKey string, timeout time.Duration, limiter *rate.Limiter, logger *zap.Logger) IndexerClient {
	return &indexerClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: timeout,
		limiter: limiter,
		logger:  logger.Named("IndexerClient"),
	}
}

// GetTokenBalances fetches ERC-20 balances for a wallet. The provider has
// returned both a bare array and a {"result": [...]} page for this endpoint,
// so both shapes are accepted.
func (c *indexerClientImpl) GetTokenBalances(ctx context.Context, chainID, address string) ([]entity.RawTokenBalance, error) {
	path := fmt.Sprintf("/%s/erc20?chain=%s", url.PathEscape(address), url.QueryEscape(chainID))
	body, err := c.doRequest(ctx, path)
	if err != nil {
		return nil, err
	}

	var page entity.RawTokenBalancePage
	if err := json.Unmarshal(body, &page); err == nil && page.Result != nil {
		return page.Result, nil
	}

	var balances []entity.RawTokenBalance
	if err := json.Unmarshal(body, &balances); err != nil {
		c.logger.Error("Failed to unmarshal token balances (both page and bare-array shapes)",
			zap.String("chain", chainID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrEmptyPayload, err)
	}
	return balances, nil
}

// GetNFTAsset fetches a single NFT with its (possibly string-encoded) metadata.
func (c *indexerClientImpl) GetNFTAsset(ctx context.Context, chainID, tokenAddress, tokenID string) (*entity.RawNFT, error) {
	path := fmt.Sprintf("/nft/%s/%s?chain=%s&format=decimal&media_items=false",
		url.PathEscape(tokenAddress), url.PathEscape(tokenID), url.QueryEscape(chainID))
	body, err := c.doRequest(ctx, path)
	if err != nil {
		return nil, err
	}

	var nft entity.RawNFT
	if err := json.Unmarshal(body, &nft); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptyPayload, err)
	}
	if nft.TokenAddress == "" && nft.TokenID == "" {
		return nil, ErrEmptyPayload
	}
	return &nft, nil
}

// GetNFTTrades fetches the sale history of a collection, newest first.
func (c *indexerClientImpl) GetNFTTrades(ctx context.Context, chainID, tokenAddress string, limit int, cursor string) (*entity.RawTradePage, error) {
	if limit <= 0 {
		limit = 100
	}
	path := fmt.Sprintf("/nft/%s/trades?chain=%s&limit=%d", url.PathEscape(tokenAddress), url.QueryEscape(chainID), limit)
	if cursor != "" {
		path += "&cursor=" + url.QueryEscape(cursor)
	}
	body, err := c.doRequest(ctx, path)
	if err != nil {
		return nil, err
	}

	var page entity.RawTradePage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptyPayload, err)
	}
	return &page, nil
}

// GetCollectionStats fetches floor price, volumes, and ownership figures for
// one collection.
func (c *indexerClientImpl) GetCollectionStats(ctx context.Context, chainID, tokenAddress string) (*entity.RawCollectionStats, error) {
	path := fmt.Sprintf("/nft/%s/stats?chain=%s", url.PathEscape(tokenAddress), url.QueryEscape(chainID))
	body, err := c.doRequest(ctx, path)
	if err != nil {
		return nil, err
	}

	var stats entity.RawCollectionStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptyPayload, err)
	}
	return &stats, nil
}

// GetTrendingCollections fetches the provider's hot-collections listing.
// Accepts a {"result": [...]} page or a bare array.
func (c *indexerClientImpl) GetTrendingCollections(ctx context.Context, chainID string, limit int) ([]entity.RawCollectionStats, error) {
	if limit <= 0 {
		limit = 10
	}
	path := fmt.Sprintf("/market-data/nfts/hottest?chain=%s&limit=%d", url.QueryEscape(chainID), limit)
	body, err := c.doRequest(ctx, path)
	if err != nil {
		return nil, err
	}

	var page entity.RawTrendingPage
	if err := json.Unmarshal(body, &page); err == nil && page.Result != nil {
		return page.Result, nil
	}

	var collections []entity.RawCollectionStats
	if err := json.Unmarshal(body, &collections); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptyPayload, err)
	}
	return collections, nil
}

// doRequest performs one rate-limited GET against the provider and returns
// the raw body on 2xx.
func (c *indexerClientImpl) doRequest(ctx context.Context, path string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait aborted: %w", err)
	}

	requestURL := c.baseURL + path
	c.logger.Debug("Requesting indexer endpoint", zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	start := time.Now()
	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	metrics.UpstreamRequestDuration.WithLabelValues("indexer").Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("indexer", "transport_error").Inc()
		c.logger.Error("Failed to execute request to indexer", zap.String("url", requestURL), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
	}

	status := resp.StatusCode()
	rawBody := append([]byte(nil), resp.Body()...)

	if status == fasthttp.StatusTooManyRequests {
		metrics.UpstreamRequestsTotal.WithLabelValues("indexer", "rate_limited").Inc()
		metrics.RateLimitEventsTotal.WithLabelValues("indexer").Inc()
		c.logger.Warn("Indexer rate limit hit", zap.String("url", requestURL))
		return nil, &UpstreamError{Provider: "indexer", StatusCode: status, Body: string(rawBody)}
	}
	if status < 200 || status > 299 {
		metrics.UpstreamRequestsTotal.WithLabelValues("indexer", "upstream_error").Inc()
		c.logger.Error("Indexer API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", status),
			zap.ByteString("responseBody", rawBody))
		return nil, &UpstreamError{Provider: "indexer", StatusCode: status, Body: string(rawBody)}
	}

	metrics.UpstreamRequestsTotal.WithLabelValues("indexer", "ok").Inc()
	if len(rawBody) == 0 {
		return nil, ErrEmptyPayload
	}
	return rawBody, nil
}
