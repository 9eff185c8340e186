package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"chainlens/internal/entity"
	"chainlens/pkg/metrics"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// MarketClient defines the interface for the market-data provider.
type MarketClient interface {
	GetSimplePrices(ctx context.Context, coinIDs []string) (entity.RawSimplePrice, error)
	GetMarketChart(ctx context.Context, coinID string, days int) (*entity.RawMarketChart, error)
	GetGlobalStats(ctx context.Context) (*entity.RawGlobalStats, error)
}

// marketClientImpl is the fasthttp implementation of MarketClient. The free
// tier of the provider fails transiently often enough that every call runs
// through a small fixed-count retry loop.
type marketClientImpl struct {
	client     *fasthttp.Client
	baseURL    string
	apiKey     string
	timeout    time.Duration
	maxRetries int
	baseDelay  time.Duration
	logger     *zap.Logger
}

// NewMarketClient creates a new instance of marketClientImpl.
func NewMarketClient(baseURL, apiKey string, timeout time.Duration, maxRetries int, baseDelay time.Duration, logger *zap.Logger) MarketClient {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	if baseDelay <= 0 {
		baseDelay = 500 * time.Millisecond
	}
	return &marketClientImpl{
		client:     &fasthttp.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		timeout:    timeout,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		logger:     logger.Named("MarketClient"),
	}
}

// GetSimplePrices fetches USD spot prices with 24h change for the given coin ids.
func (c *marketClientImpl) GetSimplePrices(ctx context.Context, coinIDs []string) (entity.RawSimplePrice, error) {
	if len(coinIDs) == 0 {
		return nil, fmt.Errorf("coinIDs cannot be empty")
	}
	path := fmt.Sprintf("/simple/price?ids=%s&vs_currencies=usd&include_24hr_change=true",
		url.QueryEscape(strings.Join(coinIDs, ",")))
	body, err := c.doRequest(ctx, path)
	if err != nil {
		return nil, err
	}

	var prices entity.RawSimplePrice
	if err := json.Unmarshal(body, &prices); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptyPayload, err)
	}
	if len(prices) == 0 {
		return nil, ErrEmptyPayload
	}
	return prices, nil
}

// GetMarketChart fetches a daily price/volume chart for one coin.
func (c *marketClientImpl) GetMarketChart(ctx context.Context, coinID string, days int) (*entity.RawMarketChart, error) {
	if days <= 0 {
		days = 30
	}
	path := fmt.Sprintf("/coins/%s/market_chart?vs_currency=usd&days=%d&interval=daily",
		url.PathEscape(coinID), days)
	body, err := c.doRequest(ctx, path)
	if err != nil {
		return nil, err
	}

	var chart entity.RawMarketChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptyPayload, err)
	}
	if len(chart.Prices) == 0 {
		return nil, ErrEmptyPayload
	}
	return &chart, nil
}

// GetGlobalStats fetches the aggregate market snapshot.
func (c *marketClientImpl) GetGlobalStats(ctx context.Context) (*entity.RawGlobalStats, error) {
	body, err := c.doRequest(ctx, "/global")
	if err != nil {
		return nil, err
	}

	var stats entity.RawGlobalStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptyPayload, err)
	}
	if len(stats.Data.TotalMarketCap) == 0 {
		return nil, ErrEmptyPayload
	}
	return &stats, nil
}

// doRequest performs one GET with fixed-count backoff. Transport errors and
// 5xx are retried with the delay multiplied by 1.5 each attempt; 4xx
// (including 429) is returned immediately since retrying a rate limit inside
// the request just burns the caller's deadline.
func (c *marketClientImpl) doRequest(ctx context.Context, path string) ([]byte, error) {
	requestURL := c.baseURL + path
	c.logger.Debug("Requesting market endpoint", zap.String("url", requestURL))

	delay := c.baseDelay
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		body, retryable, err := c.attempt(ctx, requestURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable || attempt == c.maxRetries {
			break
		}

		c.logger.Warn("Market request failed, retrying",
			zap.String("url", requestURL),
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", c.maxRetries),
			zap.Duration("delay", delay),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay = time.Duration(float64(delay) * 1.5)
	}

	return nil, lastErr
}

// attempt issues a single request. The second return value reports whether
// the failure is worth retrying.
func (c *marketClientImpl) attempt(ctx context.Context, requestURL string) ([]byte, bool, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	start := time.Now()
	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	metrics.UpstreamRequestDuration.WithLabelValues("market").Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("market", "transport_error").Inc()
		return nil, true, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
	}

	status := resp.StatusCode()
	rawBody := append([]byte(nil), resp.Body()...)

	switch {
	case status == fasthttp.StatusTooManyRequests:
		metrics.UpstreamRequestsTotal.WithLabelValues("market", "rate_limited").Inc()
		metrics.RateLimitEventsTotal.WithLabelValues("market").Inc()
		c.logger.Warn("Market rate limit hit", zap.String("url", requestURL))
		return nil, false, &UpstreamError{Provider: "market", StatusCode: status, Body: string(rawBody)}
	case status >= 500:
		metrics.UpstreamRequestsTotal.WithLabelValues("market", "upstream_error").Inc()
		return nil, true, &UpstreamError{Provider: "market", StatusCode: status, Body: string(rawBody)}
	case status < 200 || status > 299:
		metrics.UpstreamRequestsTotal.WithLabelValues("market", "upstream_error").Inc()
		return nil, false, &UpstreamError{Provider: "market", StatusCode: status, Body: string(rawBody)}
	}

	metrics.UpstreamRequestsTotal.WithLabelValues("market", "ok").Inc()
	if len(rawBody) == 0 {
		return nil, false, ErrEmptyPayload
	}
	return rawBody, false, nil
}
