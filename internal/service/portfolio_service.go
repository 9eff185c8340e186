package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chainlens/internal/analytics"
	"chainlens/internal/client"
	"chainlens/internal/config"
	"chainlens/internal/entity"
	"chainlens/internal/normalize"
	"chainlens/internal/synth"
	"chainlens/pkg/metrics"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// portfolioHistoryProxyCoin shapes the live wallet-history chart. The
// indexer has no portfolio-value-over-time endpoint, so the market chart of
// ETH is rescaled to the wallet's current total as a proxy curve.
const portfolioHistoryProxyCoin = "ethereum"

// PortfolioService assembles wallet-route payloads: holdings, allocation,
// risk score, and value history. Fetched payloads are cached for the
// configured freshness window.
type PortfolioService struct {
	indexer client.IndexerClient
	market  client.MarketClient
	cache   *cache.Cache
	ttl     time.Duration
	logger  *zap.Logger
}

// NewPortfolioService creates a new PortfolioService.
func NewPortfolioService(indexer client.IndexerClient, market client.MarketClient, cfg *config.Config, logger *zap.Logger) *PortfolioService {
	ttl := time.Duration(cfg.Cache.FreshnessMinutes) * time.Minute
	cleanup := time.Duration(cfg.Cache.CleanupIntervalMinutes) * time.Minute
	return &PortfolioService{
		indexer: indexer,
		market:  market,
		cache:   cache.New(ttl, cleanup),
		ttl:     ttl,
		logger:  logger.Named("PortfolioService"),
	}
}

// GetPortfolio returns the full wallet summary. Upstream failures other than
// a missing API key degrade to a synthesized wallet rather than an error, so
// the route always has a well-typed payload to render.
func (s *PortfolioService) GetPortfolio(ctx context.Context, address, chain string, refresh bool) (*entity.PortfolioSummary, error) {
	key := fmt.Sprintf("portfolio:%s:%s", chain, address)
	if !refresh {
		if cached, found := s.cache.Get(key); found {
			return cached.(*entity.PortfolioSummary), nil
		}
	}

	chainID := client.ResolveChainID(chain)
	summary := &entity.PortfolioSummary{Address: address, Chain: chainID}

	raw, err := s.indexer.GetTokenBalances(ctx, chainID, address)
	switch {
	case err == nil:
		summary.Holdings = normalize.TokenBalances(raw)
	case errors.Is(err, client.ErrNotConfigured):
		return nil, err
	default:
		s.logger.Warn("Token balance fetch failed, synthesizing wallet",
			zap.String("address", address), zap.String("chain", chainID), zap.Error(err))
		metrics.FallbackSynthesesTotal.WithLabelValues("wallet_tokens").Inc()
		summary.Holdings = synth.TokenHoldings()
		summary.Simulated = true
	}

	summary.TotalValue = normalize.TotalValue(summary.Holdings)
	summary.Allocation = analytics.Allocation(summary.Holdings)
	summary.RiskScore = analytics.RiskScore(summary.Allocation)

	s.cache.Set(key, summary, s.ttl)
	return summary, nil
}

// GetHistory returns a month-granularity portfolio value series. The live
// path rescales a market proxy chart so its last point equals the wallet's
// current total; if the market provider is down the series is synthesized
// with the same continuity guarantee.
func (s *PortfolioService) GetHistory(ctx context.Context, address, chain string, months int, refresh bool) (*entity.PortfolioHistory, error) {
	if months <= 0 || months > 24 {
		months = 6
	}
	key := fmt.Sprintf("portfolio_history:%s:%s:%d", chain, address, months)
	if !refresh {
		if cached, found := s.cache.Get(key); found {
			return cached.(*entity.PortfolioHistory), nil
		}
	}

	summary, err := s.GetPortfolio(ctx, address, chain, refresh)
	if err != nil {
		return nil, err
	}

	history := &entity.PortfolioHistory{
		Address:   address,
		Chain:     summary.Chain,
		Months:    months,
		Simulated: summary.Simulated,
	}

	chart, err := s.market.GetMarketChart(ctx, portfolioHistoryProxyCoin, months*30)
	if err == nil {
		series := normalize.MonthlySeries(chart.Prices, months)
		history.Series = rescaleToCurrent(series, summary.TotalValue)
	}
	if err != nil || len(history.Series) == 0 {
		if err != nil {
			s.logger.Warn("Market chart fetch failed, synthesizing portfolio history",
				zap.String("address", address), zap.Error(err))
		}
		metrics.FallbackSynthesesTotal.WithLabelValues("wallet_history").Inc()
		history.Series = synth.MonthlyHistory(summary.TotalValue, months, time.Now())
		history.Simulated = true
	}

	s.cache.Set(key, history, s.ttl)
	return history, nil
}

// rescaleToCurrent multiplies a series so its final point equals current.
// A zero-valued series or portfolio collapses to all zeros.
func rescaleToCurrent(series []entity.HistoryPoint, current float64) []entity.HistoryPoint {
	if len(series) == 0 {
		return series
	}
	out := make([]entity.HistoryPoint, len(series))
	copy(out, series)
	last := out[len(out)-1].Value
	if last <= 0 || current <= 0 {
		for i := range out {
			out[i].Value = 0
		}
		if current > 0 {
			out[len(out)-1].Value = current
		}
		return out
	}
	factor := current / last
	for i := range out {
		out[i].Value *= factor
	}
	// Assign exactly rather than trusting the multiplication, so the
	// continuity invariant is immune to rounding.
	out[len(out)-1].Value = current
	return out
}
