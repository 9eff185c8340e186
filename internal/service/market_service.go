package service

import (
	"context"
	"fmt"
	"time"

	"chainlens/internal/client"
	"chainlens/internal/config"
	"chainlens/internal/entity"
	"chainlens/internal/normalize"
	"chainlens/internal/synth"
	"chainlens/pkg/metrics"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MarketService assembles market-wide payloads from the market-data
// provider. Spot prices and global stats are independent fetches, so the
// sentiment route issues them in parallel and joins before reshaping.
type MarketService struct {
	market client.MarketClient
	cache  *cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewMarketService creates a new MarketService.
func NewMarketService(market client.MarketClient, cfg *config.Config, logger *zap.Logger) *MarketService {
	ttl := time.Duration(cfg.Cache.FreshnessMinutes) * time.Minute
	cleanup := time.Duration(cfg.Cache.CleanupIntervalMinutes) * time.Minute
	return &MarketService{
		market: market,
		cache:  cache.New(ttl, cleanup),
		ttl:    ttl,
		logger: logger.Named("MarketService"),
	}
}

// GetSentiment returns the aggregate market snapshot, synthesized when
// either upstream leg fails.
func (s *MarketService) GetSentiment(ctx context.Context, refresh bool) (*entity.MarketSentiment, error) {
	const key = "market_sentiment"
	if !refresh {
		if cached, found := s.cache.Get(key); found {
			return cached.(*entity.MarketSentiment), nil
		}
	}

	var (
		prices entity.RawSimplePrice
		global *entity.RawGlobalStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		prices, err = s.market.GetSimplePrices(gctx, []string{"bitcoin", "ethereum"})
		return err
	})
	g.Go(func() error {
		var err error
		global, err = s.market.GetGlobalStats(gctx)
		return err
	})

	var sentiment *entity.MarketSentiment
	if err := g.Wait(); err != nil {
		s.logger.Warn("Market sentiment fetch failed, synthesizing", zap.Error(err))
		metrics.FallbackSynthesesTotal.WithLabelValues("market_sentiment").Inc()
		synthetic := synth.MarketSentiment()
		sentiment = &synthetic
	} else {
		sentiment = &entity.MarketSentiment{
			BTCPriceUSD:    normalize.Finite(prices["bitcoin"]["usd"]),
			BTCChange24h:   normalize.Finite(prices["bitcoin"]["usd_24h_change"]),
			ETHPriceUSD:    normalize.Finite(prices["ethereum"]["usd"]),
			ETHChange24h:   normalize.Finite(prices["ethereum"]["usd_24h_change"]),
			TotalMarketCap: normalize.Finite(global.Data.TotalMarketCap["usd"]),
			TotalVolume24h: normalize.Finite(global.Data.TotalVolume["usd"]),
			BTCDominance:   normalize.Finite(global.Data.MarketCapPercentage["btc"]),
		}
	}
	sentiment.Gauge = sentimentGauge(sentiment.BTCChange24h, sentiment.ETHChange24h)

	s.cache.Set(key, sentiment, s.ttl)
	return sentiment, nil
}

// GetCoinHistory returns a day-granularity price series for one coin. The
// fallback path anchors the synthesized series to the live spot price when
// it can still be fetched.
func (s *MarketService) GetCoinHistory(ctx context.Context, coin string, days int, refresh bool) (*entity.CoinHistory, error) {
	if coin == "" {
		coin = "ethereum"
	}
	if days <= 0 || days > 365 {
		days = 30
	}
	key := fmt.Sprintf("market_history:%s:%d", coin, days)
	if !refresh {
		if cached, found := s.cache.Get(key); found {
			return cached.(*entity.CoinHistory), nil
		}
	}

	history := &entity.CoinHistory{Coin: coin, Days: days}

	chart, err := s.market.GetMarketChart(ctx, coin, days)
	if err == nil {
		history.Series = normalize.DailySeries(chart.Prices)
	} else {
		s.logger.Warn("Coin chart fetch failed, synthesizing",
			zap.String("coin", coin), zap.Int("days", days), zap.Error(err))
		metrics.FallbackSynthesesTotal.WithLabelValues("market_history").Inc()
		history.Series = synth.DailyHistory(s.spotPriceOrDefault(ctx, coin), days, time.Now())
		history.Simulated = true
	}

	s.cache.Set(key, history, s.ttl)
	return history, nil
}

func (s *MarketService) spotPriceOrDefault(ctx context.Context, coin string) float64 {
	if prices, err := s.market.GetSimplePrices(ctx, []string{coin}); err == nil {
		if v := prices[coin]["usd"]; v > 0 {
			return v
		}
	}
	return 100
}

// sentimentGauge maps short-term major-asset momentum onto the UI's
// fear/greed dial.
func sentimentGauge(btcChange, ethChange float64) string {
	avg := (btcChange + ethChange) / 2
	switch {
	case avg >= 5:
		return "Extreme Greed"
	case avg >= 2:
		return "Greed"
	case avg > -2:
		return "Neutral"
	case avg > -5:
		return "Fear"
	default:
		return "Extreme Fear"
	}
}
