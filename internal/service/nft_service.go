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

// ErrAssetNotFound signals that the indexer has no record of the requested
// token; the asset route maps it to 404.
var ErrAssetNotFound = errors.New("NFT asset not found")

// NFTService assembles collection, asset, trade, and prediction payloads.
// Collection and trade routes degrade to synthesized data on upstream
// failure (including rate limits); the single-asset route does not, since an
// invented image or owner would be actively misleading.
type NFTService struct {
	indexer client.IndexerClient
	cache   *cache.Cache
	ttl     time.Duration
	logger  *zap.Logger
}

// NewNFTService creates a new NFTService.
func NewNFTService(indexer client.IndexerClient, cfg *config.Config, logger *zap.Logger) *NFTService {
	ttl := time.Duration(cfg.Cache.FreshnessMinutes) * time.Minute
	cleanup := time.Duration(cfg.Cache.CleanupIntervalMinutes) * time.Minute
	return &NFTService{
		indexer: indexer,
		cache:   cache.New(ttl, cleanup),
		ttl:     ttl,
		logger:  logger.Named("NFTService"),
	}
}

// GetTrending returns the trending-collections listing. An upstream failure
// (the provider rate-limits this endpoint aggressively) yields the reference
// listing instead of an error.
func (s *NFTService) GetTrending(ctx context.Context, chain string, limit int, refresh bool) ([]entity.NFTCollectionSummary, bool, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	chainID := client.ResolveChainID(chain)
	key := fmt.Sprintf("nft_trending:%s:%d", chainID, limit)
	if !refresh {
		if cached, found := s.cache.Get(key); found {
			entry := cached.(trendingEntry)
			return entry.collections, entry.simulated, nil
		}
	}

	now := time.Now()
	raw, err := s.indexer.GetTrendingCollections(ctx, chainID, limit)
	if errors.Is(err, client.ErrNotConfigured) {
		return nil, false, err
	}

	var collections []entity.NFTCollectionSummary
	simulated := false
	if err != nil || len(raw) == 0 {
		if err != nil {
			s.logger.Warn("Trending collections fetch failed, synthesizing",
				zap.String("chain", chainID), zap.Bool("rateLimited", client.IsRateLimited(err)), zap.Error(err))
		}
		metrics.FallbackSynthesesTotal.WithLabelValues("nft_trending").Inc()
		collections = synth.TrendingCollections(chainID, limit)
		simulated = true
	} else {
		collections = make([]entity.NFTCollectionSummary, 0, len(raw))
		for i := range raw {
			collections = append(collections, normalize.CollectionStats(&raw[i], chainID))
		}
	}
	for i := range collections {
		collections[i].RiskLabel = analytics.CollectionRisk(collections[i], now)
	}

	s.cache.Set(key, trendingEntry{collections: collections, simulated: simulated}, s.ttl)
	return collections, simulated, nil
}

type trendingEntry struct {
	collections []entity.NFTCollectionSummary
	simulated   bool
}

// GetCollection returns one collection summary with its risk label.
func (s *NFTService) GetCollection(ctx context.Context, address, chain string, refresh bool) (*entity.NFTCollectionSummary, bool, error) {
	chainID := client.ResolveChainID(chain)
	key := fmt.Sprintf("nft_collection:%s:%s", chainID, address)
	if !refresh {
		if cached, found := s.cache.Get(key); found {
			entry := cached.(collectionEntry)
			return entry.summary, entry.simulated, nil
		}
	}

	now := time.Now()
	raw, err := s.indexer.GetCollectionStats(ctx, chainID, address)
	if errors.Is(err, client.ErrNotConfigured) {
		return nil, false, err
	}

	var summary entity.NFTCollectionSummary
	simulated := false
	if err != nil {
		s.logger.Warn("Collection stats fetch failed, synthesizing",
			zap.String("address", address), zap.String("chain", chainID), zap.Error(err))
		metrics.FallbackSynthesesTotal.WithLabelValues("nft_collection").Inc()
		summary = synth.Collection(address, chainID)
		simulated = true
	} else {
		summary = normalize.CollectionStats(raw, chainID)
		if summary.Address == "" {
			summary.Address = address
		}
	}
	summary.RiskLabel = analytics.CollectionRisk(summary, now)

	s.cache.Set(key, collectionEntry{summary: &summary, simulated: simulated}, s.ttl)
	return &summary, simulated, nil
}

type collectionEntry struct {
	summary   *entity.NFTCollectionSummary
	simulated bool
}

// GetAsset returns one normalized NFT. Not-found maps to ErrAssetNotFound;
// other failures propagate, there is no synthesis on this route.
func (s *NFTService) GetAsset(ctx context.Context, address, tokenID, chain string, refresh bool) (*entity.NFTAsset, error) {
	chainID := client.ResolveChainID(chain)
	key := fmt.Sprintf("nft_asset:%s:%s:%s", chainID, address, tokenID)
	if !refresh {
		if cached, found := s.cache.Get(key); found {
			return cached.(*entity.NFTAsset), nil
		}
	}

	raw, err := s.indexer.GetNFTAsset(ctx, chainID, address, tokenID)
	if err != nil {
		if client.IsNotFound(err) || errors.Is(err, client.ErrEmptyPayload) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}

	asset := normalize.NFTAsset(raw)
	s.cache.Set(key, &asset, s.ttl)
	return &asset, nil
}

// GetTrades returns a page of collection sales, newest first, synthesized on
// upstream failure.
func (s *NFTService) GetTrades(ctx context.Context, address, chain string, limit int, cursor string, refresh bool) (*entity.TradePage, error) {
	if limit <= 0 || limit > 300 {
		limit = 100
	}
	chainID := client.ResolveChainID(chain)
	key := fmt.Sprintf("nft_trades:%s:%s:%d:%s", chainID, address, limit, cursor)
	if !refresh {
		if cached, found := s.cache.Get(key); found {
			return cached.(*entity.TradePage), nil
		}
	}

	raw, err := s.indexer.GetNFTTrades(ctx, chainID, address, limit, cursor)
	if errors.Is(err, client.ErrNotConfigured) {
		return nil, err
	}

	page := &entity.TradePage{}
	if err != nil {
		s.logger.Warn("Trade history fetch failed, synthesizing",
			zap.String("address", address), zap.String("chain", chainID), zap.Error(err))
		metrics.FallbackSynthesesTotal.WithLabelValues("nft_trades").Inc()
		page.Trades = synth.Trades(address, s.knownFloorPrice(chainID, address), limit, time.Now())
		page.Simulated = true
	} else {
		page.Trades = normalize.Trades(raw)
		page.Cursor = raw.Cursor
	}

	s.cache.Set(key, page, s.ttl)
	return page, nil
}

// GetPrediction regresses daily-averaged trade prices into a price
// projection. It rides on GetTrades, so a dead upstream still produces a
// structurally valid (simulated) prediction.
func (s *NFTService) GetPrediction(ctx context.Context, address, chain string, refresh bool) (*entity.PricePrediction, bool, error) {
	page, err := s.GetTrades(ctx, address, chain, 300, "", refresh)
	if err != nil {
		return nil, false, err
	}

	daily := normalize.DailyAveragePrices(page.Trades)
	prediction := analytics.PredictPrice(daily)
	return &prediction, page.Simulated, nil
}

// knownFloorPrice peeks at the collection cache so synthesized trades hover
// around a floor the caller has already seen.
func (s *NFTService) knownFloorPrice(chainID, address string) float64 {
	if cached, found := s.cache.Get(fmt.Sprintf("nft_collection:%s:%s", chainID, address)); found {
		if entry, ok := cached.(collectionEntry); ok && entry.summary != nil {
			return entry.summary.FloorPrice
		}
	}
	return 0
}
