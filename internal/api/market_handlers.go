package api

import (
	"net/http"
	"strconv"

	"chainlens/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MarketHandler serves the market-data routes. These never need the indexer
// key; their only failure mode is a 500 when even synthesis blows up.
type MarketHandler struct {
	marketSvc *service.MarketService
	logger    *zap.Logger
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(ms *service.MarketService, logger *zap.Logger) *MarketHandler {
	return &MarketHandler{marketSvc: ms, logger: logger.Named("MarketHandler")}
}

// GetSentiment handles GET /api/market/sentiment?refresh=.
func (h *MarketHandler) GetSentiment(c *gin.Context) {
	sentiment, err := h.marketSvc.GetSentiment(c.Request.Context(), c.Query("refresh") == "true")
	if err != nil {
		h.logger.Error("Request failed", zap.String("route", "market sentiment"), zap.Error(err))
		writeError(c, http.StatusInternalServerError, "failed to build market sentiment")
		return
	}
	c.JSON(http.StatusOK, sentiment)
}

// GetHistory handles GET /api/market/history?coin=&days=&refresh=.
func (h *MarketHandler) GetHistory(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	history, err := h.marketSvc.GetCoinHistory(
		c.Request.Context(),
		c.Query("coin"),
		days,
		c.Query("refresh") == "true",
	)
	if err != nil {
		h.logger.Error("Request failed", zap.String("route", "market history"), zap.Error(err))
		writeError(c, http.StatusInternalServerError, "failed to build market history")
		return
	}
	c.JSON(http.StatusOK, history)
}
