package api

import (
	"errors"
	"net/http"
	"strconv"

	"chainlens/internal/client"
	"chainlens/internal/entity"
	"chainlens/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NFTHandler serves the NFT market routes.
type NFTHandler struct {
	nftSvc *service.NFTService
	logger *zap.Logger
}

// NewNFTHandler creates a new NFTHandler.
func NewNFTHandler(ns *service.NFTService, logger *zap.Logger) *NFTHandler {
	return &NFTHandler{nftSvc: ns, logger: logger.Named("NFTHandler")}
}

// trendingResponse wraps the trending listing with the simulated marker.
type trendingResponse struct {
	Collections []entity.NFTCollectionSummary `json:"collections"`
	Simulated   bool                          `json:"simulated,omitempty"`
}

// GetTrending handles GET /api/nft/trending?chain=&limit=&refresh=.
func (h *NFTHandler) GetTrending(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	collections, simulated, err := h.nftSvc.GetTrending(c.Request.Context(), c.Query("chain"), limit, c.Query("refresh") == "true")
	if err != nil {
		h.writeServiceError(c, "trending collections", err)
		return
	}
	c.JSON(http.StatusOK, trendingResponse{Collections: collections, Simulated: simulated})
}

// collectionResponse wraps one collection with the simulated marker.
type collectionResponse struct {
	Collection *entity.NFTCollectionSummary `json:"collection"`
	Simulated  bool                         `json:"simulated,omitempty"`
}

// GetCollection handles GET /api/nft/collection?address=&chain=&refresh=.
func (h *NFTHandler) GetCollection(c *gin.Context) {
	address, ok := requireAddress(c)
	if !ok {
		return
	}
	summary, simulated, err := h.nftSvc.GetCollection(c.Request.Context(), address, c.Query("chain"), c.Query("refresh") == "true")
	if err != nil {
		h.writeServiceError(c, "collection summary", err)
		return
	}
	c.JSON(http.StatusOK, collectionResponse{Collection: summary, Simulated: simulated})
}

// GetAsset handles GET /api/nft/asset?address=&tokenId=&chain=. This is the
// only route that can answer 404.
func (h *NFTHandler) GetAsset(c *gin.Context) {
	address, ok := requireAddress(c)
	if !ok {
		return
	}
	tokenID := c.Query("tokenId")
	if tokenID == "" {
		writeError(c, http.StatusBadRequest, "tokenId parameter is required")
		return
	}

	asset, err := h.nftSvc.GetAsset(c.Request.Context(), address, tokenID, c.Query("chain"), c.Query("refresh") == "true")
	if err != nil {
		if errors.Is(err, service.ErrAssetNotFound) {
			writeError(c, http.StatusNotFound, "NFT asset not found", address+"/"+tokenID)
			return
		}
		h.writeServiceError(c, "NFT asset", err)
		return
	}
	c.JSON(http.StatusOK, asset)
}

// GetTrades handles GET /api/nft/trades?address=&chain=&limit=&cursor=&refresh=.
func (h *NFTHandler) GetTrades(c *gin.Context) {
	address, ok := requireAddress(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	page, err := h.nftSvc.GetTrades(c.Request.Context(), address, c.Query("chain"), limit, c.Query("cursor"), c.Query("refresh") == "true")
	if err != nil {
		h.writeServiceError(c, "trade history", err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// predictionResponse wraps a prediction with the simulated marker.
type predictionResponse struct {
	Prediction *entity.PricePrediction `json:"prediction"`
	Simulated  bool                    `json:"simulated,omitempty"`
}

// GetPrediction handles GET /api/nft/prediction?address=&chain=&refresh=.
func (h *NFTHandler) GetPrediction(c *gin.Context) {
	address, ok := requireAddress(c)
	if !ok {
		return
	}
	prediction, simulated, err := h.nftSvc.GetPrediction(c.Request.Context(), address, c.Query("chain"), c.Query("refresh") == "true")
	if err != nil {
		h.writeServiceError(c, "price prediction", err)
		return
	}
	c.JSON(http.StatusOK, predictionResponse{Prediction: prediction, Simulated: simulated})
}

func (h *NFTHandler) writeServiceError(c *gin.Context, route string, err error) {
	if errors.Is(err, client.ErrNotConfigured) {
		writeError(c, http.StatusInternalServerError, "blockchain indexer is not configured", "set INDEXER_API_KEY")
		return
	}
	h.logger.Error("Request failed", zap.String("route", route), zap.Error(err))
	writeError(c, http.StatusInternalServerError, "failed to build "+route)
}
