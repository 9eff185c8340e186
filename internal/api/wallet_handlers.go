package api

import (
	"errors"
	"net/http"
	"strconv"

	"chainlens/internal/client"
	"chainlens/internal/service"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WalletHandler serves the wallet-facing routes.
type WalletHandler struct {
	portfolioSvc *service.PortfolioService
	logger       *zap.Logger
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(ps *service.PortfolioService, logger *zap.Logger) *WalletHandler {
	return &WalletHandler{portfolioSvc: ps, logger: logger.Named("WalletHandler")}
}

// GetTokens handles GET /api/wallet/tokens?address=&chain=&refresh=.
func (h *WalletHandler) GetTokens(c *gin.Context) {
	address, ok := requireAddress(c)
	if !ok {
		return
	}

	summary, err := h.portfolioSvc.GetPortfolio(
		c.Request.Context(),
		address,
		c.Query("chain"),
		c.Query("refresh") == "true",
	)
	if err != nil {
		h.writeServiceError(c, "wallet tokens", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetHistory handles GET /api/wallet/history?address=&chain=&months=.
func (h *WalletHandler) GetHistory(c *gin.Context) {
	address, ok := requireAddress(c)
	if !ok {
		return
	}

	months, _ := strconv.Atoi(c.DefaultQuery("months", "6"))
	history, err := h.portfolioSvc.GetHistory(
		c.Request.Context(),
		address,
		c.Query("chain"),
		months,
		c.Query("refresh") == "true",
	)
	if err != nil {
		h.writeServiceError(c, "wallet history", err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *WalletHandler) writeServiceError(c *gin.Context, route string, err error) {
	if errors.Is(err, client.ErrNotConfigured) {
		writeError(c, http.StatusInternalServerError, "blockchain indexer is not configured", "set INDEXER_API_KEY")
		return
	}
	h.logger.Error("Request failed", zap.String("route", route), zap.Error(err))
	writeError(c, http.StatusInternalServerError, "failed to build "+route)
}

// requireAddress validates the address query param. A missing or malformed
// address is a caller bug, answered with 400 and never retried upstream.
func requireAddress(c *gin.Context) (string, bool) {
	address := c.Query("address")
	if address == "" {
		writeError(c, http.StatusBadRequest, "address parameter is required")
		return "", false
	}
	if !common.IsHexAddress(address) {
		writeError(c, http.StatusBadRequest, "address is not a valid hex address", address)
		return "", false
	}
	return address, true
}
