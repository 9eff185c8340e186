package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all API routes onto the router.
func RegisterRoutes(router *gin.Engine, wallet *WalletHandler, nft *NFTHandler, market *MarketHandler) {
	api := router.Group("/api")
	{
		walletGroup := api.Group("/wallet")
		{
			walletGroup.GET("/tokens", wallet.GetTokens)
			walletGroup.GET("/history", wallet.GetHistory)
		}

		nftGroup := api.Group("/nft")
		{
			nftGroup.GET("/trending", nft.GetTrending)
			nftGroup.GET("/collection", nft.GetCollection)
			nftGroup.GET("/asset", nft.GetAsset)
			nftGroup.GET("/trades", nft.GetTrades)
			nftGroup.GET("/prediction", nft.GetPrediction)
		}

		marketGroup := api.Group("/market")
		{
			marketGroup.GET("/sentiment", market.GetSentiment)
			marketGroup.GET("/history", market.GetHistory)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
