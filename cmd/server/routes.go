package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"tripcover.backend/internal/interfaces/http/handlers"
	"tripcover.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	verificationHandler *handlers.VerificationHandler
	walletHandler       *handlers.WalletHandler
	adminHandler        *handlers.AdminHandler
	authMiddleware      gin.HandlerFunc
	adminMiddleware     gin.HandlerFunc
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerDocumentFiles serves the locally stored document blobs. In
// production this path is fronted by the CDN instead.
func registerDocumentFiles(r *gin.Engine, dir string) {
	r.Static("/files", dir)
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Verification routes (protected)
		verification := v1.Group("/verification")
		verification.Use(d.authMiddleware)
		{
			verification.POST("/documents", middleware.IdempotencyMiddleware(), d.verificationHandler.SubmitDocument)
			verification.GET("/status", d.verificationHandler.GetStatus)
		}

		// Wallet routes (protected)
		wallets := v1.Group("/wallets")
		wallets.Use(d.authMiddleware)
		{
			wallets.POST("", middleware.IdempotencyMiddleware(), d.walletHandler.CreateWallet)
			wallets.GET("", d.walletHandler.GetWallet)
			wallets.POST("/:id/change-requests", d.walletHandler.RequestChange)
			wallets.GET("/:id/change-requests", d.walletHandler.ListChangeRequests)
		}

		// Admin decision routes (admin key)
		admin := v1.Group("/admin")
		admin.Use(d.adminMiddleware)
		{
			admin.GET("/verifications", d.adminHandler.ListVerifications)
			admin.POST("/verifications/:principalId/decision", d.adminHandler.DecideVerification)
			admin.GET("/change-requests", d.adminHandler.ListChangeRequests)
			admin.POST("/change-requests/:id/decision", d.adminHandler.DecideChangeRequest)
		}
	}
}
