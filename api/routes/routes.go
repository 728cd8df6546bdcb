package routes

import (
	"github.com/P-CIV/ecocycle-sub001/internal/config"
	"github.com/P-CIV/ecocycle-sub001/internal/handlers"
	"github.com/P-CIV/ecocycle-sub001/internal/middleware"
	"github.com/P-CIV/ecocycle-sub001/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HandlerDependencies groups the handlers wired by main
type HandlerDependencies struct {
	AuthHandler     *handlers.AuthHandler
	AgentHandler    *handlers.AgentHandler
	CollecteHandler *handlers.CollecteHandler
	TokenHandler    *handlers.TokenHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, tokens *jwt.TokenService, log *logrus.Logger, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(log))

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
		}
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(tokens))
	{
		agents := protected.Group("/agents")
		{
			agents.GET("", deps.AgentHandler.GetAllAgents)
			agents.GET("/count", deps.AgentHandler.GetAgentCount)
			agents.GET("/:uid", deps.AgentHandler.GetAgentByID)
			agents.GET("/:uid/statistiques", deps.AgentHandler.GetAgentStats)
			agents.POST("", middleware.RequireRole("admin"), deps.AgentHandler.ProvisionAgent)
		}

		collectes := protected.Group("/collectes")
		{
			collectes.GET("/count", deps.CollecteHandler.GetCollecteCount)
			collectes.GET("/agent/:uid", deps.CollecteHandler.GetCollectesByAgent)
			collectes.GET("/status/:status", deps.CollecteHandler.GetCollectesByStatus)
			collectes.GET("/:id", deps.CollecteHandler.GetCollecteByID)
			collectes.POST("", deps.CollecteHandler.CreateCollecte)
			collectes.POST("/:id/process", middleware.RequireRole("admin"), deps.CollecteHandler.ProcessCollecte)
		}

		redeemTokens := protected.Group("/tokens")
		{
			redeemTokens.POST("", middleware.RequireRole("admin"), deps.TokenHandler.CreateToken)
			redeemTokens.POST("/redeem", deps.TokenHandler.RedeemToken)
		}
	}

	return router
}
