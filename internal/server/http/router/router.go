package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/thangnstse171771/cakestory-market/internal/server/http/handlers"
	"github.com/thangnstse171771/cakestory-market/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.MarketFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	complaintHandler := handlers.NewComplaintHandler(facade)
	quoteHandler := handlers.NewQuoteHandler(facade)
	challengeHandler := handlers.NewChallengeHandler(facade)
	shopHandler := handlers.NewShopHandler(facade)

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	priv := api.Group("")
	priv.Use(middleware.AuthRequired(facade))

	orders := priv.Group("/cake-orders")
	orders.POST("", orderHandler.Place)
	orders.GET("", orderHandler.List)
	orders.POST("/import", orderHandler.Import)
	orders.GET("/:id", orderHandler.Get)
	orders.GET("/:id/actions", orderHandler.Actions)
	orders.POST("/:id/transition", orderHandler.Transition)
	orders.POST("/:id/complaints", complaintHandler.File)
	orders.GET("/:id/complaints", complaintHandler.Get)

	quotes := priv.Group("/cake-quotes")
	quotes.POST("", quoteHandler.Create)
	quotes.GET("", quoteHandler.List)
	quotes.GET("/:id", quoteHandler.Get)
	quotes.POST("/:id/shop-quotes", quoteHandler.SubmitBid)

	bids := priv.Group("/shop-quotes")
	bids.POST("/:id/accept", quoteHandler.AcceptBid)
	bids.POST("/:id/order", quoteHandler.ConvertToOrder)

	challenges := priv.Group("/challenges")
	challenges.POST("", challengeHandler.Create)
	challenges.GET("", challengeHandler.List)
	challenges.GET("/:id", challengeHandler.Get)
	challenges.PUT("/:id", challengeHandler.Update)
	challenges.POST("/:id/approval", challengeHandler.SetApproval)
	challenges.POST("/:id/entries", challengeHandler.Join)
	challenges.DELETE("/:id/entries", challengeHandler.Leave)
	challenges.GET("/:id/entries", challengeHandler.Entries)
	challenges.GET("/:id/leaderboard", challengeHandler.Leaderboard)

	priv.POST("/shops", shopHandler.Create)
	priv.GET("/shops/:id/orders", orderHandler.ShopList)
	priv.GET("/users/:id/shop", shopHandler.ByUser)

	return engine
}
