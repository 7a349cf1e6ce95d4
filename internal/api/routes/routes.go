package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/loopcard/loop_service/internal/api/handlers"
	"github.com/loopcard/loop_service/internal/api/middleware"
	"github.com/loopcard/loop_service/internal/infrastructure/config"
	"github.com/loopcard/loop_service/pkg/logger"
)

// Handlers groups the handler sets registered on the router.
type Handlers struct {
	Core    *handlers.CoreHandlers
	Users   *handlers.UserHandlers
	Iframes *handlers.IframeHandlers
	Wallets *handlers.WalletHandlers
	Cards   *handlers.CardHandlers
}

// Setup builds the gin engine with the full middleware chain and all
// routes registered.
func Setup(cfg *config.Config, log *logger.Logger, h Handlers) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(middleware.RequestSizeLimit())

	router.GET("/health", h.Core.Health)
	router.GET("/metrics", h.Core.Metrics)

	v1 := router.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("", h.Users.CreateUser)
			users.GET("/:id", h.Users.GetUser)
			users.PUT("/:id/email", h.Users.UpdateEmail)
			users.POST("/:id/gateways/:gatewayId/connect", h.Users.ConnectGateway)
			users.GET("/:id/wallets/:walletId", h.Wallets.GetWallet)
		}

		v1.GET("/iframe/:kind/url", h.Iframes.GetIframeURL)

		wallets := v1.Group("/wallets")
		{
			wallets.POST("", h.Wallets.CreateWallet)
			wallets.GET("/:walletId/balance", h.Wallets.GetWalletBalance)
		}

		v1.POST("/transactions", h.Wallets.CreateTransaction)
		v1.GET("/vaults", h.Wallets.GetVaults)
		v1.GET("/rates", h.Wallets.GetRates)

		cards := v1.Group("/cards")
		{
			cards.GET("/products", h.Cards.GetProducts)
			cards.POST("/customers", h.Cards.CreateCustomer)
			cards.GET("/customers/:id/cards", h.Cards.GetCustomerCards)
			cards.POST("/details", h.Cards.GetCardDetails)
		}
	}

	return router
}
