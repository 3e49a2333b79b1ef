package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/faturo-inc/faturo/internal/interfaces/http/handlers"
)

// SubscriptionRouteConfig holds dependencies for subscription routes.
type SubscriptionRouteConfig struct {
	SubscriptionHandler *handlers.SubscriptionHandler
	PaymentHandler      *handlers.PaymentHandler
}

// SetupSubscriptionRoutes configures subscription routes.
func SetupSubscriptionRoutes(engine *gin.Engine, cfg *SubscriptionRouteConfig) {
	subscriptions := engine.Group("/subscriptions")
	{
		subscriptions.POST("", cfg.SubscriptionHandler.CreateSubscription)
		subscriptions.GET("/:sid", cfg.SubscriptionHandler.GetSubscription)
		subscriptions.PATCH("/:sid", cfg.SubscriptionHandler.UpdateSubscription)
		subscriptions.GET("/:sid/payments", cfg.PaymentHandler.ListPayments)
	}
}
