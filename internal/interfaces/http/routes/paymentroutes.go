package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/faturo-inc/faturo/internal/interfaces/http/handlers"
)

// PaymentRouteConfig holds dependencies for payment routes.
type PaymentRouteConfig struct {
	PaymentHandler *handlers.PaymentHandler
	WebhookHandler *handlers.WebhookHandler
}

// SetupPaymentRoutes configures payment routes. The webhook endpoint is the
// provider-facing surface; everything else is internal history.
func SetupPaymentRoutes(engine *gin.Engine, cfg *PaymentRouteConfig) {
	payments := engine.Group("/payments")
	{
		payments.GET("/:sid/logs", cfg.PaymentHandler.ListPaymentLogs)
	}

	webhooks := engine.Group("/webhooks")
	{
		webhooks.POST("/gateway", cfg.WebhookHandler.HandleGatewayWebhook)
	}
}
