package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/faturo-inc/faturo/internal/infrastructure/config"
	"github.com/faturo-inc/faturo/internal/interfaces/http/handlers"
	"github.com/faturo-inc/faturo/internal/interfaces/http/middleware"
	"github.com/faturo-inc/faturo/internal/interfaces/http/routes"
	"github.com/faturo-inc/faturo/internal/shared/logger"
)

// Router wires handlers into the gin engine.
type Router struct {
	engine              *gin.Engine
	subscriptionHandler *handlers.SubscriptionHandler
	planHandler         *handlers.PlanHandler
	paymentHandler      *handlers.PaymentHandler
	webhookHandler      *handlers.WebhookHandler
	logger              logger.Interface
}

func NewRouter(
	subscriptionHandler *handlers.SubscriptionHandler,
	planHandler *handlers.PlanHandler,
	paymentHandler *handlers.PaymentHandler,
	webhookHandler *handlers.WebhookHandler,
	log logger.Interface,
) *Router {
	return &Router{
		engine:              gin.New(),
		subscriptionHandler: subscriptionHandler,
		planHandler:         planHandler,
		paymentHandler:      paymentHandler,
		webhookHandler:      webhookHandler,
		logger:              log,
	}
}

// SetupRoutes configures middleware and all HTTP routes.
func (r *Router) SetupRoutes(cfg *config.Config) {
	gin.SetMode(ginMode(cfg.Server.Mode))

	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery(r.logger))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "faturo",
		})
	})

	routes.SetupSubscriptionRoutes(r.engine, &routes.SubscriptionRouteConfig{
		SubscriptionHandler: r.subscriptionHandler,
		PaymentHandler:      r.paymentHandler,
	})
	routes.SetupPlanRoutes(r.engine, &routes.PlanRouteConfig{
		PlanHandler: r.planHandler,
	})
	routes.SetupPaymentRoutes(r.engine, &routes.PaymentRouteConfig{
		PaymentHandler: r.paymentHandler,
		WebhookHandler: r.webhookHandler,
	})
}

// Engine exposes the underlying gin engine for the HTTP server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func ginMode(mode string) string {
	switch mode {
	case "release", "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
