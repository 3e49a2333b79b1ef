package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/faturo-inc/faturo/internal/interfaces/http/handlers"
)

// PlanRouteConfig holds dependencies for plan routes.
type PlanRouteConfig struct {
	PlanHandler *handlers.PlanHandler
}

// SetupPlanRoutes configures subscription plan routes.
func SetupPlanRoutes(engine *gin.Engine, cfg *PlanRouteConfig) {
	plans := engine.Group("/plans")
	{
		plans.POST("", cfg.PlanHandler.CreatePlan)
		plans.GET("", cfg.PlanHandler.ListPlans)
		plans.GET("/:sid", cfg.PlanHandler.GetPlan)
		plans.PUT("/:sid", cfg.PlanHandler.UpdatePlan)
	}
}
