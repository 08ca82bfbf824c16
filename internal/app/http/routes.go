package routes

import (
	authapi "subscription-plans/internal/api/auth"
	plansapi "subscription-plans/internal/api/plans"
	"subscription-plans/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Dependencies struct {
	Plans     *plansapi.Handler
	Auth      *authapi.Handler
	JWTSecret string
	Gatherer  prometheus.Gatherer
}

func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// ✅ Sanitize JSON bodies on every route that accepts one
	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())
	public.POST("/register", deps.Auth.Register)
	public.POST("/login", deps.Auth.Login)

	// Authenticated; admin checks happen inside the plan service
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(deps.JWTSecret), middleware.SanitizeAndCleanInputMiddleware())
	auth.GET("/plans", deps.Plans.ListPlans)
	auth.POST("/plans", deps.Plans.CreatePlan)
	auth.GET("/plans/prorated-upgrade-price", deps.Plans.GetProratedUpgradePrice)
	auth.GET("/plans/:id", deps.Plans.GetPlan)
	auth.PUT("/plans/:id", deps.Plans.UpdatePlan)

	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(deps.JWTSecret))
	admin.POST("/plans/sync", deps.Plans.SyncPlansFromStripe)
}
