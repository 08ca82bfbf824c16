package main

import (
	"time"

	"subscription-plans/config"
	"subscription-plans/database"
	authapi "subscription-plans/internal/api/auth"
	plansapi "subscription-plans/internal/api/plans"
	routes "subscription-plans/internal/app/http"
	"subscription-plans/internal/app/http/middleware"
	"subscription-plans/internal/authz"
	"subscription-plans/internal/domain/plans"
	"subscription-plans/internal/domain/users"
	"subscription-plans/internal/infra/stripe"
	"subscription-plans/internal/logging"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	log := logging.New(config.LOG_LEVEL)
	database.InitDB(log)

	userStore := users.NewStore(database.DB)
	planService := plans.NewService(plans.NewStore(database.DB), authz.NewGate(userStore), log)

	var prices plans.PriceSource
	if src := stripe.NewPriceSource(config.STRIPE_SECRET_KEY, config.STRIPE_PRODUCT_ID); src != nil {
		prices = src
	} else {
		log.Warn("STRIPE_SECRET_KEY not set, plan sync disabled")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := middleware.NewHTTPMetrics(reg)

	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestLogger(log), httpMetrics.Middleware())

	// ✅ Add CORS middleware BEFORE registering routes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: config.CORS_ORIGIN != "*",
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Dependencies{
		Plans:     plansapi.NewHandler(planService, prices),
		Auth:      authapi.NewHandler(userStore, config.JWT_SECRET),
		JWTSecret: config.JWT_SECRET,
		Gatherer:  reg,
	})

	if err := r.Run(":" + config.PORT); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
