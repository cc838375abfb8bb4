package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/adapters/config"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/adapters/http/controllers"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/adapters/http/middleware"
)

type Router struct {
	healthController    *controllers.HealthController
	authController      *controllers.AuthController
	productController   *controllers.ProductController
	orderController     *controllers.OrderController
	customerController  *controllers.CustomerController
	dashboardController *controllers.DashboardController
	rateLimiter         middleware.RateLimiter
	validateToken       middleware.ValidateTokenFunc
	upload              config.UploadConfig
}

func NewRouter(
	healthController *controllers.HealthController,
	authController *controllers.AuthController,
	productController *controllers.ProductController,
	orderController *controllers.OrderController,
	customerController *controllers.CustomerController,
	dashboardController *controllers.DashboardController,
	rateLimiter middleware.RateLimiter,
	validateToken middleware.ValidateTokenFunc,
	upload config.UploadConfig,
) *Router {
	return &Router{
		healthController:    healthController,
		authController:      authController,
		productController:   productController,
		orderController:     orderController,
		customerController:  customerController,
		dashboardController: dashboardController,
		rateLimiter:         rateLimiter,
		validateToken:       validateToken,
		upload:              upload,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	router.Static(r.upload.PublicPath, r.upload.Dir)

	apiGroup := router.Group("/api")
	v1Group := apiGroup.Group("/v1")
	{
		v1Group.Use(middleware.LogRequest())
		v1Group.GET("/health", r.healthController.Health)

		v1Group.POST("/login", r.authController.Login)

		v1Group.GET("/products", r.productController.GetAll)
		v1Group.GET("/products/:id", r.productController.GetByID)

		v1Group.POST("/orders", middleware.RateLimit(r.rateLimiter, 15, 1*time.Minute), r.orderController.PlaceOrder)

		adminGroup := v1Group.Group("")
		adminGroup.Use(middleware.RequireAuth(r.validateToken))
		{
			adminGroup.POST("/products", r.productController.CreateProduct)
			adminGroup.PUT("/products/:id", r.productController.UpdateProduct)
			adminGroup.DELETE("/products/:id", r.productController.DeleteProduct)

			adminGroup.GET("/orders", r.orderController.GetAll)
			adminGroup.GET("/customers", r.customerController.GetAll)
			adminGroup.GET("/dashboard", r.dashboardController.Summary)
		}
	}
}

func (r *Router) ListenAndServe(ctx context.Context, config config.HTTPConfig) error {
	engine := gin.Default()
	r.SetupRoutes(engine)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", config.BindInterface, config.Port),
		Handler: engine,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
