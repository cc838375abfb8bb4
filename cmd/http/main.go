package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/adapters/config"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/adapters/http"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/adapters/http/controllers"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/adapters/outbox"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/adapters/rabbitmq"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/adapters/redis"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/adapters/storage/file"
	storemongo "github.com/pcremoremo-crypto/smoke-oasis-shop/internal/adapters/storage/mongo"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/domain"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/logger"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/port"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/service"
)

// @title       Smoke Oasis Shop API
// @version     1.0
// @description Storefront catalog, order intake and dashboard API

// @host     localhost:3001
// @BasePath /

//go:generate swag init -d ../.. -g cmd/http/main.go -o ../../docs --parseInternal

func main() {
	// initialize config and logger
	cfg := config.NewConfig()
	if err := logger.Initialize(cfg.Logger.Endpoint, cfg.Logger.ServiceName, cfg.Logger.IsProduction); err != nil {
		// logger not available yet, fall back to stderr
		fmt.Println("failed to initialize logger: " + err.Error())
		os.Exit(1)
	}

	// cancellable context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// initialize the snapshot store
	var (
		store      port.SnapshotStore
		outboxRepo outbox.Repository
		storeCheck controllers.HealthChecker
	)
	switch cfg.Store.Driver {
	case config.StoreDriverMongo:
		mongoClient, err := storemongo.NewConnection(cfg.Mongo)
		if err != nil {
			logger.Fatal(ctx, "Failed to connect to MongoDB", err, nil)
		}
		defer storemongo.Disconnect(mongoClient)
		logger.Info(ctx, "Connected to MongoDB", map[string]any{"database": cfg.Mongo.Database})

		mongoStore := storemongo.NewStore(mongoClient.Database(cfg.Mongo.Database))
		store, outboxRepo = mongoStore, mongoStore
		storeCheck = controllers.HealthChecker{Name: "mongodb", Check: func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }}
	default:
		fileStore := file.NewStore(cfg.Store.Path)
		store, outboxRepo = fileStore, fileStore
		storeCheck = controllers.HealthChecker{Name: "store", Check: fileStore.Ping}
		logger.Info(ctx, "Using file-backed store", map[string]any{"path": cfg.Store.Path})
	}

	// initialize redis connection
	redisClient, err := redis.NewConnection(cfg.Redis)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to Redis", err, nil)
	}
	defer redisClient.Close()
	logger.Info(ctx, "Connected to Redis", nil)

	// initialize rabbitmq connection
	broker, err := rabbitmq.NewRabbitMQAdapter(cfg.RabbitMQ)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to RabbitMQ", err, nil)
	}
	defer broker.Close()
	logger.Info(ctx, "Connected to RabbitMQ", nil)

	// caches and rate limiter
	idempotencyCache := redis.NewCache[service.IdempotencyEntry[domain.Order]](redisClient, "idempotency-cache")
	rateLimiter := redis.NewRateLimiter(redisClient)

	// outbox handler (uses cancellable context)
	outboxHandler := outbox.NewHandler(outboxRepo, broker, cfg.Outbox)
	go outboxHandler.Start(ctx)
	logger.Info(ctx, "Outbox handler started", map[string]any{"interval": cfg.Outbox.Interval.String(), "batch_size": cfg.Outbox.BatchSize})

	// services
	idempotencyService := service.NewIdempotencyService(idempotencyCache, 15*time.Minute, 1*time.Second, 10*time.Second)
	catalogService := service.NewCatalogService(store)
	orderService := service.NewOrderService(store, idempotencyService)
	customerService := service.NewCustomerService(store)
	dashboardService := service.NewDashboardService(store)
	authService := service.NewAuthService(cfg.Auth.AdminUsername, cfg.Auth.AdminPassword, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// controllers
	images := controllers.NewImageSaver(cfg.Upload.Dir, cfg.Upload.PublicPath)
	authController := controllers.NewAuthController(authService)
	productController := controllers.NewProductController(catalogService, images)
	orderController := controllers.NewOrderController(orderService)
	customerController := controllers.NewCustomerController(customerService)
	dashboardController := controllers.NewDashboardController(dashboardService)
	healthController := controllers.NewHealthController([]controllers.HealthChecker{
		storeCheck,
		{Name: "redis", Check: func(ctx context.Context) error { return redisClient.Ping(ctx) }},
		{Name: "rabbitmq", Check: func(ctx context.Context) error { return broker.HealthCheck() }},
	})

	// router
	validateToken := func(token string) error {
		_, err := authService.ValidateToken(token)
		return err
	}
	router := http.NewRouter(
		healthController,
		authController,
		productController,
		orderController,
		customerController,
		dashboardController,
		rateLimiter,
		validateToken,
		cfg.Upload,
	)

	// graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info(ctx, "Received shutdown signal", map[string]interface{}{"signal": sig.String()})
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := logger.Shutdown(shutdownCtx); err != nil {
			fmt.Println("logger shutdown error: " + err.Error())
		}
	}()

	logger.Info(ctx, "Starting HTTP server", map[string]any{"addr": cfg.HTTP.BindInterface + ":" + cfg.HTTP.Port})
	err = router.ListenAndServe(ctx, cfg.HTTP)
	if err != nil {
		logger.Fatal(ctx, "Failed to start HTTP server", err, nil)
	}
}
