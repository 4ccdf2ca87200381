package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	authapp "github.com/prostore/storefront/internal/auth/application"
	authgateway "github.com/prostore/storefront/internal/auth/infrastructure/gateway"
	authredis "github.com/prostore/storefront/internal/auth/infrastructure/persistence/redis"
	authhttp "github.com/prostore/storefront/internal/auth/interfaces/http"
	cartapp "github.com/prostore/storefront/internal/cart/application"
	cartdomain "github.com/prostore/storefront/internal/cart/domain"
	cartgateway "github.com/prostore/storefront/internal/cart/infrastructure/gateway"
	cartmysql "github.com/prostore/storefront/internal/cart/infrastructure/persistence/mysql"
	carthttp "github.com/prostore/storefront/internal/cart/interfaces/http"
	catalogapp "github.com/prostore/storefront/internal/catalog/application"
	catalogdomain "github.com/prostore/storefront/internal/catalog/domain"
	catalogcache "github.com/prostore/storefront/internal/catalog/infrastructure/cache"
	catalogmysql "github.com/prostore/storefront/internal/catalog/infrastructure/persistence/mysql"
	cataloghttp "github.com/prostore/storefront/internal/catalog/interfaces/http"
	orderapp "github.com/prostore/storefront/internal/order/application"
	orderdomain "github.com/prostore/storefront/internal/order/domain"
	ordergateway "github.com/prostore/storefront/internal/order/infrastructure/gateway"
	orderpayment "github.com/prostore/storefront/internal/order/infrastructure/payment"
	ordermysql "github.com/prostore/storefront/internal/order/infrastructure/persistence/mysql"
	orderhttp "github.com/prostore/storefront/internal/order/interfaces/http"
	reviewapp "github.com/prostore/storefront/internal/review/application"
	reviewdomain "github.com/prostore/storefront/internal/review/domain"
	reviewgateway "github.com/prostore/storefront/internal/review/infrastructure/gateway"
	reviewmysql "github.com/prostore/storefront/internal/review/infrastructure/persistence/mysql"
	reviewhttp "github.com/prostore/storefront/internal/review/interfaces/http"
	userapp "github.com/prostore/storefront/internal/user/application"
	userdomain "github.com/prostore/storefront/internal/user/domain"
	usermysql "github.com/prostore/storefront/internal/user/infrastructure/persistence/mysql"
	userhttp "github.com/prostore/storefront/internal/user/interfaces/http"

	"github.com/prostore/storefront/pkg/cache"
	"github.com/prostore/storefront/pkg/config"
	pkgdb "github.com/prostore/storefront/pkg/db"
	"github.com/prostore/storefront/pkg/logger"
	"github.com/prostore/storefront/pkg/metrics"
	"github.com/prostore/storefront/pkg/middleware"
	"github.com/prostore/storefront/pkg/mq"
	"github.com/prostore/storefront/pkg/ratelimit"
)

func main() {
	configPath := flag.String("config", "configs/config.toml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	logger.Info(ctx, "Starting storefront service",
		"version", cfg.Version, "environment", cfg.Environment)

	// 数据库
	db, err := pkgdb.Init(pkgdb.Config{
		Driver:             cfg.Database.Driver,
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	})
	if err != nil {
		logger.Fatal(ctx, "Failed to init database", "error", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(
		&catalogdomain.Product{},
		&cartdomain.Cart{},
		&cartdomain.CartItem{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
		&userdomain.User{},
		&reviewdomain.Review{},
	); err != nil {
		logger.Fatal(ctx, "Failed to migrate database", "error", err)
	}

	// Redis
	redisCache, err := cache.New(cache.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxPoolSize:  cfg.Redis.MaxPoolSize,
		ConnTimeout:  cfg.Redis.ConnTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		logger.Fatal(ctx, "Failed to init Redis", "error", err)
	}
	defer redisCache.Close()

	// Kafka 事件发布，未启用时各服务跳过发布
	var producer *mq.KafkaProducer
	if cfg.Kafka.Enabled {
		producer, err = mq.NewProducer(mq.Config{
			Brokers:      cfg.Kafka.Brokers,
			MaxRetries:   cfg.Kafka.MaxRetries,
			RetryBackoff: cfg.Kafka.RetryBackoff,
		})
		if err != nil {
			logger.Fatal(ctx, "Failed to init Kafka producer", "error", err)
		}
		defer producer.Close()
	}
	var catalogPublisher catalogdomain.EventPublisher
	var cartPublisher cartdomain.EventPublisher
	var orderPublisher orderdomain.EventPublisher
	var userPublisher userdomain.EventPublisher
	if producer != nil {
		catalogPublisher = producer
		cartPublisher = producer
		orderPublisher = producer
		userPublisher = producer
	}

	// 指标
	m := metrics.New("storefront")
	if cfg.Metrics.Enabled {
		if err := m.Register(); err != nil {
			logger.Fatal(ctx, "Failed to register metrics", "error", err)
		}
		if err := metrics.StartHTTPServer(cfg.Metrics.Port, cfg.Metrics.Path); err != nil {
			logger.Fatal(ctx, "Failed to start metrics server", "error", err)
		}
	}

	// 商品目录
	productRepo := catalogmysql.NewProductRepository(db.DB)
	productCache := catalogcache.NewProductCache(redisCache, time.Duration(cfg.App.ProductCacheTTL)*time.Second)
	catalogService := catalogapp.NewCatalogApplicationService(productRepo, productCache, catalogPublisher)

	// 购物车
	cartRepo := cartmysql.NewCartRepository(db.DB)
	cartService := cartapp.NewCartApplicationService(
		cartapp.NewCartCommandService(cartRepo, cartgateway.NewCatalogGateway(catalogService, productCache), db, cartPublisher),
		cartapp.NewCartQueryService(cartRepo),
	)

	// 用户
	userRepo := usermysql.NewUserRepository(db.DB)
	userService := userapp.NewUserApplicationService(userRepo, cfg.Payment.Methods, userPublisher)

	// 认证
	sessionRepo := authredis.NewSessionRepository(redisCache)
	authService := authapp.NewAuthApplicationService(
		authgateway.NewUserGateway(userService),
		sessionRepo,
		cartService.CartCommandService,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.SessionTTL)*time.Hour,
	)

	// 订单与支付
	orderRepo := ordermysql.NewOrderRepository(db.DB)
	paypalClient := orderpayment.NewPayPalClient(orderpayment.PayPalConfig{
		APIBase:      cfg.Payment.PayPal.APIBase,
		ClientID:     cfg.Payment.PayPal.ClientID,
		ClientSecret: cfg.Payment.PayPal.Secret,
	})
	stripeClient := orderpayment.NewStripeClient(orderpayment.StripeConfig{
		APIBase:   cfg.Payment.Stripe.APIBase,
		SecretKey: cfg.Payment.Stripe.SecretKey,
	})
	orderUsers := ordergateway.NewUserGateway(userService)
	orderCatalog := ordergateway.NewCatalogGateway(productRepo)
	orderService := orderapp.NewOrderApplicationService(
		orderapp.NewOrderCommandService(
			orderRepo,
			ordergateway.NewCartGateway(cartRepo),
			orderUsers,
			orderCatalog,
			paypalClient,
			stripeClient,
			db,
			orderPublisher,
		),
		orderapp.NewOrderQueryService(orderRepo, orderUsers, orderCatalog),
	)

	// 评价
	reviewRepo := reviewmysql.NewReviewRepository(db.DB)
	reviewService := reviewapp.NewReviewApplicationService(
		reviewRepo,
		reviewgateway.NewCatalogGateway(productRepo, productCache),
		reviewgateway.NewPurchaseChecker(orderRepo),
		reviewgateway.NewUserGateway(userService),
		db,
	)

	// HTTP 处理器
	catalogHandler := cataloghttp.NewCatalogHandler(catalogService, cfg.App.LatestProductsLimit, cfg.App.PageSize)
	cartHandler := carthttp.NewCartHandler(cartService, m)
	authHandler := authhttp.NewAuthHandler(authService, cfg.Auth.SessionTTL*3600)
	userHandler := userhttp.NewUserHandler(userService, cfg.App.PageSize)
	orderHandler := orderhttp.NewOrderHandler(orderService, m, cfg.App.PageSize)
	reviewHandler := reviewhttp.NewReviewHandler(reviewService, cfg.App.PageSize)

	router := buildRouter(cfg, m, redisCache, authService,
		catalogHandler, cartHandler, authHandler, userHandler, orderHandler, reviewHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info(ctx, "HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "HTTP server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "Shutting down storefront service")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Server forced to shutdown", "error", err)
	}
	logger.Info(ctx, "Server exited")
}

func buildRouter(
	cfg *config.Config,
	m *metrics.Metrics,
	redisCache *cache.RedisCache,
	authService *authapp.AuthApplicationService,
	catalogHandler *cataloghttp.CatalogHandler,
	cartHandler *carthttp.CartHandler,
	authHandler *authhttp.AuthHandler,
	userHandler *userhttp.UserHandler,
	orderHandler *orderhttp.OrderHandler,
	reviewHandler *reviewhttp.ReviewHandler,
) *gin.Engine {
	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.GinRecoveryMiddleware())
	router.Use(middleware.GinLoggingMiddleware())
	router.Use(middleware.GinCORSMiddleware())
	router.Use(middleware.GinMetricsMiddleware(m))

	limiter := ratelimit.NewRedisRateLimiter(redisCache.GetClient())
	router.Use(middleware.GinRateLimitMiddleware(limiter, 100, time.Minute))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.ServiceName})
	})

	api := router.Group("/api/v1")
	api.Use(authhttp.IdentityMiddleware(authService))

	// 公开路由
	catalogHandler.RegisterRoutes(api)
	cartHandler.RegisterRoutes(api)
	authHandler.RegisterRoutes(api)
	reviewHandler.RegisterRoutes(api)
	orderHandler.RegisterWebhookRoutes(api)

	// 需登录路由
	authed := api.Group("")
	authed.Use(authhttp.RequireAuth())
	userHandler.RegisterRoutes(authed)
	orderHandler.RegisterRoutes(authed)
	reviewHandler.RegisterAuthedRoutes(authed)

	// 管理端路由
	admin := api.Group("/admin")
	admin.Use(authhttp.RequireAdmin())
	catalogHandler.RegisterAdminRoutes(admin)
	userHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterAdminRoutes(admin)

	return router
}
