package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sareecustoms/storefront-api/audit"
	"github.com/sareecustoms/storefront-api/blob"
	"github.com/sareecustoms/storefront-api/cache"
	"github.com/sareecustoms/storefront-api/cart"
	"github.com/sareecustoms/storefront-api/controllers"
	"github.com/sareecustoms/storefront-api/initializers"
	"github.com/sareecustoms/storefront-api/middlewares"
	"github.com/sareecustoms/storefront-api/repositories"
	"github.com/sareecustoms/storefront-api/routes"
	"github.com/sareecustoms/storefront-api/utils"
)

func init() {
	// Prices travel as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

func main() {
	cfg, err := initializers.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	log, err := initializers.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("Server stopped", zap.Error(err))
	}
}

func run(cfg *initializers.Config, log *zap.Logger) error {
	ctx := context.Background()

	policy, err := cart.ParseStockPolicy(cfg.Cart.StockPolicy)
	if err != nil {
		return err
	}

	var repos *repositories.Repositories
	if cfg.DegradedMode {
		repos = repositories.NewPlaceholderRepositories()
		log.Warn("Running in degraded mode with placeholder catalog")
	} else {
		db, err := initializers.ConnectToDB(&cfg.MySQL, log)
		if err != nil {
			return err
		}
		if err := initializers.SyncDatabase(db, log); err != nil {
			return err
		}
		repos = repositories.NewGormRepositories(db)
	}

	deps := controllers.Deps{
		Repos:       repos,
		StockPolicy: policy,
		Degraded:    cfg.DegradedMode,
		ExposeStack: cfg.Server.ExposeStack,
		Logger:      log,
	}

	if cfg.Redis.Enabled {
		rdb, err := initializers.ConnectToRedis(ctx, &cfg.Redis)
		if err != nil {
			return err
		}
		defer rdb.Close()
		deps.Cache = cache.NewRedisCache(rdb, cfg.Cache.TTL)
		deps.Carts = cart.NewRedisSessions(rdb, cfg.Cart.SessionTTL)
	} else {
		memCache := cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
		defer memCache.Close()
		deps.Cache = memCache
		deps.Carts = cart.NewMemorySessions()
	}

	if cfg.Mongo.Enabled {
		auditLog, err := audit.NewMongoLog(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
		if err != nil {
			return err
		}
		defer auditLog.Close(ctx)
		deps.Audit = auditLog
	}

	if cfg.Storage.Bucket != "" {
		store, err := blob.NewS3Store(ctx, blob.S3Options{
			Bucket:        cfg.Storage.Bucket,
			Region:        cfg.Storage.Region,
			Endpoint:      cfg.Storage.Endpoint,
			PublicBaseURL: cfg.Storage.PublicBaseURL,
		})
		if err != nil {
			return err
		}
		deps.Blobs = store
	} else {
		log.Info("No storage bucket configured, serving placeholder images")
		deps.Blobs = blob.Placeholder{URL: cfg.Storage.PlaceholderURL}
	}

	if cfg.Mail.Enabled() {
		notifier := utils.NewMailNotifier(utils.NewMailer(utils.SMTPSettings{
			From:     cfg.Mail.From,
			Password: cfg.Mail.Password,
			Host:     cfg.Mail.SMTPHost,
			Address:  cfg.Mail.SMTPAddress,
		}), cfg.Mail.NotifyTo, log)
		defer notifier.Wait()
		deps.Notifier = notifier
	}

	gin.SetMode(cfg.Server.Mode)
	server := gin.New()
	server.Use(middlewares.Recovery(log, cfg.Server.ExposeStack), middlewares.RequestLogger(log))
	server.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", controllers.CartSessionHeader},
		ExposeHeaders:    []string{"Content-Length", "ETag"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	var admin []gin.HandlerFunc
	if cfg.Auth.JWTSecret != "" {
		admin = []gin.HandlerFunc{middlewares.RequireAuth(cfg.Auth.JWTSecret), middlewares.RequireAdmin(repos.Admins, log)}
	} else {
		log.Warn("JWT_SECRET is not set, admin routes are unprotected")
	}
	routes.Setup(server, controllers.New(deps), admin...)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("Starting server", zap.String("addr", addr), zap.Bool("degraded", cfg.DegradedMode))
	return server.Run(addr)
}
