package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/schemes/internal/config"
	"github.com/gogotex/schemes/internal/database"
	"github.com/gogotex/schemes/internal/scheme/handler"
	"github.com/gogotex/schemes/internal/scheme/repository"
	"github.com/gogotex/schemes/internal/scheme/service"
	"github.com/gogotex/schemes/internal/scheme/store"
	"github.com/gogotex/schemes/pkg/logger"
	"github.com/gogotex/schemes/pkg/metrics"
	"github.com/gogotex/schemes/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

var startTime = time.Now()

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.Infow("config loaded",
		"level", logger.LevelString(),
		"store", cfg.Store.Driver,
		"debounce", cfg.Search.Debounce.String(),
		"font", cfg.UI.DefaultFont,
		"rateLimit", cfg.RateLimit.Enabled,
	)

	ctx := context.Background()
	st, closeStore, err := store.Open(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to open %s store: %v", cfg.Store.Driver, err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warnf("closing store: %v", err)
		}
	}()

	repo, err := repository.Open(ctx, st)
	if err != nil {
		logger.Fatalf("failed to load schemes: %v", err)
	}
	logger.Infof("loaded %d schemes from %s store", repo.Len(), st.Driver())

	font, err := service.ParseFont(cfg.UI.DefaultFont)
	if err != nil {
		logger.Fatalf("invalid default font: %v", err)
	}
	app := service.New(repo, service.WithDebounce(cfg.Search.Debounce), service.WithFont(font))
	defer app.Close()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.CORS(cfg.Server.CORSOrigins))

	var rdb *redis.Client
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && cfg.Redis.Addr() != "" {
			rdb, err = database.ConnectRedis(ctx, cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
			if err != nil {
				logger.Warnf("failed to connect to Redis (%s), using in-memory rate limiter: %v", cfg.Redis.Addr(), err)
				rdb = nil
			} else {
				defer rdb.Close()
			}
		}
		win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
		r.Use(middleware.WritesOnly(middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)))
		logger.Infof("rate limiter enabled: rps=%.2f burst=%d redis=%v", cfg.RateLimit.RPS, cfg.RateLimit.Burst, rdb != nil)
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: the configured store must answer a load
	r.GET("/ready", func(c *gin.Context) {
		rctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		deps := map[string]bool{"store": true}
		if _, _, err := st.Load(rctx); err != nil {
			logger.Warnf("readiness: %s store: %v", st.Driver(), err)
			deps["store"] = false
		}
		if rdb != nil {
			deps["redis"] = rdb.Ping(rctx).Err() == nil
		}
		for _, ok := range deps {
			if !ok {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": time.Since(startTime).String()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": time.Since(startTime).String()})
	})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handler.RegisterSchemeRoutes(r, app)
	handler.RegisterSwagger(r)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("scheme service listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}
