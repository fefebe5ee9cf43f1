package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"socialhub/cmd/app"
	"socialhub/internal/config"
	handlers "socialhub/internal/handler"
	"socialhub/internal/logger"
	"socialhub/internal/middleware"
	"socialhub/internal/ratelimit"
	"socialhub/internal/tracing"
)

func main() {
	cfg := config.LoadConfig()

	zlog, err := logger.New(cfg.LogLevel, cfg.Tracing.Environment)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	if cfg.JWTSecretKey == "" {
		zlog.Fatal("JWT_SECRET_KEY is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing, zlog)
	if err != nil {
		zlog.Fatal("init tracing", zap.Error(err))
	}
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		shutdownTracing(c)
	}()

	db, services, err := app.App(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("startup failed", zap.Error(err))
	}
	defer db.CloseDB()

	h := handlers.NewHandlers(services, db, cfg, zlog.Named("http"))

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			zlog.Warn("redis unreachable, auth rate limiting fails open", zap.Error(err))
		}

		h.AuthLimiter = ratelimit.NewLimiter(ratelimit.NewRedisStore(rdb), "auth", cfg.Redis.AuthAttempts, cfg.Redis.AuthWindow)
	}

	handlerChain := middleware.Chain(
		handlers.NewRouter(h),
		middleware.LoggingMiddleware(zlog.Named("access")),
		middleware.CORSMiddleware,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           otelhttp.NewHandler(handlerChain, "socialhub"),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		zlog.Info("server started",
			zap.String("addr", srv.Addr),
			zap.String("database", cfg.DB.DbNAME),
			zap.String("bucket", cfg.MinIO.BucketName))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
}
