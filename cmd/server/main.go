package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/blogr/internal/api"
	"github.com/d60-Lab/blogr/internal/api/handler"
	"github.com/d60-Lab/blogr/internal/config"
	"github.com/d60-Lab/blogr/internal/model"
	"github.com/d60-Lab/blogr/internal/repository"
	"github.com/d60-Lab/blogr/internal/service"
	"github.com/d60-Lab/blogr/internal/session"
	"github.com/d60-Lab/blogr/pkg/logger"
	"github.com/d60-Lab/blogr/pkg/tracing"
)

// @title blogr API
// @version 1.0
// @description Minimal multi-user blogging service.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	logger.Init(cfg.Server.Mode)
	defer logger.Sync()
	gin.SetMode(cfg.Server.Mode)

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		}); err != nil {
			logger.Fatal("init sentry", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx := context.Background()
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.Init(ctx, "blogr", cfg.Tracing.Endpoint)
		if err != nil {
			logger.Fatal("init tracing", zap.Error(err))
		}
		defer func() { _ = shutdown(context.Background()) }()
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	if err := db.AutoMigrate(&model.Author{}, &model.Post{}, &model.Comment{}); err != nil {
		logger.Fatal("migrate schema", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal("connect redis", zap.Error(err))
	}
	defer rdb.Close()

	sessions := session.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL,
		session.NewStore(rdb, cfg.Auth.TokenTTL))

	authorRepo := repository.NewAuthorRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	h := handler.New(
		service.NewAuthService(authorRepo, sessions),
		service.NewPostService(postRepo, authorRepo),
		service.NewCommentService(commentRepo, authorRepo),
	)

	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: api.NewRouter(cfg, h, sessions),
	}

	go func() {
		logger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("base_url", cfg.Server.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("server stopped")
}

func openDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	switch cfg.Driver {
	case "postgres":
		return gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{})
	}
}
