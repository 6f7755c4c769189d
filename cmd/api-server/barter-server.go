package main

import (
	"barter/db"
	"barter/db/migrations"
	"barter/internal/auth"
	"barter/internal/config"
	"barter/internal/handlers"
	"barter/internal/logger"
	"barter/internal/service"
	"barter/internal/session"
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Cannot init logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbConn, err := db.Connect(ctx, cfg.PostgresConn)
	if err != nil {
		zlog.Fatal("Cannot connect to DB", zap.Error(err))
	}
	defer dbConn.Close()

	if cfg.RunMigrations {
		if err := migrations.Run(dbConn.DB); err != nil {
			zlog.Fatal("Migrations failed", zap.Error(err))
		}
	}
	if version, err := migrations.Version(dbConn.DB); err == nil {
		zlog.Info("Database schema", zap.Int64("version", version))
	}

	rdb, err := session.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		zlog.Fatal("Cannot connect to Redis", zap.Error(err))
	}
	defer rdb.Close()

	svc := service.New(db.NewStorage(dbConn), zlog)
	h := handlers.NewHandler(svc,
		auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL),
		session.NewRevocationStore(rdb),
		zlog)

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           h.Routes(cfg.CORSOrigins),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		zlog.Info("Starting server", zap.String("address", cfg.ServerAddress))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Graceful shutdown failed", zap.Error(err))
	}
}
