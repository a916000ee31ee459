package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/mr1hm/go-emergency-prep/internal/api"
	"github.com/mr1hm/go-emergency-prep/internal/config"
	internalgrpc "github.com/mr1hm/go-emergency-prep/internal/grpc"
	"github.com/mr1hm/go-emergency-prep/internal/ingestion"
	"github.com/mr1hm/go-emergency-prep/internal/logging"
	"github.com/mr1hm/go-emergency-prep/internal/metrics"
	"github.com/mr1hm/go-emergency-prep/internal/repository"
	"github.com/mr1hm/go-emergency-prep/internal/seed"
	"github.com/mr1hm/go-emergency-prep/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.File)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port, "grpc_port", cfg.GRPC.Port)

	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	metrics.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Create broadcaster for gRPC streaming
	broadcaster := internalgrpc.NewBroadcaster()

	alertSvc, err := service.LoadAlertService(ctx, db, broadcaster, seed.Alerts(time.Now()))
	if err != nil {
		logging.Fatalf("Failed to load alerts: %v", err)
	}
	trainingSvc, err := service.LoadTrainingService(ctx, db, seed.Modules())
	if err != nil {
		logging.Fatalf("Failed to load training progress: %v", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	mgr := ingestion.NewManager(cfg, alertSvc, db)
	mgr.Start(gctx)

	grpcServer := internalgrpc.NewServer(alertSvc, broadcaster)
	g.Go(func() error {
		if err := grpcServer.Start(fmt.Sprintf(":%d", cfg.GRPC.Port)); err != nil {
			return fmt.Errorf("gRPC server: %w", err)
		}
		return nil
	})

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(metrics.Middleware())
	router.Use(api.RateLimitMiddleware(cfg.Server.RateLimitRPS))
	router.GET("/metrics", metrics.Handler())

	handler := api.NewHandler(alertSvc, trainingSvc, seed.Plan(), cfg.Alerts.RecentLimit, cfg.Alerts.DashboardLimit)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	g.Go(func() error {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down...")

		mgr.Stop()
		broadcaster.Close() // Close all streams gracefully
		grpcServer.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logging.Fatalf("Server error: %v", err)
	}

	slog.Info("shutdown complete")
}
