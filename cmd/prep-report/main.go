// Command prep-report prints the preparedness dashboard stored in DB_PATH
// as JSON, without starting any servers.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mr1hm/go-emergency-prep/internal/config"
	"github.com/mr1hm/go-emergency-prep/internal/logging"
	"github.com/mr1hm/go-emergency-prep/internal/repository"
	"github.com/mr1hm/go-emergency-prep/internal/seed"
	"github.com/mr1hm/go-emergency-prep/internal/service"
	"github.com/mr1hm/go-emergency-prep/internal/training"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	// stdout carries the report
	slog.SetDefault(logging.New(os.Stderr, cfg.Logging.Level))

	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	alertSvc, err := service.LoadAlertService(ctx, db, nil, seed.Alerts(time.Now()))
	if err != nil {
		logging.Fatalf("Failed to load alerts: %v", err)
	}
	trainingSvc, err := service.LoadTrainingService(ctx, db, seed.Modules())
	if err != nil {
		logging.Fatalf("Failed to load training progress: %v", err)
	}

	report := struct {
		Dashboard service.Dashboard `json:"dashboard"`
		Training  training.Summary  `json:"training"`
	}{
		Dashboard: service.BuildDashboard(alertSvc, trainingSvc, cfg.Alerts.DashboardLimit),
		Training:  trainingSvc.Summary(),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		logging.Fatalf("Failed to write report: %v", err)
	}
}
