package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"healthlens/adapters/filestore"
	"healthlens/app"
	"healthlens/internal/config"
	"healthlens/ui"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	gin.SetMode(cfg.Server.GinMode)

	store := filestore.New(cfg.Data.Dir)
	analyzer := app.NewAnalyzerWithTuning(store, app.Tuning{
		TrendAlertPct:     cfg.Tuning.TrendAlertPct,
		TrendSlopeRatio:   cfg.Tuning.TrendSlopeRatio,
		AnomalyZ:          cfg.Tuning.AnomalyZ,
		MinAbsR:           cfg.Tuning.MinAbsR,
		TopCorrelations:   cfg.Tuning.TopCorrelations,
		DefaultPeriodDays: cfg.Tuning.DefaultPeriod,
	})

	server := ui.NewServer(analyzer)
	if err := server.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
