package main

import (
	"log"

	"github.com/skylens/routemetrics/internal/api"
	"github.com/skylens/routemetrics/internal/config"
	"github.com/skylens/routemetrics/internal/database"
	"github.com/skylens/routemetrics/internal/handler"
	"github.com/skylens/routemetrics/internal/kpi"
	"github.com/skylens/routemetrics/internal/pipeline"
	"github.com/skylens/routemetrics/internal/repository"
	"github.com/skylens/routemetrics/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	params := cfg.KPIParams
	engine, err := kpi.NewEngine(&params)
	if err != nil {
		log.Fatal("Failed to build KPI engine:", err)
	}

	rawRepo := repository.NewRawRepository(db)
	martRepo := repository.NewMartRepository(db)
	kpiRepo := repository.NewKPIRepository(db)
	runRepo := repository.NewRunRepository(db)

	runner := pipeline.NewRunner(rawRepo, martRepo, kpiRepo, runRepo, engine)

	handlers := api.Handlers{
		Pipeline:    handler.NewPipelineHandler(service.NewPipelineService(runner, runRepo)),
		KPI:         handler.NewKPIHandler(service.NewKPIService(kpiRepo, params)),
		Mart:        handler.NewMartHandler(service.NewMartService(martRepo)),
		Diagnostics: handler.NewDiagnosticsHandler(service.NewDiagnosticsService(martRepo, rawRepo)),
	}

	router := api.SetupRouter(cfg, handlers)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
