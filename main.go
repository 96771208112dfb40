package main

import (
	"time"

	"go.uber.org/zap"

	"neuroscreen/internal/config"
	"neuroscreen/internal/engine"
	"neuroscreen/internal/handlers"
	"neuroscreen/internal/insight"
	logger "neuroscreen/internal/logging"
	"neuroscreen/internal/models"
	"neuroscreen/internal/router"
	"neuroscreen/internal/store"
)

func main() {
	// A temporary console logger covers config loading; the real logger
	// needs the logging config first.
	bootLog, err := zap.NewDevelopment()
	if err != nil {
		panic("failed to initialize bootstrap logger: " + err.Error())
	}

	if err := config.Init(".", bootLog); err != nil {
		bootLog.Fatal("Failed to load configuration", zap.Error(err))
	}

	log, err := logger.Init(config.Conf.Logging)
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer log.Sync()

	// Load battery definitions, falling back to the built-in set.
	batteries, err := models.LoadBatteries(config.Conf.Assessment.BatteriesPath)
	if err != nil {
		log.Warn("Falling back to built-in batteries", zap.Error(err))
		batteries = models.DefaultBatteries()
	}

	clock := engine.RealClock{}
	results := store.NewMemoryStore()

	// Leave the narrator unset when no insight endpoint is configured so
	// the fixed recommendation tables apply without a failed call first.
	var narrator *insight.Service
	var aggregatorNarrator engine.Narrator
	var resultsInsighter handlers.Insighter
	if config.Conf.Insight.BaseURL != "" {
		narrator = insight.NewService(
			config.Conf.Insight.BaseURL,
			time.Duration(config.Conf.Insight.TimeoutSeconds)*time.Second,
			log,
		)
		aggregatorNarrator = narrator
		resultsInsighter = narrator
	}

	manager := engine.NewManager(batteries, clock)
	aggregator := engine.NewResultAggregator(results, aggregatorNarrator, clock, log)

	assessmentHandler := handlers.NewAssessmentHandler(log, manager, aggregator)
	resultsHandler := handlers.NewResultsHandler(log, results, resultsInsighter)

	r := router.Setup(log, assessmentHandler, resultsHandler)

	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
