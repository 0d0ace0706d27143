package main

import (
	"context"
	"fmt"

	"github.com/social-memo/social-memo/internal/config"
	"github.com/social-memo/social-memo/internal/handler"
	"github.com/social-memo/social-memo/internal/logger"
	"github.com/social-memo/social-memo/internal/server"
	"github.com/social-memo/social-memo/internal/service"
	"github.com/social-memo/social-memo/internal/store"
	"github.com/social-memo/social-memo/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("social-memo-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	db, err := store.Open(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening store")
	}
	defer db.Close()

	if err = db.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("error preparing database schema")
	}

	repositories := store.NewRepositories(db, log)
	services := service.NewServices(repositories, cfg.App, log)

	if err = services.AuthService.EnsureDefaultAdmin(ctx); err != nil {
		log.Fatal().Err(err).Msg("error ensuring default admin account")
	}

	handlers := handler.NewHandlers(services, log)

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	backgroundWorkers := workers.NewWorkers(services, cfg.Workers, log)
	backgroundWorkers.Run()

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
