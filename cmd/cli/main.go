package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/passgod/internal/buildinfo"
	"github.com/dmitrijs2005/passgod/internal/client/cli"
	"github.com/dmitrijs2005/passgod/internal/client/client"
	"github.com/dmitrijs2005/passgod/internal/client/config"
	"github.com/dmitrijs2005/passgod/internal/client/qr"
	"github.com/dmitrijs2005/passgod/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/passgod/internal/client/storage"
	"github.com/dmitrijs2005/passgod/internal/client/tokenstore"
	"github.com/dmitrijs2005/passgod/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}

	db, err := storage.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer db.Close()

	store := tokenstore.New(metadata.NewSQLiteRepository(db))
	api := client.NewHTTPClient(cfg.APIBaseURL, store, logger)

	app := cli.NewApp(cfg, api, store, qr.NewTerminalEncoder(), logger, os.Stdin, os.Stdout)
	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "cli stopped", "error", err)
	}

}
