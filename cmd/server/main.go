// Package main is the entry point for the census-report API server.
package main

import (
	"flag"
	"os"

	"go.uber.org/zap"

	"census-report/api"
	"census-report/core/engine"
	"census-report/core/loader"
	"census-report/core/refdata"
	"census-report/internal/config"
	"census-report/internal/logging"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	address := flag.String("address", "", "listen address override")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Error("failed to load configuration", zap.Error(err))
		os.Exit(1)
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		logging.Error("failed to initialize logging", zap.Error(err))
		os.Exit(1)
	}
	defer logging.Sync()

	ref, err := refdata.Load(cfg.Data.ReferenceFile)
	if err != nil {
		logging.Error("failed to load reference data", zap.Error(err))
		os.Exit(1)
	}

	eng := engine.New(ref, loader.NewCSVSource(cfg.Data.Folder))

	listen := cfg.Server.Address
	if *address != "" {
		listen = *address
	}

	srv := api.NewServer(eng, version)
	if err := srv.Start(listen); err != nil {
		logging.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
