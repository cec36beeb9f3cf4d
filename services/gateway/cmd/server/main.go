package main

import (
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/0xkalvin/real-estate-hyperledger-kubernetes/services/gateway/internal/config"
	"github.com/0xkalvin/real-estate-hyperledger-kubernetes/services/gateway/internal/fabricclient"
	"github.com/0xkalvin/real-estate-hyperledger-kubernetes/services/gateway/internal/localclient"
	"github.com/0xkalvin/real-estate-hyperledger-kubernetes/services/gateway/internal/rest"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfgPath := os.Getenv("GATEWAY_CONFIG")
	if cfgPath == "" {
		cfgPath = "gateway.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	var invoker rest.Invoker
	switch cfg.Mode {
	case config.ModeFabric:
		fc, err := fabricclient.Connect(cfg.Fabric)
		if err != nil {
			logger.Fatal("failed to connect to fabric peer", zap.Error(err))
		}
		defer func() { _ = fc.Close() }()
		invoker = fc
	case config.ModeInMem:
		logger.Warn("running with the in-memory ledger, state is not durable")
		invoker = localclient.New(logger)
	}

	router := rest.NewRouter(invoker, logger)
	logger.Info("gateway listening",
		zap.String("port", cfg.Port),
		zap.String("mode", cfg.Mode),
	)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Fatal("gateway stopped", zap.Error(err))
	}
}
