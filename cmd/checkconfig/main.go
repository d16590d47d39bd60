// cmd/checkconfig/main.go
//
// checkconfig loads and validates configuration the same way the
// server does, then exits. Useful in CI and deploy pipelines to catch
// a bad environment before rolling a release.
package main

import (
	"fmt"
	"os"

	"github.com/bnomad/website/internal/app/bootstrap"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	coreCfg, appCfg, err := bootstrap.LoadConfig(logger)
	if err != nil {
		logger.Error("config load failed", zap.Error(err))
		os.Exit(1)
	}

	if err := bootstrap.ValidateConfig(coreCfg, appCfg, logger); err != nil {
		logger.Error("config validation failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("configuration OK",
		zap.String("site", appCfg.SiteName),
		zap.String("base_url", appCfg.BaseURL),
		zap.String("mongo_database", appCfg.MongoDatabase),
		zap.String("storage_type", appCfg.StorageType),
	)
}
