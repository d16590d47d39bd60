// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/bnomad/website/internal/app/resources"
	"github.com/bnomad/website/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after DB connections and schema/index setup are
// complete, but before the HTTP handler is built and requests are
// served.
//
// Schema, index, and seed work happens in EnsureSchema; Startup is for
// application-level initialization that depends on loaded config.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	// Register the shared layout partials before the engine boots in
	// BuildHandler.
	resources.LoadSharedTemplates()

	// Site identity for every rendered page.
	viewdata.Init(appCfg.SiteName, appCfg.BaseURL)

	logger.Info("startup complete",
		zap.String("site", appCfg.SiteName),
		zap.String("base_url", appCfg.BaseURL),
		zap.String("environment", appCfg.Environment),
	)
	return nil
}
