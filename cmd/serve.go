// =============================================================================
// Roof Adjustment Engine - Serve Command
// =============================================================================
//
// This file defines the 'serve' command, which exposes the engine over HTTP.
//
// COMMAND USAGE:
//   roofadj serve [--addr :8080]
//
// The address also comes from server.addr or ROOFADJ_SERVER_ADDR. With
// server.watch_catalog set the catalog file is reloaded when it changes.
//
// =============================================================================

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/roof-adjustment-engine/internal/catalog"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/catalogloader"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/logging"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the adjustment engine over HTTP",
	Long: `Serve POST /process-claim, GET /catalog/search and GET /healthz.

Requests take {"line_items": [...], "roof_measurements": {...}}, or the same
document JSON-encoded under "body". Responses are {"success": true, "data": ...}
or {"success": false, "error": "..."}.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (default from server.addr, :8080)")
	_ = overlay.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	defer logging.Sync(log)

	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat := loadCatalog(cfg, log)
	srv := server.New(cat, server.Options{
		Timeout:       cfg.Server.Timeout(),
		Logger:        log,
		EngineOptions: engineOptions(cfg, log),
	})

	if cfg.Server.WatchCatalog {
		if path := cat.Source(); path != "" {
			catLog := logging.Named(log, "catalog")
			load := func(p string) (*catalog.Catalog, error) {
				return catalogloader.LoadFile(p, cfg.CSVSettings, catLog)
			}
			if err := srv.WatchCatalog(ctx, path, load); err != nil {
				log.Warn("Catalog hot reload disabled: %v", err)
			}
		} else {
			log.Warn("Catalog hot reload disabled: no catalog file was loaded")
		}
	}

	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}
