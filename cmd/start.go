package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"recon-engine/core/loader"
	"recon-engine/core/logger"
	"recon-engine/core/middleware/auth"
	"recon-engine/core/middleware/rayid"
	"recon-engine/core/source"

	"recon-engine/feature/runs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "recon-engine/docs/swagger"
)

// @title Recon Engine API
// @version 1.0
// @description API for running reconciliation and validation rule sets.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the rule engine server",
	Long:  `Starts the HTTP server and loads the runs feature.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		defer env.close()
		logg := env.logger
		zap.ReplaceGlobals(logg)

		ctx := cmd.Context()
		// Table sources and history both need the database, so the server always tries it.
		env.connectDatabase()
		env.connectPostgres(ctx)

		runCfg := env.cfg.Run
		if runCfg.History && env.db == nil {
			logg.Warn("Run history disabled: no database connection")
			runCfg.History = false
		}

		metrics := runs.NewMetrics()
		svc, err := env.service(ctx, runCfg, metrics)
		if err != nil {
			return fmt.Errorf("failed to create run service: %w", err)
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             env.cfg.Server.BodyLimit(),
			ReadTimeout:           env.cfg.Server.ReadTimeout(),
		})

		mgr := loader.NewManager(logg)
		var kinds []source.Kind
		for _, k := range env.cfg.Server.AllowedSourceKinds() {
			kinds = append(kinds, source.Kind(k))
			if env.cfg.Server.ApiKey == "" && (source.Kind(k) == source.KindFile || source.Kind(k) == source.KindQuery) {
				logg.Warn("Unauthenticated API accepts local sources", zap.String("kind", k))
			}
		}
		mgr.Register(runs.NewFeature(svc, metrics, kinds...))

		// RayID first so every later log line carries it.
		app.Use(rayid.New())
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Use(auth.New(auth.Config{ApiKey: env.cfg.Server.ApiKey, Skip: []string{"/metrics"}}))

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		errc := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("port", env.cfg.Server.Port))
			errc <- app.Listen(":" + env.cfg.Server.Port)
		}()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		select {
		case err := <-errc:
			return fmt.Errorf("server failed: %w", err)
		case <-sig:
		}
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
