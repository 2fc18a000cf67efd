package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"bucket-manager/core/loader"
	"bucket-manager/core/logger"
	"bucket-manager/core/middleware/auth"
	"bucket-manager/core/middleware/rayid"
	"bucket-manager/feature/buckets"
	"bucket-manager/feature/integrity"
	"bucket-manager/feature/pools"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "bucket-manager/docs/swagger"
)

// @title Bucket Manager API
// @version 1.0
// @description Admin API for bucket creation and pool preallocation.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the bucket manager server",
	Long:  `Starts the admin HTTP server and the background pool maintainer.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()
		logg := a.logger
		zap.ReplaceGlobals(logg)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		mgr := loader.NewManager()
		mgr.Register(buckets.NewFeature(a.buckets))
		mgr.Register(pools.NewFeature(a.pools))
		mgr.Register(integrity.NewFeature(a.integrity))

		// RayID must be first to trace everything.
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

		// Public endpoints.
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", a.metrics.Handler())

		app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		go a.pools.RunMaintainer(ctx)

		go func() {
			logg.Info("Starting server", zap.String("port", a.cfg.Server.Port))
			if err := app.Listen(":" + a.cfg.Server.Port); err != nil {
				logg.Error("Server stopped", zap.Error(err))
				stop()
			}
		}()

		<-ctx.Done()
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
