package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"fab-catalog/core/database"
	"fab-catalog/core/loader"
	"fab-catalog/core/logger"
	"fab-catalog/core/middleware/auth"
	"fab-catalog/core/middleware/rayid"
	"fab-catalog/feature/cards"
	"fab-catalog/feature/catalog"
	"fab-catalog/feature/health"
	"fab-catalog/feature/snapshots"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "fab-catalog/docs/swagger"
)

// @title fab-catalog API
// @version 1.0
// @description Flesh and Blood card lookups merged with market prices.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the catalog server",
	Long:  `Loads the card dataset, starts the reload, refresh and snapshot jobs and serves the HTTP API.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Configuration, logger, card index and price cache
		rt, err := newRuntime(false)
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		cfg, logg := rt.cfg, rt.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// 2. Connect to Database (Optional, only price snapshots need it)
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed, snapshots disabled", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
		}

		// 3. Load card data. Without it the service runs degraded until a reload succeeds.
		if err := rt.index.Load(ctx); err != nil {
			logg.Error("Initial card index load failed, serving without card data", zap.Error(err))
		}
		rt.index.StartReloadJob(ctx, cfg.Cards.ReloadInterval)
		rt.prices.StartRefreshJob(ctx, cfg.Prices.RefreshInterval)

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
			ReadTimeout:           cfg.Server.ReadTimeout(),
			UnescapePath:          true, // card names in /cards/:identifier contain spaces
			JSONEncoder:           json.Marshal,
			JSONDecoder:           json.Unmarshal,
		})

		// 5. Initialize Feature Loader
		mgr := loader.NewManager(logg)

		dataset := health.DatasetConfig{}
		if cfg.Cards.Source == cards.SourceStorage {
			dataset = health.DatasetConfig{Client: rt.store, Bucket: cfg.Storage.Bucket, Prefix: cfg.Cards.Prefix}
		}
		snaps := snapshots.NewFeature(db, rt.index, rt.prices, cfg.Snapshots, logg)

		mgr.Register(health.NewFeature(rt.index, rt.prices, dataset, db, snapshots.Tables, logg))
		mgr.Register(catalog.NewFeature(rt.index, rt.prices, logg))
		mgr.Register(snaps)

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Zap + RayID)
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

		// 3. Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 4. Auth (everything outside the public paths)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, PublicPaths: cfg.Server.PublicPaths}))

		// 6. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		snaps.Start(ctx)

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("address", cfg.Server.Address()))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		<-ctx.Done()
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
