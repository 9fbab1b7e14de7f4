package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"rotor-viewer/core/loader"
	"rotor-viewer/core/logger"
	"rotor-viewer/core/middleware/auth"
	"rotor-viewer/core/middleware/rayid"
	"rotor-viewer/core/viewer"

	"rotor-viewer/feature/integrity"
	"rotor-viewer/feature/rotor"
	"rotor-viewer/feature/rotor/models"
	"rotor-viewer/feature/static"
	"rotor-viewer/feature/views"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "rotor-viewer/docs/swagger"
)

// @title Rotor Viewer API
// @version 1.0
// @description API for inspecting and serving the configured rotor model.
// @host localhost:3050
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the rotor viewer server",
	Long:  `Starts the HTTP server: the home and rotor views, the static assets and the /api routes.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration, Logger, Storage and Database
		rt, err := newRuntime(true)
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		cfg, logg := rt.cfg, rt.logg
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if err := cfg.Server.Validate(); err != nil {
			logg.Fatal("Invalid server configuration", zap.Error(err))
		}

		if rt.db != nil {
			if err := models.Migrate(rt.db); err != nil {
				logg.Warn("Failed to migrate load history, disabling it", zap.Error(err))
				rt.db = nil
			}
		}

		// 2. Initialize Services
		modelLoader, source := rotor.NewModelSource(cfg.Viewer, cfg.Storage, rt.store)
		rotorSvc, err := rotor.NewService(rotor.Options{
			Loader:         modelLoader,
			Source:         source,
			EnvironmentURL: cfg.Viewer.EnvironmentURL,
			Fetcher:        viewer.NewHTTPFetcher(cfg.Viewer.FetchTimeout()),
			CacheTTL:       cfg.Viewer.CacheTTL(),
			CacheMaxBytes:  cfg.Viewer.CacheMaxBytes,
			DB:             rt.db,
			Logger:         logg,
		})
		if err != nil {
			logg.Fatal("Failed to create rotor service", zap.Error(err))
		}
		defer rotorSvc.Close()

		integritySvc := integrity.NewService(integrity.Options{
			Server:  cfg.Server,
			Viewer:  cfg.Viewer,
			Storage: cfg.Storage,
			Client:  rt.store,
			DB:      rt.db,
			Logger:  logg,
		})

		// 3. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
			Views:                 views.NewEngine(cfg.Server.ViewsDir, cfg.Log.Level == "debug"),
		})

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Request logging with the ray id
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Debug("Request started",
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

		// 4. API features, behind the API key
		api := app.Group("/api", auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))
		apiMgr := loader.NewManager()
		apiMgr.Register(rotor.NewFeature(rotorSvc))
		apiMgr.Register(integrity.NewFeature(integritySvc))
		if _, err := apiMgr.LoadAll(api); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 5. Pages, the bucket model if any, then static assets
		siteMgr := loader.NewManager()
		siteMgr.Register(views.NewFeature(logg))
		siteMgr.Register(rotor.NewModelFeature(rotorSvc, cfg.Storage.Enabled && rt.store != nil))
		siteMgr.Register(static.NewFeature(cfg.Server))
		loaded, err := siteMgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Debug("Features loaded", zap.Strings("features", loaded))

		// 6. Start Server. A bind failure is fatal.
		listenErr := make(chan error, 1)
		go func() {
			logg.Info("Server started", zap.String("url", "http://localhost"+cfg.Server.Addr()), zap.String("model", source))
			listenErr <- app.Listen(cfg.Server.Addr())
		}()

		// 7. Graceful Shutdown
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		select {
		case err := <-listenErr:
			if err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		case <-quit:
			logg.Info("Shutting down server...")
			if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout()); err != nil {
				logg.Warn("Shutdown did not complete", zap.Error(err))
			}
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
