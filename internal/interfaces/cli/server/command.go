package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"worklog/internal/application/worklog/usecases"
	"worklog/internal/infrastructure/auth"
	"worklog/internal/infrastructure/config"
	"worklog/internal/infrastructure/database"
	"worklog/internal/infrastructure/email"
	"worklog/internal/infrastructure/migration"
	"worklog/internal/infrastructure/repository"
	adminHandlers "worklog/internal/interfaces/http/handlers/admin"
	hookHandlers "worklog/internal/interfaces/http/handlers/hooks"
	worklogHandlers "worklog/internal/interfaces/http/handlers/worklog"
	"worklog/internal/interfaces/http/middleware"
	"worklog/internal/interfaces/http/routes"
	"worklog/internal/shared/biztime"
	"worklog/internal/shared/logger"
)

var (
	env         string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the work log HTTP server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Automatically run database migrations on startup (not recommended for production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("starting server",
		"environment", env,
		"auto_migrate", autoMigrate)

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
	}

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer database.Close()

	if autoMigrate {
		if env == "production" {
			logger.Warn("auto-migration is enabled in production environment - this is not recommended!")
		}
		manager := migration.NewManager(env)
		if err := manager.Migrate(database.Get(), migration.AutoMigrateModels()...); err != nil {
			logger.Fatal("auto-migration failed", "error", err)
		}
	}

	engine := buildEngine(cfg)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}

// buildEngine wires repositories, use cases, handlers and routes.
func buildEngine(cfg *config.Config) *gin.Engine {
	gdb := database.Get()
	log := logger.NewLogger()

	notifier := email.NewNotifier(&cfg.Email, log)
	workLogRepo := repository.NewWorkLogRepository(gdb, log)
	ticketStore := repository.NewTicketStore(gdb, notifier, log)
	scopeSettings := repository.NewScopeSettingsRepository(gdb, &cfg.Worklog, log)

	stopWorkUC := usecases.NewStopWorkUseCase(workLogRepo, ticketStore, scopeSettings, log)
	startWorkUC := usecases.NewStartWorkUseCase(workLogRepo, ticketStore, scopeSettings, stopWorkUC, log)
	ticketChangedUC := usecases.NewTicketChangedUseCase(workLogRepo, ticketStore, scopeSettings, stopWorkUC, log)
	whoIsWorkingOnUC := usecases.NewWhoIsWorkingOnUseCase(workLogRepo, log)
	activeTaskUC := usecases.NewActiveTaskUseCase(workLogRepo, log)
	latestTaskUC := usecases.NewLatestTaskUseCase(workLogRepo, log)
	listWorkLogUC := usecases.NewListWorkLogUseCase(workLogRepo, log)
	timelineUC := usecases.NewTimelineUseCase(workLogRepo, log)
	getScopeSettingsUC := usecases.NewGetScopeSettingsUseCase(scopeSettings, scopeSettings, log)
	updateScopeSettingsUC := usecases.NewUpdateScopeSettingsUseCase(scopeSettings, scopeSettings, log)

	verifier := auth.NewTokenVerifier(cfg.Auth.JWTSecret)
	identity := middleware.NewIdentityMiddleware(verifier, &cfg.Auth, log)

	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(log))

	routes.SetupRoutes(engine, &routes.RouteConfig{
		WorkLogHandler: worklogHandlers.NewHandler(
			startWorkUC,
			stopWorkUC,
			whoIsWorkingOnUC,
			activeTaskUC,
			latestTaskUC,
			listWorkLogUC,
			timelineUC,
		),
		HookHandler:  hookHandlers.NewHandler(ticketChangedUC),
		AdminHandler: adminHandlers.NewHandler(getScopeSettingsUC, updateScopeSettingsUC),
		Identity:     identity,
	})

	return engine
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
