package routes

import (
	"github.com/gin-gonic/gin"

	adminHandlers "worklog/internal/interfaces/http/handlers/admin"
	hookHandlers "worklog/internal/interfaces/http/handlers/hooks"
	worklogHandlers "worklog/internal/interfaces/http/handlers/worklog"
	"worklog/internal/interfaces/http/middleware"
)

// RouteConfig holds dependencies for the HTTP routes.
type RouteConfig struct {
	WorkLogHandler *worklogHandlers.Handler
	HookHandler    *hookHandlers.Handler
	AdminHandler   *adminHandlers.Handler
	Identity       *middleware.IdentityMiddleware
}

// SetupRoutes configures all routes of the service.
func SetupRoutes(engine *gin.Engine, cfg *RouteConfig) {
	worklog := engine.Group("/worklog")
	worklog.Use(cfg.Identity.Resolve())
	{
		worklog.POST("/start", cfg.WorkLogHandler.StartWork)
		worklog.POST("/stop", cfg.WorkLogHandler.StopWork)
		worklog.GET("/active", cfg.WorkLogHandler.ActiveTask)
		worklog.GET("/latest", cfg.WorkLogHandler.LatestTask)
		worklog.GET("/tickets/:id/worker", cfg.WorkLogHandler.WhoIsWorkingOn)
		worklog.GET("/projects/:id/log", cfg.WorkLogHandler.ListWorkLog)
		worklog.GET("/projects/:id/timeline", cfg.WorkLogHandler.Timeline)
	}

	hooks := engine.Group("/hooks")
	{
		hooks.POST("/ticket-changed", cfg.HookHandler.TicketChanged)
	}

	admin := engine.Group("/admin")
	admin.Use(cfg.Identity.Resolve())
	{
		admin.GET("/scopes/:id/settings", cfg.AdminHandler.GetScopeSettings)
		admin.PUT("/scopes/:id/settings", cfg.AdminHandler.UpdateScopeSettings)
	}
}
