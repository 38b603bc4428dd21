package api

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/fpl-proxy/internal/api/handlers"
	"github.com/jstittsworth/fpl-proxy/internal/api/middleware"
	"github.com/jstittsworth/fpl-proxy/internal/mcptools"
	"github.com/jstittsworth/fpl-proxy/internal/services"
	"github.com/jstittsworth/fpl-proxy/pkg/config"
)

// Dependencies are the long-lived services the router hands to its handlers.
// Breaker and Warmer are nil when disabled.
type Dependencies struct {
	Data    *services.FPLDataService
	Breaker *services.CircuitBreakerService
	Warmer  *services.CacheWarmer
	Logger  *logrus.Logger
}

// SetupRoutes configures the frontend API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, data services.FPLDataSource, logger *logrus.Logger) {
	playerHandler := handlers.NewPlayerHandler(data, logger)
	fixtureHandler := handlers.NewFixtureHandler(data, logger)

	group.GET("/players", playerHandler.GetPlayers)
	group.GET("/player/:id", playerHandler.GetPlayer)
	group.GET("/team-fixtures/:teamId", fixtureHandler.GetTeamFixtures)
}

// NewRouter builds the full HTTP surface: health, /api, the optional MCP endpoint
// and the built frontend.
func NewRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.CORS(cfg.CorsOrigins))

	healthHandler := handlers.NewHealthHandler(deps.Data, deps.Breaker, deps.Warmer)
	router.GET("/health", healthHandler.GetHealth)
	router.HEAD("/health", healthHandler.GetHealth)

	SetupRoutes(router.Group("/api"), deps.Data, deps.Logger)

	if cfg.MCPEnabled {
		tools := mcptools.NewTools(deps.Data, deps.Logger)
		router.Any(cfg.MCPPath, gin.WrapH(mcptools.NewHTTPHandler(tools.NewServer())))
		deps.Logger.WithField("path", cfg.MCPPath).Info("MCP endpoint enabled")
	}

	if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
		fileServer := http.FileServer(http.Dir(cfg.StaticDir))
		router.NoRoute(func(c *gin.Context) {
			if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
				c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
				return
			}
			fileServer.ServeHTTP(c.Writer, c.Request)
		})
		deps.Logger.WithField("dir", cfg.StaticDir).Info("Serving static frontend")
	}

	return router
}
