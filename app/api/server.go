package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// NewServer creates a new HTTP server with all routes configured. A nil
// limiter leaves the calculator routes unthrottled.
func NewServer(handler *Handler, apiAccessKey string, limiter *RateLimiter) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	registerJSONFieldNames()

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
		SkipPaths: []string{"/health"},
	}))

	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler, apiAccessKey, limiter)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler, apiAccessKey string, limiter *RateLimiter) {
	r.GET("/health", handler.GetHealth)

	r.GET("/feeds/:name/posts", handler.GetPosts)

	calculators := r.Group("/calculators")
	if limiter != nil {
		calculators.Use(limiter.Middleware())
	}
	{
		calculators.POST("/pro-forma", handler.PostProForma)
		calculators.POST("/mortgage", handler.PostMortgage)
		calculators.POST("/projection", handler.PostProjection)
		calculators.POST("/analysis", handler.PostAnalysis)
	}

	r.GET("/scenarios", handler.ListScenarios)
	r.GET("/scenarios/:name", handler.GetScenario)

	if apiAccessKey != "" {
		api := r.Group("/api")
		api.Use(authMiddleware(apiAccessKey))
		{
			api.GET("/feeds", handler.APIListFeeds)
			api.GET("/feeds/:name/diagnostics", handler.APIGetFeedDiagnostics)
			api.POST("/feeds/:name/refresh", handler.APIRefreshFeed)
		}
		slog.Info("API endpoints enabled with authentication")
	} else {
		slog.Info("API endpoints disabled (API_ACCESS_KEY not set)")
	}

	r.GET("/", func(c *gin.Context) {
		endpoints := map[string]string{
			"posts":       "/feeds/<name>/posts?limit=N",
			"health":      "/health",
			"calculators": "/calculators/{pro-forma,mortgage,projection,analysis} (POST)",
			"scenarios":   "/scenarios",
		}

		if apiAccessKey != "" {
			endpoints["feeds"] = "/api/feeds (requires X-API-Key header)"
			endpoints["diagnostics"] = "/api/feeds/<name>/diagnostics (requires X-API-Key header)"
			endpoints["refresh"] = "/api/feeds/<name>/refresh (POST, requires X-API-Key header)"
		}

		c.JSON(http.StatusOK, gin.H{
			"service":     "Realty Desk",
			"version":     handler.version,
			"description": "Real estate market news and investment calculators",
			"endpoints":   endpoints,
		})
	})

	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
}

func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		providedKey := c.GetHeader("X-API-Key")

		if providedKey == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				providedKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if providedKey == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "API key required",
				"message": "Provide API key in X-API-Key header or Authorization: Bearer <key>",
			})
			return
		}

		if providedKey != apiAccessKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid API key",
				"message": "The provided API key is not valid",
			})
			return
		}

		c.Next()
	}
}

// registerJSONFieldNames makes validation errors report the JSON field name
// instead of the Go struct field.
func registerJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
