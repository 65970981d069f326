package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cyphera/cyphera-tax/apps/api/handlers"
	"github.com/cyphera/cyphera-tax/libs/go/helpers"
	"github.com/cyphera/cyphera-tax/libs/go/interfaces"
	"github.com/cyphera/cyphera-tax/libs/go/logger"
	"github.com/cyphera/cyphera-tax/libs/go/middleware"
	"github.com/cyphera/cyphera-tax/libs/go/services"
	"github.com/cyphera/cyphera-tax/libs/go/states"
	"github.com/cyphera/cyphera-tax/libs/go/taxdata"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const (
	defaultRateLimitRPS   = 10
	defaultRateLimitBurst = 20
	rateLimitCleanup      = time.Minute
)

// Handler Definitions
var (
	healthHandler    *handlers.HealthHandler
	taxReturnHandler *handlers.TaxReturnHandler

	rateLimiter  *middleware.RateLimiter
	stopCleanup  context.CancelFunc
	maxBodyBytes int64 = middleware.DefaultMaxBodySize
	logBodies    bool
)

func InitializeHandlers() {
	// Load environment variables from .env file for local development
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err) // Use basic log before logger init
	}

	// --- Determine and Validate Stage ---
	stage := os.Getenv("STAGE")
	if stage == "" {
		stage = helpers.StageLocal
		log.Printf("Warning: STAGE environment variable not set, defaulting to '%s'", stage)
	}
	if !helpers.IsValidStage(stage) {
		log.Fatalf("Invalid STAGE environment variable: '%s'. Must be one of: %s, %s, %s, %s",
			stage, helpers.StageProd, helpers.StageDev, helpers.StageLocal, helpers.StageTest)
	}

	logger.InitLogger(stage, taxdata.SupportedYears()...)
	logger.Info("Initializing handlers for stage", zap.String("stage", stage))

	// Request bodies carry SSNs; only log them outside production.
	logBodies = stage == helpers.StageLocal || os.Getenv("LOG_REQUEST_BODIES") == "true"
	if v := envInt("MAX_BODY_BYTES", 0); v > 0 {
		maxBodyBytes = int64(v)
	}

	calc := services.NewReturnService(states.NewRegistry())
	initializeHandlersWithCalculator(calc)
	logger.Info("Handlers initialized",
		zap.Int("supported_states", len(calc.ListSupportedStates())))
}

// initializeHandlersWithCalculator wires the handlers around calc.
func initializeHandlersWithCalculator(calc interfaces.ReturnCalculator) {
	healthHandler = handlers.NewHealthHandler(calc)
	taxReturnHandler = handlers.NewTaxReturnHandler(calc)
	rateLimiter = middleware.NewRateLimiter(
		envInt("RATE_LIMIT_RPS", defaultRateLimitRPS),
		envInt("RATE_LIMIT_BURST", defaultRateLimitBurst),
	)
}

func InitializeRoutes(router *gin.Engine) {
	router.Use(configureCORS())
	router.Use(middleware.CorrelationIDMiddleware())

	var ctx context.Context
	ctx, stopCleanup = context.WithCancel(context.Background())
	rateLimiter.StartCleanup(ctx, rateLimitCleanup)
	router.Use(rateLimiter.Middleware())

	router.Use(middleware.RequestLoggingMiddleware(logBodies))

	// Add Swagger endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health for raw lambda url check
	router.GET("/:stage/health", healthHandler.Health)
	router.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/states", taxReturnHandler.ListStates)

		returns := v1.Group("/returns")
		returns.Use(middleware.RequireJSONBody(maxBodyBytes))
		{
			returns.POST("/compute", taxReturnHandler.ComputeReturn)
			returns.POST("/compute-nr", taxReturnHandler.ComputeNonresident)
			returns.POST("/explain", taxReturnHandler.Explain)
		}
	}
}

// Shutdown stops background work started by InitializeRoutes.
func Shutdown() {
	if stopCleanup != nil {
		stopCleanup()
	}
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		logger.Warn("Ignoring non-numeric environment variable",
			zap.String("key", key),
			zap.String("value", raw))
		return fallback
	}
	return v
}

func splitEnv(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parts := strings.Split(raw, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func configureCORS() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = splitEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	corsConfig.AllowMethods = splitEnv("CORS_ALLOWED_METHODS", []string{http.MethodGet, http.MethodPost, http.MethodOptions})
	corsConfig.AllowHeaders = splitEnv("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "X-Correlation-ID"})
	// Default exposed headers including rate limit headers
	corsConfig.ExposeHeaders = splitEnv("CORS_EXPOSED_HEADERS", []string{
		"X-RateLimit-Limit",
		"X-RateLimit-Remaining",
		"X-RateLimit-Reset",
		"Retry-After",
		"X-Correlation-ID",
	})
	corsConfig.AllowCredentials = os.Getenv("CORS_ALLOW_CREDENTIALS") == "true"

	return cors.New(corsConfig)
}
