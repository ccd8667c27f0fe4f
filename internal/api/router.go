package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/devUbaid/LetterDrive-Backend/docs"
	"github.com/devUbaid/LetterDrive-Backend/internal/api/handler"
	"github.com/devUbaid/LetterDrive-Backend/internal/api/middleware"
	"github.com/devUbaid/LetterDrive-Backend/internal/core/service"
	"github.com/devUbaid/LetterDrive-Backend/internal/infrastructure/config"
	mongodb "github.com/devUbaid/LetterDrive-Backend/internal/infrastructure/db/mongo"
	redisdb "github.com/devUbaid/LetterDrive-Backend/internal/infrastructure/db/redis"
	"github.com/devUbaid/LetterDrive-Backend/internal/infrastructure/drive"
	"github.com/devUbaid/LetterDrive-Backend/internal/infrastructure/oauth"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	// Letter bodies carry no validation tags: any title/content is accepted
	// and normalized in the service layer, so Validate only ever rejects
	// future tagged request types.
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("letterdrive"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.ClientURL},
		AllowCredentials: true,
	}))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	letterRepo := mongodb.NewLetterRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb)
	syncLocker := redisdb.NewSyncLocker(rdb)

	provider := oauth.NewGoogleProvider(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.ServerURL)
	driveClient := drive.NewClient(provider, log)

	authService := service.NewAuthService(userRepo, sessionStore, cfg.SessionTTL, log)
	letterService := service.NewLetterService(letterRepo, log)
	driveService := service.NewDriveService(letterRepo, driveClient, syncLocker, log)

	authHandler := handler.NewAuthHandler(authService, provider, cfg.ClientURL, cfg.SessionTTL, cfg.IsProduction(), log)
	letterHandler := handler.NewLetterHandler(letterService)
	driveHandler := handler.NewDriveHandler(driveService)

	requireSession := middleware.Session(authService)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.GET("/google", authHandler.GoogleLogin)
	auth.GET("/google/callback", authHandler.GoogleCallback)
	auth.GET("/status", authHandler.Status)
	auth.GET("/logout", authHandler.Logout)

	// --- Letter routes ---
	letters := e.Group("/api/letters", requireSession)
	letters.GET("", letterHandler.List)
	letters.POST("", letterHandler.Create)
	letters.GET("/:id", letterHandler.Get)
	letters.PUT("/:id", letterHandler.Update)
	letters.DELETE("/:id", letterHandler.Delete)

	// --- Drive routes ---
	driveGroup := e.Group("/api/drive", requireSession)
	driveGroup.POST("/save/:id", driveHandler.Save)
	driveGroup.GET("/letters", driveHandler.ListRemote)
	driveGroup.DELETE("/delete/:fileId", driveHandler.DeleteRemote)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational surfaces ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
