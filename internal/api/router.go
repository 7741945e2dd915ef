package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/webware/award-board/internal/api/handler"
	"github.com/webware/award-board/internal/api/middleware"
	"github.com/webware/award-board/internal/core/service"
	"github.com/webware/award-board/internal/infrastructure/config"
	mongodb "github.com/webware/award-board/internal/infrastructure/db/mongo"
	redisdb "github.com/webware/award-board/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
//
// Middleware order matters: the session must be restored before the award
// pipeline runs, so the pipeline's recorder can attribute the final code,
// and every route — matched or not — goes through the pipeline.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("award_board"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	commentRepo := mongodb.NewCommentRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb, cfg.Session.TTL)
	rateWindow := redisdb.NewFixedWindow(rdb, cfg.Rate.Window)

	authService := service.NewAuthService(userRepo, sessionStore, log)
	commentService := service.NewCommentService(commentRepo, log)
	awardService := service.NewAwardService(userRepo, log)

	authHandler := handler.NewAuthHandler(authService, cfg.Session.CookieName, cfg.Session.TTL)
	commentHandler := handler.NewCommentHandler(commentService)
	siteHandler := handler.NewSiteHandler()

	e.Use(middleware.RestoreSession(authService, cfg.Session.CookieName, log))
	e.Use(middleware.AwardPipeline(awardService, middleware.GuardLimits{
		MaxPathLength:  cfg.Guards.MaxPathLength,
		MaxHeaderBytes: cfg.Guards.MaxHeaderBytes,
		MaxBodyBytes:   cfg.Guards.MaxBodyBytes,
	}, log))

	requireLogin := middleware.RequireLogin()
	requireLogout := middleware.RequireLogout()
	rateLimit := middleware.RateLimit(rateWindow, "home", cfg.Rate.Max, log)

	// --- Pages ---
	e.GET("/", siteHandler.Index, requireLogout)
	e.GET("/home", siteHandler.Home, requireLogin, rateLimit)

	// --- Auth ---
	e.POST("/login", authHandler.Login)
	e.POST("/signup", authHandler.Signup, requireLogout)
	e.POST("/change_password", authHandler.ChangePassword, requireLogin)
	e.GET("/logout", authHandler.Logout)
	e.GET("/me", authHandler.Me, requireLogin)

	// --- Comment board ---
	e.POST("/add_comment", commentHandler.Add, requireLogin)
	e.POST("/remove_comment", commentHandler.Remove, requireLogin)
	e.DELETE("/remove_comment", commentHandler.RemoveViaDelete)
	e.GET("/comments", commentHandler.List, requireLogin)

	// --- Fixed award endpoints ---
	e.GET("/brewCoffee", siteHandler.BrewCoffee)
	e.GET("/area51", siteHandler.Area51)
	e.GET("/exponential/:x/:f", siteHandler.Exponential, requireLogin)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(db, rdb).Readiness)

	return e
}
