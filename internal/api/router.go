package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/keijiban/bulletin-board/internal/api/handler"
	"github.com/keijiban/bulletin-board/internal/api/middleware"
	"github.com/keijiban/bulletin-board/internal/core/auth"
	"github.com/keijiban/bulletin-board/internal/core/domain"
	"github.com/keijiban/bulletin-board/internal/core/ports"
	"github.com/keijiban/bulletin-board/internal/core/service"
	"github.com/keijiban/bulletin-board/internal/infrastructure/config"
	mongodb "github.com/keijiban/bulletin-board/internal/infrastructure/db/mongo"
	redisdb "github.com/keijiban/bulletin-board/internal/infrastructure/db/redis"
)

// NewRouter builds the Echo instance with all routes registered, wiring the
// Mongo repositories and the Redis feed cache.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	users := mongodb.NewUserRepository(db, cfg.Mongo.UsersCollection)
	posts := mongodb.NewPostRepository(db, cfg.Mongo.PostsCollection)
	cache := redisdb.NewPostCache(rdb, cfg.Redis.FeedCacheTTL)
	readiness := handler.NewReadinessHandler(db, rdb)

	return newRouter(cfg, log, users, posts, cache, readiness.Readiness)
}

// newRouter wires middleware, services, and routes from already-constructed
// collaborators. Tests use it with in-memory repositories; readiness may be
// nil, in which case the probe route is not registered.
func newRouter(
	cfg *config.Config,
	log zerolog.Logger,
	users ports.UserRepository,
	posts ports.PostRepository,
	cache service.FeedCache,
	readiness echo.HandlerFunc,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins(),
	}))
	e.Use(echoprometheus.NewMiddleware("board"))

	// --- Dependencies ---
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL())
	authService := service.NewAuthService(users, tokens, log)
	userService := service.NewUserService(users, log)
	postService := service.NewPostService(posts, cache, log)

	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	postHandler := handler.NewPostHandler(postService)

	authRequired := middleware.Auth(tokens)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Health and operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	e.GET("/", healthHandler.Liveness)
	if readiness != nil {
		e.GET("/health/ready", readiness)
	}
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authRequired)

	// --- User management (admin only) ---
	usersGroup := e.Group("/users", authRequired, adminOnly)
	usersGroup.POST("", userHandler.Create)
	usersGroup.GET("", userHandler.List)
	usersGroup.GET("/:id", userHandler.Get)
	usersGroup.PUT("/:id", userHandler.Update)
	usersGroup.DELETE("/:id", userHandler.Delete)

	// --- Posts (any authenticated user; owner-or-admin enforced in service) ---
	postsGroup := e.Group("/posts", authRequired)
	postsGroup.POST("", postHandler.Create)
	postsGroup.GET("", postHandler.List)
	postsGroup.GET("/:id", postHandler.Get)
	postsGroup.PUT("/:id", postHandler.Update)
	postsGroup.DELETE("/:id", postHandler.Delete)

	return e
}
