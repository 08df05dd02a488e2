package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/flocknet/backend/internal/handlers"
	"github.com/flocknet/backend/internal/middleware"
	"github.com/flocknet/backend/internal/models"
	"github.com/flocknet/backend/internal/repositories"
	"github.com/flocknet/backend/internal/services"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes migrates the schema, wires dependencies and registers all
// routes. firebaseAuthClient may be nil; the Firebase login route is
// then omitted.
func SetupRoutes(e *echo.Echo, db *gorm.DB, firebaseAuthClient *auth.Client, jwtSecret string) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Notification{},
		&models.RevokedToken{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}

	e.GET("/health", handlers.HealthCheck)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	followRepo := repositories.NewFollowRepository(db)
	postRepo := repositories.NewPostRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	likeRepo := repositories.NewLikeRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	tokenRepo := repositories.NewTokenRepository(db)

	// Services
	followService := services.NewFollowService(db)
	postService := services.NewPostService(db)
	commentService := services.NewCommentService(db)
	likeService := services.NewLikeService(db)
	feedService := services.NewFeedService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, tokenRepo, firebaseAuthClient, jwtSecret)
	userHandler := handlers.NewUserHandler(userRepo, followRepo)
	followHandler := handlers.NewFollowHandler(followService, userRepo)
	postHandler := handlers.NewPostHandler(postService, postRepo, commentRepo, likeRepo, userRepo)
	commentHandler := handlers.NewCommentHandler(commentService, commentRepo, userRepo)
	likeHandler := handlers.NewLikeHandler(likeService)
	feedHandler := handlers.NewFeedHandler(feedService, userRepo, likeRepo, commentRepo)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)

	// Unauthenticated auth routes
	authGroup := e.Group("/api/v1/auth")
	authHandler.RegisterAuthRoutes(authGroup)

	// Public reads; a valid token is honored for caller-specific flags
	// but not required
	public := e.Group("/api/v1")
	public.Use(middleware.OptionalJWTAuthMiddleware(jwtSecret, tokenRepo))
	userHandler.RegisterPublicRoutes(public)
	postHandler.RegisterPublicRoutes(public)
	commentHandler.RegisterPublicRoutes(public)

	// Protected routes
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(jwtSecret, tokenRepo))
	authHandler.RegisterProtectedAuthRoutes(api)
	userHandler.RegisterProfileRoutes(api)
	followHandler.RegisterFollowRoutes(api)
	postHandler.RegisterPostRoutes(api)
	commentHandler.RegisterCommentRoutes(api)
	likeHandler.RegisterLikeRoutes(api)
	feedHandler.RegisterFeedRoutes(api)
	notificationHandler.RegisterNotificationRoutes(api)

	log.Println("All routes configured.")
}
