package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"main/config"
	"main/dto"
	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/store"
	"main/usecase"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
		"REDIS_URL",
	}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}
}

func connectMongo(cfg config.DatabaseConfig) *mongo.Client {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	return client
}

func setupRouter(
	authService *usecase.AuthService,
	notesService *usecase.NotesService,
	analyticsService *usecase.AnalyticsService,
	provider usecase.AuthProvider,
	sessions *services.SessionStore,
) *gin.Engine {
	dto.RegisterValidators()

	router := gin.Default()

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.MetricsMiddleware())

	router.GET("/health", handler.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/login", func(c *gin.Context) {
				handler.LoginHandler(c, authService)
			})
			auth.POST("/register", func(c *gin.Context) {
				handler.RegistrationHandler(c, authService)
			})
			auth.POST("/google", func(c *gin.Context) {
				handler.GoogleSignInHandler(c, authService)
			})
			auth.POST("/logout", func(c *gin.Context) {
				handler.LogoutHandler(c, authService)
			})
			auth.POST("/password-reset", func(c *gin.Context) {
				handler.PasswordResetHandler(c, authService)
			})
			auth.GET("/user/:id", func(c *gin.Context) {
				handler.GetUserHandler(c, authService)
			})
		}
	}

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(provider))
	{
		protected.POST("/auth/change-password", func(c *gin.Context) {
			handler.ChangePasswordHandler(c, authService)
		})
		protected.GET("/auth/sessions", func(c *gin.Context) {
			handler.GetActiveSessionsHandler(c, sessions)
		})

		note := protected.Group("/note")
		{
			note.GET("", func(c *gin.Context) {
				handler.GetNotesHandler(c, notesService)
			})
			note.POST("", func(c *gin.Context) {
				handler.AddNoteHandler(c, notesService)
			})
			note.PUT("/:id", func(c *gin.Context) {
				handler.UpdateNoteHandler(c, notesService)
			})
			note.PATCH("/:id/toggle", func(c *gin.Context) {
				handler.ToggleNoteStatusHandler(c, notesService)
			})
			note.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteNoteHandler(c, notesService)
			})
		}

		analytics := protected.Group("/analytics")
		{
			analytics.GET("/month/:year/:month", func(c *gin.Context) {
				handler.GetAnalyticsForMonthHandler(c, analyticsService)
			})
			analytics.GET("/date/:year/:month/:day", func(c *gin.Context) {
				handler.GetTasksForDateHandler(c, analyticsService)
			})
		}
	}

	return router
}

func main() {
	dbConfig := config.LoadDatabaseConfig()
	authConfig := config.LoadAuthConfig()
	redisConfig := config.LoadRedisConfig()
	serverConfig := config.LoadServerConfig()

	mongoClient := connectMongo(dbConfig)
	db := mongoClient.Database(dbConfig.DatabaseName)

	if err := repository.SetupIndexes(db, dbConfig.NotesCollection, dbConfig.UsersCollection); err != nil {
		log.Fatalf("Failed to set up indexes: %v", err)
	}

	gateway := store.NewMongoGateway(db,
		dbConfig.UsersCollection, dbConfig.NotesCollection, dbConfig.CredentialsCollection)

	sessions, err := services.NewSessionStore(redisConfig.URL, redisConfig.SessionTTL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	provider := services.NewIdentityProvider(gateway, sessions, authConfig)

	userRepo := repository.NewUserRepo(gateway)
	notesRepo := repository.NewNotesRepo(gateway, serverConfig.AudioRoot)

	authService := &usecase.AuthService{Provider: provider, UserRepo: userRepo}
	notesService := &usecase.NotesService{NotesRepo: notesRepo}
	analyticsService := &usecase.AnalyticsService{NotesRepo: notesRepo}

	router := setupRouter(authService, notesService, analyticsService, provider, sessions)

	serverAddr := fmt.Sprintf(":%s", serverConfig.Port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
