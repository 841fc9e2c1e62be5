package main

import (
	"fmt"
	"log"
	"os"

	"main/config"
	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	requiredEnvVars := []string{
		"MONGO_URI",
		"JWT_SECRET_KEY",
		"REDIS_URL",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	if os.Getenv("APP_PASSWORD_HASH") == "" && os.Getenv("AUTHORIZED_EMAILS") == "" && os.Getenv("GO_ENV") != "test" {
		log.Fatal("Set APP_PASSWORD_HASH or AUTHORIZED_EMAILS to enable login")
	}
}

func setupRouter(svc *usecase.ExperienceService, authCfg config.AuthConfig) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware())

	router.GET("/health", handler.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := router.Group("/api")
	{
		public.POST("/auth/login", func(c *gin.Context) {
			handler.LoginHandler(c, authCfg)
		})
	}

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/auth/logout", handler.LogoutHandler)

		experiences := protected.Group("/experiences")
		{
			experiences.GET("", func(c *gin.Context) {
				handler.ListExperiencesHandler(c, svc)
			})
			experiences.GET("/search", func(c *gin.Context) {
				handler.SearchExperiencesHandler(c, svc)
			})
			experiences.POST("", func(c *gin.Context) {
				handler.CreateExperienceHandler(c, svc)
			})
			experiences.PUT("/:id", func(c *gin.Context) {
				handler.UpdateExperienceHandler(c, svc)
			})
			experiences.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteExperienceHandler(c, svc)
			})
		}
	}

	return router
}

func main() {
	dbCfg := config.LoadDatabaseConfig()
	authCfg := config.LoadAuthConfig()
	cacheCfg := config.LoadCacheConfig()

	if err := utils.InitJWT(authCfg.JWTSecret, authCfg.TokenLifetime); err != nil {
		log.Fatalf("Failed to initialize JWT: %v", err)
	}

	if err := utils.InitMongoClient(dbCfg.URI, dbCfg.MaxPoolSize, dbCfg.MinPoolSize, dbCfg.MaxConnIdleTime); err != nil {
		log.Fatalf("Failed to initialize MongoDB: %v", err)
	}

	// Collection-level schema enforcement is best effort: it cannot
	// attach to a collection that does not exist yet, and every
	// document is validated in the usecase layer regardless.
	db := utils.MongoClient.Database(dbCfg.DatabaseName)
	if err := repository.EnsureSchema(db, dbCfg.CollectionName); err != nil {
		log.Printf("Schema validation not applied: %v", err)
	}

	sessionStore, err := services.NewSessionStore(authCfg.RedisURL, authCfg.SessionLifetime)
	if err != nil {
		log.Fatalf("Failed to initialize session store: %v", err)
	}
	services.GlobalSessionStore = sessionStore
	services.TokenBlacklist = services.NewTokenBlacklist(sessionStore.Client())

	repo := repository.GetExperiencesRepo(utils.MongoClient)
	svc := usecase.NewExperienceService(repo, cacheCfg.ListTTL)

	router := setupRouter(svc, authCfg)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
