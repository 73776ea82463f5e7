package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/bizsuite/crm-api/internal/domain/contract"
	handlerHttp "github.com/bizsuite/crm-api/internal/handler/http"
	redisclient "github.com/bizsuite/crm-api/internal/infrastructure/cache"
	"github.com/bizsuite/crm-api/internal/infrastructure/config"
	"github.com/bizsuite/crm-api/internal/infrastructure/database"
	"github.com/bizsuite/crm-api/internal/infrastructure/external_services"
	"github.com/bizsuite/crm-api/internal/infrastructure/jwt"
	"github.com/bizsuite/crm-api/internal/infrastructure/logger"
	passwordservice "github.com/bizsuite/crm-api/internal/infrastructure/password_service"
	randomgenerator "github.com/bizsuite/crm-api/internal/infrastructure/random_generator"
	"github.com/bizsuite/crm-api/internal/infrastructure/repository/mongodb"
	"github.com/bizsuite/crm-api/internal/infrastructure/store"
	"github.com/bizsuite/crm-api/internal/infrastructure/uuidgen"
	"github.com/bizsuite/crm-api/internal/infrastructure/validator"
	"github.com/bizsuite/crm-api/internal/usecase"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI environment variable not set")
	}
	dbName := os.Getenv("MONGODB_DB_NAME")
	if dbName == "" {
		dbName = "bizsuite"
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	mongoClient, err := database.NewMongoDBClient(context.Background(), mongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer database.Disconnect(mongoClient)

	// Register custom validators
	validator.RegisterCustomValidators()

	// Dependency Injection: Repositories
	db := mongoClient.Database(dbName)
	userRepo := mongodb.NewMongoUserRepository(db.Collection("users"))
	tokenRepo := mongodb.NewTokenRepository(db.Collection("tokens"))
	clientRepo := mongodb.NewClientRepository(db.Collection("clients"))
	leadRepo := mongodb.NewLeadRepository(db.Collection("leads"))
	taskRepo := mongodb.NewTaskRepository(db.Collection("tasks"))
	noteRepo := mongodb.NewNoteRepository(db.Collection("notes"))
	activityRepo := mongodb.NewActivityRepository(db.Collection("activities"))
	notificationRepo := mongodb.NewNotificationRepository(db.Collection("notifications"))

	// Dependency Injection: Services
	appConfig := config.NewConfig()
	appLogger := logger.NewAppLogger()
	hasher := passwordservice.NewHasher()
	jwtManager := jwt.NewJWTManager(jwtSecret, "bizsuite-crm", 15*time.Minute, appConfig.GetRefreshTokenExpiry())
	jwtService := jwt.NewJWTService(jwtManager)
	mailService := external_services.NewEmailService(
		os.Getenv("EMAIL_HOST"),
		os.Getenv("EMAIL_PORT"),
		os.Getenv("EMAIL_USERNAME"),
		os.Getenv("EMAIL_APP_PASSWORD"),
		os.Getenv("EMAIL_FROM"),
	)
	randomGenerator := randomgenerator.NewRandomGenerator()
	appValidator := validator.NewValidator()
	uuidGenerator := uuidgen.NewGenerator()
	aiService := external_services.NewGeminiService(appConfig.GetAIServiceAPIKey())

	// Optional Dependency Injection: Redis-backed lead list cache
	var leadCache contract.ILeadCache = store.NewNoopLeadCache()
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		rdb, err := redisclient.NewRedisFromURL(context.Background(), redisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()
		leadCache = store.NewLeadCacheStore(rdb)
	}

	// Dependency Injection: Usecases
	notificationUsecase := usecase.NewNotificationUsecase(notificationRepo, uuidGenerator, appLogger)
	userUsecase := usecase.NewUserUsecase(userRepo, tokenRepo, hasher, jwtService, mailService, appLogger, appConfig, appValidator, uuidGenerator, randomGenerator)
	clientUsecase := usecase.NewClientUsecase(clientRepo, userRepo, notificationUsecase, uuidGenerator, appLogger)
	leadUsecase := usecase.NewLeadUsecase(leadRepo, userRepo, leadCache, notificationUsecase, uuidGenerator, appLogger)
	taskUsecase := usecase.NewTaskUsecase(taskRepo, userRepo, notificationUsecase, uuidGenerator, appLogger)
	noteUsecase := usecase.NewNoteUsecase(noteRepo, uuidGenerator, appLogger)
	activityUsecase := usecase.NewActivityUsecase(activityRepo, userRepo, notificationUsecase, uuidGenerator, appLogger)
	dashboardUsecase := usecase.NewDashboardUsecase(leadRepo, clientRepo, taskRepo, noteRepo, appLogger)
	aiUsecase := usecase.NewAIUsecase(aiService, appLogger)

	// Setup API routes
	router := gin.Default()
	appRouter := handlerHttp.NewRouter(
		userUsecase, clientUsecase, leadUsecase, taskUsecase, noteUsecase,
		activityUsecase, notificationUsecase, dashboardUsecase, aiUsecase,
		appConfig,
	)
	appRouter.SetupRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
