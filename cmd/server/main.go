package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tripcover.backend/internal/config"
	"tripcover.backend/internal/infrastructure/repositories"
	"tripcover.backend/internal/infrastructure/storage"
	"tripcover.backend/internal/interfaces/http/handlers"
	"tripcover.backend/internal/interfaces/http/middleware"
	"tripcover.backend/internal/usecases"
	"tripcover.backend/pkg/jwt"
	"tripcover.backend/pkg/logger"
	"tripcover.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{})
	}
	newSessionStore = redis.NewSessionStore
	runServer       = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("connected to PostgreSQL")
	}

	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.Expiry)

	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	blobStore, err := storage.NewLocalBlobStore(cfg.Storage.Dir, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize blob store: %w", err)
	}

	// Repositories
	verificationRepo := repositories.NewVerificationRepository(db)
	walletRepo := repositories.NewWalletRepository(db)
	changeRepo := repositories.NewChangeRequestRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Usecases
	verificationUsecase := usecases.NewVerificationUsecase(verificationRepo, blobStore, uow)
	walletUsecase := usecases.NewWalletUsecase(walletRepo, changeRepo, verificationRepo, uow)

	// Handlers
	verificationHandler := handlers.NewVerificationHandler(verificationUsecase)
	walletHandler := handlers.NewWalletHandler(walletUsecase)
	adminHandler := handlers.NewAdminHandler(verificationUsecase, walletUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService, sessionStore)
	adminMiddleware := middleware.AdminKeyMiddleware(cfg.Security.AdminAPIKeyHash)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerDocumentFiles(r, cfg.Storage.Dir)
	registerAPIV1Routes(r, routeDeps{
		verificationHandler: verificationHandler,
		walletHandler:       walletHandler,
		adminHandler:        adminHandler,
		authMiddleware:      authMiddleware,
		adminMiddleware:     adminMiddleware,
	})

	log.Printf("tripcover backend starting on port %s", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
