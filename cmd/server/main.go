package main

import (
	"chat_admin/internal/api"        // Custom package for API handlers
	"chat_admin/internal/config"     // Custom package for configuration
	"chat_admin/internal/repository" // Custom package for repositories
	"chat_admin/internal/service"    // Custom package for the admin service
	"context"                        // context package is needed for Redis operations
	"log"                            // log package is needed for logging

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Wire repositories and the admin operations service
	users := repository.NewUserRepository(db)
	sessions := repository.NewSessionRepository(db)
	svc := service.NewAdminService(
		users,
		sessions,
		service.Dependents{
			Messages:      repository.NewMessageRepository(db),
			Transactions:  repository.NewTransactionRepository(db),
			Balances:      repository.NewBalanceRepository(db),
			Presets:       repository.NewPresetRepository(db),
			Conversations: repository.NewConversationRepository(db),
			PluginAuths:   repository.NewPluginAuthRepository(db),
		},
		repository.NewActivityLogRepository(db),
		repository.NewStatsRepository(db),
	)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Mount the public auth routes and the guarded admin API
	api.RegisterRoutes(r, db, redisClient, cfg, svc, users, sessions)

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
