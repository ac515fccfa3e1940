package main

import (
	"log"
	"net/http"

	_ "spendwise/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"spendwise/internal/auth"
	"spendwise/internal/cache"
	"spendwise/internal/config"
	"spendwise/internal/db"
	"spendwise/internal/handler"
	"spendwise/internal/model"
	"spendwise/internal/repository"
	"spendwise/internal/router"
	"spendwise/internal/service"
)

// @title Spendwise API
// @version 1.0
// @description Personal finance API with JWT authentication and per-user expense tracking.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set; refusing to start without a signing secret")
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Expense{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	expenseRepo := repository.NewExpenseRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	hasher := auth.NewPasswordHasher(auth.DefaultBcryptCost)

	// Initialize services
	authService := service.NewAuthService(userRepo, hasher, jwtService)
	expenseService := service.NewExpenseService(expenseRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	expenseHandler := handler.NewExpenseHandler(expenseService)

	// Register routes
	router.Register(e, jwtService, authHandler, expenseHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
