package main

import (
	"log"
	"net/http"
	"os"

	"homeneeds/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"homeneeds/internal/auth"
	"homeneeds/internal/cache"
	"homeneeds/internal/config"
	"homeneeds/internal/db"
	"homeneeds/internal/handler"
	"homeneeds/internal/mailer"
	"homeneeds/internal/model"
	"homeneeds/internal/repository"
	"homeneeds/internal/router"
	"homeneeds/internal/service"
)

// @title Home Needs API
// @version 1.0
// @description Household shopping and inventory tracker with email verification, recoverable deletes and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.DeletedItem{},
			&model.Item{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Item{},
		&model.DeletedItem{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	itemRepo := repository.NewItemRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Mail transports, in delivery order. An empty chain is fine: issuance
	// still succeeds and codes land in the server log.
	var transports []mailer.Sender
	if cfg.MailerSendAPIKey != "" {
		transports = append(transports, mailer.NewMailerSend(cfg.MailerSendAPIKey, cfg.MailFromName, cfg.MailFrom))
	}
	if cfg.SMTPHost != "" {
		transports = append(transports, mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.MailFrom, cfg.SMTPUsername, cfg.SMTPPassword))
	}
	if len(transports) == 0 && cfg.RequireVerification {
		log.Println("no mail transport configured; verification codes will only appear in the log")
	}
	dispatcher := mailer.NewDispatcher(transports...)

	// Initialize services
	itemService := service.NewItemService(itemRepo)
	verifier := service.NewVerificationService(userRepo, itemService, dispatcher, cfg.RequireVerification, cfg.CodeTTL, cfg.MailTimeout)
	authService := service.NewAuthService(userRepo, verifier, jwtService, tokenStore)
	undoService := service.NewUndoService(itemRepo)
	statsService := service.NewStatsService(itemRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	verifyHandler := handler.NewVerifyHandler(verifier, authService)
	itemHandler := handler.NewItemHandler(itemService, undoService)
	statsHandler := handler.NewStatsHandler(statsService)

	// Register routes
	router.Register(e, cfg, authHandler, verifyHandler, itemHandler, statsHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
