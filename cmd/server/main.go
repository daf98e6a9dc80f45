package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "portfolio/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"portfolio/internal/auth"
	"portfolio/internal/cache"
	"portfolio/internal/config"
	"portfolio/internal/db"
	"portfolio/internal/handler"
	"portfolio/internal/repository"
	"portfolio/internal/router"
	"portfolio/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title Portfolio API
// @version 1.0
// @description Content API for a personal portfolio site: skills, projects, about and contact fields, and a contact inbox behind an admin session.
// @host localhost:8080
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name session
// @description Set by POST /auth/login.
func main() {
	cfg := config.Load()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.SessionSecret == config.DefaultSessionSecret {
		log.Println("Warning: SESSION_SECRET is not set, using the insecure default (COOKIE_SECURE=false)")
	}

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if cfg.ResetDB {
		log.Println("RESET_DB=true detected, dropping all tables...")
		db.DropAll(gormDB)
		log.Println("Tables dropped")
	}

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("%v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	// Initialize repositories
	adminRepo := repository.NewAdminRepository(gormDB)
	skillRepo := repository.NewSkillRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	aboutRepo := repository.NewAboutInfoRepository(gormDB)
	contactRepo := repository.NewContactInfoRepository(gormDB)
	messageRepo := repository.NewMessageRepository(gormDB)

	// Initialize auth components
	tokenStore := auth.NewTokenStore(cacheClient)
	sessions := auth.NewSessionService(cfg.SessionSecret, tokenStore)

	// Initialize services
	authService := service.NewAuthService(adminRepo, sessions)
	skillService := service.NewSkillService(skillRepo, cacheClient, cfg.CacheTTL)
	projectService := service.NewProjectService(projectRepo, cacheClient, cfg.CacheTTL)
	aboutService := service.NewAboutService(aboutRepo, cacheClient, cfg.CacheTTL)
	contactService := service.NewContactService(contactRepo, cacheClient, cfg.CacheTTL)
	messageService := service.NewMessageService(messageRepo)

	e := echo.New()
	e.HideBanner = true

	// Register routes
	router.Register(e, cfg, router.Handlers{
		Auth:    handler.NewAuthHandler(authService, cfg.CookieSecure),
		Skill:   handler.NewSkillHandler(skillService),
		Project: handler.NewProjectHandler(projectService),
		Info:    handler.NewInfoHandler(aboutService, contactService),
		Message: handler.NewMessageHandler(messageService),
	}, sessions)

	if !cfg.InitAdminEnabled {
		log.Println("Admin initialization endpoint disabled")
	}
	log.Printf("Swagger documentation available at: %s", swaggerURL(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server start: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return strings.TrimRight(host, "/") + "/swagger/index.html"
}
