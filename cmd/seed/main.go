package main

import (
	"context"
	"flag"
	"log"
	"os"

	"portfolio/internal/auth"
	"portfolio/internal/cache"
	"portfolio/internal/config"
	"portfolio/internal/db"
	"portfolio/internal/repository"
	"portfolio/internal/seed"
	"portfolio/internal/service"
)

func main() {
	source := flag.String("source", "", "seed document: file path or http(s) URL")
	flag.Parse()

	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Seeding clears the API's cached lists through the same cache.
	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	ctx := context.Background()

	username, password := os.Getenv("ADMIN_USERNAME"), os.Getenv("ADMIN_PASSWORD")
	if username != "" && password != "" {
		authService := service.NewAuthService(repository.NewAdminRepository(gormDB), auth.NewSessionService(cfg.SessionSecret, nil))
		created, err := seed.EnsureAdmin(ctx, authService, username, password)
		if err != nil {
			log.Fatalf("Failed to create admin: %v", err)
		}
		if created {
			log.Printf("Admin %q created", username)
		} else {
			log.Printf("Admin %q already exists", username)
		}
	}

	if *source == "" {
		log.Println("No -source given, skipping content")
		return
	}

	log.Printf("Loading seed document from: %s", *source)
	doc, err := seed.Load(*source)
	if err != nil {
		log.Fatalf("Failed to load seed document: %v", err)
	}

	skillRepo := repository.NewSkillRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	seeder := &seed.Seeder{
		Skills:      service.NewSkillService(skillRepo, cacheClient, cfg.CacheTTL),
		Projects:    service.NewProjectService(projectRepo, cacheClient, cfg.CacheTTL),
		About:       service.NewAboutService(repository.NewAboutInfoRepository(gormDB), cacheClient, cfg.CacheTTL),
		Contact:     service.NewContactService(repository.NewContactInfoRepository(gormDB), cacheClient, cfg.CacheTTL),
		SkillRepo:   skillRepo,
		ProjectRepo: projectRepo,
	}

	res, err := seeder.Apply(ctx, doc)
	if err != nil {
		log.Fatalf("Failed to seed content: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Skills created: %d", res.SkillsCreated)
	log.Printf("  - Projects created: %d", res.ProjectsCreated)
	log.Printf("  - About fields upserted: %d", res.AboutFields)
	log.Printf("  - Contact fields upserted: %d", res.ContactFields)
}
