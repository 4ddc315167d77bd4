// Command seed provisions a verified demo account with the default catalog,
// for local development without a mail transport.
package main

import (
	"context"
	"flag"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"homeneeds/internal/config"
	"homeneeds/internal/db"
	"homeneeds/internal/model"
	"homeneeds/internal/repository"
	"homeneeds/internal/service"
)

func main() {
	name := flag.String("name", "demo", "demo account username")
	email := flag.String("email", "demo@homeneeds.local", "demo account email")
	password := flag.String("password", "demo123", "demo account password")
	flag.Parse()

	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Item{}, &model.DeletedItem{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	itemService := service.NewItemService(repository.NewItemRepository(gormDB))

	user, err := userRepo.FindByName(ctx, *name)
	if err == gorm.ErrRecordNotFound {
		hash, err := bcrypt.GenerateFromPassword([]byte(*password), 10)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		user = &model.User{
			Name:         *name,
			Email:        *email,
			PasswordHash: string(hash),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create demo user: %v", err)
		}
		log.Printf("Created demo user %q (id %d)", user.Name, user.ID)
	} else if err != nil {
		log.Fatalf("Failed to look up demo user: %v", err)
	} else {
		log.Printf("Demo user %q already exists (id %d)", user.Name, user.ID)
	}

	if !user.IsVerified {
		if err := userRepo.MarkVerified(ctx, user.ID); err != nil {
			log.Fatalf("Failed to verify demo user: %v", err)
		}
		log.Println("Demo user marked verified")
	}

	// No-op if the user already owns items.
	if err := itemService.SeedDefaults(ctx, user.ID); err != nil {
		log.Fatalf("Failed to seed default catalog: %v", err)
	}
	log.Println("Default catalog seeded")
	log.Println("Seed script completed")
}
