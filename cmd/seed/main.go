// Command seed bootstraps the first admin account. It refuses to create a
// second admin, so it is safe to run on every deploy.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"communityhub/internal/config"
	"communityhub/internal/db"
	"communityhub/internal/model"
	"communityhub/internal/repository"
)

const adminExpiry = 5 * 365 * 24 * time.Hour

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)

	count, err := userRepo.CountByRole(ctx, model.RoleAdmin)
	if err != nil {
		log.Fatalf("Failed to count admins: %v", err)
	}
	if count > 0 {
		log.Println("Admin account already exists, nothing to do")
		return
	}

	username := envOr("ADMIN_USERNAME", "admin")
	email := envOr("ADMIN_EMAIL", "admin@communityhub.local")
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("ADMIN_PASSWORD must be set to seed the admin account")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		Status:       model.StatusActive,
		ExpiryDate:   time.Now().Add(adminExpiry),
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	log.Printf("Admin account %q created", username)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
