package main

// Seed or reset the admin account:
//   go run ./cmd/createadmin -username root -password <password>

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"resume-generator/internal/accounts"
	"resume-generator/internal/shared/config"
	"resume-generator/internal/shared/storage/db"
)

func main() {
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "", "admin password (required)")
	flag.Parse()

	if *password == "" {
		log.Fatal("-password is required")
	}

	cfg := config.Load()
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	repo := &accounts.PGRepo{DB: sqlDB}
	existing, err := repo.GetByUsername(ctx, *username)
	switch {
	case err == nil:
		existing.PasswordHash = string(hash)
		existing.Role = accounts.RoleAdmin
		existing.UpdatedAt = time.Now().UTC()
		if err := repo.Update(ctx, existing); err != nil {
			log.Fatalf("failed to update admin: %v", err)
		}
		log.Printf("updated admin account %q", *username)
	case errors.Is(err, accounts.ErrNotFound):
		account := accounts.Account{
			ID:           uuid.NewString(),
			Username:     *username,
			PasswordHash: string(hash),
			Role:         accounts.RoleAdmin,
			CreatedAt:    time.Now().UTC(),
			UpdatedAt:    time.Now().UTC(),
		}
		if err := repo.Create(ctx, account); err != nil {
			log.Fatalf("failed to create admin: %v", err)
		}
		log.Printf("created admin account %q", *username)
	default:
		log.Fatalf("failed to look up admin: %v", err)
	}
}
