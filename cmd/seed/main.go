package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"geotrack/internal/auth"
	"geotrack/internal/config"
	"geotrack/internal/db"
	"geotrack/internal/model"
	"geotrack/internal/repository"
)

// Seeds the first admin account so user management is reachable on a fresh
// database. Idempotent: an existing account with the seed email is left alone.
func main() {
	cfg := config.Load()

	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	email := envOr("SEED_ADMIN_EMAIL", "admin@example.com")
	password := envOr("SEED_ADMIN_PASSWORD", "changeme")

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := gormDB.AutoMigrate(&model.User{}, &model.GpsTrack{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	userRepo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	if existing, err := userRepo.FindByEmail(ctx, email); err == nil {
		log.Infof("admin %s already exists (id %s), nothing to do", email, existing.ID)
		return
	} else if err != gorm.ErrRecordNotFound {
		log.Fatalf("check admin: %v", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	admin := &model.User{
		Name:         "admin",
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("create admin: %v", err)
	}

	log.Infof("seeded admin %s with id %s", email, admin.ID)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
