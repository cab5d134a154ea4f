package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/rabnifoundation/rabni-api/config"
	"github.com/rabnifoundation/rabni-api/internal/domain/entity"
	pginfra "github.com/rabnifoundation/rabni-api/internal/infrastructure/postgres"
	"github.com/rabnifoundation/rabni-api/pkg/helpers"
)

// seed creates (or resets) one sign-in account and gives it an admin profile.
// Use -role editor to seed an account the admin gate must turn away.
func main() {
	_ = godotenv.Load()

	email := flag.String("email", "admin@rabnifoundation.org", "account email")
	password := flag.String("password", "change-me-now", "account password")
	name := flag.String("name", "RABNI Admin", "display name")
	role := flag.String("role", entity.RoleAdmin.String(), "admin_profiles.role label")
	flag.Parse()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	hash, err := helpers.HashPassword(*password)
	if err != nil {
		logger.WithError(err).Fatal("failed to hash password")
	}

	u := &entity.User{Email: *email, Password: hash, Name: *name}
	if err := pginfra.NewUserRepository(pool).Create(ctx, u); err != nil {
		logger.WithError(err).Fatal("failed to seed user")
	}
	if err := pginfra.NewProfileRepository(pool).Upsert(ctx, u.ID, *role); err != nil {
		logger.WithError(err).Fatal("failed to seed admin profile")
	}

	logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email, "role": *role}).Info("seeded account")
	fmt.Printf("seeded %s (%s) with role %q\n", u.Email, u.ID, *role)
}
