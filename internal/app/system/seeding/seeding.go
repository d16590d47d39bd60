// internal/app/system/seeding/seeding.go
package seeding

import (
	"context"
	"errors"

	userstore "github.com/bnomad/website/internal/app/store/users"
	"github.com/bnomad/website/internal/app/system/authutil"
	"github.com/bnomad/website/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SeedAll seeds default data if not already present.
func SeedAll(ctx context.Context, db *mongo.Database, logger *zap.Logger, adminEmail, adminName, adminPassword string) error {
	if err := seedAdmin(ctx, db, logger, adminEmail, adminName, adminPassword); err != nil {
		return err
	}
	return nil
}

// seedAdmin creates the initial admin account from config if no account
// with that email exists yet. With no seed email configured the step is
// skipped, which is normal once real accounts exist.
func seedAdmin(ctx context.Context, db *mongo.Database, logger *zap.Logger, email, name, password string) error {
	if email == "" {
		logger.Debug("no seed admin configured, skipping")
		return nil
	}

	store := userstore.New(db)

	if _, err := store.GetByEmail(ctx, email); err == nil {
		logger.Debug("seed admin already exists", zap.String("email", email))
		return nil
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		logger.Error("failed to check for seed admin",
			zap.String("email", email),
			zap.Error(err))
		return err
	}

	if name == "" {
		name = "Admin"
	}
	u := models.User{
		Email:         email,
		DisplayName:   name,
		EmailVerified: true,
		Status:        models.StatusActive,
	}

	if password != "" {
		if err := authutil.ValidatePassword(password); err != nil {
			logger.Error("seed admin password rejected", zap.Error(err))
			return err
		}
		hash, err := authutil.HashPassword(password)
		if err != nil {
			return err
		}
		u.PasswordHash = &hash
	}

	created, err := store.Create(ctx, u)
	if err != nil {
		// Lost a race with another instance seeding the same account.
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			return nil
		}
		logger.Error("failed to seed admin account",
			zap.String("email", email),
			zap.Error(err))
		return err
	}

	logger.Info("seeded admin account",
		zap.String("email", created.Email),
		zap.Bool("has_password", u.PasswordHash != nil))
	return nil
}
