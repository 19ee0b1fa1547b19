// Package bootstrap provisions the rows the application expects at startup.
package bootstrap

import (
	"context"

	"go.uber.org/zap"

	"estateClientManagement/internal/auth"
	"estateClientManagement/internal/logging"
	"estateClientManagement/repository"
)

const (
	defaultUsername      = "union"
	defaultEmail         = "union@unionestate.com"
	defaultUserPassword  = "union1234"
	defaultAdminPassword = "admin123"
)

// EnsureDefaults makes sure the default application user and the singleton
// admin password row exist. It is idempotent and safe to run on every start.
func EnsureDefaults(ctx context.Context, users *repository.UserRepository, admin *repository.AdminSettingsRepository, log *logging.Logger) error {
	u, err := users.GetByUsername(ctx, defaultUsername)
	if err != nil {
		return err
	}
	if u == nil {
		hash, err := auth.HashPassword(defaultUserPassword)
		if err != nil {
			return err
		}
		if _, err := users.Create(ctx, defaultUsername, defaultEmail, hash); err != nil {
			return err
		}
		log.Info("default user created", zap.String("username", defaultUsername))
	}

	settings, err := admin.Get(ctx)
	if err != nil {
		return err
	}
	if settings == nil {
		if err := admin.SetPassword(ctx, defaultAdminPassword); err != nil {
			return err
		}
		log.Info("admin panel password created")
	}
	return nil
}
