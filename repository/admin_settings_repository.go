package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"estateClientManagement/internal/auth"
	"estateClientManagement/models"
)

// AdminSettingsRepository manages the singleton admin password row. It is the
// credential store for the admin panel: plaintext goes in, only the bcrypt
// hash is persisted.
type AdminSettingsRepository struct {
	db *sql.DB
}

func NewAdminSettingsRepository(db *sql.DB) *AdminSettingsRepository {
	return &AdminSettingsRepository{db: db}
}

// Get returns the settings row, or nil when none has been provisioned yet.
func (r *AdminSettingsRepository) Get(ctx context.Context) (*models.AdminSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var s models.AdminSettings
	err := r.db.QueryRowContext(ctx,
		`SELECT id, password_hash FROM admin_settings ORDER BY id LIMIT 1`).
		Scan(&s.ID, &s.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// SetPassword hashes the plaintext and stores it, creating the singleton row
// on first use and overwriting the hash afterwards.
func (r *AdminSettingsRepository) SetPassword(ctx context.Context, plaintext string) error {
	hash, err := auth.HashPassword(plaintext)
	if err != nil {
		return err
	}
	existing, err := r.Get(ctx)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if existing == nil {
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO admin_settings (password_hash) VALUES (?)`, hash)
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE admin_settings SET password_hash = ? WHERE id = ?`, hash, existing.ID)
	return err
}

// VerifyPassword reports whether the plaintext matches the stored hash. A
// missing settings row verifies as false, indistinguishable from a wrong
// password.
func (r *AdminSettingsRepository) VerifyPassword(ctx context.Context, plaintext string) (bool, error) {
	s, err := r.Get(ctx)
	if err != nil {
		return false, err
	}
	if s == nil {
		return false, nil
	}
	return auth.CheckPassword(s.PasswordHash, plaintext), nil
}
