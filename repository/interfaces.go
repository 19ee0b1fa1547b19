package repository

import (
	"context"
	"time"

	"estateClientManagement/models"
)

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, username, email, passwordHash string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
	UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error)
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
	Update(ctx context.Context, id int64, username, email, passwordHash string) error
	Delete(ctx context.Context, id int64) error
}

// ClientRepositoryI defines operations on Client records.
type ClientRepositoryI interface {
	List(ctx context.Context) ([]*models.Client, error)
	Recent(ctx context.Context, n int) ([]*models.Client, error)
	GetByID(ctx context.Context, id string) (*models.Client, error)
	Create(ctx context.Context, c *models.Client) (*models.Client, error)
	Update(ctx context.Context, id string, patch *models.ClientPatch) (*models.Client, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	ReplaceAll(ctx context.Context, items []*models.Client) (int, error)
}

// AdminSettingsRepositoryI defines the admin credential store.
type AdminSettingsRepositoryI interface {
	Get(ctx context.Context) (*models.AdminSettings, error)
	SetPassword(ctx context.Context, plaintext string) error
	VerifyPassword(ctx context.Context, plaintext string) (bool, error)
}

// SessionRepositoryI defines the server-side session store.
type SessionRepositoryI interface {
	Create(ctx context.Context) (*models.Session, error)
	Get(ctx context.Context, id string) (*models.Session, error)
	SetUser(ctx context.Context, id string, userID int64) error
	ClearUser(ctx context.Context, id string) error
	SetAdmin(ctx context.Context, id string, activatedAt time.Time) error
	ClearAdmin(ctx context.Context, id string) error
	SetFlash(ctx context.Context, id, message string) error
	TakeFlash(ctx context.Context, id string) (string, error)
	Delete(ctx context.Context, id string) error
}

var (
	_ UserRepositoryI          = (*UserRepository)(nil)
	_ ClientRepositoryI        = (*ClientRepository)(nil)
	_ AdminSettingsRepositoryI = (*AdminSettingsRepository)(nil)
	_ SessionRepositoryI       = (*SessionRepository)(nil)
)
