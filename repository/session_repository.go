package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"estateClientManagement/models"
)

// SessionRepository persists per-cookie session state: the logged-in user id,
// the admin flag with its activation timestamp, and the one-shot flash
// notice. Sessions are keyed by a random uuid; the signed cookie only ever
// carries that id.
type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a fresh anonymous session and returns it.
func (r *SessionRepository) Create(ctx context.Context) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	s := &models.Session{ID: uuid.NewString(), CreatedAt: now()}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, created_at) VALUES (?, ?)`,
		s.ID, s.CreatedAt.Format(sqliteDateFormat))
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the session, or nil for an unknown id.
func (r *SessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var (
		s           models.Session
		userID      sql.NullInt64
		activatedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, admin_active, admin_activated_at, flash, created_at
		 FROM sessions WHERE id = ?`, id).
		Scan(&s.ID, &userID, &s.AdminActive, &activatedAt, &s.Flash, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if userID.Valid {
		s.UserID = &userID.Int64
	}
	if activatedAt.Valid {
		t := activatedAt.Time
		s.AdminActivatedAt = &t
	}
	return &s, nil
}

// SetUser binds the session to a user identity.
func (r *SessionRepository) SetUser(ctx context.Context, id string, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `UPDATE sessions SET user_id = ? WHERE id = ?`, userID, id)
	return err
}

// ClearUser returns the session to the anonymous state without touching the
// admin flag.
func (r *SessionRepository) ClearUser(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `UPDATE sessions SET user_id = NULL WHERE id = ?`, id)
	return err
}

// SetAdmin activates the admin flag and records when it happened.
func (r *SessionRepository) SetAdmin(ctx context.Context, id string, activatedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET admin_active = 1, admin_activated_at = ? WHERE id = ?`,
		activatedAt.UTC().Format(sqliteDateFormat), id)
	return err
}

// ClearAdmin deactivates the admin flag without touching the user identity.
func (r *SessionRepository) ClearAdmin(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET admin_active = 0, admin_activated_at = NULL WHERE id = ?`, id)
	return err
}

// SetFlash stores the notice the next rendered page should display.
func (r *SessionRepository) SetFlash(ctx context.Context, id, message string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `UPDATE sessions SET flash = ? WHERE id = ?`, message, id)
	return err
}

// TakeFlash returns the pending notice and clears it, so it renders once.
func (r *SessionRepository) TakeFlash(ctx context.Context, id string) (string, error) {
	s, err := r.Get(ctx, id)
	if err != nil || s == nil || s.Flash == "" {
		return "", err
	}
	if err := r.SetFlash(ctx, id, ""); err != nil {
		return "", err
	}
	return s.Flash, nil
}

// Delete destroys the session entirely.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	return err
}
