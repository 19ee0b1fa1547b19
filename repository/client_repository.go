package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"estateClientManagement/internal/apperr"
	"estateClientManagement/models"
)

type ClientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

var (
	idMu   sync.Mutex
	lastID int64
)

// nextTimestampID derives a client id from the current time in milliseconds
// since the epoch. Successive calls within the same millisecond bump the
// value so derived ids never collide within a process.
func nextTimestampID() string {
	idMu.Lock()
	defer idMu.Unlock()
	ms := time.Now().UnixMilli()
	if ms <= lastID {
		ms = lastID + 1
	}
	lastID = ms
	return strconv.FormatInt(ms, 10)
}

const clientColumns = `id, name, contact, society, plot_no, block, price, size, date, description, created_at`

func scanClient(row interface{ Scan(...any) error }) (*models.Client, error) {
	var c models.Client
	err := row.Scan(&c.ID, &c.Name, &c.Contact, &c.Society, &c.PlotNo, &c.Block,
		&c.Price, &c.Size, &c.Date, &c.Description, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all clients, newest created_at first. Rowid breaks ties so
// rows created within the same second keep a stable newest-first order.
func (r *ClientRepository) List(ctx context.Context) ([]*models.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+clientColumns+` FROM clients ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*models.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Recent returns the n most recently created clients, newest first.
func (r *ClientRepository) Recent(ctx context.Context, n int) ([]*models.Client, error) {
	if n <= 0 {
		n = 5
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+clientColumns+` FROM clients ORDER BY created_at DESC, rowid DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*models.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id string) (*models.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	c, err := scanClient(r.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

// Create inserts the client, deriving a timestamp id when c.ID is empty, and
// returns the stored record. A duplicate id surfaces as apperr.ErrValidation.
func (r *ClientRepository) Create(ctx context.Context, c *models.Client) (*models.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if c.ID == "" {
		c.ID = nextTimestampID()
	}
	c.CreatedAt = now()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (`+clientColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Contact, c.Society, c.PlotNo, c.Block,
		c.Price, c.Size, c.Date, c.Description, c.CreatedAt.Format(sqliteDateFormat))
	if err != nil {
		if isConstraintErr(err) {
			return nil, fmt.Errorf("client id %q already exists: %w", c.ID, apperr.ErrValidation)
		}
		return nil, err
	}
	return c, nil
}

// Update applies a partial patch: nil patch fields keep the stored values.
// Returns the updated record, or apperr.ErrNotFound for an unknown id.
func (r *ClientRepository) Update(ctx context.Context, id string, patch *models.ClientPatch) (*models.Client, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("client %q: %w", id, apperr.ErrNotFound)
	}
	patch.Apply(c)

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err = r.db.ExecContext(ctx,
		`UPDATE clients SET name = ?, contact = ?, society = ?, plot_no = ?, block = ?,
		 price = ?, size = ?, date = ?, description = ? WHERE id = ?`,
		c.Name, c.Contact, c.Society, c.PlotNo, c.Block,
		c.Price, c.Size, c.Date, c.Description, id)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("client %q: %w", id, apperr.ErrNotFound)
	}
	return nil
}

func (r *ClientRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&n)
	return n, err
}

// ReplaceAll atomically replaces the whole clients table with the supplied
// records, deriving timestamp ids for items that lack one. Prior rows are
// unconditionally discarded; on any failure the transaction rolls back and
// the table is untouched. Returns the number of imported rows.
func (r *ClientRepository) ReplaceAll(ctx context.Context, items []*models.Client) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM clients`); err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	createdAt := now().Format(sqliteDateFormat)
	for _, c := range items {
		if c.ID == "" {
			c.ID = nextTimestampID()
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO clients (`+clientColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.Name, c.Contact, c.Society, c.PlotNo, c.Block,
			c.Price, c.Size, c.Date, c.Description, createdAt)
		if err != nil {
			_ = tx.Rollback()
			if isConstraintErr(err) {
				return 0, fmt.Errorf("client id %q already exists: %w", c.ID, apperr.ErrValidation)
			}
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(items), nil
}
