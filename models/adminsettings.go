package models

// AdminSettings holds the admin panel password hash. Exactly one row exists
// after bootstrap; it is only ever mutated through the settings-change flow.
type AdminSettings struct {
	ID           int64  `db:"id" json:"id"`
	PasswordHash string `db:"password_hash" json:"-"`
}
