package models

import "time"

// Session is the server-side state behind a session cookie. UserID is set
// while a user is logged in (nullable in DB; pointer distinguishes null from
// zero). The admin flag lives here too, independent from the user identity,
// so admin state follows the cookie rather than process memory.
type Session struct {
	ID               string     `db:"id"`
	UserID           *int64     `db:"user_id"`
	AdminActive      bool       `db:"admin_active"`
	AdminActivatedAt *time.Time `db:"admin_activated_at"`
	Flash            string     `db:"flash"`
	CreatedAt        time.Time  `db:"created_at"`
}
