package repository

import (
	"errors"
	"time"

	"github.com/mattn/go-sqlite3"
)

const sqliteDateFormat = "2006-01-02 15:04:05"

// now returns the current UTC time truncated to the precision DATETIME
// columns store.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// isConstraintErr reports whether err is a SQLite constraint violation
// (UNIQUE, PRIMARY KEY, ...).
func isConstraintErr(err error) bool {
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		return serr.Code == sqlite3.ErrConstraint
	}
	return false
}
