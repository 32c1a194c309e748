package repository

import "strings"

// isUniqueViolation reports whether err is a Postgres duplicate-key
// error on the named constraint. The pgx stdlib driver surfaces these
// as plain errors carrying the SQLSTATE and constraint name.
func isUniqueViolation(err error, constraint string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") && strings.Contains(msg, constraint)
}
