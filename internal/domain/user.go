package domain

import "time"

// User is an account that can sign in and manage tickets. Accounts are only
// ever created through the createadmin command; the app has no registration
// flow.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	// TODO: only the first bootstrapped account should default to admin;
	// today every created user gets the flag. Pending product decision.
	IsAdmin   bool
	CreatedAt time.Time
}
