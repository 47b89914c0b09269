package domain

import (
	"strings"
	"time"
)

// User represents a registered rider account.
type User struct {
	ID           int64
	Name         string
	Email        string // Always stored normalized, see NormalizeEmail.
	PasswordHash string
	CreatedAt    time.Time
}

// NormalizeEmail lower-cases and trims an email address. The result is the
// uniqueness and lookup key for users.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
