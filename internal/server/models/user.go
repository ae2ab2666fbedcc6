package models

import "time"

// User is a registered account. UserID is the public sequential identifier
// (assigned as "last created + 1" starting at 10000000); Email is unique
// among activated accounts.
type User struct {
	UserID         int64
	Username       string
	GameID         int64
	Email          string
	PasswordHash   string
	Activity       string
	Role           string
	IsActivated    bool
	ActivationCode int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DefaultRole is assigned to every new account. It is a tag only; no
// authorization logic keys off it.
const DefaultRole = "User"
