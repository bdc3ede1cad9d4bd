package model

import (
	"time"
)

type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash *string    `db:"password_hash"` // Nullable for OAuth-only users
	DisabledAt   *time.Time `db:"disabled_at"`   // Set via support tooling, blocks sign-in
	CreatedAt    time.Time  `db:"created_at"`
}

func (u *User) Disabled() bool {
	return u.DisabledAt != nil
}

func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
