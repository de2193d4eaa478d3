package model

import "time"

// User represents a member of the band or their management who can sign in
// to the dashboard.  Passwords are stored as bcrypt hashes; the hash never
// leaves the server.  This struct corresponds to a row in the `users` table.
//
// Fields:
//
//	ID           – primary key identifier.
//	Email        – unique login email, stored lower-case.
//	PasswordHash – bcrypt hash of the password.
//	Role         – ADMIN or EDITOR.
//	CreatedAt    – timestamp when the account was created.
//	UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    `json:"id"`         // users.id
	Email        string    `json:"email"`      // users.email
	PasswordHash string    `json:"-"`          // users.password_hash, never serialized
	Role         string    `json:"role"`       // users.role
	CreatedAt    time.Time `json:"created_at"` // users.created_at
	UpdatedAt    time.Time `json:"updated_at"` // users.updated_at
}
