// Package repository contains data access logic for dashboard accounts.
// This file holds the user repository. Emails are normalized to lowercase
// before they touch the DB so logins are case-insensitive.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/lunarblood/band-site/internal/model"
	"github.com/lunarblood/band-site/internal/utils"
)

// ErrEmailExists signals a registration attempt with an email that is
// already taken.
var ErrEmailExists = errors.New("email already exists")

// UserRepo manages persistence for dashboard user accounts.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo with the given DB handle.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `id, email, password_hash, role, created_at, updated_at`

func scanUser(scan func(dest ...any) error, u *model.User) error {
	return scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create hashes the password with bcrypt, inserts the account and returns
// the new ID.  A duplicate email yields ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, email, password, role string, cost int) (uint64, error) {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, role) VALUES (?, ?, ?)`,
		normalizeEmail(email), hash, role)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 { // duplicate key on email
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail retrieves one account by normalized email.  A missing account
// surfaces as sql.ErrNoRows.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = ? LIMIT 1`
	var u model.User
	err := scanUser(r.db.QueryRowContext(ctx, q, normalizeEmail(email)).Scan, &u)
	return u, err
}

// GetByID retrieves one account by ID.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = ? LIMIT 1`
	var u model.User
	err := scanUser(r.db.QueryRowContext(ctx, q, id).Scan, &u)
	return u, err
}
