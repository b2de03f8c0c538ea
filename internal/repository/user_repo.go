package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"expense_tracker/internal/models"
	"expense_tracker/internal/repository/db"
)

type UserRepository struct {
	db      *sql.DB
	dialect db.Dialect
}

func NewUserRepository(conn *sql.DB, d db.Dialect) *UserRepository {
	return &UserRepository{db: conn, dialect: d}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	userColumns = `id, username, email, password_hash, refresh_token, created_at`

	insertUserSQL = `INSERT INTO users (username, email, password_hash, created_at) VALUES (?, ?, ?, ?) RETURNING id`

	selectUserByIDSQL              = `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	selectUserByUsernameSQL        = `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	selectUserByUsernameOrEmailSQL = `SELECT ` + userColumns + ` FROM users WHERE username = ? OR email = ? LIMIT 1`

	setRefreshTokenSQL    = `UPDATE users SET refresh_token = ? WHERE id = ?`
	rotateRefreshTokenSQL = `UPDATE users SET refresh_token = ? WHERE id = ? AND refresh_token = ?`
	clearRefreshTokenSQL  = `UPDATE users SET refresh_token = NULL WHERE refresh_token = ?`
)

// Create inserts a new user and returns its ID. Duplicate username or email yields ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, u models.User) (int64, error) {
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var id int64
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(insertUserSQL),
		u.Username, u.Email, u.PasswordHash, createdAt,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("insert user %q: %w", u.Username, ErrDuplicate)
		}
		return 0, fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	return id, nil
}

// GetByID fetches a user by ID. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, r.dialect.Rebind(selectUserByIDSQL), id))
	if err != nil {
		return nil, fmt.Errorf("select user %d: %w", id, err)
	}
	return u, nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, r.dialect.Rebind(selectUserByUsernameSQL), username))
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return u, nil
}

// FindByUsernameOrEmail returns any user holding either value. Returns (nil, nil) if none.
func (r *UserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, r.dialect.Rebind(selectUserByUsernameOrEmailSQL), username, email))
	if err != nil {
		return nil, fmt.Errorf("select user by username %q or email %q: %w", username, email, err)
	}
	return u, nil
}

func (r *UserRepository) SetRefreshToken(ctx context.Context, userID int64, token string) error {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(setRefreshTokenSQL), token, userID)
	if err != nil {
		return fmt.Errorf("set refresh token for user %d: %w", userID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for user %d: %w", userID, err)
	}
	if n == 0 {
		return fmt.Errorf("set refresh token: user %d: %w", userID, sql.ErrNoRows)
	}
	return nil
}

// RotateRefreshToken is a compare-and-swap: it reports false when oldToken is no longer current.
func (r *UserRepository) RotateRefreshToken(ctx context.Context, userID int64, oldToken, newToken string) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(rotateRefreshTokenSQL), newToken, userID, oldToken)
	if err != nil {
		return false, fmt.Errorf("rotate refresh token for user %d: %w", userID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for user %d: %w", userID, err)
	}
	return n == 1, nil
}

func (r *UserRepository) ClearRefreshToken(ctx context.Context, token string) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(clearRefreshTokenSQL), token)
	if err != nil {
		return false, fmt.Errorf("clear refresh token: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("clear refresh token rows affected: %w", err)
	}
	return n > 0, nil
}

// scanUser maps sql.ErrNoRows to (nil, nil).
func scanUser(row *sql.Row) (*models.User, error) {
	var (
		u       models.User
		refresh sql.NullString
	)
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &refresh, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.RefreshToken = refresh.String
	return &u, nil
}
