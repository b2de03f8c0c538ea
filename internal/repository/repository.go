package repository

import (
	"context"
	"database/sql"
	"errors"

	"expense_tracker/internal/models"
	"expense_tracker/internal/repository/db"
)

// ErrDuplicate reports a unique-constraint violation.
var ErrDuplicate = errors.New("duplicate record")

// Users is the credential store.
type Users interface {
	Create(ctx context.Context, u models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
	// SetRefreshToken overwrites the stored refresh token unconditionally.
	SetRefreshToken(ctx context.Context, userID int64, token string) error
	// RotateRefreshToken swaps oldToken for newToken only if oldToken is still current.
	RotateRefreshToken(ctx context.Context, userID int64, oldToken, newToken string) (bool, error)
	// ClearRefreshToken unsets whichever row holds token. Reports whether one did.
	ClearRefreshToken(ctx context.Context, token string) (bool, error)
}

// Expenses stores expenses; every call is scoped to the owning user.
type Expenses interface {
	Create(ctx context.Context, e models.Expense) (int64, error)
	Get(ctx context.Context, userID, id int64) (*models.Expense, error)
	List(ctx context.Context, userID int64, f models.ExpenseFilter) ([]models.Expense, error)
	Update(ctx context.Context, e models.Expense) (bool, error)
	Delete(ctx context.Context, userID, id int64) (bool, error)
	TotalsByCategory(ctx context.Context, userID int64, f models.ExpenseFilter) ([]models.CategoryTotal, error)
}

type Repository struct {
	Users    Users
	Expenses Expenses
	db       *sql.DB
}

func NewRepository(conn *sql.DB, d db.Dialect) *Repository {
	return &Repository{
		Users:    NewUserRepository(conn, d),
		Expenses: NewExpenseRepository(conn, d),
		db:       conn,
	}
}

// Ping reports whether the underlying database is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	if r.db == nil {
		return errors.New("repository has no database")
	}
	return r.db.PingContext(ctx)
}
