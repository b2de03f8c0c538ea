package service

import (
	"context"

	"expense_tracker/internal/models"
	"expense_tracker/internal/repository"
)

// Authorization is the auth session lifecycle plus access-token verification.
type Authorization interface {
	Register(ctx context.Context, in RegisterInput) (models.User, error)
	Login(ctx context.Context, username, password string) (TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	VerifyAccessToken(token string) (*AccessClaims, error)
}

// Expenses exposes owner-scoped expense CRUD and reporting.
type Expenses interface {
	Create(ctx context.Context, userID int64, in ExpenseInput) (models.Expense, error)
	Get(ctx context.Context, userID, id int64) (models.Expense, error)
	List(ctx context.Context, userID int64, f models.ExpenseFilter) ([]models.Expense, error)
	Update(ctx context.Context, userID, id int64, p ExpensePatch) (models.Expense, error)
	Delete(ctx context.Context, userID, id int64) error
	Summary(ctx context.Context, userID int64, f models.ExpenseFilter) (models.Summary, error)
}

// HealthChecker reports whether backing storage is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Expenses Expenses
	Health   HealthChecker
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, tokens *TokenService) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, tokens),
		Expenses:      NewExpenseService(repos.Expenses),
		Health:        repos,
	}
}
