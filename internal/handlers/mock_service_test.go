package handlers

import (
	"context"
	"net/http"

	"expense_tracker/internal/models"
	"expense_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerUser models.User
	registerErr  error
	loginPair    service.TokenPair
	loginErr     error
	refreshPair  service.TokenPair
	refreshErr   error
	logoutErr    error
	claims       *service.AccessClaims
	verifyErr    error

	lastRegister     service.RegisterInput
	lastLoginUser    string
	lastLoginPass    string
	lastRefreshToken string
	lastLogoutToken  string
	lastVerifyToken  string
	logoutCalls      int
}

func (m *mockAuth) Register(_ context.Context, in service.RegisterInput) (models.User, error) {
	m.lastRegister = in
	return m.registerUser, m.registerErr
}

func (m *mockAuth) Login(_ context.Context, username, password string) (service.TokenPair, error) {
	m.lastLoginUser = username
	m.lastLoginPass = password
	return m.loginPair, m.loginErr
}

func (m *mockAuth) Refresh(_ context.Context, token string) (service.TokenPair, error) {
	m.lastRefreshToken = token
	return m.refreshPair, m.refreshErr
}

func (m *mockAuth) Logout(_ context.Context, token string) error {
	m.logoutCalls++
	m.lastLogoutToken = token
	return m.logoutErr
}

func (m *mockAuth) VerifyAccessToken(token string) (*service.AccessClaims, error) {
	m.lastVerifyToken = token
	if m.verifyErr != nil {
		return nil, m.verifyErr
	}
	return m.claims, nil
}

type mockExpenses struct {
	expense  models.Expense
	list     []models.Expense
	summary  models.Summary
	err      error
	summErr  error

	lastUserID int64
	lastID     int64
	lastInput  service.ExpenseInput
	lastPatch  service.ExpensePatch
	lastFilter models.ExpenseFilter
}

func (m *mockExpenses) Create(_ context.Context, userID int64, in service.ExpenseInput) (models.Expense, error) {
	m.lastUserID, m.lastInput = userID, in
	return m.expense, m.err
}

func (m *mockExpenses) Get(_ context.Context, userID, id int64) (models.Expense, error) {
	m.lastUserID, m.lastID = userID, id
	return m.expense, m.err
}

func (m *mockExpenses) List(_ context.Context, userID int64, f models.ExpenseFilter) ([]models.Expense, error) {
	m.lastUserID, m.lastFilter = userID, f
	return m.list, m.err
}

func (m *mockExpenses) Update(_ context.Context, userID, id int64, p service.ExpensePatch) (models.Expense, error) {
	m.lastUserID, m.lastID, m.lastPatch = userID, id, p
	return m.expense, m.err
}

func (m *mockExpenses) Delete(_ context.Context, userID, id int64) error {
	m.lastUserID, m.lastID = userID, id
	return m.err
}

func (m *mockExpenses) Summary(_ context.Context, userID int64, f models.ExpenseFilter) (models.Summary, error) {
	m.lastUserID, m.lastFilter = userID, f
	return m.summary, m.summErr
}

type mockHealth struct{ err error }

func (m mockHealth) Ping(context.Context) error { return m.err }

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service, opts ...Option) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, opts...)
	return h.InitRoutes()
}

// authedAs returns a mockAuth that accepts any token as the given user.
func authedAs(userID int64, username string) *mockAuth {
	return &mockAuth{claims: &service.AccessClaims{UserID: userID, Username: username}}
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func serviceErr(kind error, msg string) error {
	return &service.Error{Kind: kind, Message: msg}
}
