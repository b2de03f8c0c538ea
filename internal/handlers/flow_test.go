package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"expense_tracker/internal/models"
	"expense_tracker/internal/repository"
	"expense_tracker/internal/repository/db"
	"expense_tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flowClient struct {
	t      *testing.T
	router *gin.Engine
}

func (fc flowClient) do(method, path, token string, body any) *httptest.ResponseRecorder {
	fc.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(fc.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	fc.router.ServeHTTP(w, req)
	return w
}

func decodePair(t *testing.T, w *httptest.ResponseRecorder) service.TokenPair {
	t.Helper()
	var p service.TokenPair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	require.NotEmpty(t, p.AccessToken)
	require.NotEmpty(t, p.RefreshToken)
	return p
}

// newFlowClient wires the real stack over an in-memory sqlite database.
func newFlowClient(t *testing.T, now *time.Time) flowClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, dialect, err := db.Open(db.Config{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	tokens := service.NewTokenService(service.TokenConfig{
		AccessSecret:  "flow-access",
		RefreshSecret: "flow-refresh",
		Now:           func() time.Time { return *now },
	})
	services := service.NewService(repository.NewRepository(conn, dialect), tokens)
	return flowClient{t: t, router: NewHandler(services, nil).InitRoutes()}
}

func TestFlow_SessionLifecycle(t *testing.T) {
	now := time.Now()
	fc := newFlowClient(t, &now)

	w := fc.do(http.MethodPost, "/auth/register", "", gin.H{"username": "u1", "email": "u1@x.com", "password": "Pw123"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "Pw123")
	assert.NotContains(t, w.Body.String(), "password")

	w = fc.do(http.MethodPost, "/auth/register", "", gin.H{"username": "u1", "email": "other@x.com", "password": "Pw123"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Username or email already exists", errorBody(t, w))

	w = fc.do(http.MethodPost, "/auth/login", "", gin.H{"username": "u1", "password": "Pw123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	first := decodePair(t, w)

	w = fc.do(http.MethodGet, "/auth/me", first.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"username":"u1"`)

	// rotation: the old refresh token stops working
	w = fc.do(http.MethodPost, "/auth/refresh", "", gin.H{"refreshToken": first.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	second := decodePair(t, w)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	w = fc.do(http.MethodPost, "/auth/refresh", "", gin.H{"refreshToken": first.RefreshToken})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// access tokens outlive rotation until they expire
	w = fc.do(http.MethodGet, "/expenses", first.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = fc.do(http.MethodPost, "/auth/logout", "", gin.H{"refreshToken": second.RefreshToken})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	w = fc.do(http.MethodPost, "/auth/logout", "", gin.H{"refreshToken": second.RefreshToken})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = fc.do(http.MethodPost, "/auth/refresh", "", gin.H{"refreshToken": second.RefreshToken})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = fc.do(http.MethodPost, "/auth/refresh", "", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Refresh token is required", errorBody(t, w))
}

func TestFlow_ProtectedRoutes(t *testing.T) {
	now := time.Now()
	fc := newFlowClient(t, &now)

	require.Equal(t, http.StatusCreated,
		fc.do(http.MethodPost, "/auth/register", "", gin.H{"username": "u1", "email": "u1@x.com", "password": "Pw123"}).Code)
	pair := decodePair(t, fc.do(http.MethodPost, "/auth/login", "", gin.H{"username": "u1", "password": "Pw123"}))

	w := fc.do(http.MethodGet, "/expenses", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, errAuthHeader, errorBody(t, w))

	w = fc.do(http.MethodGet, "/expenses", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, errInvalidToken, errorBody(t, w))

	// a refresh token is not an access token
	w = fc.do(http.MethodGet, "/expenses", pair.RefreshToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = fc.do(http.MethodGet, "/expenses", pair.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	now = now.Add(service.DefaultAccessTTL + time.Minute)
	w = fc.do(http.MethodGet, "/expenses", pair.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, errInvalidToken, errorBody(t, w))

	// the refresh token is still good and yields a usable access token
	w = fc.do(http.MethodPost, "/auth/refresh", "", gin.H{"refreshToken": pair.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	fresh := decodePair(t, w)
	assert.Equal(t, http.StatusOK, fc.do(http.MethodGet, "/expenses", fresh.AccessToken, nil).Code)
}

func TestFlow_LoginFailuresLookIdentical(t *testing.T) {
	now := time.Now()
	fc := newFlowClient(t, &now)

	require.Equal(t, http.StatusCreated,
		fc.do(http.MethodPost, "/auth/register", "", gin.H{"username": "u1", "email": "u1@x.com", "password": "Pw123"}).Code)

	wrongPass := fc.do(http.MethodPost, "/auth/login", "", gin.H{"username": "u1", "password": "nope"})
	unknownUser := fc.do(http.MethodPost, "/auth/login", "", gin.H{"username": "ghost", "password": "Pw123"})

	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, wrongPass.Body.String(), unknownUser.Body.String())
}

func TestFlow_ExpensesAreScopedToOwner(t *testing.T) {
	now := time.Now()
	fc := newFlowClient(t, &now)

	login := func(name string) string {
		require.Equal(t, http.StatusCreated, fc.do(http.MethodPost, "/auth/register", "",
			gin.H{"username": name, "email": name + "@x.com", "password": "Pw123"}).Code)
		return decodePair(t, fc.do(http.MethodPost, "/auth/login", "", gin.H{"username": name, "password": "Pw123"})).AccessToken
	}
	alice, bob := login("alice"), login("bob")

	w := fc.do(http.MethodPost, "/expenses", alice, gin.H{"title": "Sandwich", "amount": 50.5, "category": "Food", "date": "2024-06-01"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Expense
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 50.5, created.Amount)

	fc.do(http.MethodPost, "/expenses", alice, gin.H{"title": "Bus", "amount": 2.25, "category": "Transport", "date": "2024-06-03"})

	path := "/expenses/" + strconv.FormatInt(created.ID, 10)
	assert.Equal(t, http.StatusNotFound, fc.do(http.MethodGet, path, bob, nil).Code)
	assert.Equal(t, http.StatusNotFound, fc.do(http.MethodDelete, path, bob, nil).Code)
	assert.JSONEq(t, `[]`, fc.do(http.MethodGet, "/expenses", bob, nil).Body.String())

	w = fc.do(http.MethodPut, path, alice, gin.H{"amount": 12})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Expense
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 12.0, updated.Amount)
	assert.Equal(t, "Sandwich", updated.Title)

	var list []models.Expense
	w = fc.do(http.MethodGet, "/expenses?from=2024-06-02", alice, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Bus", list[0].Title)

	var sum models.Summary
	w = fc.do(http.MethodGet, "/expenses/summary", alice, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sum))
	assert.Equal(t, 2, sum.Count)
	assert.InDelta(t, 14.25, sum.Total, 0.001)

	assert.Equal(t, http.StatusNoContent, fc.do(http.MethodDelete, path, alice, nil).Code)
	assert.Equal(t, http.StatusNotFound, fc.do(http.MethodGet, path, alice, nil).Code)
}
