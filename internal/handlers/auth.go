package handlers

import (
	"errors"
	"io"
	"net/http"

	"expense_tracker/internal/metrics"
	"expense_tracker/internal/models"
	"expense_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

const msgRegistered = "User registered successfully"

// RegisterRequest is the sign-up payload.
type RegisterRequest struct {
	Username string `json:"username" example:"testuser"`
	Email    string `json:"email" example:"testuser@example.com"`
	Password string `json:"password" example:"TestPass123"`
}

// LoginRequest is the sign-in payload.
type LoginRequest struct {
	Username string `json:"username" example:"testuser"`
	Password string `json:"password" example:"TestPass123"`
}

// RefreshRequest carries a refresh token for refresh and logout.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RegisterResponse is returned on 201.
type RegisterResponse struct {
	Message string      `json:"message"`
	User    models.User `json:"user"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// An empty body binds as an empty object so field checks report what is missing.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return false
	}
	return true
}

// @Summary      Register a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterRequest  true  "credentials"
// @Success      201   {object}  RegisterResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var input RegisterRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	u, err := h.services.Register(c.Request.Context(), service.RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	metrics.ObserveAuth("register", service.KindName(err))
	if err != nil {
		h.writeError(c, "auth_register_failed", err, "username", input.Username)
		return
	}

	h.log.Infow("auth_registered", "user_id", u.ID, "username", u.Username)
	c.JSON(http.StatusCreated, RegisterResponse{Message: msgRegistered, User: u})
}

// @Summary      Log in
// @Description  Returns a fresh access/refresh pair. Any earlier refresh token stops working.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "credentials"
// @Success      200   {object}  service.TokenPair
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input LoginRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	pair, err := h.services.Login(c.Request.Context(), input.Username, input.Password)
	metrics.ObserveAuth("login", service.KindName(err))
	if err != nil {
		h.writeError(c, "auth_login_failed", err, "username", input.Username)
		return
	}

	c.JSON(http.StatusOK, pair)
}

// @Summary      Rotate tokens
// @Description  Exchanges a live refresh token for a new pair. The presented token is revoked.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      RefreshRequest  true  "refresh token"
// @Success      200   {object}  service.TokenPair
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /auth/refresh [post]
func (h *Handler) refresh(c *gin.Context) {
	var input RefreshRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	pair, err := h.services.Refresh(c.Request.Context(), input.RefreshToken)
	metrics.ObserveAuth("refresh", service.KindName(err))
	if err != nil {
		h.writeError(c, "auth_refresh_failed", err)
		return
	}

	c.JSON(http.StatusOK, pair)
}

// @Summary      Log out
// @Description  Revokes the refresh token. Unknown tokens also return 204.
// @Tags         auth
// @Accept       json
// @Param        body  body  RefreshRequest  true  "refresh token"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *Handler) logout(c *gin.Context) {
	var input RefreshRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	err := h.services.Logout(c.Request.Context(), input.RefreshToken)
	metrics.ObserveAuth("logout", service.KindName(err))
	if err != nil {
		h.writeError(c, "auth_logout_failed", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "userId, username"
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *Handler) me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
		return
	}
	c.JSON(http.StatusOK, gin.H{"userId": userID, "username": c.GetString(ctxUsername)})
}
