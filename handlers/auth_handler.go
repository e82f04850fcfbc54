package handlers

import (
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"wknd-backend/models"
	"wknd-backend/security"
	"wknd-backend/store"
)

type AuthHandler struct {
	store  *store.Store
	tokens *security.TokenManager
}

func NewAuthHandler(s *store.Store, tokens *security.TokenManager) *AuthHandler {
	return &AuthHandler{store: s, tokens: tokens}
}

// Require wraps a handler with bearer token authentication. The parsed
// claims are handed to the wrapped handler.
func (h *AuthHandler) Require(next func(e *core.RequestEvent, claims *security.Claims) error) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		header := e.Request.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return apis.NewUnauthorizedError("Authorization token required", nil)
		}

		claims, err := h.tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return apis.NewUnauthorizedError("Invalid or expired token", nil)
		}

		return next(e, claims)
	}
}

// Register creates an account and issues a session token.
func (h *AuthHandler) Register(e *core.RequestEvent) error {
	var body struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := e.BindBody(&body); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}
	if body.Email == "" || body.Password == "" || body.FirstName == "" || body.LastName == "" {
		return apis.NewBadRequestError("Email, password, first name and last name are required", nil)
	}
	if len(body.Password) < 6 {
		return apis.NewBadRequestError("Password must be at least 6 characters", nil)
	}

	if _, err := h.store.FindUserByEmail(e.Request.Context(), body.Email); err == nil {
		return apis.NewBadRequestError("An account with this email already exists", nil)
	}

	hash, err := security.HashPassword(body.Password)
	if err != nil {
		return apis.NewInternalServerError("Failed to create account", nil)
	}

	user := &models.User{
		Email:        body.Email,
		FirstName:    body.FirstName,
		LastName:     body.LastName,
		PasswordHash: hash,
	}
	if err := h.store.CreateUser(e.Request.Context(), user); err != nil {
		return apiError(err)
	}

	token, err := h.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return apis.NewInternalServerError("Failed to create session", nil)
	}

	return e.JSON(http.StatusCreated, map[string]any{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

// Login verifies credentials and issues a session token.
func (h *AuthHandler) Login(e *core.RequestEvent) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := e.BindBody(&body); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}
	if body.Email == "" || body.Password == "" {
		return apis.NewBadRequestError("Email and password are required", nil)
	}

	user, err := h.store.FindUserByEmail(e.Request.Context(), body.Email)
	if err != nil || !security.CheckPassword(user.PasswordHash, body.Password) {
		return apis.NewUnauthorizedError("Invalid email or password", nil)
	}

	token, err := h.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return apis.NewInternalServerError("Failed to create session", nil)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

// Profile returns the authenticated user's account.
func (h *AuthHandler) Profile(e *core.RequestEvent, claims *security.Claims) error {
	user, err := h.store.FindUserByID(e.Request.Context(), claims.UserID)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
	})
}

// UpdateProfile changes the authenticated user's name fields.
func (h *AuthHandler) UpdateProfile(e *core.RequestEvent, claims *security.Claims) error {
	var body struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := e.BindBody(&body); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}
	if body.FirstName == "" || body.LastName == "" {
		return apis.NewBadRequestError("First name and last name are required", nil)
	}

	if err := h.store.UpdateUserProfile(e.Request.Context(), claims.UserID, body.FirstName, body.LastName); err != nil {
		return apiError(err)
	}

	user, err := h.store.FindUserByID(e.Request.Context(), claims.UserID)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
	})
}

// Verify confirms that the presented token is still valid.
func (h *AuthHandler) Verify(e *core.RequestEvent, claims *security.Claims) error {
	user, err := h.store.FindUserByID(e.Request.Context(), claims.UserID)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
	})
}
