package api

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/studycards/backend/internal/auth"
	"github.com/studycards/backend/internal/domain/user"
)

// ── Request / Response types ────────────────────────────────────────────────

type RegisterRequest struct {
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"s3cret!"`
	Name     string `json:"name" example:"Ada"`
}

func (r *RegisterRequest) Validate() error {
	if _, err := mail.ParseAddress(strings.TrimSpace(r.Email)); err != nil || !strings.Contains(r.Email, "@") {
		return errors.New("a valid email is required")
	}
	if len(r.Password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"s3cret!"`
}

func (r *LoginRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return errors.New("email and password are required")
	}
	return nil
}

type UserResponse struct {
	ID        string    `json:"id" example:"a1b2c3d4e5f6g7h8"`
	Email     string    `json:"email" example:"ada@example.com"`
	Name      string    `json:"name" example:"Ada"`
	Role      string    `json:"role" example:"user"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// register creates an account and returns a token.
// @Summary      Register
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterRequest  true  "Account to create"
// @Success      201   {object}  AuthResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string  "email already registered"
// @Router       /auth/register [post]
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	u, token, err := h.auth.Register(r.Context(), req.Email, req.Password, req.Name)
	if errors.Is(err, auth.ErrEmailTaken) {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	if h.handleStoreError(w, err, "user") {
		return
	}

	respondJSON(w, http.StatusCreated, AuthResponse{Token: token, User: toUserResponse(u)})
}

// login exchanges credentials for a token.
// @Summary      Log in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Credentials"
// @Success      200   {object}  AuthResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	u, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		respondError(w, http.StatusUnauthorized, err.Error())
		return
	}
	if h.handleStoreError(w, err, "user") {
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{Token: token, User: toUserResponse(u)})
}

// @Summary      Log out
// @Tags         Auth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	token, _ := bearerToken(r)
	err := h.auth.Logout(r.Context(), token)
	if errors.Is(err, auth.ErrUnauthorized) {
		respondError(w, http.StatusUnauthorized, err.Error())
		return
	}
	if h.handleStoreError(w, err, "session") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary      Current user
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  UserResponse
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	u, err := h.auth.Me(r.Context(), userID(r))
	if h.handleStoreError(w, err, "user") {
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(u))
}
