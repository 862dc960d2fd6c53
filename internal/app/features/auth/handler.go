// Package auth serves account signup and login. Both endpoints are
// anonymous; login answers with the bearer token the rest of the API
// authenticates with.
package auth

import (
	"context"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/shuzaifak/crowd/internal/app/store"
	sysauth "github.com/shuzaifak/crowd/internal/app/system/auth"
	"github.com/shuzaifak/crowd/internal/app/system/httpjson"
	"github.com/shuzaifak/crowd/internal/app/system/inputval"
	"github.com/shuzaifak/crowd/internal/app/system/normalize"
	"github.com/shuzaifak/crowd/internal/app/system/ratelimit"
	"github.com/shuzaifak/crowd/internal/app/system/timeouts"
	"github.com/shuzaifak/crowd/internal/domain/models"
)

// Handler handles signup and login requests. Limits is optional; when set,
// Routes shields both endpoints with it and a successful login clears the
// caller's window.
type Handler struct {
	Store  store.Store
	Tokens *sysauth.TokenManager
	Limits *ratelimit.Limiter
	Log    *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(s store.Store, tokens *sysauth.TokenManager, logger *zap.Logger) *Handler {
	return &Handler{
		Store:  s,
		Tokens: tokens,
		Log:    logger,
	}
}

// signupRequest is the JSON body for the signup endpoint.
type signupRequest struct {
	FullName string `json:"full_name" validate:"required,max=120" label:"Full name"`
	Email    string `json:"email" validate:"required,email" label:"Email"`
	Password string `json:"password" validate:"required,min=8" label:"Password"`
}

// loginRequest is the JSON body for the login endpoint.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse carries the issued token plus the account it belongs to.
// The stored password hash is never part of it.
type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// ServeSignup handles POST /auth/signup.
// New accounts start as plain users; organizer features unlock once
// is_organizer is set through the profile.
func (h *Handler) ServeSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "invalid JSON body")
		return
	}

	if res := inputval.Validate(req); res.HasErrors() {
		httpjson.ValidationFailed(w, res.All(), res.Fields())
		return
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		h.Log.Error("signup: hash password", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Store.CreateUser(ctx, models.User{
		Email:        normalize.Email(req.Email),
		PasswordHash: hash,
		FullName:     normalize.Name(req.FullName),
	})
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	token, err := h.Tokens.Issue(&sysauth.TokenUser{
		ID:    created.ID,
		Name:  created.FullName,
		Email: created.Email,
		Role:  created.Role,
	})
	if err != nil {
		h.Log.Error("signup: issue token", zap.Error(err), zap.String("user_id", created.ID))
		httpjson.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}

	created.PasswordHash = ""
	h.Log.Info("user signed up",
		zap.String("user_id", created.ID),
		zap.String("email", created.Email))
	httpjson.Write(w, http.StatusCreated, authResponse{Token: token, User: created})
}

// ServeLogin handles POST /auth/login.
// An unknown email and a wrong password answer identically, so the endpoint
// cannot be used to probe which addresses have accounts.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httpjson.BadRequest(w, "email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Store.FindUserByEmail(ctx, normalize.Email(req.Email))
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if user == nil || !user.IsActive {
		httpjson.Error(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.Log.Debug("login: password mismatch", zap.String("user_id", user.ID))
		httpjson.Error(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
		return
	}

	token, err := h.Tokens.Issue(&sysauth.TokenUser{
		ID:    user.ID,
		Name:  user.FullName,
		Email: user.Email,
		Role:  user.Role,
	})
	if err != nil {
		h.Log.Error("login: issue token", zap.Error(err), zap.String("user_id", user.ID))
		httpjson.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}

	if h.Limits != nil {
		h.Limits.Reset(ratelimit.ClientIP(r))
	}

	user.PasswordHash = "" // the stored hash never leaves the store layer
	h.Log.Info("user logged in", zap.String("user_id", user.ID))
	httpjson.Write(w, http.StatusOK, authResponse{Token: token, User: *user})
}

// hashPassword hashes a password using bcrypt.
func hashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
