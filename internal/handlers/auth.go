package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"driveline/internal/auth"
	"driveline/internal/models"
	"driveline/internal/services"
	pkghttp "driveline/pkg/http"
)

// AuthServiceInterface defines the interface for password login
type AuthServiceInterface interface {
	AdminLogin(ctx context.Context, username, password string) (*services.AuthResponse, error)
	ProviderLogin(ctx context.Context, email, password string) (*services.AuthResponse, error)
	PendingProviders(ctx context.Context) ([]*services.AccountResponse, error)
}

// AccountFetcher resolves the current account for the /me endpoint
type AccountFetcher interface {
	GetByID(ctx context.Context, id string) (*models.Account, error)
}

// AuthHandler handles login and session requests
type AuthHandler struct {
	service       AuthServiceInterface
	accounts      AccountFetcher
	secureCookies bool
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service AuthServiceInterface, accounts AccountFetcher, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		service:       service,
		accounts:      accounts,
		secureCookies: secureCookies,
	}
}

// AdminLoginRequest represents the request body for admin login
type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ProviderLoginRequest represents the request body for provider login
type ProviderLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminLogin handles POST /admin/auth
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req AdminLoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	authResp, err := h.service.AdminLogin(r.Context(), req.Username, req.Password)
	if err != nil {
		// Unknown user, wrong password and wrong role share one response
		if errors.Is(err, models.ErrInvalidCredential) {
			pkghttp.WriteUnauthorized(w, "Invalid username or password")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	auth.SetSessionCookie(w, authResp.Token, h.secureCookies)
	pkghttp.WriteJSON(w, http.StatusOK, authResp)
}

// ProviderLogin handles POST /provider/login
func (h *AuthHandler) ProviderLogin(w http.ResponseWriter, r *http.Request) {
	var req ProviderLoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	authResp, err := h.service.ProviderLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "Account not found")
		case errors.Is(err, models.ErrInvalidCredential):
			pkghttp.WriteUnauthorized(w, "Invalid username or password")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	auth.SetSessionCookie(w, authResp.Token, h.secureCookies)
	pkghttp.WriteJSON(w, http.StatusOK, authResp)
}

// PendingProviders handles GET /admin/providers/pending (admin only)
func (h *AuthHandler) PendingProviders(w http.ResponseWriter, r *http.Request) {
	providers, err := h.service.PendingProviders(r.Context())
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"providers": providers,
	})
}

// Logout handles POST /logout. The token itself stays valid until
// expiry; only the cookie is dropped.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.secureCookies)
	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Logged out successfully",
	})
}

// Me handles GET /me for any authenticated account
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := auth.SessionFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	account, err := h.accounts.GetByID(r.Context(), claims.AccountID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteUnauthorized(w, "unauthorized")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, services.AccountToResponse(account))
}
