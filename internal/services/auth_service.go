package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"driveline/internal/models"
	pkgauth "driveline/pkg/auth"
)

// AuthService handles password login for admins and providers
type AuthService struct {
	accountRepo AccountRepository
	tokens      TokenIssuer
	logger      *slog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(accountRepo AccountRepository, tokens TokenIssuer, logger *slog.Logger) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		tokens:      tokens,
		logger:      logger,
	}
}

// AccountResponse represents an account in HTTP responses
type AccountResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Mobile         string `json:"mobile"`
	Role           string `json:"role"`
	Status         string `json:"status"`
	IsActive       bool   `json:"is_active"`
	EmailVerified  bool   `json:"email_verified"`
	MobileVerified bool   `json:"mobile_verified"`
	CreatedAt      string `json:"created_at"`
}

// AuthResponse represents the response from auth operations
type AuthResponse struct {
	Token   string           `json:"token"`
	Account *AccountResponse `json:"user"`
}

// AdminLogin authenticates an administrator. An unknown username, a
// wrong password and a non-admin role all return the same
// ErrInvalidCredential so the response reveals nothing about which
// check failed.
func (s *AuthService) AdminLogin(ctx context.Context, username, password string) (*AuthResponse, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return nil, models.ErrInvalidCredential
	}

	account, err := s.accountRepo.GetAnyByEmail(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("admin login failed: invalid credentials")
			return nil, models.ErrInvalidCredential
		}
		s.logger.Error("failed to look up admin account", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if err := pkgauth.ComparePassword(account.PasswordHash, password); err != nil {
		s.logger.Info("admin login failed: invalid credentials")
		return nil, models.ErrInvalidCredential
	}

	if !account.HasRole(models.RoleAdmin) {
		// Same response as a wrong password; the role must not leak
		s.logger.Info("admin login failed: invalid credentials")
		return nil, models.ErrInvalidCredential
	}

	token, err := s.tokens.Issue(account)
	if err != nil {
		s.logger.Error("failed to issue session token", slog.String("account_id", account.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("admin logged in", slog.String("account_id", account.ID))

	return &AuthResponse{
		Token:   token,
		Account: AccountToResponse(account),
	}, nil
}

// ProviderLogin authenticates a provider by email and password. Unknown
// emails surface as ErrNotFound; a wrong password as ErrInvalidCredential.
func (s *AuthService) ProviderLogin(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, models.ErrInvalidCredential
	}

	account, err := s.accountRepo.GetByEmail(ctx, email, models.RoleProvider)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("provider login failed: unknown email")
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to look up provider account", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if err := pkgauth.ComparePassword(account.PasswordHash, password); err != nil {
		s.logger.Info("provider login failed: invalid credentials")
		return nil, models.ErrInvalidCredential
	}

	token, err := s.tokens.Issue(account)
	if err != nil {
		s.logger.Error("failed to issue session token", slog.String("account_id", account.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("provider logged in", slog.String("account_id", account.ID))

	return &AuthResponse{
		Token:   token,
		Account: AccountToResponse(account),
	}, nil
}

// PendingProviders lists provider accounts awaiting approval, oldest first
func (s *AuthService) PendingProviders(ctx context.Context) ([]*AccountResponse, error) {
	accounts, err := s.accountRepo.ListByStatus(ctx, models.RoleProvider, models.StatusPendingApproval)
	if err != nil {
		s.logger.Error("failed to list pending providers", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	responses := make([]*AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, AccountToResponse(account))
	}

	return responses, nil
}

// AccountToResponse converts an account model to its response DTO
func AccountToResponse(account *models.Account) *AccountResponse {
	return &AccountResponse{
		ID:             account.ID,
		Name:           account.Name,
		Email:          account.Email,
		Mobile:         account.Mobile,
		Role:           string(account.Role),
		Status:         account.Status,
		IsActive:       account.IsActive,
		EmailVerified:  account.EmailVerified,
		MobileVerified: account.MobileVerified,
		CreatedAt:      account.CreatedAt.Format(time.RFC3339),
	}
}
