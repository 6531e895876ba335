package handlers_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"driveline/internal/auth"
	"driveline/internal/handlers"
	"driveline/internal/models"
	"driveline/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminLogin_Success(t *testing.T) {
	mockService := &handlers.MockAuthService{
		AdminLoginFunc: func(ctx context.Context, username, password string) (*services.AuthResponse, error) {
			assert.Equal(t, "admin@example.com", username)
			account := services.NewTestAccountWithRole("admin1", username, "5550900900", models.RoleAdmin)
			return &services.AuthResponse{
				Token:   "signed.jwt.token",
				Account: services.AccountToResponse(account),
			}, nil
		},
	}

	handler := handlers.NewAuthHandler(mockService, &handlers.MockAccountFetcher{}, false)
	req := handlers.NewTestRequest(t, "POST", "/admin/auth", handlers.AdminLoginRequest{
		Username: "admin@example.com",
		Password: "SecurePassword123",
	})

	w := httptest.NewRecorder()
	handler.AdminLogin(w, req)

	var resp services.AuthResponse
	handlers.AssertJSONResponse(t, w, 200, &resp)
	assert.Equal(t, "signed.jwt.token", resp.Token)
	assert.Equal(t, "admin1", resp.Account.ID)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.SessionCookieName, cookies[0].Name)
}

func TestAdminLogin_InvalidCredentials(t *testing.T) {
	// The default mock rejects everything, standing in for unknown
	// username, wrong password and non-admin role alike
	handler := handlers.NewAuthHandler(&handlers.MockAuthService{}, &handlers.MockAccountFetcher{}, false)
	req := handlers.NewTestRequest(t, "POST", "/admin/auth", handlers.AdminLoginRequest{
		Username: "admin@example.com",
		Password: "WrongPassword999",
	})

	w := httptest.NewRecorder()
	handler.AdminLogin(w, req)

	handlers.AssertErrorResponse(t, w, 401, "Invalid username or password")
	assert.Empty(t, w.Result().Cookies())
}

func TestAdminLogin_MissingFields(t *testing.T) {
	handler := handlers.NewAuthHandler(&handlers.MockAuthService{}, &handlers.MockAccountFetcher{}, false)
	req := handlers.NewTestRequest(t, "POST", "/admin/auth", handlers.AdminLoginRequest{
		Username: "admin@example.com",
	})

	w := httptest.NewRecorder()
	handler.AdminLogin(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestProviderLogin_Success(t *testing.T) {
	mockService := &handlers.MockAuthService{
		ProviderLoginFunc: func(ctx context.Context, email, password string) (*services.AuthResponse, error) {
			account := services.NewTestAccount("provider1", email, "5550100200")
			return &services.AuthResponse{
				Token:   "signed.jwt.token",
				Account: services.AccountToResponse(account),
			}, nil
		},
	}

	handler := handlers.NewAuthHandler(mockService, &handlers.MockAccountFetcher{}, false)
	req := handlers.NewTestRequest(t, "POST", "/provider/login", handlers.ProviderLoginRequest{
		Email:    "owner@acme.example.com",
		Password: "SecurePassword123",
	})

	w := httptest.NewRecorder()
	handler.ProviderLogin(w, req)

	var resp services.AuthResponse
	handlers.AssertJSONResponse(t, w, 200, &resp)
	assert.Equal(t, "signed.jwt.token", resp.Token)
}

func TestProviderLogin_UnknownEmail(t *testing.T) {
	mockService := &handlers.MockAuthService{
		ProviderLoginFunc: func(ctx context.Context, email, password string) (*services.AuthResponse, error) {
			return nil, models.ErrNotFound
		},
	}

	handler := handlers.NewAuthHandler(mockService, &handlers.MockAccountFetcher{}, false)
	req := handlers.NewTestRequest(t, "POST", "/provider/login", handlers.ProviderLoginRequest{
		Email:    "nobody@example.com",
		Password: "SecurePassword123",
	})

	w := httptest.NewRecorder()
	handler.ProviderLogin(w, req)

	handlers.AssertErrorResponse(t, w, 404, "Account not found")
}

func TestProviderLogin_WrongPassword(t *testing.T) {
	handler := handlers.NewAuthHandler(&handlers.MockAuthService{}, &handlers.MockAccountFetcher{}, false)
	req := handlers.NewTestRequest(t, "POST", "/provider/login", handlers.ProviderLoginRequest{
		Email:    "owner@acme.example.com",
		Password: "WrongPassword999",
	})

	w := httptest.NewRecorder()
	handler.ProviderLogin(w, req)

	handlers.AssertErrorResponse(t, w, 401, "Invalid username or password")
}

func TestMe_Success(t *testing.T) {
	mockFetcher := &handlers.MockAccountFetcher{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Account, error) {
			assert.Equal(t, "provider1", id)
			return services.NewTestAccount(id, "owner@acme.example.com", "5550100200"), nil
		},
	}

	handler := handlers.NewAuthHandler(&handlers.MockAuthService{}, mockFetcher, false)
	req := handlers.NewTestRequest(t, "GET", "/me", nil)
	req = handlers.WithSessionContext(req, "provider1", models.RoleProvider)

	w := httptest.NewRecorder()
	handler.Me(w, req)

	var resp services.AccountResponse
	handlers.AssertJSONResponse(t, w, 200, &resp)
	assert.Equal(t, "provider1", resp.ID)
	assert.Equal(t, "owner@acme.example.com", resp.Email)
}

func TestMe_NoSession(t *testing.T) {
	handler := handlers.NewAuthHandler(&handlers.MockAuthService{}, &handlers.MockAccountFetcher{}, false)
	req := handlers.NewTestRequest(t, "GET", "/me", nil)

	w := httptest.NewRecorder()
	handler.Me(w, req)

	assert.Equal(t, 401, w.Code)
}

func TestLogout_ClearsCookie(t *testing.T) {
	handler := handlers.NewAuthHandler(&handlers.MockAuthService{}, &handlers.MockAccountFetcher{}, false)
	req := handlers.NewTestRequest(t, "POST", "/logout", nil)
	req = handlers.WithSessionContext(req, "provider1", models.RoleProvider)

	w := httptest.NewRecorder()
	handler.Logout(w, req)

	var resp map[string]string
	handlers.AssertJSONResponse(t, w, 200, &resp)
	assert.Equal(t, "Logged out successfully", resp["message"])

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.SessionCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestPendingProviders_Success(t *testing.T) {
	mockService := &handlers.MockAuthService{
		PendingProvidersFunc: func(ctx context.Context) ([]*services.AccountResponse, error) {
			account := services.NewTestAccount("provider1", "owner@acme.example.com", "5550100200")
			account.Status = models.StatusPendingApproval
			return []*services.AccountResponse{services.AccountToResponse(account)}, nil
		},
	}

	handler := handlers.NewAuthHandler(mockService, &handlers.MockAccountFetcher{}, false)
	req := handlers.NewTestRequest(t, "GET", "/admin/providers/pending", nil)
	req = handlers.WithSessionContext(req, "admin1", models.RoleAdmin)

	w := httptest.NewRecorder()
	handler.PendingProviders(w, req)

	var resp struct {
		Providers []*services.AccountResponse `json:"providers"`
	}
	handlers.AssertJSONResponse(t, w, 200, &resp)
	require.Len(t, resp.Providers, 1)
	assert.Equal(t, models.StatusPendingApproval, resp.Providers[0].Status)
}
