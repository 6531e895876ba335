package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"driveline/internal/auth"
	"driveline/internal/models"
	"driveline/internal/services"
	pkghttp "driveline/pkg/http"

	"github.com/stretchr/testify/assert"
)

// NewTestRequest creates an HTTP request with a JSON-encoded body
func NewTestRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithSessionContext adds session claims to the request context for testing authenticated endpoints
func WithSessionContext(req *http.Request, accountID string, role models.Role) *http.Request {
	claims := &models.SessionClaims{
		AccountID: accountID,
		Role:      role,
	}
	ctx := context.WithValue(req.Context(), auth.SessionContextKey, claims)
	return req.WithContext(ctx)
}

// AssertJSONResponse checks that response has correct status and decodes JSON body
func AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	contentType := w.Header().Get("Content-Type")
	assert.Equal(t, "application/json", contentType, "Content-Type should be application/json")

	if target != nil {
		err := json.Unmarshal(w.Body.Bytes(), target)
		assert.NoError(t, err, "Failed to decode response JSON")
	}
}

// AssertErrorResponse checks that response is a valid error response
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedMessage string) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	var resp pkghttp.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err, "Failed to decode error response")
	assert.Equal(t, expectedMessage, resp.Message, "Error message mismatch")
}

// MockRegistrationService implements RegistrationServiceInterface for testing
type MockRegistrationService struct {
	RegisterProviderFunc func(ctx context.Context, input services.ProviderRegistration) (*services.RegistrationResult, error)
	RegisterUserFunc     func(ctx context.Context, input services.UserRegistration) (*services.RegistrationResult, error)
}

func (m *MockRegistrationService) RegisterProvider(ctx context.Context, input services.ProviderRegistration) (*services.RegistrationResult, error) {
	if m.RegisterProviderFunc == nil {
		return nil, models.ErrInternalServer
	}
	return m.RegisterProviderFunc(ctx, input)
}

func (m *MockRegistrationService) RegisterUser(ctx context.Context, input services.UserRegistration) (*services.RegistrationResult, error) {
	if m.RegisterUserFunc == nil {
		return nil, models.ErrInternalServer
	}
	return m.RegisterUserFunc(ctx, input)
}

// MockOTPService implements OTPServiceInterface for testing
type MockOTPService struct {
	ResendEmailFunc  func(ctx context.Context, email string) error
	ResendMobileFunc func(ctx context.Context, mobile string) error
}

func (m *MockOTPService) ResendEmail(ctx context.Context, email string) error {
	if m.ResendEmailFunc == nil {
		return nil
	}
	return m.ResendEmailFunc(ctx, email)
}

func (m *MockOTPService) ResendMobile(ctx context.Context, mobile string) error {
	if m.ResendMobileFunc == nil {
		return nil
	}
	return m.ResendMobileFunc(ctx, mobile)
}

// MockVerificationService implements VerificationServiceInterface for testing
type MockVerificationService struct {
	VerifyEmailOTPFunc  func(ctx context.Context, email, code string, role models.Role) (*services.VerificationResult, error)
	VerifyMobileOTPFunc func(ctx context.Context, mobile, code string, role models.Role) (*services.VerificationResult, error)
}

func (m *MockVerificationService) VerifyEmailOTP(ctx context.Context, email, code string, role models.Role) (*services.VerificationResult, error) {
	if m.VerifyEmailOTPFunc == nil {
		return nil, models.ErrInvalidOTP
	}
	return m.VerifyEmailOTPFunc(ctx, email, code, role)
}

func (m *MockVerificationService) VerifyMobileOTP(ctx context.Context, mobile, code string, role models.Role) (*services.VerificationResult, error) {
	if m.VerifyMobileOTPFunc == nil {
		return nil, models.ErrInvalidOTP
	}
	return m.VerifyMobileOTPFunc(ctx, mobile, code, role)
}

// MockAuthService implements AuthServiceInterface for testing
type MockAuthService struct {
	AdminLoginFunc       func(ctx context.Context, username, password string) (*services.AuthResponse, error)
	ProviderLoginFunc    func(ctx context.Context, email, password string) (*services.AuthResponse, error)
	PendingProvidersFunc func(ctx context.Context) ([]*services.AccountResponse, error)
}

func (m *MockAuthService) AdminLogin(ctx context.Context, username, password string) (*services.AuthResponse, error) {
	if m.AdminLoginFunc == nil {
		return nil, models.ErrInvalidCredential
	}
	return m.AdminLoginFunc(ctx, username, password)
}

func (m *MockAuthService) ProviderLogin(ctx context.Context, email, password string) (*services.AuthResponse, error) {
	if m.ProviderLoginFunc == nil {
		return nil, models.ErrInvalidCredential
	}
	return m.ProviderLoginFunc(ctx, email, password)
}

func (m *MockAuthService) PendingProviders(ctx context.Context) ([]*services.AccountResponse, error) {
	if m.PendingProvidersFunc == nil {
		return nil, nil
	}
	return m.PendingProvidersFunc(ctx)
}

// MockAccountFetcher implements AccountFetcher for testing
type MockAccountFetcher struct {
	GetByIDFunc func(ctx context.Context, id string) (*models.Account, error)
}

func (m *MockAccountFetcher) GetByID(ctx context.Context, id string) (*models.Account, error) {
	if m.GetByIDFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.GetByIDFunc(ctx, id)
}
