package handlers_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"driveline/internal/handlers"
	"driveline/internal/models"
	"driveline/internal/services"

	"github.com/stretchr/testify/assert"
)

func providerRegisterBody() handlers.ProviderRegisterRequest {
	return handlers.ProviderRegisterRequest{
		Name:     "Acme Rentals",
		Email:    "owner@acme.example.com",
		Mobile:   "5550100200",
		Password: "SecurePassword123",
		Address:  "1 Fleet Street",
		CityID:   "city1",
		StateID:  "state1",
		Zipcode:  "90210",
	}
}

func TestRegisterProvider_Success(t *testing.T) {
	mockService := &handlers.MockRegistrationService{
		RegisterProviderFunc: func(ctx context.Context, input services.ProviderRegistration) (*services.RegistrationResult, error) {
			account := services.NewTestAccount("provider1", input.Email, input.Mobile)
			return &services.RegistrationResult{
				Account:   account,
				EmailOTP:  "123456",
				MobileOTP: "654321",
			}, nil
		},
	}

	handler := handlers.NewRegistrationHandler(mockService)
	req := handlers.NewTestRequest(t, "POST", "/provider/register", providerRegisterBody())

	w := httptest.NewRecorder()
	handler.RegisterProvider(w, req)

	var resp handlers.RegisterResponse
	handlers.AssertJSONResponse(t, w, 201, &resp)
	assert.Equal(t, "provider1", resp.Account.ID)
	assert.Equal(t, "PENDING", resp.Account.Status)
	assert.Equal(t, "123456", resp.EmailOTP)
	assert.Equal(t, "654321", resp.MobileOTP)
}

func TestRegisterProvider_InvalidBody(t *testing.T) {
	handler := handlers.NewRegistrationHandler(&handlers.MockRegistrationService{})

	body := providerRegisterBody()
	body.Email = "not-an-email"
	req := handlers.NewTestRequest(t, "POST", "/provider/register", body)

	w := httptest.NewRecorder()
	handler.RegisterProvider(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestRegisterProvider_Conflict(t *testing.T) {
	mockService := &handlers.MockRegistrationService{
		RegisterProviderFunc: func(ctx context.Context, input services.ProviderRegistration) (*services.RegistrationResult, error) {
			return nil, models.ErrConflict
		},
	}

	handler := handlers.NewRegistrationHandler(mockService)
	req := handlers.NewTestRequest(t, "POST", "/provider/register", providerRegisterBody())

	w := httptest.NewRecorder()
	handler.RegisterProvider(w, req)

	handlers.AssertErrorResponse(t, w, 400, "Email or Mobile already exists")
}

func TestRegisterProvider_CityStateMismatch(t *testing.T) {
	mockService := &handlers.MockRegistrationService{
		RegisterProviderFunc: func(ctx context.Context, input services.ProviderRegistration) (*services.RegistrationResult, error) {
			return nil, models.NewValidationError("City does not belong to the selected state")
		},
	}

	handler := handlers.NewRegistrationHandler(mockService)
	req := handlers.NewTestRequest(t, "POST", "/provider/register", providerRegisterBody())

	w := httptest.NewRecorder()
	handler.RegisterProvider(w, req)

	handlers.AssertErrorResponse(t, w, 400, "City does not belong to the selected state")
}

func TestRegisterUser_Success(t *testing.T) {
	mockService := &handlers.MockRegistrationService{
		RegisterUserFunc: func(ctx context.Context, input services.UserRegistration) (*services.RegistrationResult, error) {
			account := services.NewTestAccountWithRole("user1", input.Email, input.Mobile, models.RoleUser)
			return &services.RegistrationResult{
				Account:   account,
				EmailOTP:  "111222",
				MobileOTP: "333444",
			}, nil
		},
	}

	handler := handlers.NewRegistrationHandler(mockService)
	req := handlers.NewTestRequest(t, "POST", "/user/register", handlers.UserRegisterRequest{
		Name:     "Jordan Doe",
		Email:    "jordan@example.com",
		Mobile:   "5550500600",
		Password: "SecurePassword123",
	})

	w := httptest.NewRecorder()
	handler.RegisterUser(w, req)

	var resp handlers.RegisterResponse
	handlers.AssertJSONResponse(t, w, 201, &resp)
	assert.Equal(t, "user1", resp.Account.ID)
	assert.Equal(t, string(models.RoleUser), resp.Account.Role)
	assert.Equal(t, "111222", resp.EmailOTP)
}
