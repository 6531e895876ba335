package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"driveline/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistrationService(accountRepo *MockAccountRepository, locationRepo *MockLocationRepository) *RegistrationService {
	logger := slog.Default()
	otpService := NewOTPService(&MockOTPRepository{}, &MockEmailSender{}, &MockSMSSender{}, logger, 15*time.Minute)
	return NewRegistrationService(accountRepo, locationRepo, otpService, logger)
}

func validProviderInput() ProviderRegistration {
	return ProviderRegistration{
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

func TestRegistrationService_RegisterProvider_Success(t *testing.T) {
	var createdAccount *models.Account

	mockAccountRepo := &MockAccountRepository{
		CreateFunc: func(ctx context.Context, account *models.Account) (*models.Account, error) {
			account.ID = "provider1"
			createdAccount = account
			return account, nil
		},
	}
	mockLocationRepo := &MockLocationRepository{
		GetCityFunc: func(ctx context.Context, id string) (*models.City, error) {
			return &models.City{ID: "city1", Name: "Springfield", StateID: "state1"}, nil
		},
	}

	service := newRegistrationService(mockAccountRepo, mockLocationRepo)

	result, err := service.RegisterProvider(context.Background(), validProviderInput())

	require.NoError(t, err)
	require.NotNil(t, result)

	// Fresh accounts start pending and inactive with nothing verified
	assert.Equal(t, models.StatusPending, createdAccount.Status)
	assert.False(t, createdAccount.IsActive)
	assert.False(t, createdAccount.EmailVerified)
	assert.False(t, createdAccount.MobileVerified)
	assert.Equal(t, models.RoleProvider, createdAccount.Role)
	assert.NotEmpty(t, createdAccount.PasswordHash)
	assert.NotEqual(t, "SecurePassword123", createdAccount.PasswordHash)

	// Both codes come back in the result but are never dispatched here
	assert.Len(t, result.EmailOTP, 6)
	assert.Len(t, result.MobileOTP, 6)
}

func TestRegistrationService_RegisterProvider_MissingField(t *testing.T) {
	service := newRegistrationService(&MockAccountRepository{}, &MockLocationRepository{})

	input := validProviderInput()
	input.Address = ""

	result, err := service.RegisterProvider(context.Background(), input)

	require.Error(t, err)
	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "address is required", ve.Message)
	assert.Nil(t, result)
}

func TestRegistrationService_RegisterProvider_WeakPassword(t *testing.T) {
	service := newRegistrationService(&MockAccountRepository{}, &MockLocationRepository{})

	input := validProviderInput()
	input.Password = "short"

	result, err := service.RegisterProvider(context.Background(), input)

	require.Error(t, err)
	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Nil(t, result)
}

func TestRegistrationService_RegisterProvider_Conflicts(t *testing.T) {
	// Every collision kind surfaces as the same bare conflict
	tests := []struct {
		name string
		repo *MockAccountRepository
	}{
		{
			name: "email taken",
			repo: &MockAccountRepository{
				EmailInUseFunc: func(ctx context.Context, email string, role models.Role) (bool, error) {
					return true, nil
				},
			},
		},
		{
			name: "mobile taken",
			repo: &MockAccountRepository{
				MobileInUseFunc: func(ctx context.Context, mobile string) (bool, error) {
					return mobile == "5550100200", nil
				},
			},
		},
		{
			name: "alternate mobile taken",
			repo: &MockAccountRepository{
				MobileInUseFunc: func(ctx context.Context, mobile string) (bool, error) {
					return mobile == "5550300400", nil
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newRegistrationService(tt.repo, &MockLocationRepository{})

			input := validProviderInput()
			input.AlternateMobile = "5550300400"

			result, err := service.RegisterProvider(context.Background(), input)

			assert.ErrorIs(t, err, models.ErrConflict)
			assert.Nil(t, result)
		})
	}
}

func TestRegistrationService_RegisterProvider_CityStateMismatch(t *testing.T) {
	mockLocationRepo := &MockLocationRepository{
		GetCityFunc: func(ctx context.Context, id string) (*models.City, error) {
			return &models.City{ID: "city1", Name: "Springfield", StateID: "otherstate"}, nil
		},
	}

	service := newRegistrationService(&MockAccountRepository{}, mockLocationRepo)

	result, err := service.RegisterProvider(context.Background(), validProviderInput())

	require.Error(t, err)
	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "City does not belong to the selected state", ve.Message)
	assert.Nil(t, result)
}

func TestRegistrationService_RegisterProvider_UnknownCity(t *testing.T) {
	// Unknown city reads the same as a mismatched one
	service := newRegistrationService(&MockAccountRepository{}, &MockLocationRepository{})

	result, err := service.RegisterProvider(context.Background(), validProviderInput())

	require.Error(t, err)
	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "City does not belong to the selected state", ve.Message)
	assert.Nil(t, result)
}

func TestRegistrationService_RegisterUser_Success(t *testing.T) {
	var createdAccount *models.Account

	mockAccountRepo := &MockAccountRepository{
		CreateFunc: func(ctx context.Context, account *models.Account) (*models.Account, error) {
			account.ID = "user1"
			createdAccount = account
			return account, nil
		},
	}

	service := newRegistrationService(mockAccountRepo, &MockLocationRepository{})

	result, err := service.RegisterUser(context.Background(), UserRegistration{
		Name:     "Jordan Doe",
		Email:    "jordan@example.com",
		Mobile:   "5550500600",
		Password: "SecurePassword123",
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, models.RoleUser, createdAccount.Role)
	assert.Equal(t, models.StatusPending, createdAccount.Status)
	assert.Nil(t, createdAccount.AlternateMobile)
	assert.Len(t, result.EmailOTP, 6)
	assert.Len(t, result.MobileOTP, 6)
}

func TestRegistrationService_RegisterUser_EmailNormalized(t *testing.T) {
	var createdAccount *models.Account

	mockAccountRepo := &MockAccountRepository{
		CreateFunc: func(ctx context.Context, account *models.Account) (*models.Account, error) {
			account.ID = "user1"
			createdAccount = account
			return account, nil
		},
	}

	service := newRegistrationService(mockAccountRepo, &MockLocationRepository{})

	_, err := service.RegisterUser(context.Background(), UserRegistration{
		Name:     "Jordan Doe",
		Email:    "  Jordan@Example.COM ",
		Mobile:   "5550500600",
		Password: "SecurePassword123",
	})

	require.NoError(t, err)
	assert.Equal(t, "jordan@example.com", createdAccount.Email)
}
