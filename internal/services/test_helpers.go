package services

import (
	"context"
	"time"

	"driveline/internal/models"
)

// MockAccountRepository implements AccountRepository for testing
type MockAccountRepository struct {
	CreateFunc        func(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByIDFunc       func(ctx context.Context, id string) (*models.Account, error)
	GetByEmailFunc    func(ctx context.Context, email string, role models.Role) (*models.Account, error)
	GetByMobileFunc   func(ctx context.Context, mobile string, role models.Role) (*models.Account, error)
	GetAnyByEmailFunc func(ctx context.Context, email string) (*models.Account, error)
	EmailInUseFunc    func(ctx context.Context, email string, role models.Role) (bool, error)
	MobileInUseFunc   func(ctx context.Context, mobile string) (bool, error)
	SetVerifiedFunc   func(ctx context.Context, id string, channel models.Channel, status string) (*models.Account, error)
	ListByStatusFunc  func(ctx context.Context, role models.Role, status string) ([]*models.Account, error)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	account.ID = "account_test"
	return account, nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string, role models.Role) (*models.Account, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email, role)
	}
	return nil, models.ErrNotFound
}

func (m *MockAccountRepository) GetByMobile(ctx context.Context, mobile string, role models.Role) (*models.Account, error) {
	if m.GetByMobileFunc != nil {
		return m.GetByMobileFunc(ctx, mobile, role)
	}
	return nil, models.ErrNotFound
}

func (m *MockAccountRepository) GetAnyByEmail(ctx context.Context, email string) (*models.Account, error) {
	if m.GetAnyByEmailFunc != nil {
		return m.GetAnyByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockAccountRepository) EmailInUse(ctx context.Context, email string, role models.Role) (bool, error) {
	if m.EmailInUseFunc != nil {
		return m.EmailInUseFunc(ctx, email, role)
	}
	return false, nil
}

func (m *MockAccountRepository) MobileInUse(ctx context.Context, mobile string) (bool, error) {
	if m.MobileInUseFunc != nil {
		return m.MobileInUseFunc(ctx, mobile)
	}
	return false, nil
}

func (m *MockAccountRepository) SetVerified(ctx context.Context, id string, channel models.Channel, status string) (*models.Account, error) {
	if m.SetVerifiedFunc != nil {
		return m.SetVerifiedFunc(ctx, id, channel, status)
	}
	return nil, models.ErrInternalServer
}

func (m *MockAccountRepository) ListByStatus(ctx context.Context, role models.Role, status string) ([]*models.Account, error) {
	if m.ListByStatusFunc != nil {
		return m.ListByStatusFunc(ctx, role, status)
	}
	return nil, nil
}

// MockOTPRepository implements OTPRepository for testing
type MockOTPRepository struct {
	CreateInvalidatingPriorFunc func(ctx context.Context, destination string, channel models.Channel, code string, expiresAt time.Time) (*models.OneTimeCode, error)
	GetMatchingFunc             func(ctx context.Context, destination string, channel models.Channel, code string, now time.Time) (*models.OneTimeCode, error)
	MarkUsedFunc                func(ctx context.Context, id string, verifiedAt time.Time) error
	CleanupExpiredFunc          func(ctx context.Context) (int64, error)
}

func (m *MockOTPRepository) CreateInvalidatingPrior(ctx context.Context, destination string, channel models.Channel, code string, expiresAt time.Time) (*models.OneTimeCode, error) {
	if m.CreateInvalidatingPriorFunc != nil {
		return m.CreateInvalidatingPriorFunc(ctx, destination, channel, code, expiresAt)
	}
	return &models.OneTimeCode{
		ID:          "otp_test",
		Destination: destination,
		Channel:     channel,
		Code:        code,
		CreatedAt:   time.Now(),
		ExpiresAt:   expiresAt,
	}, nil
}

func (m *MockOTPRepository) GetMatching(ctx context.Context, destination string, channel models.Channel, code string, now time.Time) (*models.OneTimeCode, error) {
	if m.GetMatchingFunc != nil {
		return m.GetMatchingFunc(ctx, destination, channel, code, now)
	}
	return nil, models.ErrNotFound
}

func (m *MockOTPRepository) MarkUsed(ctx context.Context, id string, verifiedAt time.Time) error {
	if m.MarkUsedFunc != nil {
		return m.MarkUsedFunc(ctx, id, verifiedAt)
	}
	return nil
}

func (m *MockOTPRepository) CleanupExpired(ctx context.Context) (int64, error) {
	if m.CleanupExpiredFunc != nil {
		return m.CleanupExpiredFunc(ctx)
	}
	return 0, nil
}

// MockLocationRepository implements LocationRepository for testing
type MockLocationRepository struct {
	GetCityFunc func(ctx context.Context, id string) (*models.City, error)
}

func (m *MockLocationRepository) GetCity(ctx context.Context, id string) (*models.City, error) {
	if m.GetCityFunc != nil {
		return m.GetCityFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

// MockEmailSender implements EmailSender for testing
type MockEmailSender struct {
	SendOTPEmailFunc func(ctx context.Context, email, code string, expiresAt time.Time) error
}

func (m *MockEmailSender) SendOTPEmail(ctx context.Context, email, code string, expiresAt time.Time) error {
	if m.SendOTPEmailFunc != nil {
		return m.SendOTPEmailFunc(ctx, email, code, expiresAt)
	}
	return nil
}

// MockSMSSender implements SMSSender for testing
type MockSMSSender struct {
	SendOTPSMSFunc func(ctx context.Context, mobile, code string, expiresAt time.Time) error
}

func (m *MockSMSSender) SendOTPSMS(ctx context.Context, mobile, code string, expiresAt time.Time) error {
	if m.SendOTPSMSFunc != nil {
		return m.SendOTPSMSFunc(ctx, mobile, code, expiresAt)
	}
	return nil
}

// MockTokenIssuer implements TokenIssuer for testing
type MockTokenIssuer struct {
	IssueFunc func(account *models.Account) (string, error)
}

func (m *MockTokenIssuer) Issue(account *models.Account) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(account)
	}
	return "token_" + account.ID, nil
}

// NewTestAccount creates a pending provider account
func NewTestAccount(id, email, mobile string) *models.Account {
	now := time.Now()
	return &models.Account{
		ID:        id,
		Name:      "Test Provider",
		Email:     email,
		Mobile:    mobile,
		Role:      models.RoleProvider,
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestAccountWithRole creates an account with the given role
func NewTestAccountWithRole(id, email, mobile string, role models.Role) *models.Account {
	account := NewTestAccount(id, email, mobile)
	account.Role = role
	return account
}

// NewTestOTP creates a live one-time code
func NewTestOTP(id, destination string, channel models.Channel, code string) *models.OneTimeCode {
	now := time.Now()
	return &models.OneTimeCode{
		ID:          id,
		Destination: destination,
		Channel:     channel,
		Code:        code,
		CreatedAt:   now,
		ExpiresAt:   now.Add(15 * time.Minute),
	}
}

// NewTestOTPExpired creates an expired one-time code
func NewTestOTPExpired(id, destination string, channel models.Channel, code string) *models.OneTimeCode {
	otp := NewTestOTP(id, destination, channel, code)
	otp.CreatedAt = time.Now().Add(-1 * time.Hour)
	otp.ExpiresAt = time.Now().Add(-45 * time.Minute)
	return otp
}

// NewTestOTPUsed creates a consumed one-time code
func NewTestOTPUsed(id, destination string, channel models.Channel, code string) *models.OneTimeCode {
	now := time.Now()
	otp := NewTestOTP(id, destination, channel, code)
	otp.Used = true
	otp.VerifiedAt = &now
	return otp
}
