package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"driveline/internal/models"
	pkgauth "driveline/pkg/auth"
)

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string, role models.Role) (*models.Account, error)
	GetByMobile(ctx context.Context, mobile string, role models.Role) (*models.Account, error)
	GetAnyByEmail(ctx context.Context, email string) (*models.Account, error)
	EmailInUse(ctx context.Context, email string, role models.Role) (bool, error)
	MobileInUse(ctx context.Context, mobile string) (bool, error)
	SetVerified(ctx context.Context, id string, channel models.Channel, status string) (*models.Account, error)
	ListByStatus(ctx context.Context, role models.Role, status string) ([]*models.Account, error)
}

// LocationRepository defines the read-only city lookup used for the
// city/state referential check
type LocationRepository interface {
	GetCity(ctx context.Context, id string) (*models.City, error)
}

// ProviderRegistration is the validated input for provider sign-up
type ProviderRegistration struct {
	Name            string
	Email           string
	Mobile          string
	AlternateMobile string
	Password        string
	Address         string
	CityID          string
	StateID         string
	Zipcode         string
}

// UserRegistration is the validated input for user sign-up. Users carry
// no address block; the lifecycle is otherwise identical to providers.
type UserRegistration struct {
	Name     string
	Email    string
	Mobile   string
	Password string
}

// RegistrationResult is the outcome of a successful registration. The
// plain codes are included for debug visibility in the 201 response;
// neither code is dispatched at registration time.
type RegistrationResult struct {
	Account   *models.Account
	EmailOTP  string
	MobileOTP string
}

// RegistrationService validates uniqueness and referential integrity,
// hashes the credential and creates pending accounts with fresh codes.
type RegistrationService struct {
	accountRepo  AccountRepository
	locationRepo LocationRepository
	otpService   *OTPService
	logger       *slog.Logger
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(accountRepo AccountRepository, locationRepo LocationRepository, otpService *OTPService, logger *slog.Logger) *RegistrationService {
	return &RegistrationService{
		accountRepo:  accountRepo,
		locationRepo: locationRepo,
		otpService:   otpService,
		logger:       logger,
	}
}

// RegisterProvider creates a provider account in PENDING status with
// both one-time codes generated and stored. All validation runs before
// any mutation.
func (s *RegistrationService) RegisterProvider(ctx context.Context, input ProviderRegistration) (*RegistrationResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Name = strings.TrimSpace(input.Name)

	required := []struct {
		value string
		name  string
	}{
		{input.Name, "name"},
		{input.Email, "email"},
		{input.Mobile, "mobile"},
		{input.Password, "password"},
		{input.Address, "address"},
		{input.CityID, "cityId"},
		{input.StateID, "stateId"},
		{input.Zipcode, "zipcode"},
	}
	for _, field := range required {
		if field.value == "" {
			return nil, models.NewValidationError(field.name + " is required")
		}
	}

	if err := pkgauth.ValidatePassword(input.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if err := s.checkUniqueness(ctx, input.Email, input.Mobile, input.AlternateMobile, models.RoleProvider); err != nil {
		return nil, err
	}

	// City must exist and belong to the declared state
	city, err := s.locationRepo.GetCity(ctx, input.CityID)
	if err != nil {
		return nil, models.NewValidationError("City does not belong to the selected state")
	}
	if city.StateID != input.StateID {
		return nil, models.NewValidationError("City does not belong to the selected state")
	}

	return s.createPending(ctx, &models.Account{
		Name:            input.Name,
		Email:           input.Email,
		Mobile:          input.Mobile,
		AlternateMobile: optional(input.AlternateMobile),
		Address:         input.Address,
		CityID:          optional(input.CityID),
		StateID:         optional(input.StateID),
		Zipcode:         input.Zipcode,
		Role:            models.RoleProvider,
	}, input.Password)
}

// RegisterUser creates a user account with the same pending lifecycle
func (s *RegistrationService) RegisterUser(ctx context.Context, input UserRegistration) (*RegistrationResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Name = strings.TrimSpace(input.Name)

	required := []struct {
		value string
		name  string
	}{
		{input.Name, "name"},
		{input.Email, "email"},
		{input.Mobile, "mobile"},
		{input.Password, "password"},
	}
	for _, field := range required {
		if field.value == "" {
			return nil, models.NewValidationError(field.name + " is required")
		}
	}

	if err := pkgauth.ValidatePassword(input.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if err := s.checkUniqueness(ctx, input.Email, input.Mobile, "", models.RoleUser); err != nil {
		return nil, err
	}

	return s.createPending(ctx, &models.Account{
		Name:   input.Name,
		Email:  input.Email,
		Mobile: input.Mobile,
		Role:   models.RoleUser,
	}, input.Password)
}

// checkUniqueness runs the three collision checks in order. All three
// surface as the same ErrConflict so the response never reveals which
// field collided.
func (s *RegistrationService) checkUniqueness(ctx context.Context, email, mobile, alternateMobile string, role models.Role) error {
	emailTaken, err := s.accountRepo.EmailInUse(ctx, email, role)
	if err != nil {
		s.logger.Error("failed to check email uniqueness", slog.Any("error", err))
		return models.ErrInternalServer
	}
	if emailTaken {
		return models.ErrConflict
	}

	mobileTaken, err := s.accountRepo.MobileInUse(ctx, mobile)
	if err != nil {
		s.logger.Error("failed to check mobile uniqueness", slog.Any("error", err))
		return models.ErrInternalServer
	}
	if mobileTaken {
		return models.ErrConflict
	}

	if alternateMobile != "" {
		altTaken, err := s.accountRepo.MobileInUse(ctx, alternateMobile)
		if err != nil {
			s.logger.Error("failed to check alternate mobile uniqueness", slog.Any("error", err))
			return models.ErrInternalServer
		}
		if altTaken {
			return models.ErrConflict
		}
	}

	return nil
}

func (s *RegistrationService) createPending(ctx context.Context, account *models.Account, password string) (*RegistrationResult, error) {
	hashedPassword, err := pkgauth.HashPassword(password)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	account.PasswordHash = hashedPassword
	account.Status = models.StatusPending
	account.IsActive = false

	// Codes are generated and stored but not dispatched. Delivery only
	// happens through the explicit resend endpoint.
	emailOTP, err := s.otpService.Issue(ctx, account.Email, models.ChannelEmail)
	if err != nil {
		return nil, err
	}

	mobileOTP, err := s.otpService.Issue(ctx, account.Mobile, models.ChannelMobile)
	if err != nil {
		return nil, err
	}

	created, err := s.accountRepo.Create(ctx, account)
	if err != nil {
		s.logger.Error("failed to create account", slog.Any("error", err))
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		return nil, models.ErrInternalServer
	}

	s.logger.Info("account registered",
		slog.String("account_id", created.ID),
		slog.String("role", string(created.Role)),
		slog.String("status", created.Status))

	return &RegistrationResult{
		Account:   created,
		EmailOTP:  emailOTP.Code,
		MobileOTP: mobileOTP.Code,
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
