package services

import (
	"context"
	"errors"
	"log/slog"

	"driveline/internal/models"
)

// TokenIssuer defines the interface for minting session tokens
type TokenIssuer interface {
	Issue(account *models.Account) (string, error)
}

// VerificationResult carries the minted session token and the updated account
type VerificationResult struct {
	Token   string
	Account *models.Account
}

// VerificationService consumes a submitted code and, on a match, flips
// the account's verified flag, moves it to pending_approval and mints a
// session token. A code row moves NoCode -> CodeIssued -> Used exactly
// once; the destination may receive further codes afterwards.
type VerificationService struct {
	accountRepo AccountRepository
	otpService  *OTPService
	tokens      TokenIssuer
	logger      *slog.Logger
}

// NewVerificationService creates a new VerificationService
func NewVerificationService(accountRepo AccountRepository, otpService *OTPService, tokens TokenIssuer, logger *slog.Logger) *VerificationService {
	return &VerificationService{
		accountRepo: accountRepo,
		otpService:  otpService,
		tokens:      tokens,
		logger:      logger,
	}
}

// VerifyEmailOTP validates a code sent to an email address
func (s *VerificationService) VerifyEmailOTP(ctx context.Context, email, code string, role models.Role) (*VerificationResult, error) {
	account, err := s.accountRepo.GetByEmail(ctx, email, role)
	if err != nil {
		return nil, s.mapLookupError(err)
	}

	return s.verify(ctx, account, email, models.ChannelEmail, code)
}

// VerifyMobileOTP validates a code sent to a mobile number
func (s *VerificationService) VerifyMobileOTP(ctx context.Context, mobile, code string, role models.Role) (*VerificationResult, error) {
	account, err := s.accountRepo.GetByMobile(ctx, mobile, role)
	if err != nil {
		return nil, s.mapLookupError(err)
	}

	return s.verify(ctx, account, mobile, models.ChannelMobile, code)
}

func (s *VerificationService) mapLookupError(err error) error {
	if errors.Is(err, models.ErrNotFound) {
		return models.ErrNotFound
	}
	s.logger.Error("failed to look up account for verification", slog.Any("error", err))
	return models.ErrInternalServer
}

func (s *VerificationService) verify(ctx context.Context, account *models.Account, destination string, channel models.Channel, code string) (*VerificationResult, error) {
	otp, err := s.otpService.Verify(ctx, destination, channel, code)
	if err != nil {
		return nil, err
	}

	updated, err := s.accountRepo.SetVerified(ctx, account.ID, channel, models.StatusPendingApproval)
	if err != nil {
		s.logger.Error("failed to update account verification state",
			slog.String("account_id", account.ID),
			slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	token, err := s.tokens.Issue(updated)
	if err != nil {
		s.logger.Error("failed to issue session token",
			slog.String("account_id", updated.ID),
			slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("destination verified",
		slog.String("account_id", updated.ID),
		slog.String("channel", string(channel)),
		slog.Time("verified_at", *otp.VerifiedAt))

	return &VerificationResult{Token: token, Account: updated}, nil
}
