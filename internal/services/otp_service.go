package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net/mail"
	"time"

	"driveline/internal/models"
	pkglogger "driveline/pkg/logger"
)

// OTPRepository defines the interface for one-time-code operations
type OTPRepository interface {
	CreateInvalidatingPrior(ctx context.Context, destination string, channel models.Channel, code string, expiresAt time.Time) (*models.OneTimeCode, error)
	GetMatching(ctx context.Context, destination string, channel models.Channel, code string, now time.Time) (*models.OneTimeCode, error)
	MarkUsed(ctx context.Context, id string, verifiedAt time.Time) error
	CleanupExpired(ctx context.Context) (int64, error)
}

// OTPService orchestrates code generation, prior-code invalidation,
// expiry assignment, persistence and dispatch.
type OTPService struct {
	otpRepo     OTPRepository
	emailSender EmailSender
	smsSender   SMSSender
	logger      *slog.Logger
	expiry      time.Duration
}

// NewOTPService creates a new OTPService
func NewOTPService(otpRepo OTPRepository, emailSender EmailSender, smsSender SMSSender, logger *slog.Logger, expiry time.Duration) *OTPService {
	return &OTPService{
		otpRepo:     otpRepo,
		emailSender: emailSender,
		smsSender:   smsSender,
		logger:      logger,
		expiry:      expiry,
	}
}

// codeRange draws codes uniformly from [100000, 999999]
var codeRange = big.NewInt(900000)

// GenerateCode returns a 6-digit numeric code
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeRange)
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Issue invalidates any live code for the destination and persists a
// fresh one with a 15-minute window. Both writes happen in one
// transaction. No dispatch happens here; registration stores codes
// without sending them and only the resend endpoint emails one.
func (s *OTPService) Issue(ctx context.Context, destination string, channel models.Channel) (*models.OneTimeCode, error) {
	code, err := GenerateCode()
	if err != nil {
		s.logger.Error("failed to generate one-time code", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	expiresAt := time.Now().Add(s.expiry)

	otp, err := s.otpRepo.CreateInvalidatingPrior(ctx, destination, channel, code, expiresAt)
	if err != nil {
		s.logger.Error("failed to persist one-time code",
			slog.String("channel", string(channel)),
			slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return otp, nil
}

// ResendEmail issues a fresh code for the address and emails it.
// Validation runs before any store mutation. A delivery failure
// surfaces as ErrDelivery and is not retried; the created row stays
// live, and a follow-up resend will invalidate it like any other.
func (s *OTPService) ResendEmail(ctx context.Context, email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return models.NewValidationError("A valid email is required")
	}

	otp, err := s.Issue(ctx, email, models.ChannelEmail)
	if err != nil {
		return err
	}

	if err := s.emailSender.SendOTPEmail(ctx, email, otp.Code, otp.ExpiresAt); err != nil {
		s.logger.Error("failed to dispatch one-time code",
			slog.String("email", pkglogger.SanitizedEmail(email)),
			slog.Any("error", err))
		return models.ErrDelivery
	}

	s.logger.Info("one-time code resent", slog.String("email", pkglogger.SanitizedEmail(email)))
	return nil
}

// ResendMobile is the SMS counterpart of ResendEmail
func (s *OTPService) ResendMobile(ctx context.Context, mobile string) error {
	if !validMobile(mobile) {
		return models.NewValidationError("A valid mobile number is required")
	}

	otp, err := s.Issue(ctx, mobile, models.ChannelMobile)
	if err != nil {
		return err
	}

	if err := s.smsSender.SendOTPSMS(ctx, mobile, otp.Code, otp.ExpiresAt); err != nil {
		s.logger.Error("failed to dispatch one-time code",
			slog.String("mobile", pkglogger.SanitizedMobile(mobile)),
			slog.Any("error", err))
		return models.ErrDelivery
	}

	s.logger.Info("one-time code resent", slog.String("mobile", pkglogger.SanitizedMobile(mobile)))
	return nil
}

// validMobile accepts 7-15 digits with an optional leading plus
func validMobile(mobile string) bool {
	if len(mobile) > 0 && mobile[0] == '+' {
		mobile = mobile[1:]
	}
	if len(mobile) < 7 || len(mobile) > 15 {
		return false
	}
	for _, r := range mobile {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Verify matches a submitted code against the newest live row for the
// destination and consumes it. Wrong, expired and already-used codes
// all come back as ErrInvalidOTP.
func (s *OTPService) Verify(ctx context.Context, destination string, channel models.Channel, code string) (*models.OneTimeCode, error) {
	now := time.Now()

	otp, err := s.otpRepo.GetMatching(ctx, destination, channel, code, now)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidOTP
		}
		s.logger.Error("failed to look up one-time code", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if err := s.otpRepo.MarkUsed(ctx, otp.ID, now); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			// A concurrent request consumed the row first
			return nil, models.ErrInvalidOTP
		}
		s.logger.Error("failed to mark one-time code used",
			slog.String("otp_id", otp.ID),
			slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	otp.Used = true
	otp.VerifiedAt = &now
	return otp, nil
}
