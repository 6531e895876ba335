package services

import (
	"context"
	"log/slog"
	"time"

	pkglogger "driveline/pkg/logger"
)

// SMSSender defines the interface for delivering one-time codes by SMS.
// The gateway is an external collaborator; the mobile verification flow
// only depends on this interface.
type SMSSender interface {
	SendOTPSMS(ctx context.Context, mobile, code string, expiresAt time.Time) error
}

// LogSMSSender writes codes to the log instead of a gateway. Used in
// development and wherever no SMS provider is configured. The code is
// only readable outside production.
type LogSMSSender struct {
	logger *slog.Logger
	env    string
}

// NewLogSMSSender creates a logging SMS sender
func NewLogSMSSender(logger *slog.Logger, env string) *LogSMSSender {
	return &LogSMSSender{logger: logger, env: env}
}

func (s *LogSMSSender) SendOTPSMS(ctx context.Context, mobile, code string, expiresAt time.Time) error {
	s.logger.Info("sms code dispatch (dev sender)",
		slog.String("mobile", pkglogger.SanitizedMobile(mobile)),
		pkglogger.RedactedAttr("code", code, s.env),
		slog.Time("expires_at", expiresAt))
	return nil
}
