package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"driveline/internal/auth"
	"driveline/internal/models"
	"driveline/internal/services"
	pkghttp "driveline/pkg/http"
)

// OTPServiceInterface defines the interface for code resend
type OTPServiceInterface interface {
	ResendEmail(ctx context.Context, email string) error
	ResendMobile(ctx context.Context, mobile string) error
}

// VerificationServiceInterface defines the interface for code verification
type VerificationServiceInterface interface {
	VerifyEmailOTP(ctx context.Context, email, code string, role models.Role) (*services.VerificationResult, error)
	VerifyMobileOTP(ctx context.Context, mobile, code string, role models.Role) (*services.VerificationResult, error)
}

// OTPHandler handles code resend and verification requests
type OTPHandler struct {
	otpService          OTPServiceInterface
	verificationService VerificationServiceInterface
	secureCookies       bool
}

// NewOTPHandler creates a new OTPHandler
func NewOTPHandler(otpService OTPServiceInterface, verificationService VerificationServiceInterface, secureCookies bool) *OTPHandler {
	return &OTPHandler{
		otpService:          otpService,
		verificationService: verificationService,
		secureCookies:       secureCookies,
	}
}

// ResendEmailRequest represents the request body for an email code resend
type ResendEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResendMobileRequest represents the request body for a mobile code resend
type ResendMobileRequest struct {
	Mobile string `json:"mobile" validate:"required,min=7,max=15"`
}

// ValidateEmailOTPRequest represents the request body for email code verification
type ValidateEmailOTPRequest struct {
	Email  string `json:"email" validate:"required,email"`
	OTP    string `json:"otp" validate:"required,len=6,numeric"`
	RoleID string `json:"role_id" validate:"required"`
}

// ValidateMobileOTPRequest represents the request body for mobile code verification
type ValidateMobileOTPRequest struct {
	Mobile string `json:"mobile" validate:"required,min=7,max=15"`
	OTP    string `json:"otp" validate:"required,len=6,numeric"`
	RoleID string `json:"role_id" validate:"required"`
}

// ValidateOTPResponse is the 200 payload for a successful verification
type ValidateOTPResponse struct {
	Token   string                    `json:"token"`
	Account *services.AccountResponse `json:"user"`
}

// ResendEmail handles POST /otp/resend-email
func (h *OTPHandler) ResendEmail(w http.ResponseWriter, r *http.Request) {
	var req ResendEmailRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := h.otpService.ResendEmail(r.Context(), req.Email); err != nil {
		var ve *models.ValidationError
		switch {
		case errors.As(err, &ve):
			pkghttp.WriteBadRequest(w, ve.Message)
		case errors.Is(err, models.ErrDelivery):
			pkghttp.WriteInternalError(w, "Failed to send OTP")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "OTP sent successfully",
	})
}

// ResendMobile handles POST /otp/resend-mobile
func (h *OTPHandler) ResendMobile(w http.ResponseWriter, r *http.Request) {
	var req ResendMobileRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	req.Mobile = strings.TrimSpace(req.Mobile)

	if err := h.otpService.ResendMobile(r.Context(), req.Mobile); err != nil {
		var ve *models.ValidationError
		switch {
		case errors.As(err, &ve):
			pkghttp.WriteBadRequest(w, ve.Message)
		case errors.Is(err, models.ErrDelivery):
			pkghttp.WriteInternalError(w, "Failed to send OTP")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "OTP sent successfully",
	})
}

// ValidateEmailOTP handles POST /validate-email-otp
func (h *OTPHandler) ValidateEmailOTP(w http.ResponseWriter, r *http.Request) {
	var req ValidateEmailOTPRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	role, ok := models.ParseRole(req.RoleID)
	if !ok {
		pkghttp.WriteBadRequest(w, "Invalid role")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	result, err := h.verificationService.VerifyEmailOTP(r.Context(), req.Email, req.OTP, role)
	if err != nil {
		writeVerificationError(w, err)
		return
	}

	h.writeVerified(w, result)
}

// ValidateMobileOTP handles POST /validate-mobile-otp
func (h *OTPHandler) ValidateMobileOTP(w http.ResponseWriter, r *http.Request) {
	var req ValidateMobileOTPRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	role, ok := models.ParseRole(req.RoleID)
	if !ok {
		pkghttp.WriteBadRequest(w, "Invalid role")
		return
	}

	result, err := h.verificationService.VerifyMobileOTP(r.Context(), strings.TrimSpace(req.Mobile), req.OTP, role)
	if err != nil {
		writeVerificationError(w, err)
		return
	}

	h.writeVerified(w, result)
}

func (h *OTPHandler) writeVerified(w http.ResponseWriter, result *services.VerificationResult) {
	auth.SetSessionCookie(w, result.Token, h.secureCookies)
	pkghttp.WriteJSON(w, http.StatusOK, ValidateOTPResponse{
		Token:   result.Token,
		Account: services.AccountToResponse(result.Account),
	})
}

// writeVerificationError maps verification failures. Wrong and expired
// codes are deliberately indistinguishable.
func writeVerificationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		pkghttp.WriteNotFound(w, "Account not found")
	case errors.Is(err, models.ErrInvalidOTP):
		pkghttp.WriteBadRequest(w, "Invalid OTP")
	default:
		pkghttp.WriteInternalError(w, "Internal server error")
	}
}
