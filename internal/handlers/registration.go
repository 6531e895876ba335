package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"driveline/internal/models"
	"driveline/internal/services"
	pkghttp "driveline/pkg/http"
)

// RegistrationServiceInterface defines the interface for registration business logic
type RegistrationServiceInterface interface {
	RegisterProvider(ctx context.Context, input services.ProviderRegistration) (*services.RegistrationResult, error)
	RegisterUser(ctx context.Context, input services.UserRegistration) (*services.RegistrationResult, error)
}

// RegistrationHandler handles provider and user sign-up
type RegistrationHandler struct {
	service RegistrationServiceInterface
}

// NewRegistrationHandler creates a new RegistrationHandler
func NewRegistrationHandler(service RegistrationServiceInterface) *RegistrationHandler {
	return &RegistrationHandler{service: service}
}

// ProviderRegisterRequest represents the request body for provider registration
type ProviderRegisterRequest struct {
	Name            string `json:"name" validate:"required,min=1"`
	Email           string `json:"email" validate:"required,email"`
	Mobile          string `json:"mobile" validate:"required,min=7,max=15"`
	AlternateMobile string `json:"alternate_mobile,omitempty" validate:"omitempty,min=7,max=15"`
	Password        string `json:"password" validate:"required,min=8"`
	Address         string `json:"address" validate:"required"`
	CityID          string `json:"cityId" validate:"required"`
	StateID         string `json:"stateId" validate:"required"`
	Zipcode         string `json:"zipcode" validate:"required"`
}

// UserRegisterRequest represents the request body for user registration
type UserRegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Mobile   string `json:"mobile" validate:"required,min=7,max=15"`
	Password string `json:"password" validate:"required,min=8"`
}

// RegisterResponse is the 201 payload. The plain codes are exposed for
// debug visibility; nothing is dispatched at registration time.
type RegisterResponse struct {
	Account   *services.AccountResponse `json:"user"`
	EmailOTP  string                    `json:"emailOTP"`
	MobileOTP string                    `json:"mobileOTP"`
}

// RegisterProvider handles provider sign-up
func (h *RegistrationHandler) RegisterProvider(w http.ResponseWriter, r *http.Request) {
	var req ProviderRegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	result, err := h.service.RegisterProvider(r.Context(), services.ProviderRegistration{
		Name:            req.Name,
		Email:           req.Email,
		Mobile:          req.Mobile,
		AlternateMobile: req.AlternateMobile,
		Password:        req.Password,
		Address:         req.Address,
		CityID:          req.CityID,
		StateID:         req.StateID,
		Zipcode:         req.Zipcode,
	})
	if err != nil {
		writeRegistrationError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, RegisterResponse{
		Account:   services.AccountToResponse(result.Account),
		EmailOTP:  result.EmailOTP,
		MobileOTP: result.MobileOTP,
	})
}

// RegisterUser handles user sign-up
func (h *RegistrationHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req UserRegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	result, err := h.service.RegisterUser(r.Context(), services.UserRegistration{
		Name:     req.Name,
		Email:    req.Email,
		Mobile:   req.Mobile,
		Password: req.Password,
	})
	if err != nil {
		writeRegistrationError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, RegisterResponse{
		Account:   services.AccountToResponse(result.Account),
		EmailOTP:  result.EmailOTP,
		MobileOTP: result.MobileOTP,
	})
}

// writeRegistrationError maps service errors to responses. Every
// uniqueness collision produces the same message regardless of which
// field collided.
func writeRegistrationError(w http.ResponseWriter, err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		pkghttp.WriteBadRequest(w, ve.Message)
	case errors.Is(err, models.ErrConflict):
		pkghttp.WriteBadRequest(w, "Email or Mobile already exists")
	default:
		pkghttp.WriteInternalError(w, "Internal server error")
	}
}
