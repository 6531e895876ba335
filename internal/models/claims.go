package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload of the bearer session token. Tokens are
// stateless; there is no server-side revocation list.
type SessionClaims struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email,omitempty"`
	Mobile    string `json:"mobile,omitempty"`
	Name      string `json:"name,omitempty"`
	Role      Role   `json:"role"`
	Status    string `json:"status,omitempty"`
	jwt.RegisteredClaims
}
