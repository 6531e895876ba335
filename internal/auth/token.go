package auth

import (
	"fmt"
	"time"

	"driveline/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenManager signs and verifies session tokens. Tokens are pure
// bearer credentials with a fixed expiry; there is no revocation list.
type TokenManager struct {
	secret string
	expiry time.Duration
}

// NewTokenManager creates a new TokenManager
func NewTokenManager(secret string, expiry time.Duration) *TokenManager {
	return &TokenManager{
		secret: secret,
		expiry: expiry,
	}
}

// Issue mints a session token for the given account
func (tm *TokenManager) Issue(account *models.Account) (string, error) {
	now := time.Now()

	claims := &models.SessionClaims{
		AccountID: account.ID,
		Email:     account.Email,
		Mobile:    account.Mobile,
		Name:      account.Name,
		Role:      account.Role,
		Status:    account.Status,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(tm.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// Verify checks signature and expiry. Malformed input, a bad signature
// and an expired token all collapse into ErrUnauthorized; callers must
// not be able to distinguish them.
func (tm *TokenManager) Verify(tokenString string) (*models.SessionClaims, error) {
	claims := &models.SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tm.secret), nil
	})

	if err != nil || !token.Valid {
		return nil, models.ErrUnauthorized
	}

	if claims.AccountID == "" {
		return nil, models.ErrUnauthorized
	}

	return claims, nil
}
