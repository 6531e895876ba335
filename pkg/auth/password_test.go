package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("SecurePassword123")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "SecurePassword123", hash)
}

func TestHashPassword_Empty(t *testing.T) {
	hash, err := HashPassword("")
	assert.Error(t, err)
	assert.Empty(t, hash)
}

func TestHashPassword_Unique(t *testing.T) {
	first, err := HashPassword("SecurePassword123")
	require.NoError(t, err)
	second, err := HashPassword("SecurePassword123")
	require.NoError(t, err)

	// bcrypt salts per call
	assert.NotEqual(t, first, second)
}

func TestComparePassword(t *testing.T) {
	hash, err := HashPassword("SecurePassword123")
	require.NoError(t, err)

	assert.NoError(t, ComparePassword(hash, "SecurePassword123"))
	assert.Error(t, ComparePassword(hash, "WrongPassword999"))
	assert.Error(t, ComparePassword(hash, ""))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("12345678"))
	assert.NoError(t, ValidatePassword("a-perfectly-reasonable-passphrase"))

	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(""))

	long := make([]byte, MaxPasswordLen+1)
	for i := range long {
		long[i] = 'a'
	}
	assert.Error(t, ValidatePassword(string(long)))
}

func TestValidatePassword_GenericMessage(t *testing.T) {
	err := ValidatePassword("short")
	require.Error(t, err)
	// The message never enumerates requirements
	assert.Equal(t, "invalid password", err.Error())
}
