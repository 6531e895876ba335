package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseChannel(t *testing.T) {
	channel, ok := ParseChannel("email")
	assert.True(t, ok)
	assert.Equal(t, ChannelEmail, channel)

	channel, ok = ParseChannel("mobile")
	assert.True(t, ok)
	assert.Equal(t, ChannelMobile, channel)

	_, ok = ParseChannel("carrier-pigeon")
	assert.False(t, ok)

	// Casing matters on the wire
	_, ok = ParseChannel("EMAIL")
	assert.False(t, ok)
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("PROVIDER")
	assert.True(t, ok)
	assert.Equal(t, RoleProvider, role)

	_, ok = ParseRole("provider")
	assert.False(t, ok)

	_, ok = ParseRole("")
	assert.False(t, ok)
}

func TestOneTimeCode_IsValid(t *testing.T) {
	now := time.Now()

	live := &OneTimeCode{ExpiresAt: now.Add(15 * time.Minute)}
	assert.True(t, live.IsValid())
	assert.False(t, live.IsExpired())

	expired := &OneTimeCode{ExpiresAt: now.Add(-1 * time.Minute)}
	assert.False(t, expired.IsValid())
	assert.True(t, expired.IsExpired())

	used := &OneTimeCode{Used: true, ExpiresAt: now.Add(15 * time.Minute)}
	assert.False(t, used.IsValid())
}
