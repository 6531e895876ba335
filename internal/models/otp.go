package models

import (
	"time"
)

// Channel discriminates where a one-time code is delivered. A code row
// always has exactly one channel and one destination string; there are
// no nullable dual columns.
type Channel string

const (
	ChannelEmail  Channel = "email"
	ChannelMobile Channel = "mobile"
)

// ParseChannel maps a wire value onto the closed channel set
func ParseChannel(s string) (Channel, bool) {
	switch Channel(s) {
	case ChannelEmail, ChannelMobile:
		return Channel(s), true
	default:
		return "", false
	}
}

// OneTimeCode represents a single-use 6-digit verification code.
// At most one unused row per (destination, channel) is live at a time;
// the store enforces this with invalidate-then-create in one transaction.
type OneTimeCode struct {
	ID          string     `json:"id"`
	Destination string     `json:"destination"`
	Channel     Channel    `json:"channel"`
	Code        string     `json:"-"` // Never expose the code in API payloads
	Used        bool       `json:"used"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   time.Time  `json:"expires_at"`
	VerifiedAt  *time.Time `json:"verified_at,omitempty"`
}

// IsExpired checks if the code has expired
func (c *OneTimeCode) IsExpired() bool {
	return !time.Now().Before(c.ExpiresAt)
}

// IsValid checks if the code is still matchable (not expired and not used)
func (c *OneTimeCode) IsValid() bool {
	return !c.Used && !c.IsExpired()
}
