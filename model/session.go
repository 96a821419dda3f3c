package model

import "time"

// Session is one active login recorded by the identity provider.
type Session struct {
	SessionID string    `json:"sessionId"`
	UserID    string    `json:"userId"`
	Device    string    `json:"device"` // e.g. "Chrome on Linux"
	CreatedAt time.Time `json:"createdAt"`
}
