package model

import "time"

// Session tracks one authenticated login. Sessions live in Redis with
// a TTL matching ExpiresAt; there is no sessions collection in Mongo.
type Session struct {
	SessionID  string    `json:"session_id"`
	Email      string    `json:"email"`
	Browser    string    `json:"browser"`
	OS         string    `json:"os"`
	Device     string    `json:"device"`
	IPAddress  string    `json:"ip_address"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password"`
}
