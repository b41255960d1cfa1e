package domain

import "time"

// Session Model: one record per issued refresh token. Banning or deleting a
// user removes all of their sessions, forcing re-authentication.
type Session struct {
	ID        uint      `gorm:"primaryKey" json:"id"`            // Primary key
	UserID    uint      `gorm:"index;not null" json:"user_id"`   // Foreign key to User
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`   // Opaque refresh token value
	ExpiresAt time.Time `json:"expires_at"`                      // Expiry of the refresh token
	CreatedAt time.Time `json:"created_at"`                      // Timestamp of creation
}
