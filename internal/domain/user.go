package domain

import "time"

// Role is the closed set of user roles
type Role string

const (
	RoleUser  Role = "USER"  // Regular user
	RoleAdmin Role = "ADMIN" // Elevated role required for admin operations
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// User Model
type User struct {
	ID            uint       `gorm:"primaryKey" json:"id"`                                // Primary key
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`                   // Unique email, stored lowercase
	Username      *string    `gorm:"uniqueIndex;default:null" json:"username,omitempty"`  // Optional unique username
	Name          string     `json:"name"`                                                // Display name
	Password      string     `gorm:"not null" json:"-"`                                   // Bcrypt hash, never serialized
	Role          Role       `gorm:"type:varchar(16);default:'USER';index" json:"role"`   // USER or ADMIN
	EmailVerified bool       `gorm:"default:false" json:"email_verified"`                 // Verification state
	Banned        bool       `gorm:"default:false;index" json:"banned"`                   // Ban flag
	BannedAt      *time.Time `json:"banned_at,omitempty"`                                 // When the ban was applied
	BannedBy      *uint      `json:"banned_by,omitempty"`                                 // Admin user ID that applied the ban
	BanReason     string     `json:"ban_reason,omitempty"`                                // Free-text ban reason
	CreatedAt     time.Time  `json:"created_at"`                                          // Timestamp of creation
	UpdatedAt     time.Time  `json:"updated_at"`                                          // Timestamp of last update
}
