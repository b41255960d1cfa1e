package domain

import "time"

// PluginAuth Model: stored third-party plugin credential
type PluginAuth struct {
	ID        uint      `gorm:"primaryKey" json:"id"`          // Primary key
	UserID    uint      `gorm:"index;not null" json:"user_id"` // Foreign key to owning User
	PluginKey string    `gorm:"not null" json:"plugin_key"`    // Plugin identifier
	Value     string    `gorm:"not null" json:"-"`             // Credential value, never serialized
	CreatedAt time.Time `json:"created_at"`                    // Timestamp of creation
}
