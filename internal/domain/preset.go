package domain

import "time"

// Preset Model: saved per-user chat preset
type Preset struct {
	ID        uint      `gorm:"primaryKey" json:"id"`          // Primary key
	UserID    uint      `gorm:"index;not null" json:"user_id"` // Foreign key to owning User
	Title     string    `json:"title"`                         // Preset title
	Payload   string    `json:"payload"`                       // Serialized preset settings
	CreatedAt time.Time `json:"created_at"`                    // Timestamp of creation
	UpdatedAt time.Time `json:"updated_at"`                    // Timestamp of last update
}
