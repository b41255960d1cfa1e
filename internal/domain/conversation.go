package domain

import "time"

// Conversation Model
type Conversation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                           // Primary key
	UserID    uint      `gorm:"index;not null" json:"user_id"`                  // Foreign key to owning User
	Title     string    `gorm:"default:'New conversation'" json:"title"`        // Conversation title
	CreatedAt time.Time `json:"created_at"`                                     // Timestamp of creation
	UpdatedAt time.Time `json:"updated_at"`                                     // Timestamp of last update
}
