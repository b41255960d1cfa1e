package domain

import "time"

// Message Model
type Message struct {
	ID             uint      `gorm:"primaryKey" json:"id"`                  // Primary key
	UserID         uint      `gorm:"index;not null" json:"user_id"`         // Foreign key to owning User
	ConversationID uint      `gorm:"index;not null" json:"conversation_id"` // Foreign key to Conversation
	Text           string    `json:"text"`                                  // Message body
	CreatedAt      time.Time `gorm:"index" json:"created_at"`               // Timestamp of creation
}
