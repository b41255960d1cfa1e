package domain

import "time"

// Transaction Model: one record per token-credit movement (usage or top-up)
type Transaction struct {
	ID           uint      `gorm:"primaryKey" json:"id"`          // Primary key
	UserID       uint      `gorm:"index;not null" json:"user_id"` // Foreign key to owning User
	TokenCredits float64   `json:"token_credits"`                 // Signed credit delta
	Context      string    `json:"context"`                       // What the credits were spent on
	CreatedAt    time.Time `json:"created_at"`                    // Timestamp of creation
}
