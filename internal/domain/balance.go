package domain

// Balance Model: current token-credit balance, one row per user
type Balance struct {
	ID           uint    `gorm:"primaryKey" json:"id"`                // Primary key
	UserID       uint    `gorm:"uniqueIndex;not null" json:"user_id"` // Foreign key to User
	TokenCredits float64 `gorm:"not null;default:0" json:"token_credits"` // Remaining credits
}
