package repository

import (
	"context"
	"errors"
	"time"

	"chat_admin/internal/domain"

	"gorm.io/gorm"
)

// SystemOverview holds the dashboard headline counts
type SystemOverview struct {
	TotalUsers         int64 `json:"total_users"`
	TotalConversations int64 `json:"total_conversations"`
	TotalMessages      int64 `json:"total_messages"`
	TotalTransactions  int64 `json:"total_transactions"`
	ActiveUsers        int64 `json:"active_users"` // Users updated within the last 24h
}

// UserGrowth counts registrations over trailing windows
type UserGrowth struct {
	Today     int64 `json:"today"`
	ThisWeek  int64 `json:"this_week"`
	ThisMonth int64 `json:"this_month"`
}

// RoleCount is one bucket of the role distribution
type RoleCount struct {
	Role  domain.Role `json:"role"`
	Count int64       `json:"count"`
}

// DayCount is one bucket of a per-day usage series
type DayCount struct {
	Day   string `json:"day"` // YYYY-MM-DD
	Count int64  `json:"count"`
}

// StatsRepository provides the read-only aggregations behind the dashboard
// and per-user stat endpoints. Nothing here mutates state.
type StatsRepository interface {
	Overview(ctx context.Context) (*SystemOverview, error)
	Growth(ctx context.Context) (*UserGrowth, error)
	RoleDistribution(ctx context.Context) ([]RoleCount, error)
	MessageSeries(ctx context.Context, days int) ([]DayCount, error)
	UserBalance(ctx context.Context, userID uint) (float64, error)
	RecentConversations(ctx context.Context, userID uint, limit int) ([]domain.Conversation, error)
	RecentMessages(ctx context.Context, userID uint, limit int) ([]domain.Message, error)
	RecentTransactions(ctx context.Context, userID uint, limit int) ([]domain.Transaction, error)
}

type gormStatsRepository struct {
	db *gorm.DB
}

// NewStatsRepository returns a StatsRepository backed by db
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &gormStatsRepository{db: db}
}

func (r *gormStatsRepository) Overview(ctx context.Context) (*SystemOverview, error) {
	db := r.db.WithContext(ctx)
	var overview SystemOverview
	counts := []struct {
		model any
		dest  *int64
	}{
		{&domain.User{}, &overview.TotalUsers},
		{&domain.Conversation{}, &overview.TotalConversations},
		{&domain.Message{}, &overview.TotalMessages},
		{&domain.Transaction{}, &overview.TotalTransactions},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	cutoff := time.Now().Add(-24 * time.Hour)
	err := db.Model(&domain.User{}).Where("updated_at >= ?", cutoff).Count(&overview.ActiveUsers).Error
	if err != nil {
		return nil, err
	}
	return &overview, nil
}

func (r *gormStatsRepository) Growth(ctx context.Context) (*UserGrowth, error) {
	db := r.db.WithContext(ctx)
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var growth UserGrowth
	windows := []struct {
		since time.Time
		dest  *int64
	}{
		{startOfDay, &growth.Today},
		{now.AddDate(0, 0, -7), &growth.ThisWeek},
		{now.AddDate(0, 0, -30), &growth.ThisMonth},
	}
	for _, w := range windows {
		if err := db.Model(&domain.User{}).Where("created_at >= ?", w.since).Count(w.dest).Error; err != nil {
			return nil, err
		}
	}
	return &growth, nil
}

func (r *gormStatsRepository) RoleDistribution(ctx context.Context) ([]RoleCount, error) {
	var rows []RoleCount
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Select("role, COUNT(*) as count").
		Group("role").Order("role").
		Scan(&rows).Error
	return rows, err
}

func (r *gormStatsRepository) MessageSeries(ctx context.Context, days int) ([]DayCount, error) {
	if days < 1 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)
	var rows []DayCount
	err := r.db.WithContext(ctx).Model(&domain.Message{}).
		Select("DATE(created_at) as day, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").Order("day").
		Scan(&rows).Error
	return rows, err
}

func (r *gormStatsRepository) UserBalance(ctx context.Context, userID uint) (float64, error) {
	var balance domain.Balance
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&balance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil // No balance row yet means zero credits
	}
	if err != nil {
		return 0, err
	}
	return balance.TokenCredits, nil
}

func (r *gormStatsRepository) RecentConversations(ctx context.Context, userID uint, limit int) ([]domain.Conversation, error) {
	var conversations []domain.Conversation
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("updated_at desc").Limit(limit).Find(&conversations).Error
	return conversations, err
}

func (r *gormStatsRepository) RecentMessages(ctx context.Context, userID uint, limit int) ([]domain.Message, error) {
	var messages []domain.Message
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at desc").Limit(limit).Find(&messages).Error
	return messages, err
}

func (r *gormStatsRepository) RecentTransactions(ctx context.Context, userID uint, limit int) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at desc").Limit(limit).Find(&transactions).Error
	return transactions, err
}
