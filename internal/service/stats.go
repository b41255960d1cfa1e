package service

import (
	"context"

	"chat_admin/internal/domain"
	"chat_admin/internal/repository"
)

// UserStats bundles a single user with its usage counters and recent activity
type UserStats struct {
	User  *domain.User `json:"user"`
	Stats struct {
		ConversationCount int64   `json:"conversation_count"`
		MessageCount      int64   `json:"message_count"`
		TransactionCount  int64   `json:"transaction_count"`
		Balance           float64 `json:"balance"`
	} `json:"stats"`
	RecentActivity struct {
		Conversations []domain.Conversation `json:"conversations"`
		Messages      []domain.Message      `json:"messages"`
		Transactions  []domain.Transaction  `json:"transactions"`
	} `json:"recent_activity"`
	AdminActions []domain.ActivityLog `json:"admin_actions"` // Audit entries targeting this user
}

// SystemStats is the dashboard payload: headline counts, registration growth,
// role distribution and a daily message series over the trailing month.
type SystemStats struct {
	Overview         *repository.SystemOverview `json:"overview"`
	UserGrowth       *repository.UserGrowth     `json:"user_growth"`
	RoleDistribution []repository.RoleCount     `json:"role_distribution"`
	UsageSeries      []repository.DayCount      `json:"usage_series"`
}

// recentLimit caps the recent-activity lists on the per-user stats endpoint
const recentLimit = 10

// UserStats loads one user together with usage counters and recent activity
func (s *AdminService) UserStats(ctx context.Context, targetID uint) (*UserStats, error) {
	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	result := &UserStats{User: user}
	if result.Stats.ConversationCount, err = s.deps.Conversations.CountByUser(ctx, targetID); err != nil {
		return nil, err
	}
	if result.Stats.MessageCount, err = s.deps.Messages.CountByUser(ctx, targetID); err != nil {
		return nil, err
	}
	if result.Stats.TransactionCount, err = s.deps.Transactions.CountByUser(ctx, targetID); err != nil {
		return nil, err
	}
	if result.Stats.Balance, err = s.stats.UserBalance(ctx, targetID); err != nil {
		return nil, err
	}
	if result.RecentActivity.Conversations, err = s.stats.RecentConversations(ctx, targetID, recentLimit); err != nil {
		return nil, err
	}
	if result.RecentActivity.Messages, err = s.stats.RecentMessages(ctx, targetID, recentLimit); err != nil {
		return nil, err
	}
	if result.RecentActivity.Transactions, err = s.stats.RecentTransactions(ctx, targetID, recentLimit); err != nil {
		return nil, err
	}
	if result.AdminActions, err = s.activity.RecentForUser(ctx, targetID, recentLimit); err != nil {
		return nil, err
	}
	return result, nil
}

// SystemStats computes the system-wide dashboard aggregation. Read-only.
func (s *AdminService) SystemStats(ctx context.Context) (*SystemStats, error) {
	overview, err := s.stats.Overview(ctx)
	if err != nil {
		return nil, err
	}
	growth, err := s.stats.Growth(ctx)
	if err != nil {
		return nil, err
	}
	roles, err := s.stats.RoleDistribution(ctx)
	if err != nil {
		return nil, err
	}
	series, err := s.stats.MessageSeries(ctx, 30)
	if err != nil {
		return nil, err
	}
	return &SystemStats{
		Overview:         overview,
		UserGrowth:       growth,
		RoleDistribution: roles,
		UsageSeries:      series,
	}, nil
}

// RecentActivity returns the newest audit entries, most recent first
func (s *AdminService) RecentActivity(ctx context.Context, limit int) ([]domain.ActivityLog, error) {
	return s.activity.Recent(ctx, limit)
}
