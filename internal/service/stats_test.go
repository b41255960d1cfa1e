package service

import (
	"context"
	"testing"

	"chat_admin/internal/domain"
	"chat_admin/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, "a1@example.com", domain.RoleAdmin)
	target := env.seedUser(t, "u1@example.com", domain.RoleUser)
	seedOwnedRecords(t, env, target.ID, 3, 5)

	// One admin action against the target, visible in its history
	_, err := env.svc.Ban(ctx, admin, target.ID, "testing")
	require.NoError(t, err)

	stats, err := env.svc.UserStats(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, target.ID, stats.User.ID)
	assert.EqualValues(t, 3, stats.Stats.ConversationCount)
	assert.EqualValues(t, 5, stats.Stats.MessageCount)
	assert.EqualValues(t, 1, stats.Stats.TransactionCount)
	assert.Equal(t, 10.0, stats.Stats.Balance)
	assert.Len(t, stats.RecentActivity.Conversations, 3)
	assert.Len(t, stats.RecentActivity.Messages, 5)
	assert.Len(t, stats.RecentActivity.Transactions, 1)
	require.Len(t, stats.AdminActions, 1)
	assert.Equal(t, domain.AuditUserBanned, stats.AdminActions[0].Action)

	_, err = env.svc.UserStats(ctx, 9999)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSystemStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "a1@example.com", domain.RoleAdmin)
	target := env.seedUser(t, "u1@example.com", domain.RoleUser)
	seedOwnedRecords(t, env, target.ID, 2, 6)

	stats, err := env.svc.SystemStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.Overview.TotalUsers)
	assert.EqualValues(t, 2, stats.Overview.TotalConversations)
	assert.EqualValues(t, 6, stats.Overview.TotalMessages)
	assert.EqualValues(t, 1, stats.Overview.TotalTransactions)
	assert.EqualValues(t, 2, stats.UserGrowth.Today)
	require.Len(t, stats.RoleDistribution, 2)
	require.Len(t, stats.UsageSeries, 1, "all messages created today")
	assert.EqualValues(t, 6, stats.UsageSeries[0].Count)
}

func TestListUsersWithStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "a1@example.com", domain.RoleAdmin)
	target := env.seedUser(t, "u1@example.com", domain.RoleUser)
	seedOwnedRecords(t, env, target.ID, 2, 3)

	page, err := env.svc.ListUsers(ctx, repository.UserFilter{Search: "u1"}, repository.UserSort{Field: "created_at"}, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	assert.Equal(t, 1, page.TotalPages)
	require.Len(t, page.Users, 1)
	assert.EqualValues(t, 2, page.Users[0].Stats.ConversationCount)
	assert.EqualValues(t, 3, page.Users[0].Stats.MessageCount)
	assert.Equal(t, 10.0, page.Users[0].Stats.Balance)
}
