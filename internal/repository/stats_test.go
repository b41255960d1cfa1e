package repository

import (
	"context"
	"testing"
	"time"

	"chat_admin/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsRepositoryOverviewAndGrowth(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewStatsRepository(db)
	user := seedUser(t, db, "stats@example.com", domain.RoleUser)
	seedUser(t, db, "stats2@example.com", domain.RoleAdmin)

	conv := domain.Conversation{UserID: user.ID}
	require.NoError(t, db.Create(&conv).Error)
	require.NoError(t, db.Create(&domain.Message{UserID: user.ID, ConversationID: conv.ID}).Error)
	require.NoError(t, db.Create(&domain.Transaction{UserID: user.ID, TokenCredits: -1}).Error)

	overview, err := repo.Overview(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, overview.TotalUsers)
	assert.EqualValues(t, 1, overview.TotalConversations)
	assert.EqualValues(t, 1, overview.TotalMessages)
	assert.EqualValues(t, 1, overview.TotalTransactions)
	assert.EqualValues(t, 2, overview.ActiveUsers, "freshly created users count as active")

	growth, err := repo.Growth(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, growth.Today)
	assert.EqualValues(t, 2, growth.ThisWeek)
	assert.EqualValues(t, 2, growth.ThisMonth)
}

func TestStatsRepositoryRoleDistribution(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewStatsRepository(db)
	seedUser(t, db, "u1@example.com", domain.RoleUser)
	seedUser(t, db, "u2@example.com", domain.RoleUser)
	seedUser(t, db, "a1@example.com", domain.RoleAdmin)

	rows, err := repo.RoleDistribution(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	counts := map[domain.Role]int64{}
	for _, row := range rows {
		counts[row.Role] = row.Count
	}
	assert.EqualValues(t, 2, counts[domain.RoleUser])
	assert.EqualValues(t, 1, counts[domain.RoleAdmin])
}

func TestStatsRepositoryMessageSeries(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewStatsRepository(db)
	user := seedUser(t, db, "series@example.com", domain.RoleUser)
	conv := domain.Conversation{UserID: user.ID}
	require.NoError(t, db.Create(&conv).Error)

	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	for _, created := range []time.Time{now, now, yesterday} {
		msg := domain.Message{UserID: user.ID, ConversationID: conv.ID, CreatedAt: created}
		require.NoError(t, db.Create(&msg).Error)
	}
	// Outside the 30-day window, must not appear
	old := domain.Message{UserID: user.ID, ConversationID: conv.ID, CreatedAt: now.AddDate(0, 0, -45)}
	require.NoError(t, db.Create(&old).Error)

	rows, err := repo.MessageSeries(ctx, 30)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// Ascending by day, counts bucketed per day
	assert.EqualValues(t, 1, rows[0].Count)
	assert.EqualValues(t, 2, rows[1].Count)
	assert.Less(t, rows[0].Day, rows[1].Day)
}

func TestStatsRepositoryUserBalance(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewStatsRepository(db)
	user := seedUser(t, db, "bal@example.com", domain.RoleUser)

	// No balance row yet means zero
	credits, err := repo.UserBalance(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, credits)

	require.NoError(t, db.Create(&domain.Balance{UserID: user.ID, TokenCredits: 42.5}).Error)
	credits, err = repo.UserBalance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 42.5, credits)
}
