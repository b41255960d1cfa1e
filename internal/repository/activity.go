package repository

import (
	"context"

	"chat_admin/internal/domain"

	"gorm.io/gorm"
)

// ActivityLogRepository is the append-only audit trail. There is deliberately
// no update or delete operation.
type ActivityLogRepository interface {
	Append(ctx context.Context, entry *domain.ActivityLog) error
	Recent(ctx context.Context, limit int) ([]domain.ActivityLog, error)
	RecentForUser(ctx context.Context, targetUserID uint, limit int) ([]domain.ActivityLog, error)
}

type gormActivityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository returns an ActivityLogRepository backed by db
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &gormActivityLogRepository{db: db}
}

func (r *gormActivityLogRepository) Append(ctx context.Context, entry *domain.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *gormActivityLogRepository) Recent(ctx context.Context, limit int) ([]domain.ActivityLog, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	var entries []domain.ActivityLog
	err := r.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&entries).Error
	return entries, err
}

func (r *gormActivityLogRepository) RecentForUser(ctx context.Context, targetUserID uint, limit int) ([]domain.ActivityLog, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	var entries []domain.ActivityLog
	err := r.db.WithContext(ctx).
		Where("target_user_id = ?", targetUserID).
		Order("created_at desc").Limit(limit).Find(&entries).Error
	return entries, err
}
