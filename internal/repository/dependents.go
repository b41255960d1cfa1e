package repository

import (
	"context"
	"time"

	"chat_admin/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DependentRepository covers the per-entity-type operations needed by the
// cascading delete: counting and removing everything a user owns.
// DeleteByUser is idempotent and reports the number of rows removed.
type DependentRepository interface {
	Name() string
	CountByUser(ctx context.Context, userID uint) (int64, error)
	DeleteByUser(ctx context.Context, userID uint) (int64, error)
}

// gormDependent implements DependentRepository for any model with a user_id column
type gormDependent struct {
	db    *gorm.DB
	name  string
	model any
}

func (r *gormDependent) Name() string { return r.name }

func (r *gormDependent) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(r.model).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *gormDependent) DeleteByUser(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(r.model)
	return res.RowsAffected, res.Error
}

// NewConversationRepository returns the dependent repository for conversations
func NewConversationRepository(db *gorm.DB) DependentRepository {
	return &gormDependent{db: db, name: "conversations", model: &domain.Conversation{}}
}

// NewMessageRepository returns the dependent repository for messages
func NewMessageRepository(db *gorm.DB) DependentRepository {
	return &gormDependent{db: db, name: "messages", model: &domain.Message{}}
}

// NewTransactionRepository returns the dependent repository for transactions
func NewTransactionRepository(db *gorm.DB) DependentRepository {
	return &gormDependent{db: db, name: "transactions", model: &domain.Transaction{}}
}

// NewBalanceRepository returns the dependent repository for balances
func NewBalanceRepository(db *gorm.DB) DependentRepository {
	return &gormDependent{db: db, name: "balances", model: &domain.Balance{}}
}

// NewPluginAuthRepository returns the dependent repository for plugin credentials
func NewPluginAuthRepository(db *gorm.DB) DependentRepository {
	return &gormDependent{db: db, name: "plugin_auths", model: &domain.PluginAuth{}}
}

// NewPresetRepository returns the dependent repository for saved presets
func NewPresetRepository(db *gorm.DB) DependentRepository {
	return &gormDependent{db: db, name: "presets", model: &domain.Preset{}}
}

// SessionRepository adds token issuance on top of the dependent operations.
// DeleteByUser doubles as revoke-all, used by both ban and delete.
type SessionRepository interface {
	DependentRepository
	Create(ctx context.Context, userID uint, validity time.Duration) (*domain.Session, error)
	Find(ctx context.Context, token string) (*domain.Session, error)
}

type gormSessionRepository struct {
	gormDependent
}

// NewSessionRepository returns a SessionRepository backed by db
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &gormSessionRepository{gormDependent{db: db, name: "sessions", model: &domain.Session{}}}
}

func (r *gormSessionRepository) Create(ctx context.Context, userID uint, validity time.Duration) (*domain.Session, error) {
	session := &domain.Session{
		UserID:    userID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(validity),
	}
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func (r *gormSessionRepository) Find(ctx context.Context, token string) (*domain.Session, error) {
	var session domain.Session
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&session).Error
	if err != nil {
		return nil, translate(err)
	}
	return &session, nil
}
