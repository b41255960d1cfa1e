package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"chat_admin/internal/domain"

	"gorm.io/gorm"
)

// UserFilter narrows a user listing. Zero values mean "no constraint".
type UserFilter struct {
	Role   *domain.Role // Exact role match
	Banned *bool        // Ban-status predicate
	Search string       // Case-insensitive substring over email/username/name
}

// UserSort selects the ordering of a user listing. Only whitelisted columns
// are accepted; anything else falls back to created_at.
type UserSort struct {
	Field string
	Desc  bool
}

// sortableColumns is the whitelist of user columns exposed for sorting
var sortableColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"email":      true,
	"username":   true,
	"name":       true,
	"role":       true,
}

// UserRepository defines CRUD and filtered query access over users
type UserRepository interface {
	List(ctx context.Context, filter UserFilter, sort UserSort, page, pageSize int) ([]domain.User, int64, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	UpdateRole(ctx context.Context, id uint, role domain.Role) (*domain.User, error)
	SetBanState(ctx context.Context, id uint, banned bool, reason string, actorID *uint) (*domain.User, error)
	Delete(ctx context.Context, id uint) error
}

type gormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a UserRepository backed by db
func NewUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) List(ctx context.Context, filter UserFilter, sort UserSort, page, pageSize int) ([]domain.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	query := r.db.WithContext(ctx).Model(&domain.User{})
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	if filter.Banned != nil {
		query = query.Where("banned = ?", *filter.Banned)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(email) LIKE ? OR LOWER(username) LIKE ? OR LOWER(name) LIKE ?", like, like, like)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	column := sort.Field
	if !sortableColumns[column] {
		column = "created_at"
	}
	order := column
	if sort.Desc {
		order += " desc"
	}
	var users []domain.User
	offset := (page - 1) * pageSize
	if err := query.Order(order).Offset(offset).Limit(pageSize).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *gormUserRepository) Create(ctx context.Context, user *domain.User) error {
	user.Email = strings.ToLower(user.Email)
	var existing domain.User
	err := r.db.WithContext(ctx).Where("email = ?", user.Email).First(&existing).Error
	if err == nil {
		return domain.ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *gormUserRepository) UpdateRole(ctx context.Context, id uint, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(user).Update("role", role).Error; err != nil {
		return nil, err
	}
	user.Role = role
	return user, nil
}

func (r *gormUserRepository) SetBanState(ctx context.Context, id uint, banned bool, reason string, actorID *uint) (*domain.User, error) {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// All ban fields change in a single UPDATE so a reader never observes a
	// half-applied ban.
	var updates map[string]any
	if banned {
		now := time.Now()
		updates = map[string]any{
			"banned":     true,
			"ban_reason": reason,
			"banned_at":  now,
			"banned_by":  actorID,
		}
		user.Banned = true
		user.BanReason = reason
		user.BannedAt = &now
		user.BannedBy = actorID
	} else {
		updates = map[string]any{
			"banned":     false,
			"ban_reason": "",
			"banned_at":  nil,
			"banned_by":  nil,
		}
		user.Banned = false
		user.BanReason = ""
		user.BannedAt = nil
		user.BannedBy = nil
	}
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *gormUserRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// translate maps GORM errors onto the domain error set
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
