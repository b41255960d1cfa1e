package service

import (
	"context"
	"fmt"
	"strings"

	"chat_admin/internal/domain"
	"chat_admin/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// searchLimit caps the number of results returned by Search
const searchLimit = 20

// Search finds users matching q across email, username and name. Queries
// shorter than two characters are rejected.
func (s *AdminService) Search(ctx context.Context, q string) ([]domain.User, error) {
	q = strings.TrimSpace(q)
	if len(q) < 2 {
		return nil, domain.ErrQueryTooShort
	}
	users, _, err := s.users.List(ctx,
		repository.UserFilter{Search: q},
		repository.UserSort{Field: "created_at"},
		1, searchLimit)
	return users, err
}

// CreateUserInput is the validated payload for an admin-created account
type CreateUserInput struct {
	Email    string
	Name     string
	Username string
	Password string
	Role     domain.Role
}

// CreateUser provisions an account on behalf of an admin. The password is
// bcrypt-hashed; a duplicate email fails with ErrEmailTaken.
func (s *AdminService) CreateUser(ctx context.Context, actor *domain.User, input CreateUserInput) (*domain.User, error) {
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Email:    strings.ToLower(input.Email),
		Name:     input.Name,
		Password: string(hash),
		Role:     role,
	}
	if input.Username != "" {
		username := strings.ToLower(input.Username)
		user.Username = &username
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	logrus.Infof("admin %s created user %s with role %s", actor.Email, user.Email, role)
	s.audit(ctx, domain.AuditUserCreated, actor, user.ID, user.Email,
		"user created by admin", map[string]any{"role": role})
	return user, nil
}

// BulkInput applies one action to a set of users
type BulkInput struct {
	Action  string // ban, unban, delete or role
	UserIDs []uint
	Role    domain.Role // Only for action "role"
	Reason  string      // Only for action "ban"
}

// BulkFailure records why one target of a bulk action was skipped
type BulkFailure struct {
	UserID uint   `json:"user_id"`
	Error  string `json:"error"`
}

// BulkResult reports per-target outcomes of a bulk action
type BulkResult struct {
	Succeeded []uint        `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}

// BulkAction applies ban, unban, delete or a role change to each target in
// turn. Failures do not stop the remaining targets; every outcome is reported.
// One bulk_action audit entry summarizes the run.
func (s *AdminService) BulkAction(ctx context.Context, actor *domain.User, input BulkInput) (*BulkResult, error) {
	switch input.Action {
	case "ban", "unban", "delete":
	case "role":
		if !input.Role.Valid() {
			return nil, domain.ErrInvalidRole
		}
	default:
		return nil, fmt.Errorf("%w: unknown bulk action %q", domain.ErrInvalidRole, input.Action)
	}
	result := &BulkResult{Succeeded: []uint{}, Failed: []BulkFailure{}}
	for _, id := range input.UserIDs {
		if id == actor.ID {
			result.Failed = append(result.Failed, BulkFailure{UserID: id, Error: "cannot target yourself"})
			continue
		}
		var err error
		switch input.Action {
		case "ban":
			_, err = s.Ban(ctx, actor, id, input.Reason)
		case "unban":
			_, err = s.Unban(ctx, actor, id)
		case "delete":
			err = s.DeleteUser(ctx, actor, id)
		case "role":
			_, err = s.UpdateRole(ctx, actor, id, input.Role)
		}
		if err != nil {
			result.Failed = append(result.Failed, BulkFailure{UserID: id, Error: err.Error()})
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	s.audit(ctx, domain.AuditBulkAction, actor, 0, "",
		fmt.Sprintf("bulk %s on %d users", input.Action, len(input.UserIDs)),
		map[string]any{
			"action":    input.Action,
			"succeeded": len(result.Succeeded),
			"failed":    len(result.Failed),
		})
	return result, nil
}
