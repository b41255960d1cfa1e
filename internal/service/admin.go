package service

import (
	"context"
	"encoding/json"
	"fmt"

	"chat_admin/internal/domain"
	"chat_admin/internal/repository"

	"github.com/sirupsen/logrus"
)

// Dependents groups the per-entity repositories the cascading delete walks.
// Sessions are held separately because ban needs them too.
type Dependents struct {
	Messages      repository.DependentRepository
	Transactions  repository.DependentRepository
	Balances      repository.DependentRepository
	Presets       repository.DependentRepository
	Conversations repository.DependentRepository
	PluginAuths   repository.DependentRepository
}

// AdminService orchestrates role changes, bans, cascading deletion and
// statistics over the repositories. It holds no state of its own.
type AdminService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	deps     Dependents
	activity repository.ActivityLogRepository
	stats    repository.StatsRepository
}

// NewAdminService wires an AdminService from its repositories
func NewAdminService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	deps Dependents,
	activity repository.ActivityLogRepository,
	stats repository.StatsRepository,
) *AdminService {
	return &AdminService{
		users:    users,
		sessions: sessions,
		deps:     deps,
		activity: activity,
		stats:    stats,
	}
}

// cascadeSteps returns the dependent repositories in deletion order. The user
// row itself is removed only after every step here has succeeded.
func (s *AdminService) cascadeSteps() []repository.DependentRepository {
	return []repository.DependentRepository{
		s.deps.Messages,
		s.sessions,
		s.deps.Transactions,
		s.deps.Balances,
		s.deps.Presets,
		s.deps.Conversations,
		s.deps.PluginAuths,
	}
}

// UpdateRole changes the target's role after validating it against the closed
// role set, and records an audit entry with the old and new values.
func (s *AdminService) UpdateRole(ctx context.Context, actor *domain.User, targetID uint, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	oldRole := target.Role
	updated, err := s.users.UpdateRole(ctx, targetID, role)
	if err != nil {
		return nil, err
	}
	logrus.Infof("admin %s updated user %s role to %s", actor.Email, updated.Email, role)
	s.audit(ctx, domain.AuditRoleChanged, actor, updated.ID, updated.Email,
		fmt.Sprintf("role changed from %s to %s", oldRole, role),
		map[string]any{"old_role": oldRole, "new_role": role})
	return updated, nil
}

// Ban revokes every active session of the target before setting the ban flag,
// so an already-issued refresh token stops working immediately. Banning an
// already-banned user refreshes the reason and timestamp.
func (s *AdminService) Ban(ctx context.Context, actor *domain.User, targetID uint, reason string) (*domain.User, error) {
	if _, err := s.users.FindByID(ctx, targetID); err != nil {
		return nil, err
	}
	if _, err := s.sessions.DeleteByUser(ctx, targetID); err != nil {
		return nil, err
	}
	updated, err := s.users.SetBanState(ctx, targetID, true, reason, &actor.ID)
	if err != nil {
		return nil, err
	}
	logrus.Infof("admin %s banned user %s, reason: %s", actor.Email, updated.Email, reason)
	s.audit(ctx, domain.AuditUserBanned, actor, updated.ID, updated.Email,
		"user banned", map[string]any{"reason": reason})
	return updated, nil
}

// Unban clears the ban fields. Revoked sessions are not restored; the user
// has to authenticate again.
func (s *AdminService) Unban(ctx context.Context, actor *domain.User, targetID uint) (*domain.User, error) {
	updated, err := s.users.SetBanState(ctx, targetID, false, "", nil)
	if err != nil {
		return nil, err
	}
	logrus.Infof("admin %s unbanned user %s", actor.Email, updated.Email)
	s.audit(ctx, domain.AuditUserUnbanned, actor, updated.ID, updated.Email, "user unbanned", nil)
	return updated, nil
}

// DeleteUser removes the target and everything it owns. Dependent records go
// first, one entity type at a time; the user row goes last so a failed run
// can always be retried. A failed step halts the cascade with ErrPartialFailure
// and no rollback of the steps already completed.
func (s *AdminService) DeleteUser(ctx context.Context, actor *domain.User, targetID uint) error {
	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return err
	}
	email := target.Email // Captured before the row disappears
	removed := map[string]int64{}
	for _, step := range s.cascadeSteps() {
		n, err := step.DeleteByUser(ctx, targetID)
		if err != nil {
			logrus.Errorf("cascade delete of user %d halted at %s: %v", targetID, step.Name(), err)
			return fmt.Errorf("%w: deleting %s: %v", domain.ErrPartialFailure, step.Name(), err)
		}
		removed[step.Name()] = n
	}
	if err := s.users.Delete(ctx, targetID); err != nil {
		return fmt.Errorf("%w: deleting user record: %v", domain.ErrPartialFailure, err)
	}
	logrus.Infof("admin %s deleted user %s", actor.Email, email)
	meta := make(map[string]any, len(removed))
	for name, n := range removed {
		meta[name] = n
	}
	s.audit(ctx, domain.AuditUserDeleted, actor, targetID, email, "user and all owned records deleted", meta)
	return nil
}

// audit appends an entry to the activity log. A failed append is logged and
// swallowed: the mutation itself already succeeded.
func (s *AdminService) audit(ctx context.Context, action domain.AuditAction, actor *domain.User, targetID uint, targetEmail, description string, metadata map[string]any) {
	entry := &domain.ActivityLog{
		Action:          action,
		AdminID:         actor.ID,
		AdminEmail:      actor.Email,
		TargetUserID:    targetID,
		TargetUserEmail: targetEmail,
		Description:     description,
	}
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			entry.Metadata = string(b)
		}
	}
	if err := s.activity.Append(ctx, entry); err != nil {
		logrus.Warnf("failed to append audit entry for %s: %v", action, err)
	}
}
