package service

import (
	"context"

	"chat_admin/internal/domain"
	"chat_admin/internal/repository"
)

// UserWithStats decorates a user row with its usage counters for the listing
type UserWithStats struct {
	domain.User
	Stats struct {
		ConversationCount int64   `json:"conversation_count"`
		MessageCount      int64   `json:"message_count"`
		Balance           float64 `json:"balance"`
	} `json:"stats"`
}

// UserPage is one page of the user listing
type UserPage struct {
	Users      []UserWithStats `json:"users"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	Total      int64           `json:"total"`
	TotalPages int             `json:"total_pages"`
}

// ListUsers returns a filtered, sorted page of users, each decorated with
// conversation/message counts and current balance.
func (s *AdminService) ListUsers(ctx context.Context, filter repository.UserFilter, sort repository.UserSort, page, pageSize int) (*UserPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	users, total, err := s.users.List(ctx, filter, sort, page, pageSize)
	if err != nil {
		return nil, err
	}
	result := &UserPage{
		Users:      make([]UserWithStats, len(users)),
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: (int(total) + pageSize - 1) / pageSize,
	}
	for i, u := range users {
		row := UserWithStats{User: u}
		if row.Stats.ConversationCount, err = s.deps.Conversations.CountByUser(ctx, u.ID); err != nil {
			return nil, err
		}
		if row.Stats.MessageCount, err = s.deps.Messages.CountByUser(ctx, u.ID); err != nil {
			return nil, err
		}
		if row.Stats.Balance, err = s.stats.UserBalance(ctx, u.ID); err != nil {
			return nil, err
		}
		result.Users[i] = row
	}
	return result, nil
}
