package service

import (
	"fmt"

	"github.com/askhub/askhub-backend/internal/common"
	"github.com/askhub/askhub-backend/internal/domain"
	"github.com/askhub/askhub-backend/internal/query"
	"github.com/askhub/askhub-backend/internal/repository"
)

// UserService handles admin user management
type UserService struct {
	users repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// UserUpdate carries optional user fields to change
type UserUpdate struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

// List returns one page of users for a raw list request
func (s *UserService) List(req query.ListRequest) (*query.Page[domain.User], error) {
	req.Entity = query.EntityUsers
	plan, err := query.Build(req)
	if err != nil {
		return nil, err
	}

	users, total, err := s.users.List(plan)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	page := query.NewPage(users, total, plan.Page, plan.PageSize)
	return &page, nil
}

// Get returns one user
func (s *UserService) Get(id uint64) (*domain.User, error) {
	return s.users.FindByID(id)
}

// Update applies the provided fields to a user
func (s *UserService) Update(id uint64, update UserUpdate) (*domain.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Role != nil {
		role := domain.Role(*update.Role)
		if role != domain.RoleUser && role != domain.RoleAdmin {
			return nil, fmt.Errorf("%w: unknown role %q", common.ErrInvalidInput, *update.Role)
		}
		user.Role = role
	}

	if err := s.users.Update(user); err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	return user, nil
}

// Delete removes a user and all dependent records
func (s *UserService) Delete(id uint64) (*repository.CascadeResult, error) {
	if _, err := s.users.FindByID(id); err != nil {
		return nil, err
	}

	result, err := s.users.DeleteCascade(id)
	if err != nil {
		// the transaction rolled back, so nothing was committed
		return nil, &common.PartialFailureError{
			Action:    "delete user",
			Stage:     fmt.Sprintf("cascade for user %d", id),
			Completed: 0,
			Err:       err,
		}
	}
	return result, nil
}
