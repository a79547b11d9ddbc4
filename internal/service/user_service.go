package service

import (
	"context"
	"errors"

	"civicvoice/internal/models"
	"civicvoice/internal/repository"

	"gorm.io/gorm"
)

type UserService struct {
	userRepo repository.UserRepository
}

type UpdateUserInput struct {
	Caller   models.Caller
	UserID   uint
	Name     string
	Locality string
	Avatar   string
	Role     string
	IsActive *bool
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, err
	}
	return user, nil
}

// ListUsers returns all accounts. Admin only.
func (s *UserService) ListUsers(ctx context.Context, caller models.Caller, limit, offset int) ([]*models.User, int64, error) {
	if !caller.IsAdmin() {
		return nil, 0, models.NewForbiddenError("Only admins can list users")
	}
	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// ListEmployees returns employee accounts, used for complaint assignment.
func (s *UserService) ListEmployees(ctx context.Context, limit, offset int) ([]*models.User, error) {
	return s.userRepo.ListByRole(ctx, models.RoleEmployee, limit, offset)
}

// UpdateUser edits a profile. Users can edit their own name, locality, and
// avatar; role and activation changes are admin only.
func (s *UserService) UpdateUser(ctx context.Context, in UpdateUserInput) (*models.User, error) {
	if in.Caller.ID != in.UserID && !in.Caller.IsAdmin() {
		return nil, models.NewForbiddenError("You can only update your own profile")
	}

	user, err := s.GetUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Locality != "" {
		user.Locality = in.Locality
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}
	if in.Role != "" {
		if !in.Caller.IsAdmin() {
			return nil, models.NewForbiddenError("Only admins can change roles")
		}
		role, err := models.ParseRole(in.Role)
		if err != nil {
			return nil, err
		}
		user.Role = role
	}
	if in.IsActive != nil {
		if !in.Caller.IsAdmin() {
			return nil, models.NewForbiddenError("Only admins can change account status")
		}
		user.IsActive = *in.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account permanently. Users can delete their own
// account; admins can delete anyone but themselves.
func (s *UserService) DeleteUser(ctx context.Context, caller models.Caller, userID uint) error {
	if caller.ID != userID && !caller.IsAdmin() {
		return models.NewForbiddenError("You can only delete your own account")
	}
	if caller.IsAdmin() && caller.ID == userID {
		return models.NewValidationError("Admins cannot delete their own account")
	}
	if _, err := s.GetUser(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}
