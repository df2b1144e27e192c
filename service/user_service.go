package service

import (
	"database/sql"
	"errors"

	"github.com/devkingori/alika/model"
	"github.com/devkingori/alika/repository"
)

// UserService handles user-related business logic.
type UserService struct {
	userRepo repository.IUserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.IUserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers returns summaries of all users for the admin surface.
func (s *UserService) ListUsers() ([]model.UserSummary, error) {
	users, err := s.userRepo.GetAllUsers()
	if err != nil {
		return nil, err
	}

	summaries := make([]model.UserSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, user.Summary())
	}
	return summaries, nil
}

// UpdateProfileImage sets the caller's profile image and returns the updated
// summary.
func (s *UserService) UpdateProfileImage(userID string, imageURL string) (model.UserSummary, error) {
	if err := s.userRepo.UpdateProfileImage(userID, imageURL); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.UserSummary{}, ErrUserNotFound
		}
		return model.UserSummary{}, err
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return model.UserSummary{}, err
	}
	return user.Summary(), nil
}

// UpdateUserRole validates the role and calls the repository to update it.
func (s *UserService) UpdateUserRole(userID string, newRole model.Role) error {
	// We ensure that only valid roles can be assigned.
	if newRole != model.RoleAdmin && newRole != model.RoleModerator && newRole != model.RoleUser {
		return errors.New("invalid role specified")
	}

	return s.userRepo.UpdateUserRole(userID, string(newRole))
}
