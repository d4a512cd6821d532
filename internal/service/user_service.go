package service

import (
	"errors"

	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

// UserUpdateRequest enumerates the fields an admin may change. Nil means
// "leave untouched"; there is no free-form attribute patching.
type UserUpdateRequest struct {
	Username *string         `json:"username" binding:"omitempty,min=3,max=100"`
	Email    *string         `json:"email" binding:"omitempty,email"`
	Role     *model.UserRole `json:"role" binding:"omitempty,oneof=user admin"`
}

func (s *UserService) GetUser(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

func (s *UserService) ListUsers() ([]model.User, error) {
	return s.UserRepo.FindAll()
}

func (s *UserService) UpdateUser(id uint, req UserUpdateRequest) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	} else if err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username != user.Username {
		if _, err := s.UserRepo.FindByUsername(*req.Username); err == nil {
			return nil, util.ErrUsernameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Username = *req.Username
	}
	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.UserRepo.FindByEmail(*req.Email); err == nil {
			return nil, util.ErrEmailRegistered
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(id uint) error {
	err := s.UserRepo.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrUserNotFound
	}
	return err
}
