package core

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/example/carhub/internal/db"
	"github.com/example/carhub/internal/models"
)

// userService implements the UserService interface.
type userService struct {
	userRepo db.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService instance.
func NewUserService(userRepo db.UserRepository, logger *zap.Logger) UserService {
	return &userService{userRepo: userRepo, logger: logger}
}

// GetOrCreate retrieves the profile for uid, creating the default profile when
// none is stored. Errors other than not found are returned as is.
func (s *userService) GetOrCreate(ctx context.Context, uid, email string) (*models.UserProfile, error) {
	profile, err := s.userRepo.Get(ctx, uid)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, err
	}

	s.logger.Info("User not found, creating new user", zap.String("uid", uid))
	profile, err = s.userRepo.Save(ctx, uid, email, models.DefaultUserProfileFields())
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *userService) Get(ctx context.Context, uid string) (*models.UserProfile, error) {
	return s.userRepo.Get(ctx, uid)
}

func (s *userService) Update(ctx context.Context, uid string, update models.UserProfileUpdate) (*models.UserProfile, error) {
	profile, err := s.userRepo.Update(ctx, uid, update)
	if err != nil {
		return nil, err
	}
	s.logger.Info("User updated", zap.String("uid", uid))
	return profile, nil
}
