package core

import (
	"context"

	"github.com/example/carhub/internal/models"
)

// UserService defines the interface for user profile operations.
type UserService interface {
	// GetOrCreate retrieves the profile for uid. If it does not exist, a default
	// profile is stored and returned.
	GetOrCreate(ctx context.Context, uid, email string) (*models.UserProfile, error)
	Get(ctx context.Context, uid string) (*models.UserProfile, error)
	Update(ctx context.Context, uid string, update models.UserProfileUpdate) (*models.UserProfile, error)
}

// InterestService defines the interface for car interest operations.
type InterestService interface {
	Create(ctx context.Context, userID string, req models.InterestRequest) (*models.Interest, error)
	ListByUser(ctx context.Context, userID string) ([]models.Interest, error)
}

// TestDriveService defines the interface for test drive operations.
type TestDriveService interface {
	Create(ctx context.Context, userID string, req models.TestDriveRequest) (*models.TestDrive, error)
	ListByUser(ctx context.Context, userID string) ([]models.TestDrive, error)
}
