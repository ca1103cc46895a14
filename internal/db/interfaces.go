package db

import (
	"context"

	"github.com/example/carhub/internal/models"
)

// UserRepository defines the storage operations for user profiles.
// Profiles are keyed by the Firebase Auth UID.
type UserRepository interface {
	// Save overwrites the whole profile document and returns the stored profile.
	Save(ctx context.Context, uid, email string, fields models.UserProfileFields) (*models.UserProfile, error)
	Get(ctx context.Context, uid string) (*models.UserProfile, error)
	// Update writes only the fields present in update and returns the
	// profile as stored afterwards.
	Update(ctx context.Context, uid string, update models.UserProfileUpdate) (*models.UserProfile, error)
}

// InterestRepository defines the storage operations for car interests.
type InterestRepository interface {
	Save(ctx context.Context, userID string, req models.InterestRequest) (*models.Interest, error)
	ListByUserID(ctx context.Context, userID string) ([]models.Interest, error)
}

// TestDriveRepository defines the storage operations for test drive requests.
type TestDriveRepository interface {
	Save(ctx context.Context, userID string, req models.TestDriveRequest) (*models.TestDrive, error)
	ListByUserID(ctx context.Context, userID string) ([]models.TestDrive, error)
}
