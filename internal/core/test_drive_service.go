package core

import (
	"context"

	"go.uber.org/zap"

	"github.com/example/carhub/internal/db"
	"github.com/example/carhub/internal/models"
)

type testDriveService struct {
	testDriveRepo db.TestDriveRepository
	logger        *zap.Logger
}

// NewTestDriveService creates a new TestDriveService instance.
func NewTestDriveService(testDriveRepo db.TestDriveRepository, logger *zap.Logger) TestDriveService {
	return &testDriveService{testDriveRepo: testDriveRepo, logger: logger}
}

func (s *testDriveService) Create(ctx context.Context, userID string, req models.TestDriveRequest) (*models.TestDrive, error) {
	testDrive, err := s.testDriveRepo.Save(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Test drive requested",
		zap.String("uid", userID),
		zap.String("testDriveID", testDrive.ID),
		zap.String("carID", req.CarID),
		zap.String("dealerID", req.DealerID),
	)
	return testDrive, nil
}

func (s *testDriveService) ListByUser(ctx context.Context, userID string) ([]models.TestDrive, error) {
	testDrives, err := s.testDriveRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Test drives listed", zap.String("uid", userID), zap.Int("count", len(testDrives)))
	return testDrives, nil
}
