package core

import (
	"context"

	"go.uber.org/zap"

	"github.com/example/carhub/internal/db"
	"github.com/example/carhub/internal/models"
)

type interestService struct {
	interestRepo db.InterestRepository
	logger       *zap.Logger
}

// NewInterestService creates a new InterestService instance.
func NewInterestService(interestRepo db.InterestRepository, logger *zap.Logger) InterestService {
	return &interestService{interestRepo: interestRepo, logger: logger}
}

func (s *interestService) Create(ctx context.Context, userID string, req models.InterestRequest) (*models.Interest, error) {
	interest, err := s.interestRepo.Save(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Interest created",
		zap.String("uid", userID),
		zap.String("interestID", interest.ID),
		zap.String("carID", req.CarID),
	)
	return interest, nil
}

func (s *interestService) ListByUser(ctx context.Context, userID string) ([]models.Interest, error) {
	interests, err := s.interestRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Interests listed", zap.String("uid", userID), zap.Int("count", len(interests)))
	return interests, nil
}
