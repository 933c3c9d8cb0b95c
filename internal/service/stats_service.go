package service

import (
	"context"

	"github.com/google/uuid"

	"gstsim/internal/domain"
	"gstsim/internal/engine"
	"gstsim/internal/port"
)

// statsPageSize bounds each repository page while aggregating a learner's
// full history.
const statsPageSize = 200

// StatsService computes learner-level aggregates over return simulations.
type StatsService interface {
	LearnerStats(ctx context.Context, learnerID, callerID uuid.UUID, role domain.UserRole) (*domain.LearnerStats, error)
}

type statsService struct {
	returnRepo port.ReturnRepository
}

// NewStatsService creates a new StatsService implementation.
func NewStatsService(returnRepo port.ReturnRepository) StatsService {
	return &statsService{returnRepo: returnRepo}
}

func (s *statsService) LearnerStats(ctx context.Context, learnerID, callerID uuid.UUID, role domain.UserRole) (*domain.LearnerStats, error) {
	if err := authorizeOwner(learnerID, callerID, role); err != nil {
		return nil, err
	}

	var all []domain.GSTReturn
	for offset := 0; ; offset += statsPageSize {
		page, total, err := s.returnRepo.ListByLearner(ctx, learnerID, offset, statsPageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(all) >= total || len(page) == 0 {
			break
		}
	}

	stats := engine.LearnerStats(all)
	return &stats, nil
}
