package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gstsim/internal/domain"
	"gstsim/internal/engine"
)

func statReturn(rt domain.ReturnType, status domain.FilingStatus, score, minutes, attempts int) domain.GSTReturn {
	return domain.GSTReturn{
		ReturnType: rt,
		Status:     status,
		LearningProgress: domain.LearningProgress{
			Score: score, TimeSpentMinutes: minutes, Attempts: attempts,
		},
	}
}

func TestLearnerStats_Empty(t *testing.T) {
	stats := engine.LearnerStats(nil)

	assert.Equal(t, 0, stats.TotalReturns)
	assert.Equal(t, 0.0, stats.CompletionRate)
	assert.Equal(t, 0.0, stats.AverageScore)
	assert.Equal(t, 0.0, stats.AverageTimeSpent)
	assert.Equal(t, 0, stats.TotalAttempts)
}

func TestLearnerStats_CompletionRate(t *testing.T) {
	returns := []domain.GSTReturn{
		statReturn(domain.ReturnTypeGSTR1, domain.FilingStatusSubmitted, 80, 30, 2),
		statReturn(domain.ReturnTypeGSTR1, domain.FilingStatusDraft, 20, 10, 1),
		statReturn(domain.ReturnTypeGSTR3B, domain.FilingStatusDraft, 0, 5, 1),
		statReturn(domain.ReturnTypeGSTR2, domain.FilingStatusRejected, 40, 15, 2),
	}

	stats := engine.LearnerStats(returns)

	assert.Equal(t, 4, stats.TotalReturns)
	assert.Equal(t, 1, stats.CompletedReturns)
	assert.Equal(t, 25.0, stats.CompletionRate)
}

func TestLearnerStats_Aggregates(t *testing.T) {
	returns := []domain.GSTReturn{
		statReturn(domain.ReturnTypeGSTR1, domain.FilingStatusFiled, 100, 40, 3),
		statReturn(domain.ReturnTypeGSTR1, domain.FilingStatusSubmitted, 60, 20, 1),
		statReturn(domain.ReturnTypeGSTR3B, domain.FilingStatusDraft, 20, 30, 2),
	}

	stats := engine.LearnerStats(returns)

	assert.Equal(t, 2, stats.CompletedReturns)
	assert.InDelta(t, 60.0, stats.AverageScore, 1e-9)
	assert.InDelta(t, 30.0, stats.AverageTimeSpent, 1e-9)
	assert.Equal(t, 6, stats.TotalAttempts)
	assert.Equal(t, map[domain.ReturnType]int{
		domain.ReturnTypeGSTR1:  2,
		domain.ReturnTypeGSTR3B: 1,
	}, stats.ByReturnType)
}

func TestIsCompleted(t *testing.T) {
	assert.True(t, engine.IsCompleted(domain.FilingStatusSubmitted))
	assert.True(t, engine.IsCompleted(domain.FilingStatusFiled))
	assert.False(t, engine.IsCompleted(domain.FilingStatusDraft))
	assert.False(t, engine.IsCompleted(domain.FilingStatusRejected))
	assert.False(t, engine.IsCompleted(domain.FilingStatusCancelled))
}
