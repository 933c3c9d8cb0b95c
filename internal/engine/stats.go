package engine

import (
	"github.com/samber/lo"

	"gstsim/internal/domain"
)

// IsCompleted reports whether a return counts as completed for statistics:
// it has been submitted, whether or not an admin has since marked it filed.
func IsCompleted(status domain.FilingStatus) bool {
	return status == domain.FilingStatusSubmitted || status == domain.FilingStatusFiled
}

// LearnerStats rolls one learner's returns up into summary statistics.
// An empty collection yields zeroes throughout, never a division error.
func LearnerStats(returns []domain.GSTReturn) domain.LearnerStats {
	stats := domain.LearnerStats{
		TotalReturns: len(returns),
		ByReturnType: lo.CountValuesBy(returns, func(r domain.GSTReturn) domain.ReturnType {
			return r.ReturnType
		}),
	}

	var scoreSum, timeSum int
	for i := range returns {
		r := &returns[i]
		if IsCompleted(r.Status) {
			stats.CompletedReturns++
		}
		scoreSum += r.LearningProgress.Score
		timeSum += r.LearningProgress.TimeSpentMinutes
		stats.TotalAttempts += r.LearningProgress.Attempts
	}

	if stats.TotalReturns > 0 {
		stats.AverageScore = float64(scoreSum) / float64(stats.TotalReturns)
		stats.AverageTimeSpent = float64(timeSum) / float64(stats.TotalReturns)
		stats.CompletionRate = float64(stats.CompletedReturns) / float64(stats.TotalReturns) * 100
	}

	return stats
}
