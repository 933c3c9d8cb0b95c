package engine

import (
	"github.com/samber/lo"

	"gstsim/internal/domain"
)

// MarkStepsCompleted unions newly completed steps into the progress record.
// Steps form a set: marking a step twice is a no-op.
func MarkStepsCompleted(p *domain.LearningProgress, steps []string) {
	p.CompletedSteps = lo.Uniq(append(p.CompletedSteps, steps...))
}

// SetCurrentStep records the step the learner is currently on.
func SetCurrentStep(p *domain.LearningProgress, step string) {
	p.CurrentStep = step
}

// SetScore overwrites the score. Scores live in [0, 100].
func SetScore(p *domain.LearningProgress, score int) error {
	if score < 0 || score > 100 {
		return domain.NewPreconditionError("score must be between 0 and 100, got %d", score)
	}
	p.Score = score
	return nil
}

// AwardScore adds a fixed award to the score, capped at 100.
func AwardScore(p *domain.LearningProgress, points int) {
	p.Score = min(100, p.Score+points)
}

// AddTimeSpent accumulates minutes spent. Time never decreases.
func AddTimeSpent(p *domain.LearningProgress, minutes int) error {
	if minutes < 0 {
		return domain.NewPreconditionError("time spent delta must not be negative, got %d", minutes)
	}
	p.TimeSpentMinutes += minutes
	return nil
}

// AddAttempts accumulates attempts. Attempts never decrease.
func AddAttempts(p *domain.LearningProgress, count int) error {
	if count < 0 {
		return domain.NewPreconditionError("attempts delta must not be negative, got %d", count)
	}
	p.Attempts += count
	return nil
}
