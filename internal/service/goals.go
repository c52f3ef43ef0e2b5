package service

import (
	"context"
	"time"

	"github.com/fitkeeper/fittrack/internal/models"
)

// GoalRepository defines the persistence operations needed by the GoalService.
type GoalRepository interface {
	// InsertGoal persists a new goal with zero progress and returns its id.
	InsertGoal(ctx context.Context, userID int64, goalType string, targetValue float64, endDate time.Time) (int64, error)
	// GetGoal fetches a single goal by id.
	GetGoal(ctx context.Context, goalID int64) (*models.Goal, error)
	// ListGoals fetches all goals for a user in insertion order.
	ListGoals(ctx context.Context, userID int64) ([]models.Goal, error)
	// UpdateProgress overwrites the stored progress with an absolute value.
	UpdateProgress(ctx context.Context, goalID int64, progress float64) error
	// AddProgress atomically adds delta to the stored progress and returns
	// the new value.
	AddProgress(ctx context.Context, goalID int64, delta float64) (float64, error)
	// DeleteGoal hard-deletes a goal.
	DeleteGoal(ctx context.Context, goalID int64) error
}

// GoalService implements goal lifecycle operations, validating inputs before
// any persistence is attempted.
type GoalService struct {
	// repo is the underlying persistence repository.
	repo GoalRepository
}

// NewGoalService constructs a GoalService with the provided GoalRepository.
func NewGoalService(repo GoalRepository) *GoalService {
	return &GoalService{repo: repo}
}

// CreateGoal validates the target value and persists a new goal.
// Returns models.ErrInvalidTarget for a non-positive target; nothing is
// persisted in that case.
func (s *GoalService) CreateGoal(ctx context.Context, userID int64, goalType string, targetValue float64, endDate time.Time) (int64, error) {
	if targetValue <= 0 {
		return 0, models.ErrInvalidTarget
	}
	return s.repo.InsertGoal(ctx, userID, goalType, targetValue, endDate)
}

// GetGoal retrieves a single goal by its id.
func (s *GoalService) GetGoal(ctx context.Context, goalID int64) (*models.Goal, error) {
	return s.repo.GetGoal(ctx, goalID)
}

// ListGoals retrieves all goals for the given user in insertion order.
func (s *GoalService) ListGoals(ctx context.Context, userID int64) ([]models.Goal, error) {
	return s.repo.ListGoals(ctx, userID)
}

// UpdateProgress validates and overwrites the stored progress value.
// Returns models.ErrInvalidProgress for a negative value; the stored
// progress is left unchanged in that case.
func (s *GoalService) UpdateProgress(ctx context.Context, goalID int64, progress float64) error {
	if progress < 0 {
		return models.ErrInvalidProgress
	}
	return s.repo.UpdateProgress(ctx, goalID, progress)
}

// DeleteGoal removes the goal from the store.
func (s *GoalService) DeleteGoal(ctx context.Context, goalID int64) error {
	return s.repo.DeleteGoal(ctx, goalID)
}
