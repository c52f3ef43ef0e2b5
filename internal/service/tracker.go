package service

import (
	"context"
	"fmt"

	"github.com/fitkeeper/fittrack/internal/models"
)

// ProgressStore defines the persistence needed by a ProgressTracker.
type ProgressStore interface {
	// AddProgress atomically adds delta to the stored progress and returns
	// the new value.
	AddProgress(ctx context.Context, goalID int64, delta float64) (float64, error)
}

// ProgressTracker holds a transient working set of goals for one tracking
// session. It is caller-owned: each request constructs its own tracker from a
// fresh repository read and must not share it across requests, since a stale
// working set would report progress values another caller has since replaced.
type ProgressTracker struct {
	// store persists accumulated progress.
	store ProgressStore
	// goals is the in-memory working set.
	goals []models.Goal
}

// NewProgressTracker constructs a ProgressTracker with an empty working set.
func NewProgressTracker(store ProgressStore) *ProgressTracker {
	return &ProgressTracker{store: store}
}

// AddGoal appends a goal to the working set.
func (t *ProgressTracker) AddGoal(goal models.Goal) {
	t.goals = append(t.goals, goal)
}

// goalIndex returns the working-set index of the goal with the given id,
// or -1 if absent.
func (t *ProgressTracker) goalIndex(goalID int64) int {
	for i, g := range t.goals {
		if g.ID == goalID {
			return i
		}
	}
	return -1
}

// AccumulateProgress adds delta to the goal's progress, persisting through the
// store's atomic add-delta primitive, and refreshes the in-memory copy from
// the value the store returns. Returns models.ErrGoalNotFound if the goal is
// not in the working set, and models.ErrInvalidProgress before anything is
// persisted when the delta would drive progress below zero.
func (t *ProgressTracker) AccumulateProgress(ctx context.Context, goalID int64, delta float64) error {
	i := t.goalIndex(goalID)
	if i < 0 {
		return models.ErrGoalNotFound
	}
	if t.goals[i].Progress+delta < 0 {
		return models.ErrInvalidProgress
	}
	progress, err := t.store.AddProgress(ctx, goalID, delta)
	if err != nil {
		return err
	}
	t.goals[i].Progress = progress
	return nil
}

// Goal returns the working-set copy of the goal with the given id.
// Returns models.ErrGoalNotFound if the goal is absent.
func (t *ProgressTracker) Goal(goalID int64) (models.Goal, error) {
	i := t.goalIndex(goalID)
	if i < 0 {
		return models.Goal{}, models.ErrGoalNotFound
	}
	return t.goals[i], nil
}

// EvaluateGoal classifies a goal by its progress percentage. A non-positive
// target value yields models.ErrInvalidGoalState instead of a division result.
func (t *ProgressTracker) EvaluateGoal(goal models.Goal) (models.GoalStatus, error) {
	if goal.TargetValue <= 0 {
		return "", models.ErrInvalidGoalState
	}
	percentage := (goal.Progress / goal.TargetValue) * 100
	switch {
	case percentage >= 100:
		return models.StatusAchieved, nil
	case percentage >= 50:
		return models.StatusOnTrack, nil
	default:
		return models.StatusNeedsAttention, nil
	}
}

// TrackAll evaluates every goal in the working set and returns a status
// message per goal type. Returns models.ErrNoGoals when the working set is
// empty, so callers can tell "nothing to report" apart from an all-behind
// summary.
func (t *ProgressTracker) TrackAll() (map[string]string, error) {
	if len(t.goals) == 0 {
		return nil, models.ErrNoGoals
	}

	summary := make(map[string]string, len(t.goals))
	for _, goal := range t.goals {
		status, err := t.EvaluateGoal(goal)
		if err != nil {
			return nil, err
		}
		summary[goal.GoalType] = statusMessage(goal.GoalType, status)
	}
	return summary, nil
}

// RemoveGoal removes a goal from the working set only; the persisted record
// is untouched. Returns models.ErrGoalNotFound if the goal is absent.
func (t *ProgressTracker) RemoveGoal(goalID int64) error {
	i := t.goalIndex(goalID)
	if i < 0 {
		return models.ErrGoalNotFound
	}
	t.goals = append(t.goals[:i], t.goals[i+1:]...)
	return nil
}

// statusMessage renders the human-readable summary line for a goal status.
func statusMessage(goalType string, status models.GoalStatus) string {
	switch status {
	case models.StatusAchieved:
		return fmt.Sprintf("Goal '%s' achieved! Congratulations!", goalType)
	case models.StatusOnTrack:
		return fmt.Sprintf("Goal '%s' is on track. Keep going!", goalType)
	default:
		return fmt.Sprintf("Goal '%s' needs attention. Stay focused!", goalType)
	}
}
