package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fitkeeper/fittrack/internal/models"
	"github.com/fitkeeper/fittrack/internal/service"
	"github.com/go-chi/chi/v5"
)

// dateLayout is the wire format for goal dates.
const dateLayout = "2006-01-02"

// GoalsService defines the goal operations required by the HTTP handlers.
type GoalsService interface {
	// CreateGoal validates and persists a new goal, returning its id.
	CreateGoal(ctx context.Context, userID int64, goalType string, targetValue float64, endDate time.Time) (int64, error)
	// GetGoal fetches a single goal by id.
	GetGoal(ctx context.Context, goalID int64) (*models.Goal, error)
	// ListGoals fetches all goals for a user in insertion order.
	ListGoals(ctx context.Context, userID int64) ([]models.Goal, error)
	// UpdateProgress overwrites the stored progress with an absolute value.
	UpdateProgress(ctx context.Context, goalID int64, progress float64) error
	// DeleteGoal hard-deletes a goal.
	DeleteGoal(ctx context.Context, goalID int64) error
}

// GoalsHandler handles HTTP requests for goal CRUD and progress tracking.
type GoalsHandler struct {
	// GoalsService performs the underlying goal operations.
	GoalsService GoalsService
	// Progress backs the per-request progress trackers.
	Progress service.ProgressStore
}

// goalResponse is the wire representation of a goal.
type goalResponse struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	GoalType    string  `json:"goal_type"`
	TargetValue float64 `json:"target_value"`
	Progress    float64 `json:"progress"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
}

func toGoalResponse(g models.Goal) goalResponse {
	return goalResponse{
		ID:          g.ID,
		UserID:      g.UserID,
		GoalType:    g.GoalType,
		TargetValue: g.TargetValue,
		Progress:    g.Progress,
		StartDate:   g.StartDate.Format(dateLayout),
		EndDate:     g.EndDate.Format(dateLayout),
	}
}

// SetGoal handles goal-creation requests.
// It expects a JSON body with "user_id", "goal_type", "target_value", and
// "end_date" (YYYY-MM-DD) fields.
func (h *GoalsHandler) SetGoal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID      int64   `json:"user_id"`
		GoalType    string  `json:"goal_type"`
		TargetValue float64 `json:"target_value"`
		EndDate     string  `json:"end_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == 0 || req.GoalType == "" || req.EndDate == "" {
		http.Error(w, "missing required fields", http.StatusBadRequest)
		return
	}

	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		http.Error(w, "end_date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	id, err := h.GoalsService.CreateGoal(r.Context(), req.UserID, req.GoalType, req.TargetValue, endDate)
	if err != nil {
		if errors.Is(err, models.ErrInvalidTarget) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"status": "success", "goal_id": id})
}

// GetGoal handles single-goal fetch requests.
func (h *GoalsHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	goalID, err := strconv.ParseInt(chi.URLParam(r, "goalID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid goal id", http.StatusBadRequest)
		return
	}

	goal, err := h.GoalsService.GetGoal(r.Context(), goalID)
	if err != nil {
		if errors.Is(err, models.ErrGoalNotFound) {
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toGoalResponse(*goal))
}

// GetGoals handles listing all goals for a user.
func (h *GoalsHandler) GetGoals(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	goals, err := h.GoalsService.ListGoals(r.Context(), userID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	out := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, toGoalResponse(g))
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "goals": out})
}

// UpdateProgress handles absolute progress updates.
// It expects a JSON body with a non-negative "progress" field.
func (h *GoalsHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	goalID, err := strconv.ParseInt(chi.URLParam(r, "goalID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid goal id", http.StatusBadRequest)
		return
	}

	var req struct {
		Progress float64 `json:"progress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if err := h.GoalsService.UpdateProgress(r.Context(), goalID, req.Progress); err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidProgress):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, models.ErrGoalNotFound):
			http.Error(w, "goal not found", http.StatusNotFound)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// AccumulateProgress handles delta progress updates. It hydrates a
// request-scoped tracker from a fresh read of the owner's goals, adds the
// delta through the atomic storage primitive, and reports the goal's new
// progress and status.
func (h *GoalsHandler) AccumulateProgress(w http.ResponseWriter, r *http.Request) {
	goalID, err := strconv.ParseInt(chi.URLParam(r, "goalID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid goal id", http.StatusBadRequest)
		return
	}

	var req struct {
		Delta float64 `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	goal, err := h.GoalsService.GetGoal(ctx, goalID)
	if err != nil {
		if errors.Is(err, models.ErrGoalNotFound) {
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	goals, err := h.GoalsService.ListGoals(ctx, goal.UserID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	tracker := service.NewProgressTracker(h.Progress)
	for _, g := range goals {
		tracker.AddGoal(g)
	}

	if err := tracker.AccumulateProgress(ctx, goalID, req.Delta); err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidProgress):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, models.ErrGoalNotFound):
			http.Error(w, "goal not found", http.StatusNotFound)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	updated, err := tracker.Goal(goalID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	status, err := tracker.EvaluateGoal(updated)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "success",
		"progress": updated.Progress,
		"state":    status,
	})
}

// DeleteGoal handles goal deletion. The store treats deletion of a missing
// id as a no-op, so this endpoint is idempotent.
func (h *GoalsHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	goalID, err := strconv.ParseInt(chi.URLParam(r, "goalID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid goal id", http.StatusBadRequest)
		return
	}

	if err := h.GoalsService.DeleteGoal(r.Context(), goalID); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// TrackProgress evaluates every goal of a user with a request-scoped tracker
// and returns a status message per goal type.
func (h *GoalsHandler) TrackProgress(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	goals, err := h.GoalsService.ListGoals(r.Context(), userID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	tracker := service.NewProgressTracker(h.Progress)
	for _, g := range goals {
		tracker.AddGoal(g)
	}

	summary, err := tracker.TrackAll()
	if err != nil {
		if errors.Is(err, models.ErrNoGoals) {
			writeJSON(w, http.StatusOK, map[string]any{"status": "no_goals"})
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "progress": summary})
}
