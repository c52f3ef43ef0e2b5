package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/fitkeeper/fittrack/internal/workouts"
	"github.com/go-chi/chi/v5"
)

// WorkoutsHandler handles HTTP requests for the workout catalog and
// recommendations.
type WorkoutsHandler struct {
	// Catalog is the in-memory store of looked-up workouts.
	Catalog *workouts.Catalog
}

// AddWorkout verifies a workout against the external catalog and stores it.
// It expects a JSON body with a "workout_id" field.
func (h *WorkoutsHandler) AddWorkout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WorkoutID int `json:"workout_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.WorkoutID == 0 {
		http.Error(w, "workout_id is required", http.StatusBadRequest)
		return
	}

	workout, err := h.Catalog.Add(r.Context(), req.WorkoutID)
	if err != nil {
		switch {
		case errors.Is(err, workouts.ErrWorkoutExists):
			http.Error(w, "workout already stored", http.StatusConflict)
		case errors.Is(err, workouts.ErrWorkoutNotFound):
			http.Error(w, "workout not found in catalog", http.StatusNotFound)
		default:
			http.Error(w, "catalog unavailable", http.StatusBadGateway)
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"status": "success", "workout": workout})
}

// ListWorkouts returns all stored workouts.
func (h *WorkoutsHandler) ListWorkouts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"stored_workouts": h.Catalog.List()})
}

// UpdateWorkout changes the name and description of a stored workout.
func (h *WorkoutsHandler) UpdateWorkout(w http.ResponseWriter, r *http.Request) {
	workoutID, err := strconv.Atoi(chi.URLParam(r, "workoutID"))
	if err != nil {
		http.Error(w, "invalid workout id", http.StatusBadRequest)
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	if err := h.Catalog.Update(workoutID, req.Name, req.Description); err != nil {
		http.Error(w, "workout not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// DeleteWorkout removes a stored workout and logs it in the deleted list.
func (h *WorkoutsHandler) DeleteWorkout(w http.ResponseWriter, r *http.Request) {
	workoutID, err := strconv.Atoi(chi.URLParam(r, "workoutID"))
	if err != nil {
		http.Error(w, "invalid workout id", http.StatusBadRequest)
		return
	}

	if err := h.Catalog.Delete(workoutID); err != nil {
		http.Error(w, "workout not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// DeletedWorkouts returns the workouts removed from the catalog.
func (h *WorkoutsHandler) DeletedWorkouts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"deleted_workouts": h.Catalog.Deleted()})
}

// Recommendations returns workout suggestions, optionally filtered by the
// "goal_type" query parameter; "num_recommendations" caps the count.
func (h *WorkoutsHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	goalType := r.URL.Query().Get("goal_type")

	num := 3
	if raw := r.URL.Query().Get("num_recommendations"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "num_recommendations must be an integer", http.StatusBadRequest)
			return
		}
		num = n
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "success",
		"recommendations": workouts.Recommend(goalType, num),
	})
}
