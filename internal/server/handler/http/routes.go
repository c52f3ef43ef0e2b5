package http

import (
	"net/http"

	"github.com/fitkeeper/fittrack/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the fitness
// tracker API. It applies JSON content-type enforcement and request logging,
// and mounts the account, goal, workout, and health endpoints under /api.
//
// Routes:
//
//	POST   /api/register                     → authHandler.Register
//	POST   /api/login                        → authHandler.Login
//	POST   /api/update-password              → authHandler.UpdatePassword
//	POST   /api/goals                        → goalsHandler.SetGoal
//	GET    /api/goals/{goalID}               → goalsHandler.GetGoal
//	PUT    /api/goals/{goalID}/progress      → goalsHandler.UpdateProgress
//	POST   /api/goals/{goalID}/progress      → goalsHandler.AccumulateProgress
//	DELETE /api/goals/{goalID}               → goalsHandler.DeleteGoal
//	GET    /api/users/{userID}/goals         → goalsHandler.GetGoals
//	GET    /api/users/{userID}/track         → goalsHandler.TrackProgress
//	POST   /api/workouts                     → workoutsHandler.AddWorkout
//	GET    /api/workouts                     → workoutsHandler.ListWorkouts
//	PUT    /api/workouts/{workoutID}         → workoutsHandler.UpdateWorkout
//	DELETE /api/workouts/{workoutID}         → workoutsHandler.DeleteWorkout
//	GET    /api/workouts/deleted             → workoutsHandler.DeletedWorkouts
//	GET    /api/recommendations              → workoutsHandler.Recommendations
//	GET    /api/health                       → healthHandler.Health
//	GET    /api/db-check                     → healthHandler.DBCheck
func NewRouter(
	authHandler *AuthHandler,
	goalsHandler *GoalsHandler,
	workoutsHandler *WorkoutsHandler,
	healthHandler *HealthHandler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)
		r.Get("/db-check", healthHandler.DBCheck)

		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/update-password", authHandler.UpdatePassword)

		r.Route("/goals", func(r chi.Router) {
			r.Post("/", goalsHandler.SetGoal)
			r.Get("/{goalID}", goalsHandler.GetGoal)
			r.Put("/{goalID}/progress", goalsHandler.UpdateProgress)
			r.Post("/{goalID}/progress", goalsHandler.AccumulateProgress)
			r.Delete("/{goalID}", goalsHandler.DeleteGoal)
		})

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/goals", goalsHandler.GetGoals)
			r.Get("/track", goalsHandler.TrackProgress)
		})

		r.Route("/workouts", func(r chi.Router) {
			r.Post("/", workoutsHandler.AddWorkout)
			r.Get("/", workoutsHandler.ListWorkouts)
			r.Get("/deleted", workoutsHandler.DeletedWorkouts)
			r.Put("/{workoutID}", workoutsHandler.UpdateWorkout)
			r.Delete("/{workoutID}", workoutsHandler.DeleteWorkout)
		})

		r.Get("/recommendations", workoutsHandler.Recommendations)
	})

	return r
}
