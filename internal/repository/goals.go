package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fitkeeper/fittrack/internal/models"
)

// PostgresGoalRepository implements goal storage operations against a PostgreSQL database.
type PostgresGoalRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresGoalRepository creates a new PostgresGoalRepository using the provided *sql.DB.
// db must be a valid connection to a PostgreSQL instance.
func NewPostgresGoalRepository(db *sql.DB) *PostgresGoalRepository {
	return &PostgresGoalRepository{DB: db}
}

// InsertGoal persists a new goal with zero progress and today's start date,
// returning the store-assigned id.
func (r *PostgresGoalRepository) InsertGoal(ctx context.Context, userID int64, goalType string, targetValue float64, endDate time.Time) (int64, error) {
	var id int64
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO goals (user_id, goal_type, target_value, progress, start_date, end_date)
		VALUES ($1, $2, $3, 0, CURRENT_DATE, $4)
		RETURNING id
	`, userID, goalType, targetValue, endDate).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("InsertGoal: %w", err)
	}
	return id, nil
}

// GetGoal fetches a single goal by id.
// Returns models.ErrGoalNotFound when no record matches.
func (r *PostgresGoalRepository) GetGoal(ctx context.Context, goalID int64) (*models.Goal, error) {
	g := &models.Goal{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, goal_type, target_value, progress, start_date, end_date
		FROM goals WHERE id = $1
	`, goalID).Scan(&g.ID, &g.UserID, &g.GoalType, &g.TargetValue, &g.Progress, &g.StartDate, &g.EndDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrGoalNotFound
		}
		return nil, fmt.Errorf("GetGoal: %w", err)
	}
	return g, nil
}

// ListGoals fetches all goals for the specified user, ordered by id ascending
// (insertion order).
func (r *PostgresGoalRepository) ListGoals(ctx context.Context, userID int64) ([]models.Goal, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, goal_type, target_value, progress, start_date, end_date
		FROM goals WHERE user_id = $1 ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("ListGoals: %w", err)
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.GoalType, &g.TargetValue, &g.Progress, &g.StartDate, &g.EndDate); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListGoals: %w", err)
	}
	return goals, nil
}

// UpdateProgress overwrites the stored progress with an absolute value.
// Returns models.ErrGoalNotFound when zero rows were affected.
func (r *PostgresGoalRepository) UpdateProgress(ctx context.Context, goalID int64, progress float64) error {
	res, err := r.DB.ExecContext(
		ctx,
		`UPDATE goals SET progress = $1 WHERE id = $2`,
		progress, goalID,
	)
	if err != nil {
		return fmt.Errorf("UpdateProgress: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("UpdateProgress: %w", err)
	}
	if rows == 0 {
		return models.ErrGoalNotFound
	}
	return nil
}

// AddProgress adds delta to the stored progress in a single statement and
// returns the new value. The arithmetic SET keeps concurrent accumulations
// from losing updates the way a read-compute-write sequence would, and the
// WHERE clause refuses an update that would drive progress below zero, so
// nothing is persisted in that case. Returns models.ErrInvalidProgress when
// the goal exists but the delta would make progress negative.
func (r *PostgresGoalRepository) AddProgress(ctx context.Context, goalID int64, delta float64) (float64, error) {
	var progress float64
	err := r.DB.QueryRowContext(
		ctx,
		`UPDATE goals SET progress = progress + $1 WHERE id = $2 AND progress + $1 >= 0 RETURNING progress`,
		delta, goalID,
	).Scan(&progress)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			var exists bool
			if exErr := r.DB.QueryRowContext(
				ctx,
				`SELECT EXISTS(SELECT 1 FROM goals WHERE id = $1)`,
				goalID,
			).Scan(&exists); exErr != nil {
				return 0, fmt.Errorf("AddProgress: %w", exErr)
			}
			if exists {
				return 0, models.ErrInvalidProgress
			}
			return 0, models.ErrGoalNotFound
		}
		return 0, fmt.Errorf("AddProgress: %w", err)
	}
	return progress, nil
}

// DeleteGoal hard-deletes the matching record. Deleting a non-existent id
// is not an error.
func (r *PostgresGoalRepository) DeleteGoal(ctx context.Context, goalID int64) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, goalID); err != nil {
		return fmt.Errorf("DeleteGoal: %w", err)
	}
	return nil
}
