package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fitkeeper/fittrack/internal/models"
)

func setupGoalMock(t *testing.T) (*PostgresGoalRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresGoalRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestInsertGoal_Success(t *testing.T) {
	repo, mock, cleanup := setupGoalMock(t)
	defer cleanup()

	endDate := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO goals (user_id, goal_type, target_value, progress, start_date, end_date)`)).
		WithArgs(int64(1), "weight_loss", 20.0, endDate).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := repo.InsertGoal(context.Background(), 1, "weight_loss", 20.0, endDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 7 {
		t.Errorf("expected id 7, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGetGoal_Found(t *testing.T) {
	repo, mock, cleanup := setupGoalMock(t)
	defer cleanup()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "user_id", "goal_type", "target_value", "progress", "start_date", "end_date"}).
		AddRow(int64(7), int64(1), "weight_loss", 20.0, 12.0, start, end)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, goal_type, target_value, progress, start_date, end_date`)).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	goal, err := repo.GetGoal(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if goal.GoalType != "weight_loss" || goal.Progress != 12.0 {
		t.Errorf("unexpected goal returned: %+v", goal)
	}
}

func TestGetGoal_NotFound(t *testing.T) {
	repo, mock, cleanup := setupGoalMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, goal_type, target_value, progress, start_date, end_date`)).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetGoal(context.Background(), 99)
	if !errors.Is(err, models.ErrGoalNotFound) {
		t.Errorf("expected ErrGoalNotFound, got %v", err)
	}
}

func TestListGoals_Order(t *testing.T) {
	repo, mock, cleanup := setupGoalMock(t)
	defer cleanup()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "user_id", "goal_type", "target_value", "progress", "start_date", "end_date"}).
		AddRow(int64(1), int64(1), "weight_loss", 20.0, 0.0, start, end).
		AddRow(int64(2), int64(1), "exercise", 10.0, 5.0, start, end)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM goals WHERE user_id = $1 ORDER BY id`)).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	goals, err := repo.ListGoals(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(goals) != 2 {
		t.Fatalf("expected 2 goals, got %d", len(goals))
	}
	if goals[0].ID != 1 || goals[1].ID != 2 {
		t.Errorf("unexpected goal order: %+v", goals)
	}
}

func TestUpdateProgress_Success(t *testing.T) {
	repo, mock, cleanup := setupGoalMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE goals SET progress = $1 WHERE id = $2`)).
		WithArgs(15.0, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateProgress(context.Background(), 7, 15.0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateProgress_GoalNotFound(t *testing.T) {
	repo, mock, cleanup := setupGoalMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE goals SET progress = $1 WHERE id = $2`)).
		WithArgs(15.0, int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateProgress(context.Background(), 99, 15.0)
	if !errors.Is(err, models.ErrGoalNotFound) {
		t.Errorf("expected ErrGoalNotFound, got %v", err)
	}
}

func TestAddProgress_Success(t *testing.T) {
	repo, mock, cleanup := setupGoalMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE goals SET progress = progress + $1 WHERE id = $2 AND progress + $1 >= 0 RETURNING progress`)).
		WithArgs(10.0, int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"progress"}).AddRow(22.0))

	progress, err := repo.AddProgress(context.Background(), 7, 10.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if progress != 22.0 {
		t.Errorf("expected progress 22.0, got %f", progress)
	}
}

func TestAddProgress_GoalNotFound(t *testing.T) {
	repo, mock, cleanup := setupGoalMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE goals SET progress = progress + $1 WHERE id = $2 AND progress + $1 >= 0 RETURNING progress`)).
		WithArgs(10.0, int64(99)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM goals WHERE id = $1)`)).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := repo.AddProgress(context.Background(), 99, 10.0)
	if !errors.Is(err, models.ErrGoalNotFound) {
		t.Errorf("expected ErrGoalNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestAddProgress_NegativeResultRejected(t *testing.T) {
	repo, mock, cleanup := setupGoalMock(t)
	defer cleanup()

	// The guarded UPDATE matches no row when the delta would drive progress
	// below zero; the goal still exists, so the error is ErrInvalidProgress.
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE goals SET progress = progress + $1 WHERE id = $2 AND progress + $1 >= 0 RETURNING progress`)).
		WithArgs(-12.0, int64(7)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM goals WHERE id = $1)`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := repo.AddProgress(context.Background(), 7, -12.0)
	if !errors.Is(err, models.ErrInvalidProgress) {
		t.Errorf("expected ErrInvalidProgress, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestDeleteGoal_Idempotent(t *testing.T) {
	repo, mock, cleanup := setupGoalMock(t)
	defer cleanup()

	// Zero rows affected is not an error for deletion.
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM goals WHERE id = $1`)).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteGoal(context.Background(), 99); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
