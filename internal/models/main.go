// Package models defines the core data structures for users and fitness goals.
package models

import "time"

// User represents an application user with stored credentials.
type User struct {
	// Username is the login name chosen by the user, unique across the store.
	Username string
	// Salt is a per-credential random value, hex-encoded.
	Salt string
	// HashedPassword is the hex-encoded digest of salt and password.
	HashedPassword string
}

// Goal represents a user's target for a measurable quantity with a deadline.
type Goal struct {
	// ID is the store-assigned identifier of the goal.
	ID int64 `json:"id"`
	// UserID identifies the owning user.
	UserID int64 `json:"user_id"`
	// GoalType is a free-form category string, e.g. "weight_loss".
	GoalType string `json:"goal_type"`
	// TargetValue is the value to reach, always positive.
	TargetValue float64 `json:"target_value"`
	// Progress is the current value recorded toward the target.
	Progress float64 `json:"progress"`
	// StartDate is the date the goal was created.
	StartDate time.Time `json:"start_date"`
	// EndDate is the caller-supplied deadline.
	EndDate time.Time `json:"end_date"`
}

// GoalStatus classifies how far along a goal is.
type GoalStatus string

const (
	// StatusAchieved means progress has reached or passed the target.
	StatusAchieved GoalStatus = "achieved"
	// StatusOnTrack means progress is at least half of the target.
	StatusOnTrack GoalStatus = "on_track"
	// StatusNeedsAttention means progress is below half of the target.
	StatusNeedsAttention GoalStatus = "needs_attention"
)
