package models

import "errors"

var (
	// credential errors
	ErrDuplicateUsername = errors.New("username already taken")
	ErrUserNotFound      = errors.New("user not found")

	// goal errors
	ErrInvalidTarget    = errors.New("target value must be greater than zero")
	ErrInvalidProgress  = errors.New("progress cannot be negative")
	ErrGoalNotFound     = errors.New("goal not found")
	ErrInvalidGoalState = errors.New("goal has a non-positive target value")

	// tracker errors
	ErrNoGoals = errors.New("no goals available to track")
)
