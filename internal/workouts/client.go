// Package workouts integrates the external wger exercise catalog and keeps an
// in-memory working copy of looked-up workouts.
package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the public wger exercise API endpoint.
const DefaultBaseURL = "https://wger.de/api/v2/exercise"

// ErrWorkoutNotFound is returned when the catalog has no exercise with the
// requested id.
var ErrWorkoutNotFound = errors.New("workout not found")

// Workout holds the cleaned metadata of a catalog exercise.
type Workout struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Muscles     []int  `json:"muscles"`
	Equipment   []int  `json:"equipment"`
}

// Client looks up exercises in the wger catalog API.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// NewClient constructs a catalog Client. baseURL may be empty to use
// DefaultBaseURL.
func NewClient(baseURL string, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

// Lookup fetches one exercise by id. Returns ErrWorkoutNotFound when the
// API has no such exercise.
func (c *Client) Lookup(ctx context.Context, workoutID int) (*Workout, error) {
	url := fmt.Sprintf("%s/%d/?language=2", c.baseURL, workoutID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrWorkoutNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog request: unexpected status %d", resp.StatusCode)
	}

	var w Workout
	if err := json.NewDecoder(resp.Body).Decode(&w); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}
	w.Description = cleanDescription(w.Description)

	c.log.Info("catalog lookup", zap.Int("workout_id", w.ID), zap.String("name", w.Name))
	return &w, nil
}

// cleanDescription strips the paragraph tags the catalog wraps descriptions in.
func cleanDescription(s string) string {
	s = strings.ReplaceAll(s, "<p>", "")
	s = strings.ReplaceAll(s, "</p>", "")
	return strings.TrimSpace(s)
}
