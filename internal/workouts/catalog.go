package workouts

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
)

// ErrWorkoutExists is returned when adding a workout already in the catalog.
var ErrWorkoutExists = errors.New("workout already stored")

// Lookuper fetches exercise metadata from the external catalog.
type Lookuper interface {
	Lookup(ctx context.Context, workoutID int) (*Workout, error)
}

// Catalog is an explicitly owned in-memory store of looked-up workouts.
// It is injected where needed and guards its own state, rather than living
// as package-level shared maps.
type Catalog struct {
	client Lookuper

	mu      sync.Mutex
	stored  map[int]Workout
	deleted []Workout
}

// NewCatalog constructs an empty Catalog backed by the given lookup client.
func NewCatalog(client Lookuper) *Catalog {
	return &Catalog{
		client: client,
		stored: make(map[int]Workout),
	}
}

// Add verifies the workout exists in the external catalog and stores it.
// Returns ErrWorkoutExists if already stored, or ErrWorkoutNotFound if the
// external catalog does not know the id.
func (c *Catalog) Add(ctx context.Context, workoutID int) (*Workout, error) {
	c.mu.Lock()
	_, exists := c.stored[workoutID]
	c.mu.Unlock()
	if exists {
		return nil, ErrWorkoutExists
	}

	w, err := c.client.Lookup(ctx, workoutID)
	if err != nil {
		return nil, err
	}

	// The lookup runs outside the lock, so re-check before storing in case a
	// concurrent Add for the same id won the race.
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.stored[w.ID]; exists {
		return nil, ErrWorkoutExists
	}
	c.stored[w.ID] = *w
	return w, nil
}

// List returns all stored workouts ordered by id.
func (c *Catalog) List() []Workout {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Workout, 0, len(c.stored))
	for _, w := range c.stored {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Update changes the name and description of a stored workout.
// Returns ErrWorkoutNotFound if the workout is not stored.
func (c *Catalog) Update(workoutID int, name, description string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.stored[workoutID]
	if !ok {
		return ErrWorkoutNotFound
	}
	w.Name = name
	w.Description = strings.TrimSpace(description)
	c.stored[workoutID] = w
	return nil
}

// Delete removes a stored workout and logs it in the deleted list.
// Returns ErrWorkoutNotFound if the workout is not stored.
func (c *Catalog) Delete(workoutID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.stored[workoutID]
	if !ok {
		return ErrWorkoutNotFound
	}
	c.deleted = append(c.deleted, w)
	delete(c.stored, workoutID)
	return nil
}

// Deleted returns the workouts removed from the catalog, oldest first.
func (c *Catalog) Deleted() []Workout {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Workout, len(c.deleted))
	copy(out, c.deleted)
	return out
}
