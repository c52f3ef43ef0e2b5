package workouts

import (
	"math/rand"
	"strings"
)

// Recommendation is a predefined workout suggestion.
type Recommendation struct {
	Type           string `json:"type"`
	Name           string `json:"name"`
	Duration       string `json:"duration"`
	CaloriesBurned int    `json:"calories_burned"`
}

// recommendations is the built-in suggestion table.
var recommendations = []Recommendation{
	{Type: "cardio", Name: "Running", Duration: "30 minutes", CaloriesBurned: 300},
	{Type: "strength", Name: "Push-ups", Duration: "10 minutes", CaloriesBurned: 50},
	{Type: "flexibility", Name: "Yoga", Duration: "20 minutes", CaloriesBurned: 100},
	{Type: "strength", Name: "Weight Lifting", Duration: "30 minutes", CaloriesBurned: 250},
	{Type: "cardio", Name: "Cycling", Duration: "45 minutes", CaloriesBurned: 400},
}

// Recommend returns up to n workout suggestions, filtered by goal type when
// goalType is non-empty. The sample order is randomized.
func Recommend(goalType string, n int) []Recommendation {
	var filtered []Recommendation
	if goalType == "" {
		filtered = append(filtered, recommendations...)
	} else {
		for _, r := range recommendations {
			if r.Type == strings.ToLower(goalType) {
				filtered = append(filtered, r)
			}
		}
	}

	rand.Shuffle(len(filtered), func(i, j int) {
		filtered[i], filtered[j] = filtered[j], filtered[i]
	})
	if n < 0 {
		n = 0
	}
	if n < len(filtered) {
		filtered = filtered[:n]
	}
	return filtered
}
