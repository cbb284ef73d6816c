// Package event defines the MQ payloads published on habit mutations.
package event

import "time"

const (
	RoutingKeyHabitCreated   = "habit.created"
	RoutingKeyHabitCompleted = "habit.completed"
	RoutingKeyHabitDeleted   = "habit.deleted"
)

type HabitCreatedPayload struct {
	EventID   string    `json:"event_id"`
	HabitID   string    `json:"habit_id"`
	Name      string    `json:"name"`
	Frequency string    `json:"frequency"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

type HabitCompletedPayload struct {
	EventID   string `json:"event_id"`
	HabitID   string `json:"habit_id"`
	Date      string `json:"date"`      // YYYY-MM-DD
	Completed bool   `json:"completed"` // false when the mark was undone
}

type HabitDeletedPayload struct {
	EventID string `json:"event_id"`
	HabitID string `json:"habit_id"`
}
