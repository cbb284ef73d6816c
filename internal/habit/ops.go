// Package habit contains the pure mutation operations over the habit
// collection. Every operation returns a new slice and leaves its input
// untouched; the current instant and the ID generator are passed in by the
// caller so the operations stay deterministic under test.
package habit

import (
	"strings"
	"time"

	"habit-service/internal/model"
)

// Add prepends a new habit to the collection. A name that is empty after
// trimming is silently ignored and the input collection is returned as-is
// (ok=false).
func Add(habits []model.Habit, name string, freq model.Frequency, cat model.Category, now time.Time, id string) ([]model.Habit, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return habits, false
	}

	h := model.Habit{
		ID:             id,
		Name:           name,
		Frequency:      freq,
		Category:       cat,
		CompletedDates: []string{},
		CreatedAt:      now,
	}

	out := make([]model.Habit, 0, len(habits)+1)
	out = append(out, h)
	out = append(out, habits...)
	return out, true
}

// Toggle flips the completion mark of the named habit for the given date key:
// present → removed, absent → appended. Applying it twice restores the
// original set. An unknown id leaves the collection unchanged (ok=false).
// completed reports whether the date is present after the toggle.
func Toggle(habits []model.Habit, id, date string) (out []model.Habit, ok, completed bool) {
	idx := -1
	for i := range habits {
		if habits[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return habits, false, false
	}

	h := habits[idx]
	var dates []string
	if h.CompletedOn(date) {
		dates = make([]string, 0, len(h.CompletedDates)-1)
		for _, d := range h.CompletedDates {
			if d != date {
				dates = append(dates, d)
			}
		}
		completed = false
	} else {
		dates = make([]string, 0, len(h.CompletedDates)+1)
		dates = append(dates, h.CompletedDates...)
		dates = append(dates, date)
		completed = true
	}
	h.CompletedDates = dates

	out = make([]model.Habit, len(habits))
	copy(out, habits)
	out[idx] = h
	return out, true, completed
}

// Delete removes the named habit permanently. An unknown id leaves the
// collection unchanged (ok=false).
func Delete(habits []model.Habit, id string) ([]model.Habit, bool) {
	idx := -1
	for i := range habits {
		if habits[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return habits, false
	}

	out := make([]model.Habit, 0, len(habits)-1)
	out = append(out, habits[:idx]...)
	out = append(out, habits[idx+1:]...)
	return out, true
}
