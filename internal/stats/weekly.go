// Package stats derives the trailing-7-day activity chart from the habit
// collection. The derivation is a pure function of (habits, now) and is cheap
// enough to recompute on every request.
package stats

import (
	"fmt"
	"time"

	"habit-service/internal/model"
)

// Point is one day of the weekly chart. Total counts habits that already
// existed on that day; Completed counts how many of those were marked done.
// Total == 0 means "no data for that day", which consumers must keep distinct
// from "0 of N completed".
type Point struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

// Weekly returns exactly 7 points for the calendar days ending at and
// including today, oldest first. A habit is eligible on a day when its
// creation date key is <= that day's key (same-day creation counts).
func Weekly(habits []model.Habit, now time.Time) []Point {
	points := make([]Point, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		key := model.DateKey(day)

		p := Point{Date: label(day)}
		for j := range habits {
			h := &habits[j]
			if h.CreatedDate() > key {
				continue
			}
			p.Total++
			if h.CompletedOn(key) {
				p.Completed++
			}
		}
		points = append(points, p)
	}
	return points
}

// label renders a day as d/M without zero padding, e.g. "7/3".
func label(day time.Time) string {
	return fmt.Sprintf("%d/%d", day.Day(), int(day.Month()))
}
