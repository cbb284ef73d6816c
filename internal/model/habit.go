package model

import "time"

// DateLayout is the calendar-date key format used everywhere a habit
// completion is recorded or compared.
const DateLayout = "2006-01-02"

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

func (f Frequency) Valid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

type Category string

const (
	CategoryHealth       Category = "health"
	CategoryLearning     Category = "learning"
	CategoryMindfulness  Category = "mindfulness"
	CategoryProductivity Category = "productivity"
	CategoryOther        Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryHealth, CategoryLearning, CategoryMindfulness, CategoryProductivity, CategoryOther:
		return true
	}
	return false
}

// Habit is the sole persisted entity. CompletedDates holds YYYY-MM-DD keys,
// each at most once, in insertion order.
type Habit struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Frequency      Frequency `json:"frequency"`
	Category       Category  `json:"category"`
	CompletedDates []string  `json:"completedDates"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CompletedOn reports whether the habit was marked done on the given date key.
func (h *Habit) CompletedOn(date string) bool {
	for _, d := range h.CompletedDates {
		if d == date {
			return true
		}
	}
	return false
}

// CreatedDate returns the habit's creation day as a date key. A habit counts
// toward statistics from this day on, inclusive.
func (h *Habit) CreatedDate() string {
	return DateKey(h.CreatedAt)
}

// DateKey formats an instant as its calendar-date key.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}
