package journal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidDay   = errors.New("invalid day")
	ErrInvalidField = errors.New("invalid field")
	ErrInvalidTheme = errors.New("invalid theme")
)

// Day is one of the five fixed weekdays tracked by a Week.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

// NumDays is the size of the fixed weekday key set.
const NumDays = 5

var dayNames = [NumDays]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// Days returns the weekdays in display order.
func Days() []Day {
	return []Day{Monday, Tuesday, Wednesday, Thursday, Friday}
}

func (d Day) Valid() bool {
	return d >= Monday && d <= Friday
}

func (d Day) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}

// ParseDay accepts a weekday name (case-insensitive) or its three-letter prefix.
func ParseDay(s string) (Day, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s != "" {
		for i, name := range dayNames {
			lower := strings.ToLower(name)
			if s == lower || (len(s) >= 3 && strings.HasPrefix(lower, s)) {
				return Day(i), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDay, s)
}

// PlannerEntry is the plan recorded for one day.
type PlannerEntry struct {
	Date         string `json:"date"`
	Goal         string `json:"goal"`
	Appointments string `json:"appointments"`
	ActionItems  string `json:"actionItems"`
}

// DailyEntry is the execution log recorded for one day.
type DailyEntry struct {
	Completed bool   `json:"completed"`
	Goal      string `json:"goal"`
	Log       string `json:"log"`
	Unplanned string `json:"unplanned"`
}

// RetroEntry is the weekly retrospective.
type RetroEntry struct {
	Attempted string `json:"attempted"`
	Unplanned string `json:"unplanned"`
	Summary   string `json:"summary"`
	Actions   string `json:"actions"`
}

// Week is one week of planning, execution and retrospective data.
//
// Days are stored in fixed-size arrays, so every weekday is always present and Week is a
// comparable value: two Weeks are the same document iff they are ==. All update methods
// use value receivers and return a modified copy.
type Week struct {
	Planner [NumDays]PlannerEntry
	Daily   [NumDays]DailyEntry
	Retro   RetroEntry
}

// Empty returns the canonical empty template.
func Empty() Week {
	return Week{}
}

// IsEmpty reports whether w equals the canonical empty template.
func (w Week) IsEmpty() bool {
	return w == Empty()
}

// PlannerFor returns the planner entry for day, or the empty entry for an invalid day.
func (w Week) PlannerFor(day Day) PlannerEntry {
	if !day.Valid() {
		return PlannerEntry{}
	}
	return w.Planner[day]
}

// DailyFor returns the daily entry for day, or the empty entry for an invalid day.
func (w Week) DailyFor(day Day) DailyEntry {
	if !day.Valid() {
		return DailyEntry{}
	}
	return w.Daily[day]
}

// CompletedDays counts the days marked completed.
func (w Week) CompletedDays() int {
	n := 0
	for _, d := range w.Daily {
		if d.Completed {
			n++
		}
	}
	return n
}

// Theme is the persisted light/dark preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ParseTheme accepts "light" or "dark".
func ParseTheme(s string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
	}
	return t, nil
}
