package journal

import (
	"fmt"
	"strings"
)

// PlannerField selects one text field of a PlannerEntry.
type PlannerField int

const (
	PlannerDate PlannerField = iota
	PlannerGoal
	PlannerAppointments
	PlannerActionItems
)

// DailyField selects one text field of a DailyEntry. Completion is set with WithCompleted.
type DailyField int

const (
	DailyGoal DailyField = iota
	DailyLog
	DailyUnplanned
)

// RetroField selects one field of the RetroEntry.
type RetroField int

const (
	RetroAttempted RetroField = iota
	RetroUnplanned
	RetroSummary
	RetroActions
)

var (
	plannerFieldKeys = []string{"date", "goal", "appointments", "actionItems"}
	dailyFieldKeys   = []string{"goal", "log", "unplanned"}
	retroFieldKeys   = []string{"attempted", "unplanned", "summary", "actions"}
)

// PlannerFields returns the planner fields in display order.
func PlannerFields() []PlannerField {
	return []PlannerField{PlannerDate, PlannerGoal, PlannerAppointments, PlannerActionItems}
}

// DailyFields returns the daily text fields in display order.
func DailyFields() []DailyField {
	return []DailyField{DailyGoal, DailyLog, DailyUnplanned}
}

// RetroFields returns the retro fields in display order.
func RetroFields() []RetroField {
	return []RetroField{RetroAttempted, RetroUnplanned, RetroSummary, RetroActions}
}

func (f PlannerField) Valid() bool { return f >= PlannerDate && f <= PlannerActionItems }
func (f DailyField) Valid() bool   { return f >= DailyGoal && f <= DailyUnplanned }
func (f RetroField) Valid() bool   { return f >= RetroAttempted && f <= RetroActions }

func (f PlannerField) String() string { return fieldKey(plannerFieldKeys, int(f)) }
func (f DailyField) String() string   { return fieldKey(dailyFieldKeys, int(f)) }
func (f RetroField) String() string   { return fieldKey(retroFieldKeys, int(f)) }

func fieldKey(keys []string, i int) string {
	if i < 0 || i >= len(keys) {
		return fmt.Sprintf("field(%d)", i)
	}
	return keys[i]
}

func parseField(keys []string, s string) (int, error) {
	norm := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(strings.TrimSpace(s)))
	for i, k := range keys {
		if strings.ToLower(k) == norm {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidField, s)
}

// ParsePlannerField accepts a JSON key such as "actionItems" or "action-items".
func ParsePlannerField(s string) (PlannerField, error) {
	i, err := parseField(plannerFieldKeys, s)
	return PlannerField(i), err
}

func ParseDailyField(s string) (DailyField, error) {
	i, err := parseField(dailyFieldKeys, s)
	return DailyField(i), err
}

func ParseRetroField(s string) (RetroField, error) {
	i, err := parseField(retroFieldKeys, s)
	return RetroField(i), err
}

// Get returns the value of field f.
func (p PlannerEntry) Get(f PlannerField) string {
	switch f {
	case PlannerDate:
		return p.Date
	case PlannerGoal:
		return p.Goal
	case PlannerAppointments:
		return p.Appointments
	case PlannerActionItems:
		return p.ActionItems
	}
	return ""
}

func (p PlannerEntry) with(f PlannerField, v string) PlannerEntry {
	switch f {
	case PlannerDate:
		p.Date = v
	case PlannerGoal:
		p.Goal = v
	case PlannerAppointments:
		p.Appointments = v
	case PlannerActionItems:
		p.ActionItems = v
	}
	return p
}

// Get returns the value of field f.
func (d DailyEntry) Get(f DailyField) string {
	switch f {
	case DailyGoal:
		return d.Goal
	case DailyLog:
		return d.Log
	case DailyUnplanned:
		return d.Unplanned
	}
	return ""
}

func (d DailyEntry) with(f DailyField, v string) DailyEntry {
	switch f {
	case DailyGoal:
		d.Goal = v
	case DailyLog:
		d.Log = v
	case DailyUnplanned:
		d.Unplanned = v
	}
	return d
}

// Get returns the value of field f.
func (r RetroEntry) Get(f RetroField) string {
	switch f {
	case RetroAttempted:
		return r.Attempted
	case RetroUnplanned:
		return r.Unplanned
	case RetroSummary:
		return r.Summary
	case RetroActions:
		return r.Actions
	}
	return ""
}

func (r RetroEntry) with(f RetroField, v string) RetroEntry {
	switch f {
	case RetroAttempted:
		r.Attempted = v
	case RetroUnplanned:
		r.Unplanned = v
	case RetroSummary:
		r.Summary = v
	case RetroActions:
		r.Actions = v
	}
	return r
}
