package journal

import "fmt"

// WithPlanner returns a copy of w with one planner field of day replaced.
// An invalid day or field leaves w unchanged.
func (w Week) WithPlanner(day Day, f PlannerField, v string) Week {
	if !day.Valid() || !f.Valid() {
		return w
	}
	w.Planner[day] = w.Planner[day].with(f, v)
	return w
}

// WithDaily returns a copy of w with one daily text field of day replaced.
func (w Week) WithDaily(day Day, f DailyField, v string) Week {
	if !day.Valid() || !f.Valid() {
		return w
	}
	w.Daily[day] = w.Daily[day].with(f, v)
	return w
}

// WithCompleted returns a copy of w with the completion flag of day set.
func (w Week) WithCompleted(day Day, completed bool) Week {
	if !day.Valid() {
		return w
	}
	w.Daily[day].Completed = completed
	return w
}

// WithRetro returns a copy of w with one retro field replaced.
func (w Week) WithRetro(f RetroField, v string) Week {
	if !f.Valid() {
		return w
	}
	w.Retro = w.Retro.with(f, v)
	return w
}

// WithSummary replaces the retro summary and actions together.
func (w Week) WithSummary(summary, actions string) Week {
	w.Retro.Summary = summary
	w.Retro.Actions = actions
	return w
}

// ClearPlanner resets the planner entry of day to the empty template.
func (w Week) ClearPlanner(day Day) Week {
	if !day.Valid() {
		return w
	}
	w.Planner[day] = PlannerEntry{}
	return w
}

// ClearDaily resets the daily entry of day to the empty template.
func (w Week) ClearDaily(day Day) Week {
	if !day.Valid() {
		return w
	}
	w.Daily[day] = DailyEntry{}
	return w
}

// Confirmer gates destructive operations on an explicit yes from the user.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Always confirms every prompt. Used by non-interactive callers that already asked.
var Always Confirmer = ConfirmFunc(func(string) bool { return true })

func PlannerResetPrompt(day Day) string {
	return fmt.Sprintf("Clear all planner entries for %s?", day)
}

func DailyResetPrompt(day Day) string {
	return fmt.Sprintf("Clear all daily entries for %s?", day)
}

const WeekResetPrompt = "Are you sure you want to clear all entries for this week?"

// ResetPlannerDay clears the planner entry of day if c confirms.
// It reports whether the reset was applied.
func ResetPlannerDay(w Week, day Day, c Confirmer) (Week, bool) {
	if !day.Valid() || c == nil || !c.Confirm(PlannerResetPrompt(day)) {
		return w, false
	}
	return w.ClearPlanner(day), true
}

// ResetDailyDay clears the daily entry of day if c confirms.
func ResetDailyDay(w Week, day Day, c Confirmer) (Week, bool) {
	if !day.Valid() || c == nil || !c.Confirm(DailyResetPrompt(day)) {
		return w, false
	}
	return w.ClearDaily(day), true
}

// ResetWeek replaces the whole week with the empty template if c confirms.
func ResetWeek(w Week, c Confirmer) (Week, bool) {
	if c == nil || !c.Confirm(WeekResetPrompt) {
		return w, false
	}
	return Empty(), true
}
