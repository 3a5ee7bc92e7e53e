package journal

// Action is one update dispatched against the current Week. Apply must not mutate
// anything reachable from its argument; Week's value semantics make that the default.
type Action interface {
	Apply(w Week) Week
}

// Reduce applies a to w. A nil action is a no-op.
func Reduce(w Week, a Action) Week {
	if a == nil {
		return w
	}
	return a.Apply(w)
}

type SetPlanner struct {
	Day   Day
	Field PlannerField
	Value string
}

func (a SetPlanner) Apply(w Week) Week { return w.WithPlanner(a.Day, a.Field, a.Value) }

type SetDaily struct {
	Day   Day
	Field DailyField
	Value string
}

func (a SetDaily) Apply(w Week) Week { return w.WithDaily(a.Day, a.Field, a.Value) }

type SetCompleted struct {
	Day       Day
	Completed bool
}

func (a SetCompleted) Apply(w Week) Week { return w.WithCompleted(a.Day, a.Completed) }

// ToggleCompleted flips the completion flag of Day against the latest state.
type ToggleCompleted struct {
	Day Day
}

func (a ToggleCompleted) Apply(w Week) Week {
	return w.WithCompleted(a.Day, !w.DailyFor(a.Day).Completed)
}

type SetRetro struct {
	Field RetroField
	Value string
}

func (a SetRetro) Apply(w Week) Week { return w.WithRetro(a.Field, a.Value) }

// AppendPlannerLine, AppendDailyLine and AppendRetroLine add Line as a new line of
// the field as it stands when the action is applied.
type AppendPlannerLine struct {
	Day   Day
	Field PlannerField
	Line  string
}

func (a AppendPlannerLine) Apply(w Week) Week {
	return w.WithPlanner(a.Day, a.Field, AppendLine(w.PlannerFor(a.Day).Get(a.Field), a.Line))
}

type AppendDailyLine struct {
	Day   Day
	Field DailyField
	Line  string
}

func (a AppendDailyLine) Apply(w Week) Week {
	return w.WithDaily(a.Day, a.Field, AppendLine(w.DailyFor(a.Day).Get(a.Field), a.Line))
}

type AppendRetroLine struct {
	Field RetroField
	Line  string
}

func (a AppendRetroLine) Apply(w Week) Week {
	return w.WithRetro(a.Field, AppendLine(w.Retro.Get(a.Field), a.Line))
}

// ClearPlanner, ClearDaily and ClearWeek are dispatched only after the surface has
// passed the confirmation gate.
type ClearPlanner struct {
	Day Day
}

func (a ClearPlanner) Apply(w Week) Week { return w.ClearPlanner(a.Day) }

type ClearDaily struct {
	Day Day
}

func (a ClearDaily) Apply(w Week) Week { return w.ClearDaily(a.Day) }

type ClearWeek struct{}

func (ClearWeek) Apply(Week) Week { return Empty() }

// ApplySummary writes a generated retro summary and actions.
type ApplySummary struct {
	Summary string
	Actions string
}

func (a ApplySummary) Apply(w Week) Week { return w.WithSummary(a.Summary, a.Actions) }

// AppendDailySuggestions appends suggested action items to the daily log of Day.
// The append is computed against the state current at apply time.
type AppendDailySuggestions struct {
	Day   Day
	Items []string
}

func (a AppendDailySuggestions) Apply(w Week) Week {
	if len(a.Items) == 0 {
		return w
	}
	cur := w.DailyFor(a.Day).Log
	return w.WithDaily(a.Day, DailyLog, AppendSuggestions(cur, a.Items))
}

// AppendPlannerSuggestions appends suggested action items to the planner action items of Day.
type AppendPlannerSuggestions struct {
	Day   Day
	Items []string
}

func (a AppendPlannerSuggestions) Apply(w Week) Week {
	if len(a.Items) == 0 {
		return w
	}
	cur := w.PlannerFor(a.Day).ActionItems
	return w.WithPlanner(a.Day, PlannerActionItems, AppendSuggestions(cur, a.Items))
}

// SetDailyGoal replaces the daily goal of Day with a suggestion; an empty goal is ignored.
type SetDailyGoal struct {
	Day  Day
	Goal string
}

func (a SetDailyGoal) Apply(w Week) Week {
	if a.Goal == "" {
		return w
	}
	return w.WithDaily(a.Day, DailyGoal, a.Goal)
}

// Replace swaps in a whole Week, e.g. one loaded from storage.
type Replace struct {
	Week Week
}

func (a Replace) Apply(Week) Week { return a.Week }
