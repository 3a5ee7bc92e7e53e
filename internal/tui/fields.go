package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"dev-journal/internal/journal"
)

type view int

const (
	viewPlanner view = iota
	viewDaily
	viewRetro
)

var viewNames = [...]string{"Planner", "Daily", "Retro"}

func (v view) String() string { return viewNames[v] }

// slot binds an on-screen field to one leaf of the week.
type slot struct {
	label     string
	multiline bool
	get       func(journal.Week) string
	set       func(string) journal.Action
}

var (
	plannerLabels = map[journal.PlannerField]string{
		journal.PlannerDate:         "Date",
		journal.PlannerGoal:         "Goal",
		journal.PlannerAppointments: "Appointments",
		journal.PlannerActionItems:  "Action Items",
	}
	dailyLabels = map[journal.DailyField]string{
		journal.DailyGoal:      "Goal",
		journal.DailyLog:       "Daily Log (Outcomes/Findings)",
		journal.DailyUnplanned: "Unplanned Action Items",
	}
	retroLabels = map[journal.RetroField]string{
		journal.RetroAttempted: "What I Attempted",
		journal.RetroUnplanned: "Unplanned Work",
		journal.RetroSummary:   "Summary",
		journal.RetroActions:   "Retro Actions",
	}
)

func slotsFor(v view, day journal.Day) []slot {
	var out []slot
	switch v {
	case viewPlanner:
		for _, f := range journal.PlannerFields() {
			out = append(out, slot{
				label:     plannerLabels[f],
				multiline: f == journal.PlannerAppointments || f == journal.PlannerActionItems,
				get:       func(w journal.Week) string { return w.PlannerFor(day).Get(f) },
				set:       func(s string) journal.Action { return journal.SetPlanner{Day: day, Field: f, Value: s} },
			})
		}
	case viewDaily:
		for _, f := range journal.DailyFields() {
			out = append(out, slot{
				label:     dailyLabels[f],
				multiline: f != journal.DailyGoal,
				get:       func(w journal.Week) string { return w.DailyFor(day).Get(f) },
				set:       func(s string) journal.Action { return journal.SetDaily{Day: day, Field: f, Value: s} },
			})
		}
	case viewRetro:
		for _, f := range journal.RetroFields() {
			out = append(out, slot{
				label:     retroLabels[f],
				multiline: true,
				get:       func(w journal.Week) string { return w.Retro.Get(f) },
				set:       func(s string) journal.Action { return journal.SetRetro{Field: f, Value: s} },
			})
		}
	}
	return out
}

// field is an editor widget for one slot: a textinput for single-line values and a
// textarea otherwise.
type field struct {
	slot
	input textinput.Model
	area  textarea.Model
}

func newField(s slot, width int) *field {
	f := &field{slot: s}
	if s.multiline {
		f.area = textarea.New()
		f.area.ShowLineNumbers = false
		f.area.CharLimit = 0
		f.area.MaxHeight = 0
		f.area.Prompt = ""
		f.area.SetHeight(3)
	} else {
		f.input = textinput.New()
		f.input.CharLimit = 0
		f.input.Prompt = ""
	}
	f.setWidth(width)
	return f
}

func (f *field) value() string {
	if f.multiline {
		return f.area.Value()
	}
	return f.input.Value()
}

// setValue replaces the editor content only when it differs, so the cursor is kept
// on ordinary edits.
func (f *field) setValue(v string) {
	if f.value() == v {
		return
	}
	if f.multiline {
		f.area.SetValue(v)
		return
	}
	f.input.SetValue(v)
}

func (f *field) setWidth(w int) {
	if w < 10 {
		w = 10
	}
	if f.multiline {
		f.area.SetWidth(w)
		return
	}
	f.input.Width = w
}

func (f *field) focus() tea.Cmd {
	if f.multiline {
		return f.area.Focus()
	}
	return f.input.Focus()
}

func (f *field) blur() {
	if f.multiline {
		f.area.Blur()
		return
	}
	f.input.Blur()
}

func (f *field) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.multiline {
		f.area, cmd = f.area.Update(msg)
	} else {
		f.input, cmd = f.input.Update(msg)
	}
	return cmd
}

func (f *field) view() string {
	if f.multiline {
		return f.area.View()
	}
	return f.input.View()
}
