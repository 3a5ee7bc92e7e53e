package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"dev-journal/internal/app"
	"dev-journal/internal/autosave"
	"dev-journal/internal/journal"
)

// statusMsg signals that the autosave status changed; the model reads the new value.
type statusMsg struct{}

type aiDoneMsg struct {
	job app.Job
	out app.Outcome
	err error
}

type confirmState struct {
	prompt string
	action journal.Action
}

// Model is the Bubble Tea model for the journal.
type Model struct {
	ctx      context.Context
	app      *app.App
	session  *app.Session
	statusCh <-chan struct{}
	now      func() time.Time

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	week   journal.Week
	view   view
	day    journal.Day
	fields []*field
	focus  int

	theme      journal.Theme
	saveStatus autosave.Status
	pending    map[app.Job]bool
	confirm    *confirmState
	flash      string
	width      int
	height     int
}

func newModel(ctx context.Context, a *app.App, statusCh <-chan struct{}) Model {
	m := Model{
		ctx:      ctx,
		app:      a,
		session:  a.Session(),
		statusCh: statusCh,
		now:      time.Now,
		keys:     newKeyMap(),
		help:     help.New(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		week:     a.Session().Week(),
		view:     viewPlanner,
		day:      journal.Monday,
		theme:    a.Store().LoadTheme(ctx),
		pending:  make(map[app.Job]bool),
		width:    80,
	}
	applyTheme(m.theme)
	m.rebuildFields()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.focusCurrent(), waitForStatus(m.statusCh))
}

func waitForStatus(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return statusMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		for _, f := range m.fields {
			f.setWidth(m.fieldWidth())
		}
		return m, nil

	case statusMsg:
		m.saveStatus = m.app.Autosave().Status()
		return m, waitForStatus(m.statusCh)

	case aiDoneMsg:
		delete(m.pending, msg.job)
		m.week = m.session.Week()
		m.syncFields()
		m.flash = describeOutcome(msg.job, msg.out, msg.err)
		return m, nil

	case spinner.TickMsg:
		if len(m.pending) == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if f := m.focused(); f != nil {
		return m, f.update(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm != nil {
		switch msg.String() {
		case "y", "Y", "enter":
			m.week = m.session.Dispatch(m.confirm.action)
			m.confirm = nil
			m.syncFields()
			m.flash = "Cleared."
		case "n", "N", "esc":
			m.confirm = nil
			m.flash = ""
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Planner):
		return m.switchTo(viewPlanner, m.day)
	case key.Matches(msg, m.keys.Daily):
		return m.switchTo(viewDaily, m.day)
	case key.Matches(msg, m.keys.Retro):
		return m.switchTo(viewRetro, m.day)
	case key.Matches(msg, m.keys.NextDay):
		return m.switchTo(m.view, (m.day+1)%journal.NumDays)
	case key.Matches(msg, m.keys.PrevDay):
		return m.switchTo(m.view, (m.day+journal.NumDays-1)%journal.NumDays)
	case key.Matches(msg, m.keys.NextField):
		return m.moveFocus(1)
	case key.Matches(msg, m.keys.PrevField):
		return m.moveFocus(-1)
	case key.Matches(msg, m.keys.ToggleDone):
		if m.view == viewDaily {
			m.week = m.session.Dispatch(journal.ToggleCompleted{Day: m.day})
		}
		return m, nil
	case key.Matches(msg, m.keys.Bullet):
		if f := m.focused(); f != nil && f.multiline {
			before := f.value()
			f.setValue(journal.InsertBullet(before))
			m.commit(f, before)
		}
		return m, nil
	case key.Matches(msg, m.keys.SuggestActions):
		switch m.view {
		case viewPlanner:
			return m.startJob(app.Job{Kind: app.JobPlannerActions, Day: m.day})
		case viewDaily:
			return m.startJob(app.Job{Kind: app.JobDailyActions, Day: m.day})
		}
		return m, nil
	case key.Matches(msg, m.keys.SuggestGoal):
		if m.view == viewRetro {
			return m, nil
		}
		return m.startJob(app.Job{Kind: app.JobDailyGoal, Day: m.day})
	case key.Matches(msg, m.keys.Summarize):
		return m.startJob(app.Job{Kind: app.JobSummary})
	case key.Matches(msg, m.keys.ClearDay):
		switch m.view {
		case viewPlanner:
			m.confirm = &confirmState{prompt: journal.PlannerResetPrompt(m.day), action: journal.ClearPlanner{Day: m.day}}
		case viewDaily:
			m.confirm = &confirmState{prompt: journal.DailyResetPrompt(m.day), action: journal.ClearDaily{Day: m.day}}
		}
		return m, nil
	case key.Matches(msg, m.keys.ClearWeek):
		m.confirm = &confirmState{prompt: journal.WeekResetPrompt, action: journal.ClearWeek{}}
		return m, nil
	case key.Matches(msg, m.keys.Export):
		path, err := m.app.ExportDay(m.day, m.now())
		if err != nil {
			m.flash = "Export failed: " + err.Error()
		} else {
			m.flash = "Exported " + path
		}
		return m, nil
	case key.Matches(msg, m.keys.Theme):
		theme, err := m.app.ToggleTheme(m.ctx)
		if err != nil {
			m.flash = "Could not save theme: " + err.Error()
		}
		m.theme = theme
		applyTheme(theme)
		return m, nil
	}

	f := m.focused()
	if f == nil {
		return m, nil
	}
	before := f.value()
	cmd := f.update(msg)
	m.commit(f, before)
	return m, cmd
}

// commit dispatches the field's value only when the key changed the editor text, so
// navigation never writes back the widget's rendering of a stored value.
func (m *Model) commit(f *field, before string) {
	v := f.value()
	if v == before {
		return
	}
	m.week = m.session.Dispatch(f.set(v))
}

func (m Model) switchTo(v view, day journal.Day) (tea.Model, tea.Cmd) {
	if v == m.view && day == m.day {
		return m, nil
	}
	m.view, m.day = v, day
	m.focus = 0
	m.rebuildFields()
	return m, m.focusCurrent()
}

func (m Model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	if len(m.fields) == 0 {
		return m, nil
	}
	m.fields[m.focus].blur()
	m.focus = (m.focus + delta + len(m.fields)) % len(m.fields)
	return m, m.focusCurrent()
}

func (m *Model) rebuildFields() {
	slots := slotsFor(m.view, m.day)
	m.fields = make([]*field, 0, len(slots))
	for _, s := range slots {
		f := newField(s, m.fieldWidth())
		f.setValue(s.get(m.week))
		m.fields = append(m.fields, f)
	}
}

// syncFields pulls values changed outside the editors, e.g. by the assistant.
func (m *Model) syncFields() {
	for _, f := range m.fields {
		f.setValue(f.get(m.week))
	}
}

func (m Model) focused() *field {
	if m.focus < 0 || m.focus >= len(m.fields) {
		return nil
	}
	return m.fields[m.focus]
}

func (m Model) focusCurrent() tea.Cmd {
	if f := m.focused(); f != nil {
		return f.focus()
	}
	return nil
}

func (m Model) fieldWidth() int {
	return m.width - 6
}

func (m Model) startJob(job app.Job) (tea.Model, tea.Cmd) {
	if m.pending[job] {
		return m, nil
	}
	m.pending[job] = true
	m.flash = ""
	return m, tea.Batch(m.spinner.Tick, runJob(m.ctx, m.session, job))
}

func runJob(ctx context.Context, s *app.Session, job app.Job) tea.Cmd {
	return func() tea.Msg {
		var (
			out app.Outcome
			err error
		)
		switch job.Kind {
		case app.JobSummary:
			out, err = s.SummarizeWeek(ctx)
		case app.JobDailyActions:
			out, err = s.SuggestDailyActions(ctx, job.Day)
		case app.JobPlannerActions:
			out, err = s.SuggestPlannerActions(ctx, job.Day)
		case app.JobDailyGoal:
			out, err = s.SuggestDailyGoal(ctx, job.Day)
		}
		return aiDoneMsg{job: job, out: out, err: err}
	}
}

func describeOutcome(job app.Job, out app.Outcome, err error) string {
	switch {
	case errors.Is(err, app.ErrBusy):
		return "Already working on that."
	case err != nil:
		return "Assistant error: " + err.Error()
	case out.Skipped && job.Kind == app.JobDailyGoal:
		return fmt.Sprintf("Set a planner goal for %s first.", job.Day)
	case out.Skipped:
		return fmt.Sprintf("Set a goal for %s first.", job.Day)
	case out.Fallback():
		return "Assistant unavailable: " + out.Err.Error()
	case job.Kind == app.JobSummary:
		return "Retro summary updated."
	case job.Kind == app.JobDailyGoal:
		return "Daily goal suggested."
	default:
		return "Suggestions added."
	}
}
