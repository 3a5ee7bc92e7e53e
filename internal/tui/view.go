package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dev-journal/internal/app"
	"dev-journal/internal/autosave"
	"dev-journal/internal/journal"
)

// Save indicator texts.
const (
	indicatorIdle   = "Local Storage Active"
	indicatorSaving = "Auto-saving..."
	indicatorSaved  = "Progress Persistent"
)

func saveIndicator(s autosave.Status) string {
	switch s {
	case autosave.Saving:
		return indicatorSaving
	case autosave.Saved:
		return indicatorSaved
	default:
		return indicatorIdle
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	if m.view != viewRetro {
		b.WriteString(m.renderDays())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.confirm != nil {
		b.WriteString(styleModal().Render(m.confirm.prompt + "\n\n" + styleMuted().Render("y: yes   n/esc: no")))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderFields())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderHeader() string {
	title := styleTitle().Render("DEV JOURNAL")
	var tabs []string
	for _, v := range []view{viewPlanner, viewDaily, viewRetro} {
		tabs = append(tabs, styleTab(v == m.view).Render(v.String()))
	}
	left := lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", strings.Join(tabs, " "))

	right := styleSaveStatus(m.saveStatus == autosave.Saving).Render(saveIndicator(m.saveStatus)) +
		styleMuted().Render("  "+string(m.theme))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderDays() string {
	var parts []string
	for _, d := range journal.Days() {
		label := d.String()[:3]
		if m.view == viewDaily && m.week.Daily[d].Completed {
			label += " ✓"
		}
		parts = append(parts, styleTab(d == m.day).Render(label))
	}
	line := strings.Join(parts, " ")
	if m.view == viewDaily {
		status := "IN PROGRESS"
		if m.week.Daily[m.day].Completed {
			status = "COMPLETED"
		}
		line += styleMuted().Render("   " + status)
	}
	return line
}

func (m Model) renderFields() string {
	var blocks []string
	for i, f := range m.fields {
		focused := i == m.focus
		label := f.label
		if focused {
			label = styleTitle().Render("› " + label)
		} else {
			label = styleMuted().Render("  " + label)
		}
		box := styleFieldBox(focused).Width(m.fieldWidth() + 2).Render(f.view())
		blocks = append(blocks, label+"\n"+box)
	}
	return strings.Join(blocks, "\n")
}

func (m Model) renderStatusLine() string {
	var parts []string
	if len(m.pending) > 0 {
		parts = append(parts, m.spinner.View()+" "+pendingLabel(m.pending))
	}
	if m.flash != "" {
		parts = append(parts, m.flash)
	}
	parts = append(parts, styleMuted().Render(fmt.Sprintf("Completed %d/%d", m.week.CompletedDays(), journal.NumDays)))
	return strings.Join(parts, "   ")
}

func pendingLabel(pending map[app.Job]bool) string {
	for job := range pending {
		switch job.Kind {
		case app.JobSummary:
			return "Analyzing week..."
		case app.JobDailyGoal:
			return "Suggesting goal..."
		default:
			return "Suggesting actions..."
		}
	}
	return ""
}
