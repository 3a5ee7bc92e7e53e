package journal

import (
	"fmt"
	"strings"
	"time"
)

const (
	// Bullet prefixes every suggested action line.
	Bullet = "• "
	// SuggestionHeader introduces a block of appended suggestions.
	SuggestionHeader = "Suggested Actions:"
)

// FormatBullets renders items as bullet lines joined by newlines.
func FormatBullets(items []string) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, Bullet+it)
	}
	return strings.Join(lines, "\n")
}

// AppendSuggestions appends a header and bulleted items to current, keeping current
// verbatim as a prefix separated by a blank line. Empty items leave current unchanged.
func AppendSuggestions(current string, items []string) string {
	if len(items) == 0 {
		return current
	}
	block := SuggestionHeader + "\n" + FormatBullets(items)
	if current == "" {
		return block
	}
	return current + "\n\n" + block
}

// AppendLine adds line to current on a line of its own.
func AppendLine(current, line string) string {
	if current == "" {
		return line
	}
	return current + "\n" + line
}

// InsertBullet starts a new bullet line at the end of text.
func InsertBullet(text string) string {
	if text == "" || strings.HasSuffix(text, "\n") {
		return text + Bullet
	}
	return text + "\n" + Bullet
}

// ExportDaily renders a day's log as the plain-text export document.
func ExportDaily(day Day, e DailyEntry, now time.Time) string {
	status := "IN PROGRESS"
	if e.Completed {
		status = "COMPLETED"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s DAILY JOURNAL\n", strings.ToUpper(day.String()))
	b.WriteString("===========================\n")
	fmt.Fprintf(&b, "Status: %s\n", status)
	fmt.Fprintf(&b, "Goal: %s\n\n", orDefault(e.Goal, "No goal set"))
	b.WriteString("DAILY LOG (OUTCOMES/FINDINGS):\n")
	b.WriteString("-----------------------------\n")
	fmt.Fprintf(&b, "%s\n\n", orDefault(e.Log, "No entries"))
	b.WriteString("UNPLANNED ACTION ITEMS:\n")
	b.WriteString("-----------------------\n")
	fmt.Fprintf(&b, "%s\n\n", orDefault(e.Unplanned, "None"))
	fmt.Fprintf(&b, "Generated on: %s", now.Format("2006-01-02 15:04:05"))
	return b.String()
}

// ExportFilename is the file name used for a day's export, e.g. monday_log_2024-05-06.txt.
// The date is the UTC date of now.
func ExportFilename(day Day, now time.Time) string {
	return fmt.Sprintf("%s_log_%s.txt", strings.ToLower(day.String()), now.UTC().Format("2006-01-02"))
}

// RenderMarkdown renders the whole week as a markdown document.
func RenderMarkdown(w Week) string {
	var b strings.Builder
	b.WriteString("# Weekly Journal\n\n")

	b.WriteString("## Plan\n\n")
	for _, d := range Days() {
		p := w.Planner[d]
		fmt.Fprintf(&b, "### %s", d)
		if p.Date != "" {
			fmt.Fprintf(&b, " (%s)", p.Date)
		}
		b.WriteString("\n\n")
		writeMarkdownField(&b, "Goal", p.Goal)
		writeMarkdownField(&b, "Appointments", p.Appointments)
		writeMarkdownField(&b, "Action items", p.ActionItems)
	}

	fmt.Fprintf(&b, "## Execution (%d/%d completed)\n\n", w.CompletedDays(), NumDays)
	for _, d := range Days() {
		e := w.Daily[d]
		mark := "[ ]"
		if e.Completed {
			mark = "[x]"
		}
		fmt.Fprintf(&b, "### %s %s\n\n", mark, d)
		writeMarkdownField(&b, "Goal", e.Goal)
		writeMarkdownField(&b, "Log", e.Log)
		writeMarkdownField(&b, "Unplanned", e.Unplanned)
	}

	b.WriteString("## Retro\n\n")
	writeMarkdownField(&b, "Attempted", w.Retro.Attempted)
	writeMarkdownField(&b, "Unplanned", w.Retro.Unplanned)
	writeMarkdownField(&b, "Summary", w.Retro.Summary)
	writeMarkdownField(&b, "Actions", w.Retro.Actions)
	return b.String()
}

func writeMarkdownField(b *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(b, "**%s**\n\n%s\n\n", label, value)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
