package ghost

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"dev-journal/internal/journal"
)

var weekTemplate = template.Must(template.New("week").Funcs(template.FuncMap{
	"lines": func(s string) []string {
		var out []string
		for _, l := range strings.Split(s, "\n") {
			if strings.TrimSpace(l) != "" {
				out = append(out, l)
			}
		}
		return out
	},
	"field": func(label, value string) fieldData { return fieldData{Label: label, Value: value} },
}).Parse(`
{{- define "field"}}{{if .Value}}<h4>{{.Label}}</h4><p>{{range $i, $l := lines .Value}}{{if $i}}<br>{{end}}{{$l}}{{end}}</p>{{end}}{{end -}}
<h2>Plan</h2>
{{range .Days}}<h3>{{.Name}}{{if .Planner.Date}} ({{.Planner.Date}}){{end}}</h3>
{{template "field" (field "Goal" .Planner.Goal)}}{{template "field" (field "Appointments" .Planner.Appointments)}}{{template "field" (field "Action items" .Planner.ActionItems)}}
{{end}}<h2>Execution ({{.Completed}}/{{.Total}} completed)</h2>
{{range .Days}}<h3>{{if .Daily.Completed}}&#x2705; {{end}}{{.Name}}</h3>
{{template "field" (field "Goal" .Daily.Goal)}}{{template "field" (field "Log" .Daily.Log)}}{{template "field" (field "Unplanned" .Daily.Unplanned)}}
{{end}}<h2>Retro</h2>
{{template "field" (field "Attempted" .Retro.Attempted)}}{{template "field" (field "Unplanned" .Retro.Unplanned)}}{{template "field" (field "Summary" .Retro.Summary)}}{{template "field" (field "Actions" .Retro.Actions)}}
`))

type fieldData struct {
	Label string
	Value string
}

type dayData struct {
	Name    string
	Planner journal.PlannerEntry
	Daily   journal.DailyEntry
}

type weekData struct {
	Days      []dayData
	Completed int
	Total     int
	Retro     journal.RetroEntry
}

// RenderWeekHTML renders w as an HTML post body. All user text is escaped.
func RenderWeekHTML(w journal.Week) (string, error) {
	data := weekData{Completed: w.CompletedDays(), Total: journal.NumDays, Retro: w.Retro}
	for _, d := range journal.Days() {
		data.Days = append(data.Days, dayData{Name: d.String(), Planner: w.Planner[d], Daily: w.Daily[d]})
	}

	var buf bytes.Buffer
	if err := weekTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

// PostTitle names a weekly post after the Monday of the week containing now.
func PostTitle(now time.Time) string {
	offset := (int(now.Weekday()) + 6) % 7
	monday := now.AddDate(0, 0, -offset)
	return "Weekly Journal: week of " + monday.Format("2006-01-02")
}
