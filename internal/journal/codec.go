package journal

import (
	"encoding/json"
	"fmt"
)

// weekJSON is the persisted shape: weekday names map to entries.
type weekJSON struct {
	Planner map[string]PlannerEntry `json:"planner"`
	Daily   map[string]DailyEntry   `json:"daily"`
	Retro   *RetroEntry             `json:"retro"`
}

// MarshalJSON encodes w keyed by weekday name.
func (w Week) MarshalJSON() ([]byte, error) {
	out := weekJSON{
		Planner: make(map[string]PlannerEntry, NumDays),
		Daily:   make(map[string]DailyEntry, NumDays),
		Retro:   &w.Retro,
	}
	for _, d := range Days() {
		out.Planner[d.String()] = w.Planner[d]
		out.Daily[d.String()] = w.Daily[d]
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a persisted week. The weekday key set of both planner and daily
// must be exactly the five weekdays and all sections must be present; anything else is
// rejected without touching w.
func (w *Week) UnmarshalJSON(data []byte) error {
	var in weekJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Planner == nil || in.Daily == nil || in.Retro == nil {
		return fmt.Errorf("week: missing planner, daily or retro section")
	}
	if len(in.Planner) != NumDays || len(in.Daily) != NumDays {
		return fmt.Errorf("week: expected %d days, got planner=%d daily=%d", NumDays, len(in.Planner), len(in.Daily))
	}

	var out Week
	for _, d := range Days() {
		p, ok := in.Planner[d.String()]
		if !ok {
			return fmt.Errorf("week: planner missing %s", d)
		}
		e, ok := in.Daily[d.String()]
		if !ok {
			return fmt.Errorf("week: daily missing %s", d)
		}
		out.Planner[d] = p
		out.Daily[d] = e
	}
	out.Retro = *in.Retro
	*w = out
	return nil
}
