package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"dev-journal/internal/journal"
)

const (
	// WeekKey holds the JSON-serialized week.
	WeekKey = "dev-journal-data"
	// ThemeKey holds the theme preference as a bare string.
	ThemeKey = "dev-journal-theme"
)

// DarkDetector reports whether the environment prefers a dark appearance.
type DarkDetector func() bool

// Adapter reads and writes the journal document and theme preference through a KV.
type Adapter struct {
	kv     KV
	isDark DarkDetector
}

// NewAdapter creates an Adapter. isDark may be nil, in which case light is assumed
// when no theme has been saved.
func NewAdapter(kv KV, isDark DarkDetector) *Adapter {
	return &Adapter{kv: kv, isDark: isDark}
}

// LoadWeek returns the saved week, or the empty template when nothing usable is stored.
// Read and decode failures are logged and never returned.
func (a *Adapter) LoadWeek(ctx context.Context) journal.Week {
	raw, ok, err := a.kv.Get(ctx, WeekKey)
	if err != nil {
		log.Printf("Warning: failed to read saved week, starting empty: %v", err)
		return journal.Empty()
	}
	if !ok || raw == "" {
		return journal.Empty()
	}

	var w journal.Week
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		log.Printf("Warning: saved week is not usable, starting empty: %v", err)
		return journal.Empty()
	}
	return w
}

// SaveWeek overwrites the saved week.
func (a *Adapter) SaveWeek(ctx context.Context, w journal.Week) error {
	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("failed to marshal week: %w", err)
	}
	if err := a.kv.Set(ctx, WeekKey, string(data)); err != nil {
		return fmt.Errorf("failed to save week: %w", err)
	}
	return nil
}

// LoadTheme returns the saved theme. With no valid saved value it falls back to the
// environment signal without persisting it.
func (a *Adapter) LoadTheme(ctx context.Context) journal.Theme {
	raw, ok, err := a.kv.Get(ctx, ThemeKey)
	if err != nil {
		log.Printf("Warning: failed to read theme preference: %v", err)
	}
	if ok {
		if t, err := journal.ParseTheme(raw); err == nil {
			return t
		}
	}
	if a.isDark != nil && a.isDark() {
		return journal.ThemeDark
	}
	return journal.ThemeLight
}

// SaveTheme persists an explicit theme choice.
func (a *Adapter) SaveTheme(ctx context.Context, t journal.Theme) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", journal.ErrInvalidTheme, string(t))
	}
	return a.kv.Set(ctx, ThemeKey, string(t))
}
