package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dev-journal/internal/ghost"
	"dev-journal/internal/journal"
)

// ErrPublishingDisabled is returned by PublishWeek when Ghost is not configured.
var ErrPublishingDisabled = errors.New("ghost publishing is not configured")

// ExportDay writes the plain-text export of day into dir and returns the file path.
func ExportDay(dir string, w journal.Week, day journal.Day, now time.Time) (string, error) {
	if !day.Valid() {
		return "", fmt.Errorf("%w: %d", journal.ErrInvalidDay, int(day))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(dir, journal.ExportFilename(day, now))
	content := journal.ExportDaily(day, w.DailyFor(day), now)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}

// ExportDay exports day from the current week into the configured export directory.
func (a *App) ExportDay(day journal.Day, now time.Time) (string, error) {
	return ExportDay(a.cfg.ExportDir, a.session.Week(), day, now)
}

// PublishWeek posts the current week to Ghost, as a draft unless publish is set.
func (a *App) PublishWeek(ctx context.Context, now time.Time, publish bool) (*ghost.Post, error) {
	if a.ghostClient == nil {
		return nil, ErrPublishingDisabled
	}
	html, err := ghost.RenderWeekHTML(a.session.Week())
	if err != nil {
		return nil, fmt.Errorf("failed to render week: %w", err)
	}
	post, err := a.ghostClient.CreatePost(ctx, ghost.PostTitle(now), html, publish)
	if err != nil {
		return nil, fmt.Errorf("failed to publish week: %w", err)
	}
	return post, nil
}

// ToggleTheme flips and persists the theme preference.
func (a *App) ToggleTheme(ctx context.Context) (journal.Theme, error) {
	next := a.store.LoadTheme(ctx).Toggle()
	if err := a.store.SaveTheme(ctx, next); err != nil {
		return a.store.LoadTheme(ctx), err
	}
	return next, nil
}
