package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"dev-journal/internal/app"
	"dev-journal/internal/autosave"
	"dev-journal/internal/config"
)

// Run opens the journal described by cfg and runs the terminal UI until the user quits.
func Run(ctx context.Context, cfg *config.Config) error {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	// Log output would corrupt the alt screen.
	logFile, err := tea.LogToFile(filepath.Join(cfg.DataDir, "dev-journal.log"), "dev-journal")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	isDark := detectEnvironment()
	statusCh := make(chan struct{}, 1)
	a, err := app.New(ctx, cfg, app.Options{
		IsDark: func() bool { return isDark },
		OnStatus: func(autosave.Status) {
			select {
			case statusCh <- struct{}{}:
			default:
			}
		},
	})
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	_, err = tea.NewProgram(newModel(ctx, a, statusCh), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
