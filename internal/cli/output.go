package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/spf13/cobra"

	"dev-journal/internal/app"
	"dev-journal/internal/journal"
	"dev-journal/internal/metrics"
)

func newShowCmd(e *env) *cobra.Command {
	var (
		raw   bool
		width int
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render the whole week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withApp(cmd, func(ctx context.Context, a *app.App) error {
				md := journal.RenderMarkdown(a.Session().Week())
				if raw {
					fmt.Fprint(cmd.OutOrStdout(), md)
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderMarkdown(md, a.Store().LoadTheme(ctx), width))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print markdown without terminal styling")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width")
	return cmd
}

// renderMarkdown styles md for the terminal, falling back to the plain text.
func renderMarkdown(md string, theme journal.Theme, width int) string {
	if width < 10 {
		width = 10
	}
	style := styles.LightStyle
	if theme == journal.ThemeDark {
		style = styles.DarkStyle
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func newExportCmd(e *env) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export <day>",
		Short: "Write a day's log to a text file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := journal.ParseDay(args[0])
			if err != nil {
				return err
			}
			return e.withApp(cmd, func(ctx context.Context, a *app.App) error {
				target := e.cfg.ExportDir
				if dir != "" {
					target = dir
				}
				path, err := app.ExportDay(target, a.Session().Week(), day, e.now())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Directory for the export file (default: JOURNAL_EXPORT_DIR)")
	return cmd
}

func newThemeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "theme [light|dark|toggle]",
		Short: "Show or change the saved theme",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withApp(cmd, func(ctx context.Context, a *app.App) error {
				if len(args) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), a.Store().LoadTheme(ctx))
					return nil
				}
				var (
					theme journal.Theme
					err   error
				)
				if strings.EqualFold(args[0], "toggle") {
					theme, err = a.ToggleTheme(ctx)
				} else {
					theme, err = journal.ParseTheme(args[0])
					if err == nil {
						err = a.Store().SaveTheme(ctx, theme)
					}
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), theme)
				return nil
			})
		},
	}
}

func newPublishCmd(e *env) *cobra.Command {
	var publish bool
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Post the week to Ghost as a draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.cfg.RequireGhost(); err != nil {
				return err
			}
			return e.withApp(cmd, func(ctx context.Context, a *app.App) error {
				post, err := a.PublishWeek(ctx, e.now(), publish)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) %s\n", post.Title, post.Status, post.URL)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish immediately instead of saving a draft")
	return cmd
}

func newMetricsCmd(e *env) *cobra.Command {
	var (
		days    int
		cleanup int
	)
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Show assistant token usage and process health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withApp(cmd, func(ctx context.Context, a *app.App) error {
				out := cmd.OutOrStdout()
				store := a.Metrics()
				if store == nil {
					return errors.New("metrics require the sqlite store (JOURNAL_STORE=sqlite)")
				}
				if cleanup > 0 {
					n, err := store.Cleanup(ctx, cleanup)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Successfully removed %d old metric records.\n", n)
				}

				usage, err := store.GetDailyUsage(ctx, days)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-12s %8s %10s %6s %9s\n", "DATE", "PROMPT", "COMPLETION", "CALLS", "FALLBACKS")
				for _, u := range usage {
					fmt.Fprintf(out, "%-12s %8d %10d %6d %9d\n", u.Date, u.TotalPrompt, u.TotalCompletion, u.TotalExecution, u.Fallbacks)
				}
				if len(usage) == 0 {
					fmt.Fprintln(out, "No assistant calls recorded.")
				}

				h := metrics.GetSysHealth(e.cfg.DataDir)
				fmt.Fprintf(out, "\nMemory: %d MB allocated, %d MB from OS, %d GC runs\n", h.AllocMB, h.SysMB, h.NumGC)
				fmt.Fprintf(out, "Goroutines: %d\nData directory: %s\n", h.Goroutines, h.DataDiskSize)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "Number of days of usage to show")
	cmd.Flags().IntVar(&cleanup, "cleanup", 0, "Remove records older than N days first")
	return cmd
}
