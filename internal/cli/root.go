package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"dev-journal/internal/app"
	"dev-journal/internal/config"
	"dev-journal/internal/journal"
	"dev-journal/internal/tui"
)

type env struct {
	cfg *config.Config
	now func() time.Time
}

// NewRootCmd builds the dev-journal command tree. With no subcommand it starts the
// terminal UI.
func NewRootCmd(cfg *config.Config) *cobra.Command {
	e := &env{cfg: cfg, now: time.Now}

	cmd := &cobra.Command{
		Use:          "dev-journal",
		Short:        "Weekly planner and daily journal for developers",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive journal
  dev-journal

  # Scriptable commands
  dev-journal set daily mon log "Fixed the flaky test"
  dev-journal complete mon
  dev-journal suggest actions daily mon
  dev-journal show
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(cmd.Context(), e.cfg)
		},
	}

	cmd.AddCommand(newShowCmd(e))
	cmd.AddCommand(newGetCmd(e))
	cmd.AddCommand(newSetCmd(e))
	cmd.AddCommand(newCompleteCmd(e))
	cmd.AddCommand(newClearCmd(e))
	cmd.AddCommand(newExportCmd(e))
	cmd.AddCommand(newSummarizeCmd(e))
	cmd.AddCommand(newSuggestCmd(e))
	cmd.AddCommand(newThemeCmd(e))
	cmd.AddCommand(newPublishCmd(e))
	cmd.AddCommand(newMetricsCmd(e))

	return cmd
}

// withApp opens the journal for a single command and closes it afterwards.
func (e *env) withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.New(ctx, e.cfg, app.Options{})
	if err != nil {
		return err
	}
	defer a.Close(ctx)
	return fn(ctx, a)
}

// mutate applies action and writes the result straight away.
func mutate(ctx context.Context, a *app.App, action journal.Action) (journal.Week, error) {
	w := a.Session().Dispatch(action)
	if err := a.SaveNow(ctx); err != nil {
		return w, err
	}
	return w, nil
}

// promptConfirm asks on out and reads a y/N answer from in.
func promptConfirm(in io.Reader, out io.Writer) journal.Confirmer {
	r := bufio.NewReader(in)
	return journal.ConfirmFunc(func(prompt string) bool {
		fmt.Fprintf(out, "%s [y/N]: ", prompt)
		line, _ := r.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	})
}
