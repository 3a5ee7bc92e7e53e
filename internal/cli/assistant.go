package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dev-journal/internal/app"
	"dev-journal/internal/journal"
)

// report prints the outcome of an assistant command and persists the result.
func report(ctx context.Context, cmd *cobra.Command, a *app.App, out app.Outcome, skipped, done string) error {
	if out.Skipped {
		fmt.Fprintln(cmd.OutOrStdout(), skipped)
		return nil
	}
	if err := a.SaveNow(ctx); err != nil {
		return err
	}
	if out.Fallback() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Assistant unavailable: %v\n", out.Err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), done)
	return nil
}

func newSummarizeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "summarize",
		Short: "Write the retro summary and actions from the week's entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withApp(cmd, func(ctx context.Context, a *app.App) error {
				out, err := a.Session().SummarizeWeek(ctx)
				if err != nil {
					return err
				}
				r := out.Week.Retro
				return report(ctx, cmd, a, out, "", fmt.Sprintf("Summary:\n%s\n\nActions:\n%s", r.Summary, r.Actions))
			})
		},
	}
}

func newSuggestCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Ask the assistant for action items or a daily goal",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "actions planner|daily <day>",
		Short: "Append suggested action items to a day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := journal.ParseDay(args[1])
			if err != nil {
				return err
			}
			section := strings.ToLower(args[0])
			if section != "planner" && section != "daily" {
				return fmt.Errorf("unknown section %q, expected planner or daily", args[0])
			}
			return e.withApp(cmd, func(ctx context.Context, a *app.App) error {
				var out app.Outcome
				var field string
				if section == "planner" {
					out, err = a.Session().SuggestPlannerActions(ctx, day)
					field = out.Week.Planner[day].ActionItems
				} else {
					out, err = a.Session().SuggestDailyActions(ctx, day)
					field = out.Week.Daily[day].Log
				}
				if err != nil {
					return err
				}
				return report(ctx, cmd, a, out, fmt.Sprintf("Set a goal for %s first.", day), field)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "goal <day>",
		Short: "Suggest a daily goal from the day's plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := journal.ParseDay(args[0])
			if err != nil {
				return err
			}
			return e.withApp(cmd, func(ctx context.Context, a *app.App) error {
				out, err := a.Session().SuggestDailyGoal(ctx, day)
				if err != nil {
					return err
				}
				return report(ctx, cmd, a, out,
					fmt.Sprintf("Set a planner goal for %s first.", day),
					"Goal: "+out.Week.Daily[day].Goal)
			})
		},
	})

	return cmd
}
