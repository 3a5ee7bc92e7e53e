package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"dev-journal/internal/app"
	"dev-journal/internal/journal"
)

const sectionHelp = "planner <day> <field> | daily <day> <field> | retro <field>"

// slotRef addresses one text leaf of the week.
type slotRef struct {
	get        func(journal.Week) string
	set        func(string) journal.Action
	appendLine func(string) journal.Action
}

// parseSlot resolves the leading section arguments and returns the rest.
func parseSlot(args []string) (slotRef, []string, error) {
	if len(args) == 0 {
		return slotRef{}, nil, fmt.Errorf("expected %s", sectionHelp)
	}
	switch strings.ToLower(args[0]) {
	case "planner":
		if len(args) < 3 {
			return slotRef{}, nil, fmt.Errorf("expected planner <day> <field>")
		}
		day, err := journal.ParseDay(args[1])
		if err != nil {
			return slotRef{}, nil, err
		}
		f, err := journal.ParsePlannerField(args[2])
		if err != nil {
			return slotRef{}, nil, err
		}
		return slotRef{
			get:        func(w journal.Week) string { return w.PlannerFor(day).Get(f) },
			set:        func(v string) journal.Action { return journal.SetPlanner{Day: day, Field: f, Value: v} },
			appendLine: func(v string) journal.Action { return journal.AppendPlannerLine{Day: day, Field: f, Line: v} },
		}, args[3:], nil
	case "daily":
		if len(args) < 3 {
			return slotRef{}, nil, fmt.Errorf("expected daily <day> <field>")
		}
		day, err := journal.ParseDay(args[1])
		if err != nil {
			return slotRef{}, nil, err
		}
		f, err := journal.ParseDailyField(args[2])
		if err != nil {
			return slotRef{}, nil, err
		}
		return slotRef{
			get:        func(w journal.Week) string { return w.DailyFor(day).Get(f) },
			set:        func(v string) journal.Action { return journal.SetDaily{Day: day, Field: f, Value: v} },
			appendLine: func(v string) journal.Action { return journal.AppendDailyLine{Day: day, Field: f, Line: v} },
		}, args[3:], nil
	case "retro":
		if len(args) < 2 {
			return slotRef{}, nil, fmt.Errorf("expected retro <field>")
		}
		f, err := journal.ParseRetroField(args[1])
		if err != nil {
			return slotRef{}, nil, err
		}
		return slotRef{
			get:        func(w journal.Week) string { return w.Retro.Get(f) },
			set:        func(v string) journal.Action { return journal.SetRetro{Field: f, Value: v} },
			appendLine: func(v string) journal.Action { return journal.AppendRetroLine{Field: f, Line: v} },
		}, args[2:], nil
	default:
		return slotRef{}, nil, fmt.Errorf("unknown section %q, expected planner, daily or retro", args[0])
	}
}

func newGetCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "get " + sectionHelp,
		Short: "Print one journal field",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, rest, err := parseSlot(args)
			if err != nil {
				return err
			}
			if len(rest) > 0 {
				return fmt.Errorf("unexpected argument %q", rest[0])
			}
			return e.withApp(cmd, func(ctx context.Context, a *app.App) error {
				fmt.Fprintln(cmd.OutOrStdout(), ref.get(a.Session().Week()))
				return nil
			})
		},
	}
}

func newSetCmd(e *env) *cobra.Command {
	var appendText bool
	cmd := &cobra.Command{
		Use:   "set " + sectionHelp + " <value|->",
		Short: "Replace one journal field",
		Long:  "Replace one journal field. A value of - reads the new text from stdin.",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, rest, err := parseSlot(args)
			if err != nil {
				return err
			}
			if len(rest) != 1 {
				return fmt.Errorf("expected exactly one value")
			}
			value := rest[0]
			if value == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				value = strings.TrimRight(string(data), "\n")
			}
			return e.withApp(cmd, func(ctx context.Context, a *app.App) error {
				action := ref.set(value)
				if appendText {
					action = ref.appendLine(value)
				}
				_, err := mutate(ctx, a, action)
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&appendText, "append", false, "Append as a new line instead of replacing")
	return cmd
}

func newCompleteCmd(e *env) *cobra.Command {
	var undo bool
	cmd := &cobra.Command{
		Use:   "complete <day>",
		Short: "Mark a day as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := journal.ParseDay(args[0])
			if err != nil {
				return err
			}
			return e.withApp(cmd, func(ctx context.Context, a *app.App) error {
				w, err := mutate(ctx, a, journal.SetCompleted{Day: day, Completed: !undo})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%d/%d completed)\n",
					day, completionLabel(w.Daily[day].Completed), w.CompletedDays(), journal.NumDays)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the day as in progress again")
	return cmd
}

func completionLabel(done bool) string {
	if done {
		return "COMPLETED"
	}
	return "IN PROGRESS"
}

func newClearCmd(e *env) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear planner <day> | daily <day> | week",
		Short: "Clear a day's entries or the whole week",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var confirm journal.Confirmer = promptConfirm(cmd.InOrStdin(), cmd.OutOrStdout())
			if yes {
				confirm = journal.Always
			}

			var reset func(journal.Week) (journal.Week, bool)
			switch strings.ToLower(args[0]) {
			case "week":
				if len(args) != 1 {
					return fmt.Errorf("clear week takes no day")
				}
				reset = func(w journal.Week) (journal.Week, bool) { return journal.ResetWeek(w, confirm) }
			case "planner", "daily":
				if len(args) != 2 {
					return fmt.Errorf("expected clear %s <day>", args[0])
				}
				day, err := journal.ParseDay(args[1])
				if err != nil {
					return err
				}
				if strings.EqualFold(args[0], "planner") {
					reset = func(w journal.Week) (journal.Week, bool) { return journal.ResetPlannerDay(w, day, confirm) }
				} else {
					reset = func(w journal.Week) (journal.Week, bool) { return journal.ResetDailyDay(w, day, confirm) }
				}
			default:
				return fmt.Errorf("unknown section %q, expected planner, daily or week", args[0])
			}

			return e.withApp(cmd, func(ctx context.Context, a *app.App) error {
				w, applied := reset(a.Session().Week())
				if !applied {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing cleared.")
					return nil
				}
				if _, err := mutate(ctx, a, journal.Replace{Week: w}); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Cleared.")
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
