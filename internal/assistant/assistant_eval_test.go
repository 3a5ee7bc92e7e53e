package assistant

import (
	"context"
	"strings"
	"testing"

	"dev-journal/internal/config"
	"dev-journal/internal/journal"
	"dev-journal/internal/llm"
)

// liveAssistant builds an Assistant on the configured provider, or skips.
func liveAssistant(t *testing.T) *Assistant {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping live eval in short mode")
	}
	cfg, err := config.NewFromEnv()
	if err != nil || cfg.AIProvider == config.ProviderNone {
		t.Skip("Skipping: No API keys found in environment")
	}

	ctx := context.Background()
	textGen, closer, err := llm.NewFromConfig(ctx, cfg)
	if err != nil {
		t.Fatalf("Failed to create text generator: %v", err)
	}
	t.Cleanup(func() { closer.Close() })
	return New(textGen, nil)
}

// TestSummarizeWeek_LiveEval performs a real call to check the retro summary is grounded
// in the week's entries.
// Run with: go test -v ./internal/assistant -run LiveEval
func TestSummarizeWeek_LiveEval(t *testing.T) {
	a := liveAssistant(t)

	w := journal.Empty().
		WithPlanner(journal.Monday, journal.PlannerGoal, "Migrate the billing service to Postgres").
		WithDaily(journal.Monday, journal.DailyLog, "Wrote the schema migration, found a locking issue").
		WithCompleted(journal.Monday, true).
		WithDaily(journal.Tuesday, journal.DailyUnplanned, "Production incident in the auth service").
		WithRetro(journal.RetroAttempted, "Postgres migration, incident response")

	res := a.SummarizeWeek(context.Background(), w)
	if res.Fallback() {
		t.Fatalf("Summary fell back: %v", res.Err)
	}

	// EVAL A: Is the summary about this week?
	summary := strings.ToLower(res.Value.Summary)
	if !strings.Contains(summary, "postgres") && !strings.Contains(summary, "migration") {
		t.Errorf("QUALITY FAIL: summary does not mention the main goal: %s", res.Value.Summary)
	}

	// EVAL B: Are there actions to take?
	if res.Value.Actions == ActionsMissingText {
		t.Errorf("QUALITY FAIL: no retro actions returned")
	}
	t.Logf("Summary: %s\nActions: %s", res.Value.Summary, res.Value.Actions)
}

func TestSuggestActionItems_LiveEval(t *testing.T) {
	a := liveAssistant(t)

	res := a.SuggestActionItems(context.Background(), "Add rate limiting to the public API")
	if res.Fallback() {
		t.Fatalf("Suggestions fell back: %v", res.Err)
	}

	// EVAL A: Bounded count
	if len(res.Value) == 0 || len(res.Value) > MaxSuggestions {
		t.Errorf("QUALITY FAIL: expected 1..%d items, got %d", MaxSuggestions, len(res.Value))
	}
	// EVAL B: Items are bare sentences; bullets are added by the journal.
	for _, item := range res.Value {
		if strings.HasPrefix(item, journal.Bullet) || strings.HasPrefix(item, "- ") {
			t.Errorf("QUALITY FAIL: item carries its own bullet: %q", item)
		}
	}
}

func TestSuggestDailyGoal_LiveEval(t *testing.T) {
	a := liveAssistant(t)

	res := a.SuggestDailyGoal(context.Background(), "Release v2 of the CLI; update docs; fix the flaky CI job")
	if res.Fallback() {
		t.Fatalf("Goal fell back: %v", res.Err)
	}
	if strings.Contains(res.Value, "\n") || len(res.Value) > 200 {
		t.Errorf("QUALITY FAIL: goal should be one short sentence: %q", res.Value)
	}
}
