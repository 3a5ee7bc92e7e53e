package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dev-journal/internal/config"
	"dev-journal/internal/journal"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		DataDir:    dir,
		Store:      config.StoreFile,
		ExportDir:  filepath.Join(dir, "exports"),
		AIProvider: config.ProviderNone,
	}
}

// run executes one command line against cfg and returns stdout and stderr.
func run(t *testing.T, cfg *config.Config, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd(cfg)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func mustRun(t *testing.T, cfg *config.Config, args ...string) string {
	t.Helper()
	out, _, err := run(t, cfg, "", args...)
	if err != nil {
		t.Fatalf("%v failed: %v", args, err)
	}
	return out
}

func TestSetAndGetPersist(t *testing.T) {
	cfg := testConfig(t)

	mustRun(t, cfg, "set", "planner", "mon", "goal", "Ship v1")
	mustRun(t, cfg, "set", "daily", "friday", "log", "first")
	mustRun(t, cfg, "set", "--append", "daily", "friday", "log", "second")
	mustRun(t, cfg, "set", "retro", "attempted", "a lot")
	mustRun(t, cfg, "set", "--append", "retro", "attempted", "and more")

	if got := mustRun(t, cfg, "get", "planner", "Monday", "goal"); got != "Ship v1\n" {
		t.Errorf("Unexpected planner goal %q", got)
	}
	if got := mustRun(t, cfg, "get", "daily", "fri", "log"); got != "first\nsecond\n" {
		t.Errorf("Unexpected daily log %q", got)
	}
	if got := mustRun(t, cfg, "get", "retro", "attempted"); got != "a lot\nand more\n" {
		t.Errorf("Unexpected retro %q", got)
	}
}

func TestSetFromStdin(t *testing.T) {
	cfg := testConfig(t)
	if _, _, err := run(t, cfg, "line one\nline two\n", "set", "daily", "tue", "unplanned", "-"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if got := mustRun(t, cfg, "get", "daily", "tue", "unplanned"); got != "line one\nline two\n" {
		t.Errorf("Unexpected value %q", got)
	}
}

func TestInvalidArguments(t *testing.T) {
	cfg := testConfig(t)
	for name, args := range map[string][]string{
		"Saturday":     {"get", "daily", "saturday", "log"},
		"UnknownField": {"get", "planner", "mon", "mood"},
		"Section":      {"get", "weekly", "mon", "log"},
		"Completed":    {"set", "daily", "mon", "completed", "true"},
		"Theme":        {"theme", "sepia"},
	} {
		t.Run(name, func(t *testing.T) {
			if _, _, err := run(t, cfg, "", args...); err == nil {
				t.Errorf("Expected %v to fail", args)
			}
		})
	}
}

func TestCompleteAndUndo(t *testing.T) {
	cfg := testConfig(t)
	if out := mustRun(t, cfg, "complete", "wed"); !strings.Contains(out, "Wednesday: COMPLETED (1/5 completed)") {
		t.Errorf("Unexpected output %q", out)
	}
	if out := mustRun(t, cfg, "complete", "--undo", "wed"); !strings.Contains(out, "IN PROGRESS (0/5 completed)") {
		t.Errorf("Unexpected output %q", out)
	}
}

func TestClearAsksForConfirmation(t *testing.T) {
	cfg := testConfig(t)
	mustRun(t, cfg, "set", "planner", "thu", "goal", "keep")
	mustRun(t, cfg, "set", "daily", "thu", "goal", "drop")

	out, _, err := run(t, cfg, "n\n", "clear", "daily", "thu")
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if !strings.Contains(out, "Clear all daily entries for Thursday? [y/N]") || !strings.Contains(out, "Nothing cleared.") {
		t.Errorf("Unexpected output %q", out)
	}
	if got := mustRun(t, cfg, "get", "daily", "thu", "goal"); got != "drop\n" {
		t.Fatal("Declined clear must keep the entry")
	}

	if _, _, err := run(t, cfg, "y\n", "clear", "daily", "thu"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if got := mustRun(t, cfg, "get", "daily", "thu", "goal"); got != "\n" {
		t.Errorf("Expected daily goal cleared, got %q", got)
	}
	if got := mustRun(t, cfg, "get", "planner", "thu", "goal"); got != "keep\n" {
		t.Error("Planner must be untouched")
	}

	mustRun(t, cfg, "clear", "--yes", "week")
	if got := mustRun(t, cfg, "show", "--raw"); got != journal.RenderMarkdown(journal.Empty()) {
		t.Errorf("Expected empty week, got:\n%s", got)
	}
}

func TestExportDay(t *testing.T) {
	cfg := testConfig(t)
	mustRun(t, cfg, "set", "daily", "mon", "goal", "Write docs")

	dir := t.TempDir()
	e := &env{cfg: cfg, now: func() time.Time { return time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC) }}
	cmd := newExportCmd(e)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--dir", dir, "monday"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	path := strings.TrimSpace(out.String())
	if path != filepath.Join(dir, "monday_log_2024-05-06.txt") {
		t.Fatalf("Unexpected export path %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	if !strings.Contains(string(data), "Goal: Write docs") {
		t.Errorf("Unexpected export:\n%s", data)
	}
}

func TestAssistantCommandsWithoutProvider(t *testing.T) {
	cfg := testConfig(t)

	out, _, err := run(t, cfg, "", "suggest", "actions", "daily", "mon")
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}
	if !strings.Contains(out, "Set a goal for Monday first.") {
		t.Errorf("Expected skip message, got %q", out)
	}

	mustRun(t, cfg, "set", "planner", "mon", "goal", "Plan")
	out, errOut, err := run(t, cfg, "", "suggest", "goal", "mon")
	if err != nil {
		t.Fatalf("suggest goal failed: %v", err)
	}
	if !strings.Contains(errOut, "Assistant unavailable") {
		t.Errorf("Expected fallback warning, got %q", errOut)
	}
	if !strings.HasPrefix(out, "Goal: ") {
		t.Errorf("Unexpected output %q", out)
	}

	out, _, err = run(t, cfg, "", "summarize")
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	summary := mustRun(t, cfg, "get", "retro", "summary")
	if strings.TrimSpace(summary) == "" || !strings.Contains(out, strings.TrimSpace(summary)) {
		t.Errorf("Expected the fallback summary to be saved, got %q", summary)
	}
}

func TestThemeCommand(t *testing.T) {
	cfg := testConfig(t)
	if got := mustRun(t, cfg, "theme"); got != "light\n" {
		t.Errorf("Expected light default, got %q", got)
	}
	if got := mustRun(t, cfg, "theme", "toggle"); got != "dark\n" {
		t.Errorf("Expected dark after toggle, got %q", got)
	}
	mustRun(t, cfg, "theme", "LIGHT")
	if got := mustRun(t, cfg, "theme"); got != "light\n" {
		t.Errorf("Expected saved light theme, got %q", got)
	}
}

func TestShowRendersWeek(t *testing.T) {
	cfg := testConfig(t)
	mustRun(t, cfg, "set", "planner", "mon", "goal", "Refactor parser")
	out := mustRun(t, cfg, "show", "--width", "60")
	if !strings.Contains(out, "Refactor parser") {
		t.Errorf("Expected rendered goal, got:\n%s", out)
	}
}

func TestPublishRequiresGhost(t *testing.T) {
	cfg := testConfig(t)
	_, _, err := run(t, cfg, "", "publish")
	if err == nil || !strings.Contains(err.Error(), "GHOST_API_URL") {
		t.Errorf("Expected a Ghost configuration error, got %v", err)
	}
}

func TestMetricsCommand(t *testing.T) {
	cfg := testConfig(t)
	if _, _, err := run(t, cfg, "", "metrics"); err == nil {
		t.Error("Expected metrics to require the sqlite store")
	}

	cfg.Store = config.StoreSQLite
	cfg.DBPath = filepath.Join(cfg.DataDir, "journal.db")
	mustRun(t, cfg, "set", "planner", "mon", "goal", "Plan")
	mustRun(t, cfg, "summarize")

	out := mustRun(t, cfg, "metrics", "--days", "1")
	if !strings.Contains(out, "DATE") || !strings.Contains(out, "Goroutines:") {
		t.Errorf("Unexpected metrics output:\n%s", out)
	}
}
