package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"dev-journal/internal/journal"
	"dev-journal/internal/llm"
	"dev-journal/internal/shared"
)

type MockTextGenerator struct {
	Content  string
	Err      error
	Requests []llm.Request
}

func (m *MockTextGenerator) GenerateContent(ctx context.Context, req llm.Request) (llm.ContentResponse, error) {
	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return llm.ContentResponse{}, m.Err
	}
	return llm.ContentResponse{
		Content: m.Content,
		Usage:   shared.TokenUsage{PromptTokens: 10, CompletionTokens: 3, Model: "mock"},
	}, nil
}

type MockRecorder struct {
	Metas []shared.AgentMeta
}

func (m *MockRecorder) RecordMeta(ctx context.Context, meta shared.AgentMeta) error {
	m.Metas = append(m.Metas, meta)
	return nil
}

func TestSummarizeWeek(t *testing.T) {
	ctx := context.Background()
	week := journal.Empty().WithPlanner(journal.Monday, journal.PlannerGoal, "Ship the release")

	t.Run("Success", func(t *testing.T) {
		gen := &MockTextGenerator{Content: `{"summary": "Good week", "actions": "Plan less"}`}
		rec := &MockRecorder{}
		res := New(gen, rec).SummarizeWeek(ctx, week)

		if res.Fallback() {
			t.Fatalf("Expected success, got %v", res.Err)
		}
		if res.Value.Summary != "Good week" || res.Value.Actions != "Plan less" {
			t.Errorf("Unexpected summary %+v", res.Value)
		}
		if !strings.Contains(gen.Requests[0].Prompt, "Ship the release") {
			t.Error("Expected the week to be embedded in the prompt")
		}
		if gen.Requests[0].Schema == nil || len(gen.Requests[0].Schema.Required) != 2 {
			t.Error("Expected a two-field schema")
		}
		if len(rec.Metas) != 1 || rec.Metas[0].AgentName != "Summarizer" || rec.Metas[0].Fallback {
			t.Errorf("Unexpected metrics %+v", rec.Metas)
		}
	})

	t.Run("MissingFields", func(t *testing.T) {
		gen := &MockTextGenerator{Content: "```json\n{\"summary\": \"\"}\n```"}
		res := New(gen, nil).SummarizeWeek(ctx, week)
		if res.Fallback() {
			t.Fatalf("Expected a parsed response, got %v", res.Err)
		}
		if res.Value.Summary != SummaryMissingText || res.Value.Actions != ActionsMissingText {
			t.Errorf("Unexpected placeholders %+v", res.Value)
		}
	})

	for name, gen := range map[string]*MockTextGenerator{
		"TransportError": {Err: errors.New("connection reset")},
		"NotJSON":        {Content: "Sure! Here is your summary."},
		"WrongTypes":     {Content: `{"summary": 42, "actions": []}`},
	} {
		t.Run(name, func(t *testing.T) {
			rec := &MockRecorder{}
			res := New(gen, rec).SummarizeWeek(ctx, week)
			if !res.Fallback() {
				t.Fatal("Expected the fallback")
			}
			if res.Value.Summary != SummaryErrorText || res.Value.Actions != ActionsErrorText {
				t.Errorf("Unexpected fallback %+v", res.Value)
			}
			if len(rec.Metas) != 1 || !rec.Metas[0].Fallback {
				t.Errorf("Expected a fallback metric, got %+v", rec.Metas)
			}
		})
	}
}

func TestSuggestActionItems(t *testing.T) {
	ctx := context.Background()

	cases := map[string]struct {
		content  string
		err      error
		want     []string
		fallback bool
	}{
		"Array":          {content: `["Write tests", "Open PR"]`, want: []string{"Write tests", "Open PR"}},
		"Wrapped":        {content: `{"items": ["a", " ", "b "]}`, want: []string{"a", "b"}},
		"Empty":          {content: `{"items": []}`, want: []string{}},
		"MissingItems":   {content: `{"tasks": ["a"]}`, want: []string{}, fallback: true},
		"NotJSON":        {content: `1. Write tests`, want: []string{}, fallback: true},
		"TransportError": {err: errors.New("timeout"), want: []string{}, fallback: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			gen := &MockTextGenerator{Content: tc.content, Err: tc.err}
			res := New(gen, nil).SuggestActionItems(ctx, "Refactor the parser")
			if res.Fallback() != tc.fallback {
				t.Fatalf("Expected fallback=%v, got err=%v", tc.fallback, res.Err)
			}
			if res.Value == nil {
				t.Fatal("Expected a non-nil slice")
			}
			if strings.Join(res.Value, "|") != strings.Join(tc.want, "|") {
				t.Errorf("Expected %v, got %v", tc.want, res.Value)
			}
		})
	}
}

func TestSuggestDailyGoal(t *testing.T) {
	ctx := context.Background()

	cases := map[string]struct {
		content  string
		err      error
		want     string
		fallback bool
	}{
		"Object":         {content: `{"goal": " Finish the API draft "}`, want: "Finish the API draft"},
		"BareString":     {content: `"Finish the API draft"`, want: "Finish the API draft"},
		"MissingGoal":    {content: `{}`, fallback: true},
		"NotJSON":        {content: `Finish the API draft`, fallback: true},
		"TransportError": {err: errors.New("503"), fallback: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			gen := &MockTextGenerator{Content: tc.content, Err: tc.err}
			res := New(gen, nil).SuggestDailyGoal(ctx, "API work")
			if res.Fallback() != tc.fallback {
				t.Fatalf("Expected fallback=%v, got err=%v", tc.fallback, res.Err)
			}
			if res.Value != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, res.Value)
			}
		})
	}
}

func TestDisabledAssistantReturnsFallbacks(t *testing.T) {
	ctx := context.Background()
	a := New(nil, nil)
	if a.Enabled() {
		t.Fatal("Expected assistant to be disabled")
	}

	sum := a.SummarizeWeek(ctx, journal.Empty())
	if !errors.Is(sum.Err, ErrDisabled) || sum.Value.Summary != SummaryErrorText {
		t.Errorf("Unexpected summary result %+v", sum)
	}
	items := a.SuggestActionItems(ctx, "goal")
	if !errors.Is(items.Err, ErrDisabled) || len(items.Value) != 0 {
		t.Errorf("Unexpected items result %+v", items)
	}
	goal := a.SuggestDailyGoal(ctx, "goal")
	if !errors.Is(goal.Err, ErrDisabled) || goal.Value != "" {
		t.Errorf("Unexpected goal result %+v", goal)
	}
}

func TestPromptsAreDeterministic(t *testing.T) {
	week := journal.Empty().WithDaily(journal.Tuesday, journal.DailyLog, "fixed flaky test")
	first, err := BuildSummaryPrompt(week)
	if err != nil {
		t.Fatalf("BuildSummaryPrompt failed: %v", err)
	}
	second, _ := BuildSummaryPrompt(week)
	if first != second {
		t.Error("Expected identical prompts for identical input")
	}

	p, err := BuildActionsPrompt(`Fix "the" bug`)
	if err != nil {
		t.Fatalf("BuildActionsPrompt failed: %v", err)
	}
	if !strings.Contains(p, `"Fix \"the\" bug"`) || !strings.Contains(p, "Suggest 3") {
		t.Errorf("Unexpected actions prompt: %s", p)
	}
	if g, _ := BuildGoalPrompt("API work"); !strings.Contains(g, `"API work"`) {
		t.Errorf("Unexpected goal prompt: %s", g)
	}
}
