package assistant

import (
	"context"
	_ "embed"
	"encoding/json"
	"strings"

	"dev-journal/internal/journal"
	"dev-journal/internal/llm"
)

//go:embed summary_prompt.md
var summaryPrompt string

// Fallback and placeholder texts written into the retro.
const (
	SummaryErrorText   = "Error generating summary. Please try again later."
	ActionsErrorText   = "Error generating actions."
	SummaryMissingText = "Unable to generate summary."
	ActionsMissingText = "No specific actions suggested."
)

const (
	summarizerAgent      = "Summarizer"
	actionSuggesterAgent = "ActionSuggester"
	goalSuggesterAgent   = "GoalSuggester"
)

// Summary is a generated retrospective.
type Summary struct {
	Summary string `json:"summary"`
	Actions string `json:"actions"`
}

var summarySchema = &llm.Schema{
	Type: llm.TypeObject,
	Properties: map[string]*llm.Schema{
		"summary": {Type: llm.TypeString, Description: "A summary of the week's outcomes and findings."},
		"actions": {Type: llm.TypeString, Description: "Retro actions or things to try next week."},
	},
	Required: []string{"summary", "actions"},
}

type summaryPromptData struct {
	WeekJSON string
}

// SummarizeWeek asks for a summary of the week and retro actions.
func (a *Assistant) SummarizeWeek(ctx context.Context, w journal.Week) Result[Summary] {
	fallback := Summary{Summary: SummaryErrorText, Actions: ActionsErrorText}

	prompt, err := BuildSummaryPrompt(w)
	if err != nil {
		return Result[Summary]{Value: fallback, Err: err}
	}

	return run(ctx, a, summarizerAgent, llm.Request{Prompt: prompt, Schema: summarySchema}, fallback, parseSummary)
}

// BuildSummaryPrompt renders the summary prompt for w. The output depends only on w.
func BuildSummaryPrompt(w journal.Week) (string, error) {
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return "", err
	}
	return buildPrompt("summary", summaryPrompt, summaryPromptData{WeekJSON: string(data)})
}

func parseSummary(content string) (Summary, error) {
	var raw Summary
	if err := json.Unmarshal([]byte(cleanJSON(content)), &raw); err != nil {
		return Summary{}, err
	}
	if strings.TrimSpace(raw.Summary) == "" {
		raw.Summary = SummaryMissingText
	}
	if strings.TrimSpace(raw.Actions) == "" {
		raw.Actions = ActionsMissingText
	}
	return raw, nil
}
