package assistant

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"dev-journal/internal/llm"
)

//go:embed actions_prompt.md
var actionsPrompt string

//go:embed goal_prompt.md
var goalPrompt string

// MaxSuggestions is the number of action items requested.
const MaxSuggestions = 3

var actionsSchema = &llm.Schema{
	Type: llm.TypeObject,
	Properties: map[string]*llm.Schema{
		"items": {
			Type:        llm.TypeArray,
			Description: "Short, actionable developer tasks.",
			Items:       &llm.Schema{Type: llm.TypeString},
		},
	},
	Required: []string{"items"},
}

var goalSchema = &llm.Schema{
	Type: llm.TypeObject,
	Properties: map[string]*llm.Schema{
		"goal": {Type: llm.TypeString, Description: "One concrete goal for the day."},
	},
	Required: []string{"goal"},
}

type goalPromptData struct {
	Goal  string
	Count int
}

// SuggestActionItems asks for action items for a goal. The fallback is an empty slice.
func (a *Assistant) SuggestActionItems(ctx context.Context, goal string) Result[[]string] {
	prompt, err := BuildActionsPrompt(goal)
	if err != nil {
		return Result[[]string]{Value: []string{}, Err: err}
	}
	return run(ctx, a, actionSuggesterAgent, llm.Request{Prompt: prompt, Schema: actionsSchema}, []string{}, parseItems)
}

// SuggestDailyGoal asks for a daily goal derived from a planner goal. The fallback is "".
func (a *Assistant) SuggestDailyGoal(ctx context.Context, plannerGoal string) Result[string] {
	prompt, err := BuildGoalPrompt(plannerGoal)
	if err != nil {
		return Result[string]{Err: err}
	}
	return run(ctx, a, goalSuggesterAgent, llm.Request{Prompt: prompt, Schema: goalSchema}, "", parseGoal)
}

func BuildActionsPrompt(goal string) (string, error) {
	return buildPrompt("actions", actionsPrompt, goalPromptData{Goal: goal, Count: MaxSuggestions})
}

func BuildGoalPrompt(plannerGoal string) (string, error) {
	return buildPrompt("goal", goalPrompt, goalPromptData{Goal: plannerGoal})
}

// parseItems accepts a bare JSON array or an object with an items array.
// Blank entries are dropped and order is kept.
func parseItems(content string) ([]string, error) {
	body := []byte(cleanJSON(content))

	var items []string
	if err := json.Unmarshal(body, &items); err != nil {
		var wrapped struct {
			Items *[]string `json:"items"`
		}
		if err := json.Unmarshal(body, &wrapped); err != nil {
			return nil, err
		}
		if wrapped.Items == nil {
			return nil, fmt.Errorf("missing items")
		}
		items = *wrapped.Items
	}

	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out, nil
}

// parseGoal accepts {"goal": "..."} or a bare JSON string.
func parseGoal(content string) (string, error) {
	body := []byte(cleanJSON(content))

	var wrapped struct {
		Goal *string `json:"goal"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil {
		if wrapped.Goal == nil {
			return "", fmt.Errorf("missing goal")
		}
		return strings.TrimSpace(*wrapped.Goal), nil
	}

	var bare string
	if err := json.Unmarshal(body, &bare); err != nil {
		return "", err
	}
	return strings.TrimSpace(bare), nil
}
