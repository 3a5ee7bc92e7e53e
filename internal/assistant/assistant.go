package assistant

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"text/template"
	"time"

	"dev-journal/internal/llm"
	"dev-journal/internal/shared"
)

// ErrDisabled is the fallback reason when no text generator is configured.
var ErrDisabled = errors.New("text generation is not configured")

// MetricsRecorder stores per-call metadata. *metrics.Store satisfies it.
type MetricsRecorder interface {
	RecordMeta(ctx context.Context, meta shared.AgentMeta) error
}

// Result is the outcome of one assistant call. On any failure Value holds the
// call's fallback and Err the reason; callers may use Value either way.
type Result[T any] struct {
	Value T
	Err   error
	Meta  shared.AgentMeta
}

// Fallback reports whether Value is the fallback rather than a generated result.
func (r Result[T]) Fallback() bool {
	return r.Err != nil
}

// Assistant wraps a text generator with prompts, response parsing and fallbacks.
// None of its calls return an error to the caller.
type Assistant struct {
	textGen llm.TextGenerator
	metrics MetricsRecorder
}

// New creates an Assistant. textGen may be nil, in which case every call returns its
// fallback with ErrDisabled. metrics may be nil.
func New(textGen llm.TextGenerator, metrics MetricsRecorder) *Assistant {
	return &Assistant{textGen: textGen, metrics: metrics}
}

// Enabled reports whether calls reach a text generator.
func (a *Assistant) Enabled() bool {
	return a != nil && a.textGen != nil
}

func run[T any](
	ctx context.Context,
	a *Assistant,
	agent string,
	req llm.Request,
	fallback T,
	parse func(content string) (T, error),
) Result[T] {
	if !a.Enabled() {
		return Result[T]{
			Value: fallback,
			Err:   ErrDisabled,
			Meta:  shared.AgentMeta{AgentName: agent, Fallback: true},
		}
	}

	start := time.Now()
	resp, err := a.textGen.GenerateContent(ctx, req)
	meta := shared.AgentMeta{
		AgentName: agent,
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	}

	var value T
	if err == nil {
		value, err = parse(resp.Content)
		if err != nil {
			err = fmt.Errorf("failed to parse %s response %w. Response: %s", agent, err, resp.Content)
		}
	}
	if err != nil {
		log.Printf("Warning: %s failed, using fallback: %v", agent, err)
		meta.Fallback = true
		value = fallback
	}

	if a.metrics != nil {
		if recErr := a.metrics.RecordMeta(ctx, meta); recErr != nil {
			log.Printf("Warning: failed to record metrics for %s: %v", agent, recErr)
		}
	}

	return Result[T]{Value: value, Err: err, Meta: meta}
}

func buildPrompt(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// cleanJSON strips a markdown code fence some models wrap around JSON output.
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
