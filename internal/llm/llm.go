package llm

import (
	"context"

	"dev-journal/internal/shared"
)

// Request is a single prompt, optionally constrained to a JSON schema.
type Request struct {
	Prompt string
	Schema *Schema
}

// ContentResponse contains the generated text and metadata like token usage.
type ContentResponse struct {
	Content string
	Usage   shared.TokenUsage
}

// TextGenerator is an interface for generating text from a prompt.
type TextGenerator interface {
	GenerateContent(ctx context.Context, req Request) (ContentResponse, error)
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}
