package llm

import (
	"context"
	"fmt"

	"dev-journal/internal/config"
)

// NewFromConfig returns the generator selected by cfg.AIProvider, or nil when text
// generation is disabled. The returned Closer is never nil.
func NewFromConfig(ctx context.Context, cfg *config.Config) (TextGenerator, Closer, error) {
	switch cfg.AIProvider {
	case config.ProviderGemini:
		c, err := NewGeminiClient(ctx, cfg)
		if err != nil {
			return nil, nopCloser{}, err
		}
		return c, c, nil
	case config.ProviderGroq:
		return NewGroqClient(cfg), nopCloser{}, nil
	case config.ProviderNone, "":
		return nil, nopCloser{}, nil
	default:
		return nil, nopCloser{}, fmt.Errorf("unknown text-generation provider %q", cfg.AIProvider)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
