// Package llmtest provides a scriptable llm.Provider for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/ppiankov/claimcheck/internal/llm"
)

// Provider answers completions with Respond and records every request
type Provider struct {
	Respond     func(req llm.CompletionRequest) (string, error)
	Unavailable bool

	mu       sync.Mutex
	requests []llm.CompletionRequest
}

// Static returns a provider that always answers text
func Static(text string) *Provider {
	return &Provider{Respond: func(llm.CompletionRequest) (string, error) { return text, nil }}
}

// Failing returns a provider whose completions always fail with err
func Failing(err error) *Provider {
	return &Provider{Respond: func(llm.CompletionRequest) (string, error) { return "", err }, Unavailable: true}
}

// Name returns the provider name
func (p *Provider) Name() string { return "llmtest" }

// IsAvailable reports the configured availability
func (p *Provider) IsAvailable(context.Context) bool { return !p.Unavailable }

// Complete records the request and answers it
func (p *Provider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.mu.Lock()
	p.requests = append(p.requests, req)
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, err := p.Respond(req)
	if err != nil {
		return nil, err
	}
	return &llm.CompletionResponse{Text: text, Model: "llmtest"}, nil
}

// Requests returns a copy of the recorded requests
func (p *Provider) Requests() []llm.CompletionRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]llm.CompletionRequest(nil), p.requests...)
}
