package ai

import (
	"context"

	"github.com/sazyar/sazyar/pkg/domain/ai"
)

// MockProvider returns canned responses. Used in tests and offline setups.
type MockProvider struct {
	Model    string
	Response string
	Err      error
	Calls    int
}

func (p *MockProvider) ID() string {
	model := p.Model
	if model == "" {
		model = "static"
	}
	return "mock:" + model
}

func (p *MockProvider) Complete(_ context.Context, req ai.CompletionRequest) (*ai.CompletionResponse, error) {
	p.Calls++
	if p.Err != nil {
		return nil, p.Err
	}
	text := p.Response
	if text == "" {
		text = "mock response to: " + req.Prompt
	}
	return &ai.CompletionResponse{
		Text:  text,
		Model: p.Model,
		Usage: ai.TokenUsage{InputTokens: len(req.Prompt) / 4, OutputTokens: len(text) / 4},
	}, nil
}
