package ai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	infraAI "github.com/sazyar/sazyar/pkg/ai"
	"github.com/sazyar/sazyar/pkg/domain/ai"
)

func TestGeminiProvider_Complete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected application/json, got %s", r.Header.Get("Content-Type"))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{
					"content": map[string]interface{}{
						"parts": []map[string]string{
							{"text": "Concrete curing adds 7 days of float risk."},
						},
					},
				},
			},
			"usageMetadata": map[string]int{
				"promptTokenCount":     12,
				"candidatesTokenCount": 8,
			},
		})
	}))
	defer server.Close()

	p := infraAI.NewGeminiProviderWithClient("gemini-2.5-flash", "test-key", server.URL, server.Client())
	resp, err := p.Complete(context.Background(), ai.CompletionRequest{Prompt: "Assess schedule risk"})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if resp.Text != "Concrete curing adds 7 days of float risk." {
		t.Errorf("unexpected text: %q", resp.Text)
	}
	if resp.Model != "gemini-2.5-flash" {
		t.Errorf("expected model gemini-2.5-flash, got %s", resp.Model)
	}
	if resp.Usage.InputTokens != 12 {
		t.Errorf("expected 12 input tokens, got %d", resp.Usage.InputTokens)
	}
	if resp.Usage.OutputTokens != 8 {
		t.Errorf("expected 8 output tokens, got %d", resp.Usage.OutputTokens)
	}
}

func TestGeminiProvider_Complete_WithSystemPrompt(t *testing.T) {
	var receivedBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&receivedBody)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{"parts": []map[string]string{{"text": "ok"}}}},
			},
		})
	}))
	defer server.Close()

	p := infraAI.NewGeminiProviderWithClient("", "test-key", server.URL, server.Client())
	_, err := p.Complete(context.Background(), ai.CompletionRequest{
		Prompt: "Simulate a two week delay",
		System: "You are a construction project advisor.",
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if _, ok := receivedBody["system_instruction"]; !ok {
		t.Error("expected system_instruction in request body")
	}
}

func TestGeminiProvider_Complete_NoAPIKey(t *testing.T) {
	p := infraAI.NewGeminiProvider("", "")
	_, err := p.Complete(context.Background(), ai.CompletionRequest{Prompt: "hi"})
	if err == nil {
		t.Fatal("expected error when API key missing")
	}
}

func TestGeminiProvider_Complete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	p := infraAI.NewGeminiProviderWithClient("", "test-key", server.URL, server.Client())
	_, err := p.Complete(context.Background(), ai.CompletionRequest{Prompt: "hi"})
	if err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestGeminiProvider_Complete_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	p := infraAI.NewGeminiProviderWithClient("", "test-key", server.URL, server.Client())
	_, err := p.Complete(context.Background(), ai.CompletionRequest{Prompt: "hi"})
	if err == nil {
		t.Fatal("expected error when no candidates returned")
	}
}

func TestGeminiProvider_DefaultModel(t *testing.T) {
	p := infraAI.NewGeminiProvider("", "key")
	if p.ID() != "gemini:gemini-2.5-flash" {
		t.Errorf("expected default model in ID, got %q", p.ID())
	}
}
