package extract

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Unconfigured stands in for the generation backend when no API key is
// set. Every call fails with ErrMissingCredential, so the problem shows
// up as a normal load error instead of a crash at startup.
type Unconfigured struct{}

func (Unconfigured) Generate(context.Context, string) (string, error) {
	return "", ErrMissingCredential
}

// Gemini is the structured-generation backend. It makes exactly one
// outbound call per Generate; retry policy belongs to the caller.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrMissingCredential
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Generate(ctx context.Context, instruction string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: SystemInstruction}}},
		ResponseMIMEType:  "application/json",
		ResponseSchema:    Schema(),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(instruction), cfg)
	if err != nil {
		return "", fmt.Errorf("generate itinerary: %w", err)
	}
	return resp.Text(), nil
}
