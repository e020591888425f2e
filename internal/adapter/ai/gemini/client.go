// Package gemini implements domain.ModelClient against the Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/fairyhunter13/ai-interview-prep/internal/domain"
)

// Client calls the Gemini generative API. Safe for concurrent use; each
// call configures its own model handle.
type Client struct {
	client *genai.Client
	model  string
}

// New constructs a Client. The API key is required; the caller treats its
// absence as a fatal startup condition before ever reaching here.
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY missing", domain.ErrInvalidArgument)
	}
	c, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("op=gemini.New: %w", err)
	}
	return &Client{client: c, model: model}, nil
}

// Generate sends prompt with the model's default sampling settings.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	return c.generate(ctx, m, prompt)
}

// GenerateWithTemperature sends prompt at a fixed temperature.
func (c *Client) GenerateWithTemperature(ctx context.Context, prompt string, temperature float32) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(temperature)
	return c.generate(ctx, m, prompt)
}

func (c *Client) generate(ctx context.Context, m *genai.GenerativeModel, prompt string) (string, error) {
	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("op=gemini.generate model=%s: %w", c.model, err)
	}
	return extractText(resp)
}

// Close releases the underlying API client.
func (c *Client) Close() error { return c.client.Close() }

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", domain.ErrInternal)
	}
	cand := resp.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no content in response", domain.ErrInternal)
	}
	var parts []string
	for _, part := range cand.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("%w: no text parts in response", domain.ErrInternal)
	}
	return strings.Join(parts, ""), nil
}
