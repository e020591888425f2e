// Package openai implements domain.Embedder against an OpenAI-compatible
// embeddings endpoint.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/fairyhunter13/ai-interview-prep/internal/adapter/ai"
	"github.com/fairyhunter13/ai-interview-prep/internal/adapter/observability"
	"github.com/fairyhunter13/ai-interview-prep/internal/domain"
)

// Client calls POST {baseURL}/embeddings with bearer auth. Rate limits and
// 5xx responses retry under the policy; other 4xx responses do not.
type Client struct {
	hc      *http.Client
	baseURL string
	apiKey  string
	model   string
	policy  ai.RetryPolicy
}

// New constructs a Client. An empty apiKey is allowed at construction;
// Embed fails with ErrInvalidArgument when called without one.
func New(baseURL, apiKey, model string, policy ai.RetryPolicy) *Client {
	return &Client{
		hc:      &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		policy:  policy,
	}
}

// Embed returns one vector per input text, in input order.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if c.apiKey == "" || c.model == "" {
		slog.Error("embeddings credentials missing",
			slog.Bool("has_api_key", c.apiKey != ""),
			slog.String("model", c.model))
		return nil, fmt.Errorf("%w: OPENAI_API_KEY or EMBEDDINGS_MODEL missing", domain.ErrInvalidArgument)
	}
	body, _ := json.Marshal(map[string]any{
		"model": c.model,
		"input": texts,
	})
	var out struct {
		Data []struct {
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
	}
	op := func() error {
		start := time.Now()
		// Recreate request each attempt to avoid reusing consumed bodies
		r, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/embeddings", bytes.NewReader(body))
		r.Header.Set("Authorization", "Bearer "+c.apiKey)
		r.Header.Set("Content-Type", "application/json")
		resp, err := c.hc.Do(r)
		observability.AIRequestsTotal.WithLabelValues(c.model, "embed").Inc()
		observability.AIRequestDuration.WithLabelValues(c.model, "embed").Observe(time.Since(start).Seconds())
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode == http.StatusTooManyRequests {
			slog.Warn("embeddings provider rate limited", slog.Int("status", resp.StatusCode))
			return fmt.Errorf("rate limited: 429")
		}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			slog.Warn("embeddings provider 4xx",
				slog.Int("status", resp.StatusCode),
				slog.String("body", readSnippet(resp.Body, 512)))
			return backoff.Permanent(fmt.Errorf("embed status %d", resp.StatusCode))
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			slog.Error("embeddings provider non-2xx",
				slog.Int("status", resp.StatusCode),
				slog.String("body", readSnippet(resp.Body, 512)))
			return fmt.Errorf("embed status %d", resp.StatusCode)
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return fmt.Errorf("decode embeddings response: %w", err)
		}
		return nil
	}
	if err := backoff.Retry(op, c.policy.Backoff(ctx)); err != nil {
		return nil, fmt.Errorf("op=openai.Embed: %w", err)
	}
	if len(out.Data) != len(texts) {
		return nil, fmt.Errorf("%w: embeddings count %d != input count %d", domain.ErrInternal, len(out.Data), len(texts))
	}
	res := make([][]float32, len(out.Data))
	for i := range out.Data {
		v := make([]float32, len(out.Data[i].Embedding))
		for j := range out.Data[i].Embedding {
			v[j] = float32(out.Data[i].Embedding[j])
		}
		res[i] = v
	}
	return res, nil
}

func readSnippet(r io.Reader, n int64) string {
	b, err := io.ReadAll(io.LimitReader(r, n))
	if err != nil && !errors.Is(err, io.EOF) {
		return ""
	}
	return string(b)
}
