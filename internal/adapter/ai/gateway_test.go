package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedClient returns canned responses or failures per call.
type scriptedClient struct {
	calls     int
	failUntil int // calls numbered 1..failUntil return err
	err       error
	response  string
	lastTemp  float32
}

func (s *scriptedClient) Generate(_ context.Context, _ string) (string, error) {
	s.calls++
	if s.calls <= s.failUntil {
		return "", s.err
	}
	return s.response, nil
}

func (s *scriptedClient) GenerateWithTemperature(ctx context.Context, prompt string, temp float32) (string, error) {
	s.lastTemp = temp
	return s.Generate(ctx, prompt)
}

func fastPolicy(attempts int) RetryPolicy {
	p := NoRetryPolicy()
	p.MaxAttempts = attempts
	return p
}

func TestGateway_GenerateQuestions_RetriesThenSucceeds(t *testing.T) {
	t.Parallel()
	client := &scriptedClient{failUntil: 2, err: errors.New("upstream 503"), response: "1. Tell me about Go."}
	g := NewGateway(client, "test-model", fastPolicy(3), nil)

	out, err := g.GenerateQuestions(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "1. Tell me about Go.", out)
	assert.Equal(t, 3, client.calls)
}

func TestGateway_GenerateQuestions_SurfacesExhaustion(t *testing.T) {
	t.Parallel()
	client := &scriptedClient{failUntil: 99, err: errors.New("upstream 503")}
	g := NewGateway(client, "test-model", fastPolicy(3), nil)

	_, err := g.GenerateQuestions(context.Background(), "prompt")
	require.Error(t, err)
	assert.Equal(t, 3, client.calls)
}

func TestGateway_ReferenceAnswer_DegradesToPlaceholder(t *testing.T) {
	t.Parallel()
	client := &scriptedClient{failUntil: 99, err: errors.New("boom")}
	g := NewGateway(client, "test-model", NoRetryPolicy(), nil)

	out := g.ReferenceAnswer(context.Background(), "Q", "resume")
	assert.Equal(t, ReferenceAnswerPlaceholder, out)
	assert.Equal(t, 1, client.calls)
}

func TestGateway_EvaluateRubric_ParsesScore(t *testing.T) {
	t.Parallel()
	client := &scriptedClient{response: "Good structure.\nOverall Score: 4.0/5"}
	g := NewGateway(client, "test-model", NoRetryPolicy(), nil)

	ev := g.EvaluateRubric(context.Background(), "Q", "A", "resume")
	assert.True(t, ev.ScoreParsed)
	assert.InDelta(t, 4.0, ev.Score, 1e-9)
	assert.Contains(t, ev.Feedback, "Good structure.")
	assert.InDelta(t, 0.2, float64(client.lastTemp), 1e-6)
}

func TestGateway_EvaluateRubric_MissingScoreYieldsUnparsedZero(t *testing.T) {
	t.Parallel()
	client := &scriptedClient{response: "Feedback with no score line."}
	g := NewGateway(client, "test-model", NoRetryPolicy(), nil)

	ev := g.EvaluateRubric(context.Background(), "Q", "A", "resume")
	assert.False(t, ev.ScoreParsed)
	assert.Zero(t, ev.Score)
	assert.Equal(t, "Feedback with no score line.", ev.Feedback)
}

func TestGateway_EvaluateRubric_DegradesOnExhaustion(t *testing.T) {
	t.Parallel()
	client := &scriptedClient{failUntil: 99, err: errors.New("timeout")}
	g := NewGateway(client, "test-model", NoRetryPolicy(), nil)

	ev := g.EvaluateRubric(context.Background(), "Q", "A", "resume")
	assert.False(t, ev.ScoreParsed)
	assert.Zero(t, ev.Score)
	assert.Contains(t, ev.Feedback, "Evaluation error:")
}

func TestParseOverallScore(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		in     string
		want   float64
		parsed bool
	}{
		{"plain", "Overall Score: 3.5/5", 3.5, true},
		{"case insensitive", "overall score: 4/5", 4.0, true},
		{"spaced fraction", "Overall Score: 2.0 / 5", 2.0, true},
		{"embedded", "Notes...\nOverall Score: 5/5\nMore notes", 5.0, true},
		{"absent", "no score here", 0.0, false},
		{"wrong denominator", "Overall Score: 3/10", 0.0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseOverallScore(tc.in)
			assert.Equal(t, tc.parsed, ok)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}
