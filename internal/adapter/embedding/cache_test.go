package embedding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct{ embedCalls int }

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.embedCalls++
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{float32(len(texts[i])), 2, 3}
	}
	return out, nil
}

func TestNewCache_ServesRepeatsFromCache(t *testing.T) {
	t.Parallel()
	base := &fakeEmbedder{}
	wrapped := NewCache(base, 8)
	ctx := context.Background()
	texts := []string{"hello", "world"}

	first, err := wrapped.Embed(ctx, texts)
	require.NoError(t, err)
	second, err := wrapped.Embed(ctx, texts)
	require.NoError(t, err)

	assert.Equal(t, 1, base.embedCalls)
	assert.Equal(t, first, second)
}

func TestNewCache_PartialHitOnlyFetchesMisses(t *testing.T) {
	t.Parallel()
	base := &fakeEmbedder{}
	wrapped := NewCache(base, 8)
	ctx := context.Background()

	_, err := wrapped.Embed(ctx, []string{"hello"})
	require.NoError(t, err)
	out, err := wrapped.Embed(ctx, []string{"hello", "fresh"})
	require.NoError(t, err)

	assert.Equal(t, 2, base.embedCalls)
	assert.Len(t, out, 2)
}

func TestNewCache_EvictsOldestAtCapacity(t *testing.T) {
	t.Parallel()
	base := &fakeEmbedder{}
	wrapped := NewCache(base, 1)
	ctx := context.Background()

	_, err := wrapped.Embed(ctx, []string{"a"})
	require.NoError(t, err)
	_, err = wrapped.Embed(ctx, []string{"b"})
	require.NoError(t, err)
	_, err = wrapped.Embed(ctx, []string{"a"})
	require.NoError(t, err)

	assert.Equal(t, 3, base.embedCalls)
}

func TestNewCache_ZeroCapacityReturnsBase(t *testing.T) {
	t.Parallel()
	base := &fakeEmbedder{}
	assert.Equal(t, base, NewCache(base, 0))
}
