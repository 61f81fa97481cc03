package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/voyant/ai/mock"
)

func TestFingerprintNormalizesWhitespace(t *testing.T) {
	base := Fingerprint("romantic trip to Paris")

	assert.Equal(t, base, Fingerprint("  romantic trip to Paris  "))
	assert.Equal(t, base, Fingerprint("\tromantic trip to Paris\n"))
	assert.NotEqual(t, base, Fingerprint("romantic  trip to Paris"))
}

func TestCachingEmbedderHitsInnerOnce(t *testing.T) {
	store, err := NewMemoryCache(16)
	require.NoError(t, err)
	defer store.Close()

	inner := mock.NewMockEmbedder()
	embedder := NewCachingEmbedder(inner, store)

	first, err := embedder.EmbedText(context.Background(), "5 day food trip to Tokyo")
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := embedder.EmbedText(context.Background(), "5 day food trip to Tokyo")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.CallCount())
}

func TestCachingEmbedderDistinctTexts(t *testing.T) {
	store, err := NewMemoryCache(16)
	require.NoError(t, err)
	defer store.Close()

	inner := mock.NewMockEmbedder()
	embedder := NewCachingEmbedder(inner, store)

	_, err = embedder.EmbedText(context.Background(), "beach holiday")
	require.NoError(t, err)
	_, err = embedder.EmbedText(context.Background(), "mountain trek")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.CallCount())
}

func TestCachingEmbedderBatchFillsMissesOnly(t *testing.T) {
	store, err := NewMemoryCache(16)
	require.NoError(t, err)
	defer store.Close()

	inner := mock.NewMockEmbedder()
	embedder := NewCachingEmbedder(inner, store)

	warm, err := embedder.EmbedText(context.Background(), "warm text")
	require.NoError(t, err)

	vectors, err := embedder.EmbedTexts(context.Background(), []string{"warm text", "cold text"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)

	assert.Equal(t, warm, vectors[0])
	assert.NotEmpty(t, vectors[1])
	// One EmbedText for the warm entry, one EmbedTexts batch for the miss.
	assert.Equal(t, 2, inner.CallCount())
}

func TestCachingEmbedderBatchAllHits(t *testing.T) {
	store, err := NewMemoryCache(16)
	require.NoError(t, err)
	defer store.Close()

	inner := mock.NewMockEmbedder()
	embedder := NewCachingEmbedder(inner, store)

	texts := []string{"alpha", "beta"}
	_, err = embedder.EmbedTexts(context.Background(), texts)
	require.NoError(t, err)

	before := inner.CallCount()
	_, err = embedder.EmbedTexts(context.Background(), texts)
	require.NoError(t, err)

	assert.Equal(t, before, inner.CallCount())
}

func TestBadgerCacheRoundTrip(t *testing.T) {
	store, err := OpenBadgerCache("", true)
	require.NoError(t, err)
	defer store.Close()

	key := Fingerprint("cultural weekend in Rome")
	vector := []float32{0.1, -0.5, 2.25, 0}

	_, ok := store.Get(key)
	assert.False(t, ok)

	require.NoError(t, store.Put(key, vector))

	got, ok := store.Get(key)
	require.True(t, ok)
	assert.Equal(t, vector, got)
}

func TestBadgerCachePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := OpenBadgerCache(dir, false)
	require.NoError(t, err)

	key := Fingerprint("adventure trek")
	require.NoError(t, store.Put(key, []float32{1, 2, 3}))
	require.NoError(t, store.Close())

	reopened, err := OpenBadgerCache(dir, false)
	require.NoError(t, err)
	defer reopened.Close()

	got, ok := reopened.Get(key)
	require.True(t, ok)
	assert.Equal(t, []float32{1, 2, 3}, got)
}

func TestUnmarshalVectorMalformed(t *testing.T) {
	_, err := UnmarshalVector([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrMalformedVector)
}

func TestMarshalVectorRoundTrip(t *testing.T) {
	vector := []float32{0, -1.5, 3.14159, 1e-8}

	got, err := UnmarshalVector(MarshalVector(vector))
	require.NoError(t, err)
	assert.Equal(t, vector, got)
}
