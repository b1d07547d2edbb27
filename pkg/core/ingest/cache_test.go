package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentCacheRoundTrip(t *testing.T) {
	cache := NewDocumentCache(t.TempDir())

	assert.False(t, cache.Has("320193", "000032019320000096", "R2.htm"))
	_, ok := cache.Get("320193", "000032019320000096", "R2.htm")
	assert.False(t, ok)

	require.NoError(t, cache.Set("320193", "000032019320000096", "R2.htm", []byte("<html/>")))
	assert.True(t, cache.Has("320193", "000032019320000096", "R2.htm"))

	body, ok := cache.Get("320193", "000032019320000096", "R2.htm")
	require.True(t, ok)
	assert.Equal(t, "<html/>", string(body))
}

// Dashed and de-dashed accession numbers address the same entry.
func TestDocumentCacheNormalizesAccession(t *testing.T) {
	cache := NewDocumentCache(t.TempDir())

	require.NoError(t, cache.Set("320193", "0000320193-20-000096", "R2.htm", []byte("x")))
	assert.True(t, cache.Has("320193", "000032019320000096", "R2.htm"))
}

func TestDocumentCacheClear(t *testing.T) {
	cache := NewDocumentCache(t.TempDir())
	require.NoError(t, cache.Set("320193", "a", "R2.htm", []byte("x")))
	require.NoError(t, cache.Clear())
	assert.False(t, cache.Has("320193", "a", "R2.htm"))
}
