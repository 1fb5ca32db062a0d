package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
)

func TestKeywordSearch(t *testing.T) {
	t.Run("prefix ignores case", func(t *testing.T) {
		setupTestServices(t)

		out, err := execute(t, "keyword", "search", "FOOT")

		require.NoError(t, err)
		assert.Contains(t, out, "football")
		assert.Contains(t, out, "1 keywords")
	})

	t.Run("whole catalog as yaml", func(t *testing.T) {
		setupTestServices(t)

		out, err := execute(t, "keyword", "search", "-o", "yaml")
		require.NoError(t, err)

		var entries []domain.KeywordCatalogEntry
		require.NoError(t, yaml.Unmarshal([]byte(out), &entries))
		assert.Len(t, entries, 2)
	})

	t.Run("no match", func(t *testing.T) {
		setupTestServices(t)

		out, err := execute(t, "keyword", "search", "zzz")

		require.NoError(t, err)
		assert.Contains(t, out, `No keywords match "zzz"`)
	})

	t.Run("no catalog", func(t *testing.T) {
		setupTestServices(t)
		keywordCatalog = nil

		_, err := execute(t, "keyword", "search")

		assert.ErrorIs(t, err, errCatalogNotConfigured)
	})
}

func TestModelList(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "model", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "topics")
	assert.Contains(t, out, "sport, finance")
}
