package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordType_Valid(t *testing.T) {
	assert.True(t, KeywordManual.Valid())
	assert.True(t, KeywordModelType.Valid())
	assert.True(t, KeywordML.Valid())
	assert.False(t, KeywordType("manual").Valid())
	assert.False(t, KeywordType("").Valid())
}

func TestParseKeywordType(t *testing.T) {
	kt, err := ParseKeywordType("KWM")
	require.NoError(t, err)
	assert.Equal(t, KeywordModelType, kt)

	_, err = ParseKeywordType("AUTO")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestKeywordCatalogEntry_ApplyIDs(t *testing.T) {
	entry := KeywordCatalogEntry{ID: "A", Parents: []string{"B", "C"}}

	assert.Equal(t, []string{"A", "B", "C"}, entry.ApplyIDs())
	assert.Equal(t, []string{"B", "C"}, entry.Parents, "parents must not be modified")
}

func TestKeywordCatalogEntry_ApplyIDs_NoParents(t *testing.T) {
	entry := KeywordCatalogEntry{ID: "solo"}

	assert.Equal(t, []string{"solo"}, entry.ApplyIDs())
}

func TestTaggingMethodByType(t *testing.T) {
	m, ok := TaggingMethodByType(KeywordML)
	require.True(t, ok)
	assert.Equal(t, "Automated", m.Name)

	_, ok = TaggingMethodByType(KeywordManual)
	assert.False(t, ok)
}

func TestSortColumn_Valid(t *testing.T) {
	assert.True(t, SortNone.Valid())
	assert.True(t, SortCreationDate.Valid())
	assert.False(t, SortColumn("keywords").Valid())
}
