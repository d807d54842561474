package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultfeed/vaultfeed/internal/domain"
)

func catalog() []domain.ContentItem {
	return []domain.ContentItem{
		{ID: "1", Title: "Midnight Encounter", Category: "encounters"},
		{ID: "2", Title: "The Old Mill", Category: "hauntings"},
		{ID: "3", Title: "Night Shift", Category: "true-stories"},
	}
}

func TestSearchMatchesTitleFuzzily(t *testing.T) {
	got := Search(catalog(), "midnight")
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	// case-insensitive
	got = Search(catalog(), "OLD MILL")
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}

func TestSearchMatchesCategory(t *testing.T) {
	got := Search(catalog(), "haunt")
	require.NotEmpty(t, got)
	assert.Equal(t, "2", got[0].ID)
}

func TestSearchTitleHitsOutrankCategoryHits(t *testing.T) {
	items := []domain.ContentItem{
		{ID: "cat", Title: "Something Else", Category: "night terrors"},
		{ID: "title", Title: "Night Shift", Category: "true-stories"},
	}

	got := Search(items, "night")
	require.Len(t, got, 2)
	assert.Equal(t, "title", got[0].ID)
}

func TestSearchEmptyQueryReturnsAll(t *testing.T) {
	items := catalog()
	assert.Equal(t, items, Search(items, ""))
	assert.Equal(t, items, Search(items, "   "))
}

func TestSearchNoMatch(t *testing.T) {
	assert.Empty(t, Search(catalog(), "zzzzzz"))
}
