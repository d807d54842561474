package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultfeed/vaultfeed/internal/domain"
)

func item(id string, kind domain.ContentKind) domain.ContentItem {
	return domain.ContentItem{ID: id, AlternateID: id, Kind: kind, MediaURL: "https://cdn.test/" + id + ".mp4"}
}

func ids(items []domain.ContentItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestComposeRankedPrefixThenRemainder(t *testing.T) {
	items := []domain.ContentItem{
		item("a", domain.KindShort),
		item("b", domain.KindLong),
		item("c", domain.KindShort),
		item("d", domain.KindLong),
	}

	got := Compose(items, domain.EmptyInteractions(), []string{"c", "a"})
	assert.Equal(t, []string{"c", "a", "b", "d"}, ids(got))
}

func TestComposeDropsUnknownRankedIDs(t *testing.T) {
	items := []domain.ContentItem{item("a", domain.KindShort), item("b", domain.KindLong)}

	got := Compose(items, domain.EmptyInteractions(), []string{"stale", "b", "hallucinated"})
	assert.Equal(t, []string{"b", "a"}, ids(got))
}

func TestComposeMatchesAlternateID(t *testing.T) {
	items := []domain.ContentItem{
		{ID: "canonical", AlternateID: "alias", Kind: domain.KindShort},
		item("b", domain.KindLong),
	}

	got := Compose(items, domain.EmptyInteractions(), []string{"alias"})
	require.Len(t, got, 2)
	assert.Equal(t, "canonical", got[0].ID)
}

func TestComposeDeduplicatesRepeatedRankedIDs(t *testing.T) {
	items := []domain.ContentItem{item("a", domain.KindShort), item("b", domain.KindLong)}

	got := Compose(items, domain.EmptyInteractions(), []string{"a", "a", "b", "a"})
	assert.Equal(t, []string{"a", "b"}, ids(got))
}

func TestComposeFiltersDislikedAfterRanking(t *testing.T) {
	t1 := time.Unix(100, 0)
	t2 := time.Unix(200, 0)
	items := []domain.ContentItem{
		{ID: "a", AlternateID: "a", Kind: domain.KindShort, CreatedAt: t1},
		{ID: "b", AlternateID: "b", Kind: domain.KindLong, CreatedAt: t2},
	}
	interactions := domain.EmptyInteractions().Dislike("a")

	got := Compose(items, interactions, []string{"b", "a"})
	assert.Equal(t, []string{"b"}, ids(got))
}

func TestComposeEmptyRankingFallsBackToListingOrder(t *testing.T) {
	items := []domain.ContentItem{item("a", domain.KindShort), item("b", domain.KindLong), item("c", domain.KindShort)}
	interactions := domain.EmptyInteractions().Dislike("b")

	got := Compose(items, interactions, nil)
	assert.Equal(t, []string{"a", "c"}, ids(got))
}

func TestComposeIsDeterministic(t *testing.T) {
	items := []domain.ContentItem{item("a", domain.KindShort), item("b", domain.KindLong), item("c", domain.KindShort)}
	order := []string{"b", "nope", "c"}
	interactions := domain.EmptyInteractions().Dislike("a")

	first := Compose(items, interactions, order)
	for i := 0; i < 5; i++ {
		assert.Equal(t, ids(first), ids(Compose(items, interactions, order)))
	}
}

func TestComposeOutputNeverExceedsInput(t *testing.T) {
	items := []domain.ContentItem{item("a", domain.KindShort), item("b", domain.KindLong)}
	interactions := domain.EmptyInteractions().Dislike("a")

	got := Compose(items, interactions, []string{"x", "y", "a", "a", "b", "z"})
	assert.LessOrEqual(t, len(got), len(items)-1)
	for _, it := range got {
		assert.False(t, interactions.Disliked(it.ID))
	}
}

func TestComposeEmptyInput(t *testing.T) {
	assert.Empty(t, Compose(nil, domain.EmptyInteractions(), []string{"a"}))
}
