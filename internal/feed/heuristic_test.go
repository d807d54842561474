package feed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultfeed/vaultfeed/internal/domain"
)

func TestHeuristicBoostsLikedCategory(t *testing.T) {
	items := []domain.ContentItem{
		{ID: "a", AlternateID: "a", Category: "creatures", CreatedAt: time.Unix(1, 0)},
		{ID: "b", AlternateID: "b", Category: "hauntings", CreatedAt: time.Unix(2, 0)},
		{ID: "c", AlternateID: "c", Category: "creatures", CreatedAt: time.Unix(3, 0)},
	}
	interactions := domain.EmptyInteractions().ToggleLike("a")

	got, err := Heuristic{}.Rank(context.Background(), items, interactions)
	require.NoError(t, err)
	require.Len(t, got, 3)
	// creatures items outrank the hauntings item, newest first within the tie
	assert.Equal(t, []string{"c", "a", "b"}, got)
}

func TestHeuristicBoostsFeatured(t *testing.T) {
	items := []domain.ContentItem{
		{ID: "plain", AlternateID: "plain", CreatedAt: time.Unix(5, 0)},
		{ID: "featured", AlternateID: "featured", IsFeatured: true, CreatedAt: time.Unix(1, 0)},
	}

	got, err := Heuristic{}.Rank(context.Background(), items, domain.EmptyInteractions())
	require.NoError(t, err)
	assert.Equal(t, "featured", got[0])
}

func TestHeuristicPrefixCap(t *testing.T) {
	var items []domain.ContentItem
	for i := 0; i < 30; i++ {
		items = append(items, domain.ContentItem{ID: string(rune('a' + i))})
	}

	got, err := Heuristic{}.Rank(context.Background(), items, domain.EmptyInteractions())
	require.NoError(t, err)
	assert.Len(t, got, defaultRankPrefix)

	got, err = Heuristic{Prefix: 5}.Rank(context.Background(), items, domain.EmptyInteractions())
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestHeuristicHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Heuristic{}.Rank(ctx, []domain.ContentItem{{ID: "a"}}, domain.EmptyInteractions())
	assert.Error(t, err)
}
