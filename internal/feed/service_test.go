package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultfeed/vaultfeed/internal/domain"
	"github.com/vaultfeed/vaultfeed/internal/store"
)

type stubLister struct {
	items []domain.ContentItem
}

func (s stubLister) FetchContent(context.Context) ([]domain.ContentItem, error) {
	return s.items, nil
}

type stubRecommender struct {
	ids []string
	err error
}

func (s stubRecommender) Rank(context.Context, []domain.ContentItem, domain.InteractionState) ([]string, error) {
	return s.ids, s.err
}

func newTestService(items []domain.ContentItem, rec domain.Recommender) (*Service, *store.Interactions) {
	inter := store.NewInteractions(store.NewMemoryKV(), nil)
	return NewService(stubLister{items: items}, rec, inter, nil), inter
}

func TestRefreshAppliesRanking(t *testing.T) {
	items := []domain.ContentItem{item("a", domain.KindShort), item("b", domain.KindLong)}
	svc, _ := newTestService(items, stubRecommender{ids: []string{"b"}})

	got, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids(got))
}

func TestRefreshFallsBackWhenRecommenderErrors(t *testing.T) {
	items := []domain.ContentItem{item("a", domain.KindShort), item("b", domain.KindLong)}
	svc, _ := newTestService(items, stubRecommender{err: errors.New("collaborator down")})

	got, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(got))
}

func TestRefreshFiltersDislikes(t *testing.T) {
	items := []domain.ContentItem{item("a", domain.KindShort), item("b", domain.KindLong)}
	svc, _ := newTestService(items, stubRecommender{ids: []string{"a", "b"}})

	svc.Dislike("a")

	got, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids(got))
}

func TestRefreshEmptyListing(t *testing.T) {
	svc, _ := newTestService(nil, stubRecommender{})

	got, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestServiceMutatorsPersist(t *testing.T) {
	svc, inter := newTestService(nil, nil)

	state := svc.ToggleLike("a")
	assert.True(t, state.Liked("a"))

	state = svc.Dislike("a")
	assert.False(t, state.Liked("a"))
	assert.True(t, state.Disliked("a"))

	state = svc.Undislike("a")
	assert.False(t, state.Disliked("a"))

	state = svc.ToggleSave("b")
	assert.True(t, state.Saved("b"))

	state = svc.ToggleSavedCategory("creatures")
	assert.True(t, state.SavedCategory("creatures"))

	state = svc.RecordProgress("c", 0.4)
	assert.InDelta(t, 0.4, state.ProgressFor("c"), 1e-9)

	// the store saw every mutation
	assert.True(t, inter.Current().Saved("b"))
}
