package listing

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultfeed/vaultfeed/internal/domain"
	"github.com/vaultfeed/vaultfeed/internal/store"
)

const sampleListing = `{
  "resources": [
    {
      "public_id": "clips/portrait-1",
      "version": 17,
      "format": "mp4",
      "width": 720,
      "height": 1280,
      "created_at": "2026-01-10T12:00:00Z",
      "context": {"custom": {"caption": "The Stairwell", "isFeatured": "true"}}
    },
    {
      "public_id": "clips/landscape-1",
      "version": 3,
      "format": "webm",
      "width": 1920,
      "height": 1080,
      "created_at": "2026-01-11T09:30:00Z"
    }
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *store.MemoryKV) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	kv := store.NewMemoryKV()
	return NewClient(srv.URL, "demo", "feed_v1", nil, kv, nil), kv
}

func TestFetchContentMapsResources(t *testing.T) {
	var requested string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		fmt.Fprint(w, sampleListing)
	})

	items, err := client.FetchContent(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "/demo/video/list/feed_v1.json", requested)

	portrait := items[0]
	assert.Equal(t, "clips/portrait-1", portrait.ID)
	assert.Equal(t, "portrait-1", portrait.AlternateID)
	assert.Equal(t, domain.KindShort, portrait.Kind)
	assert.Equal(t, "The Stairwell", portrait.Title)
	assert.True(t, portrait.IsFeatured)
	assert.Contains(t, portrait.MediaURL, "/demo/video/upload/q_auto,f_auto/v17/clips/portrait-1.mp4")
	assert.Contains(t, portrait.PosterURL, "q_auto,f_auto,so_0/v17/clips/portrait-1.jpg")
	assert.Equal(t, DefaultCategories[0], portrait.Category)

	landscape := items[1]
	assert.Equal(t, domain.KindLong, landscape.Kind)
	assert.False(t, landscape.IsFeatured)
	assert.Equal(t, DefaultCategories[1], landscape.Category)
	// no caption: a generated title keeps the card renderable
	assert.NotEmpty(t, landscape.Title)
}

func TestFetchContentFallsBackToLastKnownOnServerError(t *testing.T) {
	healthy := true
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			http.Error(w, "offline", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, sampleListing)
	})

	first, err := client.FetchContent(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 2)

	healthy = false
	second, err := client.FetchContent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFetchContentFallsBackOnMalformedPayload(t *testing.T) {
	broken := false
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if broken {
			fmt.Fprint(w, "{not json")
			return
		}
		fmt.Fprint(w, sampleListing)
	})

	first, err := client.FetchContent(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, first)

	broken = true
	second, err := client.FetchContent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFetchContentEmptyWithoutSnapshot(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "offline", http.StatusBadGateway)
	})

	items, err := client.FetchContent(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFetchContentUnreachableHost(t *testing.T) {
	kv := store.NewMemoryKV()
	client := NewClient("http://127.0.0.1:1", "demo", "feed_v1", nil, kv, nil)

	items, err := client.FetchContent(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}
