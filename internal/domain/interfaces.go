package domain

import "context"

// ProgressFunc reports download progress as a fraction in [0,1].
// Calls for a given task are strictly non-decreasing and end with exactly
// 1.0 on success; after a failure the callback is simply not invoked again.
type ProgressFunc func(fraction float64)

// ContentLister fetches the raw content list from the remote media host.
// Implementations fail soft: on transport errors they return the persisted
// last-known list (or an empty list), never a raw network error.
type ContentLister interface {
	FetchContent(ctx context.Context) ([]ContentItem, error)
}

// Recommender produces an advisory ranked id list from interaction signals.
// Its output is a hint, not an authoritative order: unknown ids are dropped
// by the composer and any error falls back to the plain listing order.
type Recommender interface {
	Rank(ctx context.Context, items []ContentItem, interactions InteractionState) ([]string, error)
}

// Suggestion is a generated title/tag proposal for the console.
type Suggestion struct {
	Title string
	Tags  []string
}

// TitleSuggester proposes display metadata for a category. The statistical
// model behind it is not part of this module.
type TitleSuggester interface {
	Suggest(ctx context.Context, category string) (Suggestion, error)
}

// KV is the durable key-value persistence substrate shared by the
// interaction store and the offline cache. Writes are capacity-bounded and
// may fail with ErrQuotaExceeded.
type KV interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// Interactions is the single mutation entry point for the persisted user
// state. Update applies fn to the latest in-memory snapshot, persists the
// result in full, and returns the new snapshot; concurrent updates are
// serialized so no intermediate state is lost.
type Interactions interface {
	Current() InteractionState
	Update(fn func(InteractionState) InteractionState) InteractionState
}
