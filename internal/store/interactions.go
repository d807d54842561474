package store

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/vaultfeed/vaultfeed/internal/domain"
)

// interactionsKey carries a schema version so a future shape change can
// start from the empty default instead of misreading old payloads.
const interactionsKey = "interactions:v1"

// Interactions owns the in-memory interaction snapshot and is the single
// writer of its persisted blob. Every Update applies the mutator to the
// latest in-memory value and re-persists the full state, so a mutation
// issued while a previous save is settling is never lost.
//
// Implements domain.Interactions.
type Interactions struct {
	mu     sync.Mutex
	kv     domain.KV
	logger *slog.Logger
	cur    domain.InteractionState
}

// NewInteractions loads the persisted state from kv. Loading fails soft:
// absent or corrupt payloads yield the all-empty default, never an error.
func NewInteractions(kv domain.KV, logger *slog.Logger) *Interactions {
	if logger == nil {
		logger = slog.Default()
	}
	return &Interactions{kv: kv, logger: logger, cur: load(kv, logger)}
}

func load(kv domain.KV, logger *slog.Logger) domain.InteractionState {
	data, ok := kv.Get(interactionsKey)
	if !ok {
		return domain.EmptyInteractions()
	}
	state := domain.EmptyInteractions()
	if err := json.Unmarshal(data, &state); err != nil {
		logger.Warn("corrupt interaction state, starting empty", "error", err)
		return domain.EmptyInteractions()
	}
	return state
}

// Current returns a snapshot of the latest state.
func (i *Interactions) Current() domain.InteractionState {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.cur.Clone()
}

// Update applies fn to the latest state, persists the result in full, and
// returns the new snapshot. The save happens under the same lock as the
// mutation, so snapshots reach the store in application order and a newer
// blob is never overwritten by an older one. Persistence failures are
// logged and do not roll back the in-memory state.
func (i *Interactions) Update(fn func(domain.InteractionState) domain.InteractionState) domain.InteractionState {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.cur = fn(i.cur)
	snap := i.cur.Clone()
	if err := i.save(snap); err != nil {
		i.logger.Error("failed to persist interaction state", "error", err)
	}
	return snap
}

// save is an idempotent full overwrite of the persisted blob.
func (i *Interactions) save(state domain.InteractionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return i.kv.Set(interactionsKey, data)
}
