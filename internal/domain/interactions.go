package domain

import "time"

// WatchProgress records how far a viewer got through one item.
type WatchProgress struct {
	ID        string    `json:"id"`
	Progress  float64   `json:"progress"` // fraction in [0,1]
	UpdatedAt time.Time `json:"updated_at"`
}

// InteractionState is the durable record of one user's engagement. Values are
// immutable: every mutator returns a new state and leaves the receiver
// untouched, so callers can treat snapshots as safe to share.
//
// Invariants: an id is never in both LikedIDs and DislikedIDs, and every id
// set is duplicate-free.
type InteractionState struct {
	LikedIDs           []string        `json:"liked_ids"`
	DislikedIDs        []string        `json:"disliked_ids"`
	SavedIDs           []string        `json:"saved_ids"`
	SavedCategoryNames []string        `json:"saved_category_names"`
	DownloadedIDs      []string        `json:"downloaded_ids"`
	WatchHistory       []WatchProgress `json:"watch_history"`
}

// EmptyInteractions returns the all-empty default state.
func EmptyInteractions() InteractionState {
	return InteractionState{
		LikedIDs:           []string{},
		DislikedIDs:        []string{},
		SavedIDs:           []string{},
		SavedCategoryNames: []string{},
		DownloadedIDs:      []string{},
		WatchHistory:       []WatchProgress{},
	}
}

// Clone returns a deep copy of the state.
func (s InteractionState) Clone() InteractionState {
	return InteractionState{
		LikedIDs:           cloneIDs(s.LikedIDs),
		DislikedIDs:        cloneIDs(s.DislikedIDs),
		SavedIDs:           cloneIDs(s.SavedIDs),
		SavedCategoryNames: cloneIDs(s.SavedCategoryNames),
		DownloadedIDs:      cloneIDs(s.DownloadedIDs),
		WatchHistory:       append([]WatchProgress{}, s.WatchHistory...),
	}
}

func (s InteractionState) Liked(id string) bool      { return containsID(s.LikedIDs, id) }
func (s InteractionState) Disliked(id string) bool   { return containsID(s.DislikedIDs, id) }
func (s InteractionState) Saved(id string) bool      { return containsID(s.SavedIDs, id) }
func (s InteractionState) Downloaded(id string) bool { return containsID(s.DownloadedIDs, id) }

// SavedCategory reports whether the named category is pinned.
func (s InteractionState) SavedCategory(name string) bool {
	return containsID(s.SavedCategoryNames, name)
}

// ProgressFor returns the recorded watch progress for id, or zero if none.
func (s InteractionState) ProgressFor(id string) float64 {
	for _, h := range s.WatchHistory {
		if h.ID == id {
			return h.Progress
		}
	}
	return 0
}

// ToggleLike adds id to the liked set, or removes it if already liked.
// Liking always clears a dislike for the same id.
func (s InteractionState) ToggleLike(id string) InteractionState {
	next := s.Clone()
	if containsID(next.LikedIDs, id) {
		next.LikedIDs = withoutID(next.LikedIDs, id)
		return next
	}
	next.LikedIDs = appendUnique(next.LikedIDs, id)
	next.DislikedIDs = withoutID(next.DislikedIDs, id)
	return next
}

// Dislike adds id to the disliked set and clears any like for it.
func (s InteractionState) Dislike(id string) InteractionState {
	next := s.Clone()
	next.DislikedIDs = appendUnique(next.DislikedIDs, id)
	next.LikedIDs = withoutID(next.LikedIDs, id)
	return next
}

// Undislike restores a hidden item by removing id from the disliked set.
func (s InteractionState) Undislike(id string) InteractionState {
	next := s.Clone()
	next.DislikedIDs = withoutID(next.DislikedIDs, id)
	return next
}

// ToggleSave adds id to the saved set, or removes it if already saved.
func (s InteractionState) ToggleSave(id string) InteractionState {
	next := s.Clone()
	if containsID(next.SavedIDs, id) {
		next.SavedIDs = withoutID(next.SavedIDs, id)
		return next
	}
	next.SavedIDs = appendUnique(next.SavedIDs, id)
	return next
}

// ToggleSavedCategory pins or unpins a category name.
func (s InteractionState) ToggleSavedCategory(name string) InteractionState {
	next := s.Clone()
	if containsID(next.SavedCategoryNames, name) {
		next.SavedCategoryNames = withoutID(next.SavedCategoryNames, name)
		return next
	}
	next.SavedCategoryNames = appendUnique(next.SavedCategoryNames, name)
	return next
}

// MarkDownloaded records that the item's bytes are present in the local cache.
func (s InteractionState) MarkDownloaded(id string) InteractionState {
	next := s.Clone()
	next.DownloadedIDs = appendUnique(next.DownloadedIDs, id)
	return next
}

// UnmarkDownloaded removes id from the downloaded set.
func (s InteractionState) UnmarkDownloaded(id string) InteractionState {
	next := s.Clone()
	next.DownloadedIDs = withoutID(next.DownloadedIDs, id)
	return next
}

// RecordProgress stores watch progress for id, clamped to [0,1].
func (s InteractionState) RecordProgress(id string, progress float64, at time.Time) InteractionState {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	next := s.Clone()
	entry := WatchProgress{ID: id, Progress: progress, UpdatedAt: at}
	for i, h := range next.WatchHistory {
		if h.ID == id {
			next.WatchHistory[i] = entry
			return next
		}
	}
	next.WatchHistory = append(next.WatchHistory, entry)
	return next
}

func cloneIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func withoutID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func appendUnique(ids []string, id string) []string {
	if containsID(ids, id) {
		return ids
	}
	return append(ids, id)
}
