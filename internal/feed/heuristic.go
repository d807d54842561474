package feed

import (
	"context"
	"sort"

	"github.com/vaultfeed/vaultfeed/internal/domain"
)

const defaultRankPrefix = 12

// Heuristic is a local personalization collaborator. It scores items by
// category affinity from likes, saves and watch history, boosts featured
// items, and returns the ids of the reordered prefix. The output is advisory:
// the composer treats it as a hint like any other Recommender.
type Heuristic struct {
	// Prefix caps how many ids are returned; 0 means defaultRankPrefix.
	Prefix int
}

func (h Heuristic) Rank(ctx context.Context, items []domain.ContentItem, interactions domain.InteractionState) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	affinity := categoryAffinity(items, interactions)

	type scored struct {
		id    string
		score int
		at    int64
	}
	ranked := make([]scored, 0, len(items))
	for _, item := range items {
		score := 2 * affinity[item.Category]
		if item.IsFeatured {
			score += 3
		}
		if interactions.SavedCategory(item.Category) {
			score++
		}
		ranked = append(ranked, scored{id: item.ID, score: score, at: item.CreatedAt.Unix()})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].at > ranked[j].at
	})

	prefix := h.Prefix
	if prefix <= 0 {
		prefix = defaultRankPrefix
	}
	if prefix > len(ranked) {
		prefix = len(ranked)
	}

	ids := make([]string, 0, prefix)
	for _, r := range ranked[:prefix] {
		ids = append(ids, r.id)
	}
	return ids, nil
}

// categoryAffinity counts positive signals per category: likes and saves
// weigh full, completed watch history weighs half.
func categoryAffinity(items []domain.ContentItem, interactions domain.InteractionState) map[string]int {
	byID := make(map[string]domain.ContentItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
		if item.AlternateID != "" {
			byID[item.AlternateID] = item
		}
	}

	affinity := make(map[string]int)
	for _, id := range interactions.LikedIDs {
		if item, ok := byID[id]; ok {
			affinity[item.Category] += 2
		}
	}
	for _, id := range interactions.SavedIDs {
		if item, ok := byID[id]; ok {
			affinity[item.Category] += 2
		}
	}
	for _, h := range interactions.WatchHistory {
		if h.Progress < 0.5 {
			continue
		}
		if item, ok := byID[h.ID]; ok {
			affinity[item.Category]++
		}
	}
	return affinity
}
