// Package feed turns the raw content list and the user's interaction state
// into the final viewing order.
package feed

import "github.com/vaultfeed/vaultfeed/internal/domain"

// Compose produces the display order for a feed.
//
// rankedIDs is the advisory order from the personalization collaborator:
// each id is matched against items by primary id first, then alternate id,
// and ids with no match are dropped. Items not referenced by any ranked id
// follow in their original relative order, deduplicated by identifier.
// Dislikes are a hard filter applied after ranking, never a ranking signal.
//
// Compose is total: malformed rankedIDs can only shrink the prefix, and the
// same inputs always produce the same output.
func Compose(items []domain.ContentItem, interactions domain.InteractionState, rankedIDs []string) []domain.ContentItem {
	ordered := make([]domain.ContentItem, 0, len(items))
	used := make(map[string]bool, len(items))

	for _, id := range rankedIDs {
		for _, item := range items {
			if !item.Matches(id) {
				continue
			}
			if !used[item.ID] {
				ordered = append(ordered, item)
				used[item.ID] = true
			}
			break
		}
	}

	for _, item := range items {
		if used[item.ID] || referencedBy(item, rankedIDs) {
			continue
		}
		ordered = append(ordered, item)
		used[item.ID] = true
	}

	out := make([]domain.ContentItem, 0, len(ordered))
	for _, item := range ordered {
		if interactions.Disliked(item.ID) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func referencedBy(item domain.ContentItem, rankedIDs []string) bool {
	for _, id := range rankedIDs {
		if item.Matches(id) {
			return true
		}
	}
	return false
}
