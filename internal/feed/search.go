package feed

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/vaultfeed/vaultfeed/internal/domain"
)

// categoryMatchRank places plain category hits after any fuzzy title hit.
const categoryMatchRank = 1 << 20

// Search filters items the way the console search box does: fuzzy matching
// on title (diacritic- and case-insensitive), substring matching on
// category. Better title matches come first; category-only hits keep the
// incoming order after them. An empty query returns items unchanged.
func Search(items []domain.ContentItem, query string) []domain.ContentItem {
	query = strings.TrimSpace(query)
	if query == "" {
		return items
	}

	type match struct {
		item domain.ContentItem
		rank int
	}
	var matches []match
	lowered := strings.ToLower(query)

	for _, item := range items {
		if rank := fuzzy.RankMatchNormalizedFold(query, item.Title); rank >= 0 {
			matches = append(matches, match{item: item, rank: rank})
			continue
		}
		if strings.Contains(strings.ToLower(item.Category), lowered) {
			matches = append(matches, match{item: item, rank: categoryMatchRank})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].rank < matches[j].rank })

	out := make([]domain.ContentItem, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.item)
	}
	return out
}
