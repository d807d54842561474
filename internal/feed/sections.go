package feed

import "github.com/vaultfeed/vaultfeed/internal/domain"

// Display slicing constants. The head rows and the scroll bands are fixed
// windows over the composed order; partitioning never re-sorts.
const (
	headSize      = 4
	shortsBandEnd = 16
	longsBandEnd  = 12
)

// Sections partitions a composed feed by kind into disjoint ordered groups.
type Sections struct {
	Shorts []domain.ContentItem // all shorts, composed order preserved
	Longs  []domain.ContentItem // all longs, composed order preserved
}

// Partition splits items by kind, preserving their relative order.
func Partition(items []domain.ContentItem) Sections {
	var s Sections
	for _, item := range items {
		if item.IsShort() {
			s.Shorts = append(s.Shorts, item)
		} else {
			s.Longs = append(s.Longs, item)
		}
	}
	return s
}

// ShortsHead returns the first 4 shorts.
func (s Sections) ShortsHead() []domain.ContentItem { return window(s.Shorts, 0, headSize) }

// ShortsBand returns the shorts scroll band (positions 4 through 15).
func (s Sections) ShortsBand() []domain.ContentItem { return window(s.Shorts, headSize, shortsBandEnd) }

// LongsHead returns the first 4 longs.
func (s Sections) LongsHead() []domain.ContentItem { return window(s.Longs, 0, headSize) }

// LongsBand returns the longs scroll band (positions 4 through 11).
func (s Sections) LongsBand() []domain.ContentItem { return window(s.Longs, headSize, longsBandEnd) }

func window(items []domain.ContentItem, from, to int) []domain.ContentItem {
	if from >= len(items) {
		return nil
	}
	if to > len(items) {
		to = len(items)
	}
	return items[from:to]
}
