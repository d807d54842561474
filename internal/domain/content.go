package domain

import "time"

// ContentKind distinguishes playback formats. It is derived once at
// ingestion from the source aspect ratio and never changes afterwards.
type ContentKind string

const (
	KindShort ContentKind = "short"
	KindLong  ContentKind = "long"
)

// ContentItem represents one playable media unit from the listing host.
// The feed composer only reorders references to items; it never mutates them.
type ContentItem struct {
	ID          string      // Canonical identifier
	AlternateID string      // Source-system alias (may equal ID)
	MediaURL    string      // Direct playback URL
	PosterURL   string      // Poster frame URL, may be empty
	Kind        ContentKind // short (portrait) or long (landscape)
	Title       string      // Display title
	Category    string      // Assigned category name
	CreatedAt   time.Time   // When the source host ingested the item
	IsFeatured  bool        // Set by the content-management console
}

// Matches reports whether id refers to this item by primary or alternate id.
func (c ContentItem) Matches(id string) bool {
	if id == "" {
		return false
	}
	return c.ID == id || c.AlternateID == id
}

// IsShort reports whether the item plays in the portrait carousel.
func (c ContentItem) IsShort() bool { return c.Kind == KindShort }
