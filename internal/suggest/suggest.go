// Package suggest is a local stand-in for the remote generative metadata
// helper: it proposes titles and tags for a category without any model.
// Suggestions are deterministic so the console shows stable proposals.
package suggest

import (
	"context"

	"github.com/vaultfeed/vaultfeed/internal/domain"
	"github.com/vaultfeed/vaultfeed/internal/stats"
)

var openers = []string{
	"What Was Caught",
	"The Last Minute",
	"Nobody Believed",
	"Straight From",
	"It Started",
	"The Night",
}

var closers = []string{
	"on Camera",
	"Before Dark",
	"in the Static",
	"the Archive",
	"at the Door",
	"After Midnight",
}

var extraTags = []string{
	"caught-on-camera", "archive", "night", "unexplained", "viewer-submitted", "restored",
}

// Local implements domain.TitleSuggester without network access.
type Local struct{}

// Suggest proposes a title and tag set for category. The same category
// always yields the same suggestion.
func (Local) Suggest(ctx context.Context, category string) (domain.Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return domain.Suggestion{}, err
	}

	opener := openers[stats.Accent(category, len(openers))]
	closer := closers[stats.Accent(category+"::closer", len(closers))]
	tag := extraTags[stats.Accent(category+"::tag", len(extraTags))]

	title := opener + " " + closer
	tags := []string{tag}
	if category != "" {
		title = opener + " " + closer + ": " + category
		tags = append([]string{category}, tags...)
	}
	return domain.Suggestion{Title: title, Tags: tags}, nil
}
