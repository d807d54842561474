package feed

import (
	"context"
	"log/slog"
	"time"

	"github.com/vaultfeed/vaultfeed/internal/domain"
)

// Service orchestrates the listing collaborator, the personalization
// collaborator and the interaction store into the feed the presentation
// layer consumes. Collaborator failures degrade to smaller data, never to
// an error the caller has to handle.
type Service struct {
	lister domain.ContentLister
	rec    domain.Recommender
	inter  domain.Interactions
	logger *slog.Logger
}

func NewService(lister domain.ContentLister, rec domain.Recommender, inter domain.Interactions, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{lister: lister, rec: rec, inter: inter, logger: logger}
}

// Refresh fetches the content list and returns the composed feed. The
// recommender is attempted but never blocked on: if it errors or returns
// nonsense, the plain listing order (dislike-filtered) is used instead.
func (s *Service) Refresh(ctx context.Context) ([]domain.ContentItem, error) {
	items, err := s.lister.FetchContent(ctx)
	if err != nil {
		s.logger.Error("failed to fetch content list", "error", err)
		return nil, err
	}
	if len(items) == 0 {
		s.logger.Warn("content listing returned no items")
		return nil, nil
	}

	interactions := s.inter.Current()

	var rankedIDs []string
	if s.rec != nil {
		rankedIDs, err = s.rec.Rank(ctx, items, interactions)
		if err != nil {
			s.logger.Warn("recommender unavailable, using raw order", "error", err)
			rankedIDs = nil
		}
	}

	composed := Compose(items, interactions, rankedIDs)
	s.logger.Debug("composed feed", "items", len(items), "ranked", len(rankedIDs), "shown", len(composed))
	return composed, nil
}

// Interactions exposes the current snapshot for read-side consumers.
func (s *Service) Interactions() domain.InteractionState {
	return s.inter.Current()
}

// ToggleLike flips the like for id, clearing any dislike.
func (s *Service) ToggleLike(id string) domain.InteractionState {
	return s.inter.Update(func(state domain.InteractionState) domain.InteractionState {
		return state.ToggleLike(id)
	})
}

// Dislike hides id from every future composition until restored.
func (s *Service) Dislike(id string) domain.InteractionState {
	return s.inter.Update(func(state domain.InteractionState) domain.InteractionState {
		return state.Dislike(id)
	})
}

// Undislike restores a hidden item.
func (s *Service) Undislike(id string) domain.InteractionState {
	return s.inter.Update(func(state domain.InteractionState) domain.InteractionState {
		return state.Undislike(id)
	})
}

// ToggleSave flips the saved flag for id.
func (s *Service) ToggleSave(id string) domain.InteractionState {
	return s.inter.Update(func(state domain.InteractionState) domain.InteractionState {
		return state.ToggleSave(id)
	})
}

// ToggleSavedCategory pins or unpins a category.
func (s *Service) ToggleSavedCategory(name string) domain.InteractionState {
	return s.inter.Update(func(state domain.InteractionState) domain.InteractionState {
		return state.ToggleSavedCategory(name)
	})
}

// RecordProgress stores watch progress for id.
func (s *Service) RecordProgress(id string, fraction float64) domain.InteractionState {
	return s.inter.Update(func(state domain.InteractionState) domain.InteractionState {
		return state.RecordProgress(id, fraction, time.Now())
	})
}
