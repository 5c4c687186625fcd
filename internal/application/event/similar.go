package event

import (
	"context"

	"github.com/baechuer/devevent-service/internal/domain"
)

const (
	defaultSimilarLimit = 3
	maxSimilarLimit     = 20
)

// Similar lists other events sharing at least one tag with the given one, newest first.
func (s *Service) Similar(ctx context.Context, slug string, limit int) ([]*domain.Event, error) {
	if limit <= 0 {
		limit = defaultSimilarLimit
	}
	if limit > maxSimilarLimit {
		limit = maxSimilarLimit
	}

	ev, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByTags(ctx, ev.Tags, ev.ID, limit)
}
