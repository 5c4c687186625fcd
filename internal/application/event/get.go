package event

import (
	"context"

	"github.com/baechuer/devevent-service/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

// GetBySlug normalizes the slug (trim, lowercase) before lookup.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	slug = domain.NormalizeSlug(slug)
	if slug == "" {
		return nil, domain.ErrValidationMeta("invalid path param", map[string]string{
			"slug": "is required",
		})
	}

	// 1. Try Cache
	key := cacheKeyEventDetails(slug)
	if s.cache != nil {
		var cached domain.Event
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("cache get failed")
		} else if found {
			zlog.Debug().Str("key", key).Msg("cache hit")
			return &cached, nil
		} else {
			zlog.Debug().Str("key", key).Msg("cache miss")
		}
	}

	// 2. DB Query
	e, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	// 3. Set Cache (Best Effort)
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, e, s.ttlDetails); err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
	}

	return e, nil
}

// GetByID is uncached; bookings use it to check that their event exists.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return s.repo.GetByID(ctx, id)
}
