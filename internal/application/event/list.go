package event

import (
	"context"

	"github.com/baechuer/devevent-service/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

// List returns every event, newest first.
func (s *Service) List(ctx context.Context) ([]*domain.Event, error) {
	if s.cache != nil {
		var cached []*domain.Event
		found, err := s.cache.Get(ctx, cacheKeyList, &cached)
		if err != nil {
			zlog.Warn().Err(err).Str("key", cacheKeyList).Msg("cache list get failed")
		} else if found {
			zlog.Debug().Str("key", cacheKeyList).Msg("cache list hit")
			return cached, nil
		}
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && len(items) > 0 {
		if err := s.cache.Set(ctx, cacheKeyList, items, s.ttlList); err != nil {
			zlog.Warn().Err(err).Str("key", cacheKeyList).Msg("cache list set failed")
		}
	}
	return items, nil
}
