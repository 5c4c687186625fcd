package event

import (
	"context"

	"github.com/baechuer/devevent-service/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

type CreateCmd struct {
	Input domain.EventInput
	// Image, when set, is uploaded first and its URL replaces Input.Image.
	Image *ImageFile
}

func (s *Service) Create(ctx context.Context, cmd CreateCmd) (*domain.Event, error) {
	in := cmd.Input
	if cmd.Image != nil {
		url, err := s.upload(ctx, cmd.Image)
		if err != nil {
			return nil, err
		}
		in.Image = url
	}

	e, err := domain.NewEvent(in, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	s.invalidate(ctx, cacheKeyList)
	Publish(ctx, s.pub, RoutingEventCreated, NewEnvelope(ctx, s.clock.Now(), payloadOf(e)))

	return e, nil
}

func (s *Service) upload(ctx context.Context, img *ImageFile) (string, error) {
	if s.images == nil {
		return "", domain.ErrUpstream("image storage is not configured", nil)
	}
	return s.images.Upload(ctx, img.Filename, img.Data)
}

func (s *Service) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		zlog.Warn().Err(err).Strs("keys", keys).Msg("cache invalidate failed")
	}
}

func payloadOf(e *domain.Event) EventPayload {
	return EventPayload{
		EventID: e.ID,
		Slug:    e.Slug,
		Title:   e.Title,
		Date:    e.Date,
		Mode:    string(e.Mode),
		Tags:    e.Tags,
	}
}
