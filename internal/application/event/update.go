package event

import (
	"context"

	"github.com/baechuer/devevent-service/internal/domain"
)

type UpdateCmd struct {
	Slug  string
	Patch domain.EventPatch
	// Image, when set, is uploaded and replaces Patch.Image.
	Image *ImageFile
}

// Update patches an event. Changing the title moves it to a new slug; the old
// slug stops resolving.
func (s *Service) Update(ctx context.Context, cmd UpdateCmd) (*domain.Event, error) {
	slug := domain.NormalizeSlug(cmd.Slug)
	if slug == "" {
		return nil, domain.ErrValidationMeta("invalid path param", map[string]string{
			"slug": "is required",
		})
	}

	// No cache on the write path.
	ev, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	patch := cmd.Patch
	if cmd.Image != nil {
		url, err := s.upload(ctx, cmd.Image)
		if err != nil {
			return nil, err
		}
		patch.Image = &url
	}

	if err := ev.ApplyUpdate(patch, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, ev); err != nil {
		return nil, err
	}

	// --- Cache Invalidation ---
	keys := []string{cacheKeyList, cacheKeyEventDetails(slug)}
	if ev.Slug != slug {
		keys = append(keys, cacheKeyEventDetails(ev.Slug))
	}
	s.invalidate(ctx, keys...)

	Publish(ctx, s.pub, RoutingEventUpdated, NewEnvelope(ctx, s.clock.Now(), payloadOf(ev)))

	return ev, nil
}
