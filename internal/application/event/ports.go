package event

import (
	"context"
	"time"

	"github.com/baechuer/devevent-service/internal/domain"
)

type Clock interface {
	Now() time.Time
}

type EventRepo interface {
	Create(ctx context.Context, e *domain.Event) error
	GetBySlug(ctx context.Context, slug string) (*domain.Event, error)
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) error

	List(ctx context.Context) ([]*domain.Event, error)
	ListByTags(ctx context.Context, tags []string, excludeID string, limit int) ([]*domain.Event, error)
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, routingKey, messageID string, payload any) error
}

type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// ImageUploader stores a cover image and returns its public URL.
type ImageUploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// ImageFile is a cover image received from an author.
type ImageFile struct {
	Filename string
	Data     []byte
}
