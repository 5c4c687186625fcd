package media

import (
	"context"
	"errors"
	"strings"

	"github.com/baechuer/devevent-service/internal/domain"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"
)

var ErrStoreNotConfigured = errors.New("image storage is not configured")

// ObjectStore puts public objects and knows their public URL.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	PublicURL(key string) string
}

// Uploader sanitizes event cover images and stores them under events/.
type Uploader struct {
	store  ObjectStore
	limits Limits
}

func NewUploader(store ObjectStore, limits Limits) *Uploader {
	if store == nil {
		store = Disabled{}
	}
	if limits.DisplayWidth == 0 {
		limits.DisplayWidth = 1600
	}
	if limits.DisplayHeight == 0 {
		limits.DisplayHeight = 1600
	}
	return &Uploader{store: store, limits: limits}
}

// Upload returns the public URL of the stored image. A bad image is a
// validation error; a storage failure is an upstream error.
func (u *Uploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	img, err := Sanitize(data, u.limits)
	if err != nil {
		return "", domain.ErrValidationMeta("invalid image", map[string]string{"image": err.Error()})
	}

	key := "events/" + uuid.NewString() + img.Ext
	if err := u.store.Put(ctx, key, img.Data, img.ContentType); err != nil {
		zlog.Warn().Err(err).Str("key", key).Str("filename", strings.TrimSpace(filename)).Msg("image upload failed")
		return "", domain.ErrUpstream("image upload failed", err)
	}
	return u.store.PublicURL(key), nil
}

// Disabled is the store used when no bucket is configured.
type Disabled struct{}

func (Disabled) Put(context.Context, string, []byte, string) error { return ErrStoreNotConfigured }
func (Disabled) PublicURL(string) string                           { return "" }
