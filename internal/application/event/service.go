package event

import (
	"time"
)

type Service struct {
	repo   EventRepo
	pub    EventPublisher
	cache  Cache
	images ImageUploader
	clock  Clock

	ttlDetails time.Duration
	ttlList    time.Duration
}

// New wires the event service. pub, cache and images may be nil.
func New(
	repo EventRepo,
	clock Clock,
	pub EventPublisher,
	cache Cache,
	images ImageUploader,
	ttlDetails, ttlList time.Duration,
) *Service {
	if ttlDetails == 0 {
		ttlDetails = 5 * time.Minute
	}
	if ttlList == 0 {
		ttlList = 15 * time.Second
	}
	if pub == nil {
		pub = NoopPublisher{}
	}

	return &Service{
		repo:       repo,
		pub:        pub,
		cache:      cache,
		images:     images,
		clock:      clock,
		ttlDetails: ttlDetails,
		ttlList:    ttlList,
	}
}
