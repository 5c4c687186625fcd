package booking

import (
	"context"
	"time"

	"github.com/baechuer/devevent-service/internal/application/event"
	"github.com/baechuer/devevent-service/internal/domain"
)

type Clock interface {
	Now() time.Time
}

type BookingRepo interface {
	Create(ctx context.Context, b *domain.Booking) error
	CountByEvent(ctx context.Context, eventID string) (int, error)
}

// EventLookup resolves an event by id for the referential check.
type EventLookup interface {
	GetByID(ctx context.Context, id string) (*domain.Event, error)
}

type Service struct {
	repo   BookingRepo
	events EventLookup
	pub    event.EventPublisher
	clock  Clock
}

func New(repo BookingRepo, events EventLookup, clock Clock, pub event.EventPublisher) *Service {
	if pub == nil {
		pub = event.NoopPublisher{}
	}
	return &Service{repo: repo, events: events, pub: pub, clock: clock}
}

type CreateCmd struct {
	EventID string
	Email   string
}

// BookingPayload is the business payload for booking.created.
type BookingPayload struct {
	BookingID string `json:"booking_id"`
	EventID   string `json:"event_id"`
	EventSlug string `json:"event_slug"`
}

// Create books a spot. The event must exist; otherwise nothing is stored and a
// referential error is returned.
func (s *Service) Create(ctx context.Context, cmd CreateCmd) (*domain.Booking, error) {
	b, err := domain.NewBooking(cmd.EventID, cmd.Email, s.clock.Now())
	if err != nil {
		return nil, err
	}

	ev, err := s.events.GetByID(ctx, b.EventID)
	if domain.IsNotFound(err) {
		return nil, domain.ErrReferential("event does not exist")
	}
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	event.Publish(ctx, s.pub, event.RoutingBookingCreated, event.NewEnvelope(ctx, s.clock.Now(), BookingPayload{
		BookingID: b.ID,
		EventID:   b.EventID,
		EventSlug: ev.Slug,
	}))
	return b, nil
}

func (s *Service) CountForEvent(ctx context.Context, eventID string) (int, error) {
	return s.repo.CountByEvent(ctx, eventID)
}
