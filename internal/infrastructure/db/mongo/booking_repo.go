package mongo

import (
	"context"
	"time"

	"github.com/baechuer/devevent-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingRepo struct {
	conn      Connector
	opTimeout time.Duration
}

func NewBookingRepo(conn Connector, opTimeout time.Duration) *BookingRepo {
	if opTimeout <= 0 {
		opTimeout = 5 * time.Second
	}
	return &BookingRepo{conn: conn, opTimeout: opTimeout}
}

// Create persists the booking and assigns its id. The event id must already
// have been resolved to an existing event.
func (r *BookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	eventOID, err := primitive.ObjectIDFromHex(b.EventID)
	if err != nil {
		return domain.ErrReferential("event does not exist")
	}

	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	db, err := r.conn.Acquire(ctx)
	if err != nil {
		return err
	}

	id := primitive.NewObjectID()
	_, err = db.Collection(bookingsCollection).InsertOne(ctx, bookingDoc{
		ID:        id,
		EventID:   eventOID,
		Email:     b.Email,
		CreatedAt: b.CreatedAt.UTC(),
		UpdatedAt: b.UpdatedAt.UTC(),
	})
	if err != nil {
		return classify("insert booking", err)
	}
	b.ID = id.Hex()
	return nil
}

// CountByEvent returns how many bookings reference the event. Unknown ids count zero.
func (r *BookingRepo) CountByEvent(ctx context.Context, eventID string) (int, error) {
	oid, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	db, err := r.conn.Acquire(ctx)
	if err != nil {
		return 0, err
	}

	n, err := db.Collection(bookingsCollection).CountDocuments(ctx, bson.M{"eventId": oid})
	if err != nil {
		return 0, classify("count bookings", err)
	}
	return int(n), nil
}
