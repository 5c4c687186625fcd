package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/baechuer/devevent-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EventRepo struct {
	conn      Connector
	opTimeout time.Duration
}

func NewEventRepo(conn Connector, opTimeout time.Duration) *EventRepo {
	if opTimeout <= 0 {
		opTimeout = 5 * time.Second
	}
	return &EventRepo{conn: conn, opTimeout: opTimeout}
}

// Create persists a new event and assigns its id. A slug already in use is a conflict.
func (r *EventRepo) Create(ctx context.Context, e *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	db, err := r.conn.Acquire(ctx)
	if err != nil {
		return err
	}

	id := primitive.NewObjectID()
	if _, err := db.Collection(eventsCollection).InsertOne(ctx, toEventDoc(id, e)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrConflict("an event with this slug already exists")
		}
		return classify("insert event", err)
	}
	e.ID = id.Hex()
	return nil
}

func (r *EventRepo) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()
	return r.findOne(ctx, bson.M{"slug": slug})
}

// GetByID returns not found for ids that are not valid ObjectIDs.
func (r *EventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound("event not found")
	}
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *EventRepo) findOne(ctx context.Context, filter bson.M) (*domain.Event, error) {
	db, err := r.conn.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var doc eventDoc
	err = db.Collection(eventsCollection).FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound("event not found")
	}
	if err != nil {
		return nil, classify("find event", err)
	}
	return doc.toDomain(), nil
}

// List returns every event, newest first.
func (r *EventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{}, opts)
}

// ListByTags returns events other than excludeID sharing at least one tag,
// compared case-insensitively, newest first.
func (r *EventRepo) ListByTags(ctx context.Context, tags []string, excludeID string, limit int) ([]*domain.Event, error) {
	if len(tags) == 0 {
		return []*domain.Event{}, nil
	}

	patterns := make(bson.A, 0, len(tags))
	for _, t := range tags {
		patterns = append(patterns, primitive.Regex{Pattern: "^" + regexp.QuoteMeta(t) + "$", Options: "i"})
	}
	filter := bson.M{"tags": bson.M{"$in": patterns}}
	if oid, err := primitive.ObjectIDFromHex(excludeID); err == nil {
		filter["_id"] = bson.M{"$ne": oid}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()
	return r.find(ctx, filter, opts)
}

func (r *EventRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Event, error) {
	db, err := r.conn.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	cur, err := db.Collection(eventsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, classify("find events", err)
	}
	defer cur.Close(ctx)

	out := make([]*domain.Event, 0)
	for cur.Next(ctx) {
		var doc eventDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, classify("decode event", err)
		}
		out = append(out, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, classify("iterate events", err)
	}
	return out, nil
}

// Update replaces the stored event with the same id.
func (r *EventRepo) Update(ctx context.Context, e *domain.Event) error {
	oid, err := primitive.ObjectIDFromHex(e.ID)
	if err != nil {
		return domain.ErrNotFound("event not found")
	}

	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	db, err := r.conn.Acquire(ctx)
	if err != nil {
		return err
	}

	res, err := db.Collection(eventsCollection).ReplaceOne(ctx, bson.M{"_id": oid}, toEventDoc(oid, e))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrConflict("an event with this slug already exists")
		}
		return classify("update event", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound("event not found")
	}
	return nil
}
