package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/baechuer/devevent-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

type staticConn struct{ db *mongo.Database }

func (c staticConn) Acquire(context.Context) (*mongo.Database, error) { return c.db, nil }

func sampleEvent() *domain.Event {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	return &domain.Event{
		Title:       "React Conf 2026",
		Slug:        "react-conf-2026",
		Description: "desc",
		Overview:    "overview",
		Image:       "https://cdn.local/react.png",
		Venue:       "Moscone",
		Location:    "San Francisco, CA",
		Date:        "2026-10-12",
		Time:        "09:00 PDT",
		Mode:        domain.ModeOffline,
		Audience:    "Developers",
		Agenda:      []string{"Keynote"},
		Organizer:   "Meta",
		Tags:        []string{"react", "web"},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func eventBSON(id primitive.ObjectID, slug string, created time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: "Event " + slug},
		{Key: "slug", Value: slug},
		{Key: "description", Value: "desc"},
		{Key: "overview", Value: "overview"},
		{Key: "image", Value: "https://cdn.local/x.png"},
		{Key: "venue", Value: "Hall"},
		{Key: "location", Value: "Remote"},
		{Key: "date", Value: "2026-05-19"},
		{Key: "time", Value: "10:00"},
		{Key: "mode", Value: "online"},
		{Key: "audience", Value: "Everyone"},
		{Key: "agenda", Value: bson.A{"Intro"}},
		{Key: "organizer", Value: "Org"},
		{Key: "tags", Value: bson.A{"web"}},
		{Key: "createdAt", Value: created},
		{Key: "updatedAt", Value: created},
	}
}

func TestEventRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create_assigns_id", func(mt *mtest.T) {
		repo := NewEventRepo(staticConn{mt.DB}, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		e := sampleEvent()
		require.NoError(mt, repo.Create(context.Background(), e))
		assert.True(mt, primitive.IsValidObjectID(e.ID))
	})

	mt.Run("create_duplicate_slug_is_conflict", func(mt *mtest.T) {
		repo := NewEventRepo(staticConn{mt.DB}, time.Second)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "E11000 duplicate key error collection: events index: slug_unique",
		}))

		e := sampleEvent()
		err := repo.Create(context.Background(), e)
		require.Error(mt, err)
		assert.True(mt, domain.HasCode(err, domain.CodeConflict))
		assert.Empty(mt, e.ID)
	})

	mt.Run("get_by_slug_found", func(mt *mtest.T) {
		repo := NewEventRepo(staticConn{mt.DB}, time.Second)
		id := primitive.NewObjectID()
		created := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		ns := mt.DB.Name() + "." + eventsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, eventBSON(id, "google-io-2026", created)))

		e, err := repo.GetBySlug(context.Background(), "google-io-2026")
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), e.ID)
		assert.Equal(mt, "google-io-2026", e.Slug)
		assert.Equal(mt, domain.ModeOnline, e.Mode)
		assert.Equal(mt, []string{"Intro"}, e.Agenda)
		assert.True(mt, created.Equal(e.CreatedAt))
	})

	mt.Run("get_by_slug_missing", func(mt *mtest.T) {
		repo := NewEventRepo(staticConn{mt.DB}, time.Second)
		ns := mt.DB.Name() + "." + eventsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.GetBySlug(context.Background(), "nope")
		assert.True(mt, domain.IsNotFound(err))
	})

	mt.Run("get_by_id_malformed_is_not_found", func(mt *mtest.T) {
		repo := NewEventRepo(staticConn{mt.DB}, time.Second)

		_, err := repo.GetByID(context.Background(), "not-an-object-id")
		assert.True(mt, domain.IsNotFound(err))
	})

	mt.Run("list_returns_all_in_server_order", func(mt *mtest.T) {
		repo := NewEventRepo(staticConn{mt.DB}, time.Second)
		ns := mt.DB.Name() + "." + eventsCollection
		newer := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, eventBSON(primitive.NewObjectID(), "b", newer)),
			mtest.CreateCursorResponse(0, ns, mtest.NextBatch, eventBSON(primitive.NewObjectID(), "a", older)),
		)

		items, err := repo.List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, items, 2)
		assert.Equal(mt, "b", items[0].Slug)
		assert.Equal(mt, "a", items[1].Slug)
	})

	mt.Run("list_empty_is_not_nil", func(mt *mtest.T) {
		repo := NewEventRepo(staticConn{mt.DB}, time.Second)
		ns := mt.DB.Name() + "." + eventsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		items, err := repo.List(context.Background())
		require.NoError(mt, err)
		assert.NotNil(mt, items)
		assert.Empty(mt, items)
	})

	mt.Run("list_by_tags_without_tags_skips_query", func(mt *mtest.T) {
		repo := NewEventRepo(staticConn{mt.DB}, time.Second)

		items, err := repo.ListByTags(context.Background(), nil, "", 3)
		require.NoError(mt, err)
		assert.Empty(mt, items)
	})

	mt.Run("list_by_tags", func(mt *mtest.T) {
		repo := NewEventRepo(staticConn{mt.DB}, time.Second)
		ns := mt.DB.Name() + "." + eventsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			eventBSON(primitive.NewObjectID(), "web-summit", time.Now().UTC())))

		items, err := repo.ListByTags(context.Background(), []string{"Web"}, primitive.NewObjectID().Hex(), 3)
		require.NoError(mt, err)
		require.Len(mt, items, 1)
		assert.Equal(mt, "web-summit", items[0].Slug)
	})

	mt.Run("update_matched", func(mt *mtest.T) {
		repo := NewEventRepo(staticConn{mt.DB}, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		e := sampleEvent()
		e.ID = primitive.NewObjectID().Hex()
		assert.NoError(mt, repo.Update(context.Background(), e))
	})

	mt.Run("update_unmatched_is_not_found", func(mt *mtest.T) {
		repo := NewEventRepo(staticConn{mt.DB}, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		e := sampleEvent()
		e.ID = primitive.NewObjectID().Hex()
		assert.True(mt, domain.IsNotFound(repo.Update(context.Background(), e)))
	})

	mt.Run("update_slug_collision_is_conflict", func(mt *mtest.T) {
		repo := NewEventRepo(staticConn{mt.DB}, time.Second)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "E11000 duplicate key error",
		}))

		e := sampleEvent()
		e.ID = primitive.NewObjectID().Hex()
		assert.True(mt, domain.HasCode(repo.Update(context.Background(), e), domain.CodeConflict))
	})

	mt.Run("command_error_is_wrapped", func(mt *mtest.T) {
		repo := NewEventRepo(staticConn{mt.DB}, time.Second)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 2, Name: "BadValue", Message: "bad value",
		}))

		_, err := repo.List(context.Background())
		require.Error(mt, err)
		assert.False(mt, domain.IsUnavailable(err))
		assert.Contains(mt, err.Error(), "mongo find events")
	})
}

func TestEventRepo_Unavailable(t *testing.T) {
	repo := NewEventRepo(Unavailable{}, 0)

	_, err := repo.List(context.Background())
	assert.True(t, domain.IsUnavailable(err))

	_, err = repo.GetBySlug(context.Background(), "wwdc-2026")
	assert.True(t, domain.IsUnavailable(err))

	assert.True(t, domain.IsUnavailable(repo.Create(context.Background(), sampleEvent())))
}

func TestBookingRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create_assigns_id", func(mt *mtest.T) {
		repo := NewBookingRepo(staticConn{mt.DB}, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		b := &domain.Booking{EventID: primitive.NewObjectID().Hex(), Email: "a@b.co", CreatedAt: time.Now()}
		require.NoError(mt, repo.Create(context.Background(), b))
		assert.True(mt, primitive.IsValidObjectID(b.ID))
	})

	mt.Run("create_with_malformed_event_id_is_referential", func(mt *mtest.T) {
		repo := NewBookingRepo(staticConn{mt.DB}, time.Second)

		err := repo.Create(context.Background(), &domain.Booking{EventID: "123", Email: "a@b.co"})
		assert.True(mt, domain.HasCode(err, domain.CodeReferential))
	})

	mt.Run("count_by_event", func(mt *mtest.T) {
		repo := NewBookingRepo(staticConn{mt.DB}, time.Second)
		ns := mt.DB.Name() + "." + bookingsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: 1}, {Key: "n", Value: int32(3)}}))

		n, err := repo.CountByEvent(context.Background(), primitive.NewObjectID().Hex())
		require.NoError(mt, err)
		assert.Equal(mt, 3, n)
	})

	mt.Run("count_unknown_id_is_zero", func(mt *mtest.T) {
		repo := NewBookingRepo(staticConn{mt.DB}, time.Second)

		n, err := repo.CountByEvent(context.Background(), "local-dev-meetup")
		require.NoError(mt, err)
		assert.Zero(mt, n)
	})
}
