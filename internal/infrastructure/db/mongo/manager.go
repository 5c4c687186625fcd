// Package mongo owns the single shared MongoDB client and the event and
// booking repositories built on top of it.
package mongo

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/baechuer/devevent-service/internal/domain"
	zlog "github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/singleflight"
)

const (
	eventsCollection   = "events"
	bookingsCollection = "bookings"

	maxPoolSize            = 10
	serverSelectionTimeout = 5 * time.Second
	socketTimeout          = 45 * time.Second
)

var (
	ErrNotConfigured = errors.New("mongodb uri is not configured")
	ErrClosed        = errors.New("mongodb manager is closed")
)

// Connector hands out the shared database handle.
type Connector interface {
	Acquire(ctx context.Context) (*mongo.Database, error)
}

type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// dialFunc connects and verifies a client. Tests swap it out, along with
// the index step.
type (
	dialFunc   func(ctx context.Context, uri string) (*mongo.Client, error)
	ensureFunc func(ctx context.Context, db *mongo.Database) error
)

// Manager lazily establishes one pooled client and shares it. Concurrent
// callers during establishment wait on the same attempt. An attempt counts as
// established only once the indexes exist, so the unique slug index is in
// place before any write. A failed attempt is not cached and the next Acquire
// retries.
type Manager struct {
	cfg    Config
	dial   dialFunc
	ensure ensureFunc

	group singleflight.Group

	mu     sync.Mutex
	client *mongo.Client
	closed bool
}

func NewManager(cfg Config) (*Manager, error) {
	if cfg.URI == "" {
		return nil, ErrNotConfigured
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
	return &Manager{cfg: cfg, dial: dial, ensure: ensureIndexes}, nil
}

func dial(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(maxPoolSize).
		SetServerSelectionTimeout(serverSelectionTimeout).
		SetSocketTimeout(socketTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

func (m *Manager) connect() (any, error) {
	m.mu.Lock()
	c, closed := m.client, m.closed
	m.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}
	if c != nil {
		return c, nil
	}

	// Detached from any single caller so one cancellation cannot fail the others.
	cctx, cancel := context.WithTimeout(context.Background(), m.cfg.ConnectTimeout)
	defer cancel()

	start := time.Now()
	c, err := m.dial(cctx, m.cfg.URI)
	if err != nil {
		zlog.Warn().Err(err).Dur("took", time.Since(start)).Msg("mongo connect failed")
		return nil, err
	}
	if err := m.ensure(cctx, c.Database(m.cfg.Database)); err != nil {
		zlog.Warn().Err(err).Dur("took", time.Since(start)).Msg("mongo index setup failed")
		_ = c.Disconnect(context.Background())
		return nil, err
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		_ = c.Disconnect(context.Background())
		return nil, ErrClosed
	}
	m.client = c
	m.mu.Unlock()

	zlog.Info().Str("database", m.cfg.Database).Dur("took", time.Since(start)).Msg("mongo connected")
	return c, nil
}

func (m *Manager) cached() *mongo.Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.client
}

// Acquire returns the shared database, connecting on first use. A caller whose
// ctx ends while waiting gets a connectivity error wrapping ctx.Err(); the
// attempt keeps running for others.
func (m *Manager) Acquire(ctx context.Context) (*mongo.Database, error) {
	if c := m.cached(); c != nil {
		return c.Database(m.cfg.Database), nil
	}

	ch := m.group.DoChan("connect", m.connect)

	select {
	case <-ctx.Done():
		return nil, domain.ErrUnavailable("database unavailable", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, domain.ErrUnavailable("database unavailable", res.Err)
		}
		return res.Val.(*mongo.Client).Database(m.cfg.Database), nil
	}
}

// Ping checks the shared connection, establishing it if needed.
func (m *Manager) Ping(ctx context.Context) error {
	db, err := m.Acquire(ctx)
	if err != nil {
		return err
	}
	if err := db.Client().Ping(ctx, readpref.Primary()); err != nil {
		return domain.ErrUnavailable("database ping failed", err)
	}
	return nil
}

// ensureIndexes creates the unique slug index and the lookup indexes. It is
// idempotent and runs on every new connection.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(eventsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true).SetName("slug_unique")},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}, Options: options.Index().SetName("created_at_desc")},
		{Keys: bson.D{{Key: "tags", Value: 1}}, Options: options.Index().SetName("tags")},
	})
	if err != nil {
		return err
	}
	_, err = db.Collection(bookingsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "eventId", Value: 1}},
		Options: options.Index().SetName("event_id"),
	})
	return err
}

// Close disconnects the shared client. A connection attempt still in flight
// is discarded when it finishes, and later Acquire calls fail.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	c := m.client
	m.client = nil
	m.closed = true
	m.mu.Unlock()

	if c == nil {
		return nil
	}
	return c.Disconnect(ctx)
}

// Unavailable stands in for the Manager when no database is configured.
// Every Acquire fails with a connectivity error.
type Unavailable struct{}

func (Unavailable) Acquire(context.Context) (*mongo.Database, error) {
	return nil, domain.ErrUnavailable("database not configured", ErrNotConfigured)
}

func (u Unavailable) Ping(ctx context.Context) error {
	_, err := u.Acquire(ctx)
	return err
}

func (Unavailable) Close(context.Context) error { return nil }
