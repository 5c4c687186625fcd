package handlers

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/baechuer/devevent-service/internal/domain"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// memEvents is an in-memory event store. Setting down makes every call fail
// with a connectivity error.
type memEvents struct {
	mu    sync.Mutex
	items []*domain.Event
	seq   int
	down  bool
}

func (m *memEvents) unavailable() error {
	if m.down {
		return domain.ErrUnavailable("database unavailable", fmt.Errorf("dial tcp: connection refused"))
	}
	return nil
}

func (m *memEvents) Create(ctx context.Context, e *domain.Event) error {
	if err := m.unavailable(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items {
		if it.Slug == e.Slug {
			return domain.ErrConflict("an event with this slug already exists")
		}
	}
	m.seq++
	e.ID = fmt.Sprintf("%024x", m.seq)
	cp := *e
	m.items = append(m.items, &cp)
	return nil
}

func (m *memEvents) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	if err := m.unavailable(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items {
		if it.Slug == slug {
			cp := *it
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound("event not found")
}

func (m *memEvents) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if err := m.unavailable(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items {
		if it.ID == id {
			cp := *it
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound("event not found")
}

func (m *memEvents) Update(ctx context.Context, e *domain.Event) error {
	if err := m.unavailable(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, it := range m.items {
		if it.ID == e.ID {
			cp := *e
			m.items[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound("event not found")
}

func (m *memEvents) List(ctx context.Context) ([]*domain.Event, error) {
	if err := m.unavailable(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Event, 0, len(m.items))
	for _, it := range m.items {
		cp := *it
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memEvents) ListByTags(ctx context.Context, tags []string, excludeID string, limit int) ([]*domain.Event, error) {
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []*domain.Event{}
	for _, it := range all {
		if it.ID == excludeID {
			continue
		}
		for _, t := range tags {
			if containsFold(it.Tags, t) {
				out = append(out, it)
				break
			}
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func containsFold(items []string, s string) bool {
	for _, it := range items {
		if strings.EqualFold(it, s) {
			return true
		}
	}
	return false
}

type memBookings struct {
	mu    sync.Mutex
	items []*domain.Booking
	seq   int
}

func (m *memBookings) Create(ctx context.Context, b *domain.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	b.ID = fmt.Sprintf("b%023x", m.seq)
	cp := *b
	m.items = append(m.items, &cp)
	return nil
}

func (m *memBookings) CountByEvent(ctx context.Context, eventID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, b := range m.items {
		if b.EventID == eventID {
			n++
		}
	}
	return n, nil
}

type stubUploader struct {
	calls    int
	filename string
}

func (u *stubUploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	u.calls++
	u.filename = filename
	return "https://cdn.example.com/events/cover.png", nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }
