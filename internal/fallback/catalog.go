// Package fallback holds the static sample events served when the event store
// is not configured or cannot be reached.
package fallback

import "github.com/baechuer/devevent-service/internal/domain"

var catalog = []domain.Event{
	{
		ID:       "wwdc-2026",
		Title:    "WWDC 2026 — Apple Worldwide Developers Conference",
		Image:    "/images/event1.png",
		Slug:     "wwdc-2026",
		Location: "Apple Park, Cupertino, CA (and online)",
		Date:     "2026-06-08",
		Time:     "10:00 PDT",
		Tags:     []string{"ios", "macos", "swift", "developer"},
	},
	{
		ID:       "react-conf-2026",
		Title:    "React Conf 2026",
		Image:    "/images/event2.png",
		Slug:     "react-conf-2026",
		Location: "San Francisco, CA",
		Date:     "2026-10-12",
		Time:     "09:00 PDT",
		Tags:     []string{"react", "web", "frontend"},
	},
	{
		ID:       "google-io-2026",
		Title:    "Google I/O 2026",
		Image:    "/images/event3.png",
		Slug:     "google-io-2026",
		Location: "Mountain View, CA (and livestream)",
		Date:     "2026-05-19",
		Time:     "10:00 PDT",
		Tags:     []string{"android", "web", "cloud"},
	},
	{
		ID:       "pycon-2026",
		Title:    "PyCon US 2026",
		Image:    "/images/event4.png",
		Slug:     "pycon-2026",
		Location: "Pittsburgh, PA",
		Date:     "2026-04-15",
		Time:     "09:00 EDT",
		Tags:     []string{"python", "data", "backend"},
	},
	{
		ID:       "ghc-2026",
		Title:    "GitHub Universe 2026",
		Image:    "/images/event5.png",
		Slug:     "github-universe-2026",
		Location: "Las Vegas, NV (hybrid)",
		Date:     "2026-11-03",
		Time:     "09:30 PDT",
		Tags:     []string{"devops", "opensource", "platform"},
	},
	{
		ID:       "hackathon-nyc-spring-2026",
		Title:    "NYC Spring Hackathon 2026",
		Image:    "/images/event6.png",
		Slug:     "nyc-spring-hackathon-2026",
		Location: "New York, NY",
		Date:     "2026-03-21",
		Time:     "11:00 EDT",
		Tags:     []string{"hackathon", "startup", "ml"},
	},
	{
		ID:       "local-dev-meetup",
		Title:    "Local Dev Meetup — Community Night",
		Image:    "/images/event-full.png",
		Slug:     "local-dev-meetup",
		Location: "Community Tech Hub (various cities)",
		Date:     "2026-01-22",
		Time:     "18:30",
		Tags:     []string{"meetup", "networking"},
	},
}

// Catalog serves the static events. The zero value is ready to use.
type Catalog struct{}

func New() *Catalog { return &Catalog{} }

// All returns copies of every sample event in catalog order.
func (Catalog) All() []*domain.Event {
	out := make([]*domain.Event, 0, len(catalog))
	for i := range catalog {
		out = append(out, clone(&catalog[i]))
	}
	return out
}

// FindBySlug matches the slug exactly; no case folding or trimming is applied.
func (Catalog) FindBySlug(slug string) (*domain.Event, bool) {
	for i := range catalog {
		if catalog[i].Slug == slug {
			return clone(&catalog[i]), true
		}
	}
	return nil, false
}

func clone(e *domain.Event) *domain.Event {
	c := *e
	c.Agenda = append([]string(nil), e.Agenda...)
	c.Tags = append([]string(nil), e.Tags...)
	return &c
}
