package dto

import "time"

// Source tells clients whether data came from the database or the static catalog.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// EventResp is the stable API response model.
type EventResp struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Overview    string   `json:"overview"`
	Image       string   `json:"image"`
	Venue       string   `json:"venue"`
	Location    string   `json:"location"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Mode        string   `json:"mode"`
	Audience    string   `json:"audience"`
	Agenda      []string `json:"agenda"`
	Organizer   string   `json:"organizer"`
	Tags        []string `json:"tags"`

	// Catalog entries carry no timestamps.
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type EventListResp struct {
	Source Source      `json:"source"`
	Events []EventResp `json:"events"`
}

type EventDetailResp struct {
	Source   Source    `json:"source"`
	Event    EventResp `json:"event"`
	Bookings int       `json:"bookings"`
}

type BookingResp struct {
	ID        string    `json:"id"`
	EventID   string    `json:"eventId"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
