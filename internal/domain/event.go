package domain

import (
	"strings"
	"time"
)

type Event struct {
	ID          string
	Title       string
	Slug        string
	Description string
	Overview    string
	Image       string
	Venue       string
	Location    string
	Date        string // YYYY-MM-DD
	Time        string
	Mode        Mode
	Audience    string
	Agenda      []string
	Organizer   string
	Tags        []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EventInput carries the author-supplied fields of an event.
type EventInput struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Overview    string   `json:"overview" validate:"required"`
	Image       string   `json:"image" validate:"required"`
	Venue       string   `json:"venue" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	Date        string   `json:"date" validate:"required"`
	Time        string   `json:"time" validate:"required"`
	Mode        string   `json:"mode" validate:"required,oneof=online offline hybrid"`
	Audience    string   `json:"audience" validate:"required"`
	Agenda      []string `json:"agenda" validate:"min=1,dive,required"`
	Organizer   string   `json:"organizer" validate:"required"`
	Tags        []string `json:"tags" validate:"min=1,dive,required"`
}

// EventPatch holds optional field updates; nil means unchanged.
type EventPatch struct {
	Title       *string
	Description *string
	Overview    *string
	Image       *string
	Venue       *string
	Location    *string
	Date        *string
	Time        *string
	Mode        *string
	Audience    *string
	Agenda      *[]string
	Organizer   *string
	Tags        *[]string
}

func (in EventInput) normalized() EventInput {
	return EventInput{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Overview:    strings.TrimSpace(in.Overview),
		Image:       strings.TrimSpace(in.Image),
		Venue:       strings.TrimSpace(in.Venue),
		Location:    strings.TrimSpace(in.Location),
		Date:        strings.TrimSpace(in.Date),
		Time:        strings.TrimSpace(in.Time),
		Mode:        string(NormalizeMode(in.Mode)),
		Audience:    strings.TrimSpace(in.Audience),
		Agenda:      cleanList(in.Agenda),
		Organizer:   strings.TrimSpace(in.Organizer),
		Tags:        cleanList(in.Tags),
	}
}

// cleanList trims items and drops blanks, keeping order.
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}

// NewEvent validates and normalizes author input into a storable event.
// The identifier is assigned by the store.
func NewEvent(in EventInput, now time.Time) (*Event, error) {
	in = in.normalized()
	if err := validateStruct("invalid event fields", in); err != nil {
		return nil, err
	}

	slug := Slugify(in.Title)
	if slug == "" {
		return nil, ErrValidationMeta("invalid event fields", map[string]string{
			"title": "must contain at least one letter or digit",
		})
	}
	date, err := NormalizeDate(in.Date)
	if err != nil {
		return nil, err
	}

	return &Event{
		Title:       in.Title,
		Slug:        slug,
		Description: in.Description,
		Overview:    in.Overview,
		Image:       in.Image,
		Venue:       in.Venue,
		Location:    in.Location,
		Date:        date,
		Time:        in.Time,
		Mode:        Mode(in.Mode),
		Audience:    in.Audience,
		Agenda:      in.Agenda,
		Organizer:   in.Organizer,
		Tags:        in.Tags,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}, nil
}

func (e *Event) input() EventInput {
	return EventInput{
		Title:       e.Title,
		Description: e.Description,
		Overview:    e.Overview,
		Image:       e.Image,
		Venue:       e.Venue,
		Location:    e.Location,
		Date:        e.Date,
		Time:        e.Time,
		Mode:        string(e.Mode),
		Audience:    e.Audience,
		Agenda:      append([]string(nil), e.Agenda...),
		Organizer:   e.Organizer,
		Tags:        append([]string(nil), e.Tags...),
	}
}

// ApplyUpdate patches the event in place. The slug is re-derived only when the
// title changes and the date is re-normalized only when it changes. On error the
// event is left untouched.
func (e *Event) ApplyUpdate(p EventPatch, now time.Time) error {
	in := e.input()
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&in.Title, p.Title)
	set(&in.Description, p.Description)
	set(&in.Overview, p.Overview)
	set(&in.Image, p.Image)
	set(&in.Venue, p.Venue)
	set(&in.Location, p.Location)
	set(&in.Date, p.Date)
	set(&in.Time, p.Time)
	set(&in.Mode, p.Mode)
	set(&in.Audience, p.Audience)
	set(&in.Organizer, p.Organizer)
	if p.Agenda != nil {
		in.Agenda = *p.Agenda
	}
	if p.Tags != nil {
		in.Tags = *p.Tags
	}

	in = in.normalized()
	if err := validateStruct("invalid event fields", in); err != nil {
		return err
	}

	slug := e.Slug
	if in.Title != e.Title {
		slug = Slugify(in.Title)
		if slug == "" {
			return ErrValidationMeta("invalid event fields", map[string]string{
				"title": "must contain at least one letter or digit",
			})
		}
	}
	date := e.Date
	if in.Date != e.Date {
		d, err := NormalizeDate(in.Date)
		if err != nil {
			return err
		}
		date = d
	}

	e.Title = in.Title
	e.Slug = slug
	e.Description = in.Description
	e.Overview = in.Overview
	e.Image = in.Image
	e.Venue = in.Venue
	e.Location = in.Location
	e.Date = date
	e.Time = in.Time
	e.Mode = Mode(in.Mode)
	e.Audience = in.Audience
	e.Agenda = in.Agenda
	e.Organizer = in.Organizer
	e.Tags = in.Tags
	e.UpdatedAt = now.UTC()
	return nil
}

// SharesTag reports whether both events carry at least one common tag (case-insensitive).
func (e *Event) SharesTag(other *Event) bool {
	seen := make(map[string]struct{}, len(e.Tags))
	for _, t := range e.Tags {
		seen[strings.ToLower(t)] = struct{}{}
	}
	for _, t := range other.Tags {
		if _, ok := seen[strings.ToLower(t)]; ok {
			return true
		}
	}
	return false
}
