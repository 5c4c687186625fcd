package dto

import (
	"time"

	"github.com/baechuer/devevent-service/internal/domain"
)

func (r CreateEventReq) ToInput() domain.EventInput {
	return domain.EventInput{
		Title:       r.Title,
		Description: r.Description,
		Overview:    r.Overview,
		Image:       r.Image,
		Venue:       r.Venue,
		Location:    r.Location,
		Date:        r.Date,
		Time:        r.Time,
		Mode:        r.Mode,
		Audience:    r.Audience,
		Agenda:      r.Agenda,
		Organizer:   r.Organizer,
		Tags:        r.Tags,
	}
}

func (r UpdateEventReq) ToPatch() domain.EventPatch {
	return domain.EventPatch{
		Title:       r.Title,
		Description: r.Description,
		Overview:    r.Overview,
		Image:       r.Image,
		Venue:       r.Venue,
		Location:    r.Location,
		Date:        r.Date,
		Time:        r.Time,
		Mode:        r.Mode,
		Audience:    r.Audience,
		Agenda:      r.Agenda,
		Organizer:   r.Organizer,
		Tags:        r.Tags,
	}
}

func ToEventResp(e *domain.Event) EventResp {
	return EventResp{
		ID:          e.ID,
		Title:       e.Title,
		Slug:        e.Slug,
		Description: e.Description,
		Overview:    e.Overview,
		Image:       e.Image,
		Venue:       e.Venue,
		Location:    e.Location,
		Date:        e.Date,
		Time:        e.Time,
		Mode:        string(e.Mode),
		Audience:    e.Audience,
		Agenda:      nonNil(e.Agenda),
		Organizer:   e.Organizer,
		Tags:        nonNil(e.Tags),
		CreatedAt:   timePtr(e.CreatedAt),
		UpdatedAt:   timePtr(e.UpdatedAt),
	}
}

func ToEventResps(events []*domain.Event) []EventResp {
	out := make([]EventResp, 0, len(events))
	for _, e := range events {
		out = append(out, ToEventResp(e))
	}
	return out
}

func ToBookingResp(b *domain.Booking) BookingResp {
	return BookingResp{
		ID:        b.ID,
		EventID:   b.EventID,
		Email:     b.Email,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	t = t.UTC()
	return &t
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
