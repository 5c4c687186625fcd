package domain

import (
	"strings"
	"time"
)

// Booking is a visitor's reservation for an event. It holds the event id only.
type Booking struct {
	ID        string
	EventID   string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type bookingInput struct {
	EventID string `json:"eventId" validate:"required"`
	Email   string `json:"email" validate:"required,booking_email"`
}

func NormalizeEmail(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// NewBooking validates a booking request. Whether the event exists is checked by the store.
func NewBooking(eventID, email string, now time.Time) (*Booking, error) {
	in := bookingInput{
		EventID: strings.TrimSpace(eventID),
		Email:   NormalizeEmail(email),
	}
	if err := validateStruct("invalid booking fields", in); err != nil {
		return nil, err
	}
	return &Booking{
		EventID:   in.EventID,
		Email:     in.Email,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}, nil
}
