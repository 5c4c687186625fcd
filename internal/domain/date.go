package domain

import (
	"strings"
	"time"
)

// ISODate is the stored calendar-date form.
const ISODate = "2006-01-02"

// accepted input layouts, tried in order
var dateLayouts = []string{
	ISODate,
	"2006-1-2",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"January 2 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"Monday, January 2, 2006",
	"Mon, January 2, 2006",
	"Mon Jan 2 2006",
	"Mon, 02 Jan 2006",
}

// NormalizeDate parses a human or machine date and returns it as YYYY-MM-DD.
// The calendar date is kept as written: no time-zone conversion is applied.
func NormalizeDate(input string) (string, error) {
	s := strings.Join(strings.Fields(input), " ")
	if s == "" {
		return "", ErrValidationMeta("invalid event fields", map[string]string{
			"date": "is required",
		})
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(ISODate), nil
		}
	}
	return "", ErrValidationMeta("invalid date format", map[string]string{
		"date": "must be a valid calendar date",
	})
}
