// Package catalog holds derivations over venue lists.
package catalog

import (
	"strings"

	"github.com/example/holidaze/internal/availability"
	"github.com/example/holidaze/internal/holidaze"
)

// FilterByName keeps venues whose name contains q, ignoring case.
// A blank q keeps everything.
func FilterByName(venues []holidaze.Venue, q string) []holidaze.Venue {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return venues
	}
	out := make([]holidaze.Venue, 0, len(venues))
	for _, v := range venues {
		if strings.Contains(strings.ToLower(v.Name), q) {
			out = append(out, v)
		}
	}
	return out
}

// UpcomingCount counts bookings whose check-out is today or later.
// Bookings with unreadable dates are counted; the API listed them.
func UpcomingCount(bookings []holidaze.Booking, today availability.Date) int {
	n := 0
	for _, b := range bookings {
		iv, err := b.Interval()
		if err != nil || !iv.To.Before(today) {
			n++
		}
	}
	return n
}

type ManagedVenue struct {
	holidaze.Venue
	UpcomingBookings int `json:"upcomingBookings"`
}

func Managed(venues []holidaze.Venue, today availability.Date) []ManagedVenue {
	out := make([]ManagedVenue, len(venues))
	for i, v := range venues {
		out[i] = ManagedVenue{Venue: v, UpcomingBookings: UpcomingCount(v.Bookings, today)}
	}
	return out
}
