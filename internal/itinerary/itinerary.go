// Package itinerary splits a profile's bookings into upcoming and past stays.
package itinerary

import (
	"sort"

	"github.com/example/holidaze/internal/availability"
	"github.com/example/holidaze/internal/holidaze"
)

type Stay struct {
	holidaze.Booking
	Nights int `json:"nights"`

	from availability.Date
}

// CheckIn is the parsed check-in day.
func (s Stay) CheckIn() availability.Date { return s.from }

type Itinerary struct {
	// Next is the soonest upcoming stay; nil when there is none.
	Next        *Stay  `json:"next"`
	Upcoming    []Stay `json:"upcoming"`
	Past        []Stay `json:"past"`
	TotalNights int    `json:"totalNights"`
	// Skipped counts bookings whose dates did not parse.
	Skipped int `json:"skipped,omitempty"`
}

// StayNights counts a booking as at least one night.
func StayNights(iv availability.Interval) int {
	if n := iv.Nights(); n > 0 {
		return n
	}
	return 1
}

// Build sorts a guest's bookings: upcoming (check-in today or later)
// soonest first, past most recent first.
func Build(bookings []holidaze.Booking, today availability.Date) Itinerary {
	var it Itinerary
	for _, b := range bookings {
		iv, err := b.Interval()
		if err != nil {
			it.Skipped++
			continue
		}
		s := Stay{Booking: b, Nights: StayNights(iv), from: iv.From}
		it.TotalNights += s.Nights
		if iv.From.Before(today) {
			it.Past = append(it.Past, s)
		} else {
			it.Upcoming = append(it.Upcoming, s)
		}
	}
	sort.SliceStable(it.Upcoming, func(i, j int) bool { return it.Upcoming[i].from.Before(it.Upcoming[j].from) })
	sort.SliceStable(it.Past, func(i, j int) bool { return it.Past[j].from.Before(it.Past[i].from) })
	if len(it.Upcoming) > 0 {
		next := it.Upcoming[0]
		it.Next = &next
	}
	return it
}

// Split is the venue manager's view: a booking stays upcoming until its
// check-out day has passed. API order is kept.
func Split(bookings []holidaze.Booking, today availability.Date) (upcoming, past []holidaze.Booking) {
	for _, b := range bookings {
		iv, err := b.Interval()
		if err == nil && iv.To.Before(today) {
			past = append(past, b)
			continue
		}
		upcoming = append(upcoming, b)
	}
	return upcoming, past
}
