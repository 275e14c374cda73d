// Package booking runs the validate-then-submit flow against the Holidaze
// API and records every attempt.
package booking

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/holidaze/internal/attempts"
	"github.com/example/holidaze/internal/availability"
	"github.com/example/holidaze/internal/holidaze"
)

// API is the part of the Holidaze client the service needs. Pass a client
// already bound to the caller's token.
type API interface {
	GetVenue(ctx context.Context, id string) (holidaze.Venue, error)
	CreateBooking(ctx context.Context, req availability.BookingRequest) (holidaze.Booking, error)
	GetBooking(ctx context.Context, id string) (holidaze.Booking, error)
	UpdateBooking(ctx context.Context, id string, in holidaze.BookingUpdate) (holidaze.Booking, error)
}

type Service struct {
	log      *zap.Logger
	recorder attempts.Recorder
}

func NewService(log *zap.Logger, recorder attempts.Recorder) *Service {
	if recorder == nil {
		recorder = attempts.Nop{}
	}
	return &Service{log: log, recorder: recorder}
}

// VenueAvailability is a venue together with the days it cannot be booked.
type VenueAvailability struct {
	Venue   holidaze.Venue
	Blocked availability.BlockedSet
}

// Load fetches a venue with its bookings and derives the blocked days.
func (s *Service) Load(ctx context.Context, api API, venueID string) (VenueAvailability, error) {
	return s.load(ctx, api, venueID, "")
}

func (s *Service) load(ctx context.Context, api API, venueID, exclude string) (VenueAvailability, error) {
	v, err := api.GetVenue(ctx, venueID)
	if err != nil {
		return VenueAvailability{}, &FetchFailure{What: "venue " + venueID, Err: err}
	}
	return VenueAvailability{Venue: v, Blocked: s.blocked(v, exclude)}, nil
}

// blocked builds the set from the venue's bookings, leaving out the booking
// with id exclude. Bookings with unreadable dates are skipped; the API still
// rejects real overlaps.
func (s *Service) blocked(v holidaze.Venue, exclude string) availability.BlockedSet {
	intervals := make([]availability.Interval, 0, len(v.Bookings))
	for _, b := range v.Bookings {
		if exclude != "" && b.ID == exclude {
			continue
		}
		iv, err := b.Interval()
		if err != nil {
			s.log.Warn("skipping booking with unreadable dates",
				zap.String("venue_id", v.ID), zap.String("booking_id", b.ID), zap.Error(err))
			continue
		}
		intervals = append(intervals, iv)
	}
	return availability.BuildBlockedSet(intervals)
}

// Book validates stay against fresh availability and submits it. Local
// validation failures are returned as *availability.Error and never reach
// the API.
func (s *Service) Book(ctx context.Context, api API, profile, venueID string, stay availability.Stay) (holidaze.Booking, error) {
	a := attempts.Attempt{Profile: profile, VenueID: venueID, DateFrom: stay.From.String(), DateTo: stay.To.String(), Guests: stay.Guests}

	va, err := s.load(ctx, api, venueID, "")
	if err != nil {
		s.record(ctx, a, err)
		return holidaze.Booking{}, err
	}
	req, err := availability.Validate(stay, va.Venue.Availability(), va.Blocked)
	if err != nil {
		s.record(ctx, a, err)
		return holidaze.Booking{}, err
	}

	created, err := api.CreateBooking(ctx, req)
	if err != nil {
		err = rejection(err)
		s.record(ctx, a, err)
		return holidaze.Booking{}, err
	}
	a.BookingID = &created.ID
	s.record(ctx, a, nil)
	s.log.Info("booking created", zap.String("profile", profile), zap.String("venue_id", venueID),
		zap.String("booking_id", created.ID), zap.String("from", req.DateFrom), zap.String("to", req.DateTo))
	return created, nil
}

// Update changes an existing booking's dates or guests. The new stay is
// checked against the venue's other bookings only.
func (s *Service) Update(ctx context.Context, api API, profile, bookingID string, upd holidaze.BookingUpdate) (holidaze.Booking, error) {
	current, err := api.GetBooking(ctx, bookingID)
	if err != nil {
		return holidaze.Booking{}, &FetchFailure{What: "booking " + bookingID, Err: err}
	}
	if current.Venue == nil || current.Venue.ID == "" {
		return holidaze.Booking{}, &FetchFailure{What: "booking " + bookingID, Err: errors.New("booking has no venue")}
	}

	stay, err := merge(current, upd)
	if err != nil {
		return holidaze.Booking{}, err
	}
	a := attempts.Attempt{Profile: profile, VenueID: current.Venue.ID, DateFrom: stay.From.String(), DateTo: stay.To.String(), Guests: stay.Guests}

	va, err := s.load(ctx, api, current.Venue.ID, bookingID)
	if err != nil {
		s.record(ctx, a, err)
		return holidaze.Booking{}, err
	}
	req, err := availability.Validate(stay, va.Venue.Availability(), va.Blocked)
	if err != nil {
		s.record(ctx, a, err)
		return holidaze.Booking{}, err
	}

	updated, err := api.UpdateBooking(ctx, bookingID, holidaze.BookingUpdate{
		DateFrom: &req.DateFrom,
		DateTo:   &req.DateTo,
		Guests:   &req.Guests,
	})
	if err != nil {
		err = rejection(err)
		s.record(ctx, a, err)
		return holidaze.Booking{}, err
	}
	a.BookingID = &updated.ID
	s.record(ctx, a, nil)
	return updated, nil
}

// merge overlays the update on the booking's current values.
func merge(current holidaze.Booking, upd holidaze.BookingUpdate) (availability.Stay, error) {
	iv, _ := current.Interval()
	stay := availability.Stay{From: iv.From, To: iv.To, Guests: current.Guests}

	var problems []string
	if upd.DateFrom != nil {
		d, err := availability.ParseDate(*upd.DateFrom)
		if err != nil {
			problems = append(problems, fmt.Sprintf("dateFrom: %v", err))
		}
		stay.From = d
	}
	if upd.DateTo != nil {
		d, err := availability.ParseDate(*upd.DateTo)
		if err != nil {
			problems = append(problems, fmt.Sprintf("dateTo: %v", err))
		}
		stay.To = d
	}
	if upd.Guests != nil {
		stay.Guests = *upd.Guests
	}
	if len(problems) > 0 {
		return availability.Stay{}, &holidaze.InputError{Problems: problems}
	}
	return stay, nil
}

func rejection(err error) error {
	if errors.Is(err, holidaze.ErrNotAuthenticated) {
		return err
	}
	var apiErr *holidaze.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = defaultRejection
		}
		return &RemoteRejection{Status: apiErr.Status, Message: msg, Err: err}
	}
	return &RemoteRejection{Message: defaultRejection, Err: err}
}

func (s *Service) record(ctx context.Context, a attempts.Attempt, err error) {
	a.Outcome = outcome(err)
	if err != nil {
		msg := err.Error()
		a.Message = &msg
		if code, ok := availability.CodeOf(err); ok {
			c := string(code)
			a.Code = &c
		}
	}
	if rerr := s.recorder.Record(ctx, a); rerr != nil {
		s.log.Warn("record booking attempt", zap.Error(rerr), zap.String("venue_id", a.VenueID))
	}
}

func outcome(err error) attempts.Outcome {
	var ff *FetchFailure
	var rr *RemoteRejection
	switch {
	case err == nil:
		return attempts.Booked
	case errors.As(err, &ff):
		return attempts.FetchFailed
	case errors.As(err, &rr):
		return attempts.Rejected
	default:
		return attempts.Invalid
	}
}
