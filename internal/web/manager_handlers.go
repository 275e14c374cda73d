package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/example/holidaze/internal/auth"
	"github.com/example/holidaze/internal/booking"
	"github.com/example/holidaze/internal/catalog"
	"github.com/example/holidaze/internal/holidaze"
	"github.com/example/holidaze/internal/itinerary"
)

func (s *Server) handleManagerVenues(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.FromContext(r.Context())
	venues, err := s.client(r).ProfileVenues(r.Context(), sess.Name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog.Managed(venues, s.today()))
}

func (s *Server) invalidateVenues(r *http.Request) {
	if err := s.Venues.Invalidate(r.Context()); err != nil {
		s.Log.Warn("venue cache invalidate", zap.Error(err))
	}
}

func (s *Server) handleVenueCreate(w http.ResponseWriter, r *http.Request) {
	var in holidaze.VenueInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	v, err := s.client(r).CreateVenue(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.invalidateVenues(r)
	writeJSON(w, http.StatusCreated, v)
}

func (s *Server) handleVenueUpdate(w http.ResponseWriter, r *http.Request) {
	var in holidaze.VenueUpdate
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	v, err := s.client(r).UpdateVenue(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.invalidateVenues(r)
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleVenueDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.client(r).DeleteVenue(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	s.invalidateVenues(r)
	w.WriteHeader(http.StatusNoContent)
}

type venueBookings struct {
	Venue    holidaze.Venue     `json:"venue"`
	Upcoming []holidaze.Booking `json:"upcoming"`
	Past     []holidaze.Booking `json:"past"`
}

// handleVenueBookings loads the venue and its bookings in parallel; either
// failing fails the whole view.
func (s *Server) handleVenueBookings(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	api := s.client(r)

	var (
		venue    holidaze.Venue
		bookings []holidaze.Booking
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		v, err := api.GetVenue(ctx, id)
		if err != nil {
			return &booking.FetchFailure{What: "venue " + id, Err: err}
		}
		venue = v
		return nil
	})
	g.Go(func() error {
		bs, err := api.VenueBookings(ctx, id)
		if err != nil {
			return &booking.FetchFailure{What: "bookings for venue " + id, Err: err}
		}
		bookings = bs
		return nil
	})
	if err := g.Wait(); err != nil {
		s.fail(w, r, err)
		return
	}

	up, past := itinerary.Split(bookings, s.today())
	if up == nil {
		up = []holidaze.Booking{}
	}
	if past == nil {
		past = []holidaze.Booking{}
	}
	venue.Bookings = nil
	writeJSON(w, http.StatusOK, venueBookings{Venue: venue, Upcoming: up, Past: past})
}
