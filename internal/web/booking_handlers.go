package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/example/holidaze/internal/auth"
	"github.com/example/holidaze/internal/availability"
	"github.com/example/holidaze/internal/holidaze"
	"github.com/example/holidaze/internal/itinerary"
)

type bookingInput struct {
	VenueID  string `json:"venueId"`
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`
	Guests   int    `json:"guests"`
}

// stay uses the posted dates, falling back to the venue's stored selection
// when both are left out.
func (s *Server) stay(r *http.Request, in bookingInput) (availability.Stay, error) {
	st := availability.Stay{Guests: in.Guests}
	if in.DateFrom == "" && in.DateTo == "" {
		return s.Auth.LoadSelection(r, in.VenueID).Stay(in.Guests), nil
	}

	var problems []string
	if in.DateFrom != "" {
		d, err := availability.ParseDate(in.DateFrom)
		if err != nil {
			problems = append(problems, "dateFrom: "+err.Error())
		}
		st.From = d
	}
	if in.DateTo != "" {
		d, err := availability.ParseDate(in.DateTo)
		if err != nil {
			problems = append(problems, "dateTo: "+err.Error())
		}
		st.To = d
	}
	if len(problems) > 0 {
		return st, &holidaze.InputError{Problems: problems}
	}
	return st, nil
}

func (s *Server) handleBookingCreate(w http.ResponseWriter, r *http.Request) {
	var in bookingInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if in.VenueID == "" {
		s.fail(w, r, &holidaze.InputError{Problems: []string{"venueId is required"}})
		return
	}
	st, err := s.stay(r, in)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	sess, _ := auth.FromContext(r.Context())
	created, err := s.Bookings.Book(r.Context(), s.client(r), sess.Name, in.VenueID, st)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	_ = s.Auth.SaveSelection(w, r, in.VenueID, availability.Selection{})
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleBookingGet(w http.ResponseWriter, r *http.Request) {
	b, err := s.client(r).GetBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleBookingUpdate(w http.ResponseWriter, r *http.Request) {
	var in holidaze.BookingUpdate
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	sess, _ := auth.FromContext(r.Context())
	b, err := s.Bookings.Update(r.Context(), s.client(r), sess.Name, chi.URLParam(r, "id"), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleBookingCancel(w http.ResponseWriter, r *http.Request) {
	if err := s.client(r).DeleteBooking(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMyBookings(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.FromContext(r.Context())
	bookings, err := s.client(r).ProfileBookings(r.Context(), sess.Name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	it := itinerary.Build(bookings, s.today())
	if it.Upcoming == nil {
		it.Upcoming = []itinerary.Stay{}
	}
	if it.Past == nil {
		it.Past = []itinerary.Stay{}
	}
	writeJSON(w, http.StatusOK, it)
}

func (s *Server) handleAttempts(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.FromContext(r.Context())
	list, err := s.Attempts.ListByProfile(r.Context(), sess.Name, 50)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if list == nil {
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleAttempt(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}
	sess, _ := auth.FromContext(r.Context())
	a, err := s.Attempts.Get(r.Context(), sess.Name, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}
