package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/example/holidaze/internal/availability"
	"github.com/example/holidaze/internal/cache"
	"github.com/example/holidaze/internal/catalog"
	"github.com/example/holidaze/internal/holidaze"
)

type venueList struct {
	Data []holidaze.Venue  `json:"data"`
	Meta holidaze.PageMeta `json:"meta"`
}

func venueQuery(r *http.Request) (holidaze.VenueQuery, error) {
	v := r.URL.Query()
	q := holidaze.VenueQuery{Q: v.Get("q"), Sort: v.Get("sort"), SortOrder: v.Get("sortOrder")}
	for key, dst := range map[string]*int{"limit": &q.Limit, "page": &q.Page} {
		if raw := v.Get(key); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				return q, &holidaze.InputError{Problems: []string{key + " must be a positive number"}}
			}
			*dst = n
		}
	}
	return q, nil
}

func (s *Server) handleVenueList(w http.ResponseWriter, r *http.Request) {
	q, err := venueQuery(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	page, hit, err := s.Venues.Get(r.Context(), q)
	if err != nil {
		s.Log.Warn("venue cache get", zap.Error(err))
	}
	if !hit {
		venues, meta, err := s.API.ListVenues(r.Context(), q)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		page = cache.VenuePage{Venues: venues, Meta: meta}
		if err := s.Venues.Set(r.Context(), q, page); err != nil {
			s.Log.Warn("venue cache set", zap.Error(err))
		}
	}

	out := catalog.FilterByName(page.Venues, q.Q)
	if out == nil {
		out = []holidaze.Venue{}
	}
	writeJSON(w, http.StatusOK, venueList{Data: out, Meta: page.Meta})
}

type selectionView struct {
	State string              `json:"state"`
	From  string              `json:"from,omitempty"`
	To    string              `json:"to,omitempty"`
	Quote *availability.Quote `json:"quote,omitempty"`
}

func viewSelection(sel availability.Selection, price float64) selectionView {
	v := selectionView{State: sel.State().String()}
	if from, ok := sel.From(); ok {
		v.From = from.String()
	}
	if iv, ok := sel.Interval(); ok {
		v.To = iv.To.String()
		q := availability.QuoteFor(price, iv.From, iv.To)
		v.Quote = &q
	}
	return v
}

type venueDetail struct {
	Venue        holidaze.Venue `json:"venue"`
	BlockedDates []string       `json:"blockedDates"`
	Selection    selectionView  `json:"selection"`
}

func (s *Server) handleVenueDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	va, err := s.Bookings.Load(r.Context(), s.API, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sel := s.Auth.LoadSelection(r, id)
	writeJSON(w, http.StatusOK, venueDetail{
		Venue:        va.Venue,
		BlockedDates: va.Blocked.Strings(),
		Selection:    viewSelection(sel, va.Venue.Price),
	})
}

func (s *Server) handleSelectionClick(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in struct {
		Date string `json:"date"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	day, err := availability.ParseDate(in.Date)
	if err != nil {
		s.fail(w, r, &holidaze.InputError{Problems: []string{"date: " + err.Error()}})
		return
	}

	va, err := s.Bookings.Load(r.Context(), s.API, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	cal := availability.Calendar{Blocked: va.Blocked, Today: s.today()}
	sel, err := cal.Click(s.Auth.LoadSelection(r, id), day)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.Auth.SaveSelection(w, r, id, sel); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewSelection(sel, va.Venue.Price))
}

func (s *Server) handleSelectionReset(w http.ResponseWriter, r *http.Request) {
	if err := s.Auth.SaveSelection(w, r, chi.URLParam(r, "id"), availability.Selection{}); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
