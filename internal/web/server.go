package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/example/holidaze/internal/attempts"
	"github.com/example/holidaze/internal/auth"
	"github.com/example/holidaze/internal/availability"
	"github.com/example/holidaze/internal/booking"
	"github.com/example/holidaze/internal/cache"
	"github.com/example/holidaze/internal/holidaze"
)

type Server struct {
	Log      *zap.Logger
	API      *holidaze.Client
	Auth     *auth.Store
	Bookings *booking.Service
	Attempts attempts.Recorder
	Venues   cache.Venues

	RateLimitPerMin int
	// Today defaults to availability.Today.
	Today func() availability.Date
}

func (s *Server) today() availability.Date {
	if s.Today != nil {
		return s.Today()
	}
	return availability.Today()
}

func (s *Server) Routes() http.Handler {
	if s.Attempts == nil {
		s.Attempts = attempts.Nop{}
	}
	if s.Venues == nil {
		s.Venues = cache.NopVenues{}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(s.Log))
	r.Use(middleware.Recoverer)
	if s.RateLimitPerMin > 0 {
		r.Use(newIPLimiter(s.RateLimitPerMin, s.Log).middleware)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/logout", s.handleLogout)

		r.Get("/venues", s.handleVenueList)
		r.Get("/venues/{id}", s.handleVenueDetail)
		r.Post("/venues/{id}/selection", s.handleSelectionClick)
		r.Delete("/venues/{id}/selection", s.handleSelectionReset)

		r.Group(func(r chi.Router) {
			r.Use(s.Auth.RequireAuth)

			r.Post("/bookings", s.handleBookingCreate)
			r.Get("/bookings/{id}", s.handleBookingGet)
			r.Put("/bookings/{id}", s.handleBookingUpdate)
			r.Delete("/bookings/{id}", s.handleBookingCancel)

			r.Get("/me", s.handleProfile)
			r.Put("/me/avatar", s.handleAvatar)
			r.Get("/me/bookings", s.handleMyBookings)
			r.Get("/me/attempts", s.handleAttempts)
			r.Get("/me/attempts/{id}", s.handleAttempt)

			r.Route("/manager", func(r chi.Router) {
				r.Use(auth.RequireManager)
				r.Get("/venues", s.handleManagerVenues)
				r.Post("/venues", s.handleVenueCreate)
				r.Put("/venues/{id}", s.handleVenueUpdate)
				r.Delete("/venues/{id}", s.handleVenueDelete)
				r.Get("/venues/{id}/bookings", s.handleVenueBookings)
			})
		})
	})
	return r
}

// client returns the API client bound to the request's session, or the
// anonymous client outside authenticated routes.
func (s *Server) client(r *http.Request) *holidaze.Client {
	if sess, ok := auth.FromContext(r.Context()); ok {
		return s.API.WithToken(sess.Token)
	}
	return s.API
}

// Start serves h on addr until ctx is cancelled, then shuts down gracefully.
func Start(ctx context.Context, addr string, h http.Handler, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	log.Info("listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
