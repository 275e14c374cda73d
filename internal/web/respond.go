package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/example/holidaze/internal/availability"
	"github.com/example/holidaze/internal/booking"
	"github.com/example/holidaze/internal/db"
	"github.com/example/holidaze/internal/holidaze"
)

type errorResponse struct {
	Error    string   `json:"error"`
	Code     string   `json:"code,omitempty"`
	Problems []string `json:"problems,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// upstreamStatus mirrors API client errors and turns everything else into
// a bad gateway.
func upstreamStatus(status int) int {
	if status >= 400 && status < 500 {
		return status
	}
	return http.StatusBadGateway
}

// fail maps an error from the service layer to a response.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var (
		inErr    *holidaze.InputError
		availErr *availability.Error
		rejected *booking.RemoteRejection
		fetch    *booking.FetchFailure
		apiErr   *holidaze.APIError
	)
	switch {
	case errors.As(err, &inErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: inErr.Error(), Problems: inErr.Problems})
	case errors.As(err, &availErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: availErr.Message, Code: string(availErr.Code)})
	case errors.Is(err, holidaze.ErrNotAuthenticated):
		writeError(w, http.StatusUnauthorized, "Please log in.")
	case errors.Is(err, holidaze.ErrNotFound), errors.Is(err, db.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found.")
	case errors.As(err, &rejected):
		s.Log.Info("booking rejected", zap.Int("status", rejected.Status), zap.String("message", rejected.Message), zap.Error(rejected.Err))
		writeError(w, upstreamStatus(rejected.Status), rejected.Message)
	case errors.As(err, &fetch):
		s.Log.Warn("fetch failure", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusBadGateway, fetch.UserMessage())
	case errors.As(err, &apiErr):
		writeError(w, upstreamStatus(apiErr.Status), apiErr.Message)
	default:
		s.Log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Something went wrong.")
	}
}
