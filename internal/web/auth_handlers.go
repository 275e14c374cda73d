package web

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/example/holidaze/internal/auth"
	"github.com/example/holidaze/internal/holidaze"
)

type sessionView struct {
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	VenueManager bool   `json:"venueManager"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in holidaze.RegisterInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	p, err := s.API.Register(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in holidaze.LoginInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	res, err := s.API.Login(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	name, err := auth.NameFromToken(res.AccessToken)
	if err != nil {
		s.Log.Debug("no name in access token, using login response", zap.Error(err))
		name = res.Name
	}
	sess := auth.Session{Token: res.AccessToken, Name: name, Email: res.Email, VenueManager: res.VenueManager}
	if err := s.Auth.SetSession(w, r, sess); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionView{Name: sess.Name, Email: sess.Email, VenueManager: sess.VenueManager})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.Auth.ClearSession(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.FromContext(r.Context())
	p, err := s.client(r).Profile(r.Context(), sess.Name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleAvatar(w http.ResponseWriter, r *http.Request) {
	var in struct {
		URL string `json:"url"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	sess, _ := auth.FromContext(r.Context())
	p, err := s.client(r).UpdateAvatar(r.Context(), sess.Name, in.URL)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
