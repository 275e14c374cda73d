package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

const (
	cookieName = "holidaze_session"
	sessionTTL = 14 * 24 * time.Hour
)

// Session is the signed-in user as far as this server is concerned. The API
// token is the only credential; everything else is cached for display.
type Session struct {
	Token        string `json:"t"`
	Name         string `json:"n"`
	Email        string `json:"e,omitempty"`
	VenueManager bool   `json:"m,omitempty"`
}

type Store struct {
	sc *securecookie.SecureCookie
}

type ctxKey struct{}

func NewStore(hashKey, blockKey []byte) *Store {
	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(int(sessionTTL.Seconds()))
	sc.SetSerializer(securecookie.JSONEncoder{})
	return &Store{sc: sc}
}

func (s *Store) SetSession(w http.ResponseWriter, r *http.Request, sess Session) error {
	encoded, err := s.sc.Encode(cookieName, sess)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
		MaxAge:   int(sessionTTL.Seconds()),
	})
	return nil
}

func (s *Store) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

func (s *Store) GetSession(r *http.Request) (Session, bool) {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return Session{}, false
	}
	var sess Session
	if err := s.sc.Decode(cookieName, c.Value, &sess); err != nil {
		return Session{}, false
	}
	if sess.Token == "" || sess.Name == "" {
		return Session{}, false
	}
	return sess, true
}

// RequireAuth rejects requests without a valid session cookie and puts the
// session on the request context otherwise.
func (s *Store) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.GetSession(r)
		if !ok {
			deny(w, http.StatusUnauthorized, "Please log in.")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

// RequireManager must run after RequireAuth.
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := FromContext(r.Context())
		if !ok {
			deny(w, http.StatusUnauthorized, "Please log in.")
			return
		}
		if !sess.VenueManager {
			deny(w, http.StatusForbidden, "Venue manager access required.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func WithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, sess)
}

func FromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(ctxKey{}).(Session)
	return sess, ok
}

func deny(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
