package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/securecookie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/holidaze/internal/availability"
)

func newTestStore() *Store {
	return NewStore(securecookie.GenerateRandomKey(32), securecookie.GenerateRandomKey(32))
}

// carry copies the cookies set on rec onto a fresh request.
func carry(rec *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestSessionRoundTrip(t *testing.T) {
	s := newTestStore()
	want := Session{Token: "tok", Name: "ola", Email: "ola@stud.noroff.no", VenueManager: true}

	rec := httptest.NewRecorder()
	require.NoError(t, s.SetSession(rec, httptest.NewRequest(http.MethodPost, "/", nil), want))

	got, ok := s.GetSession(carry(rec))
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestSessionTampered(t *testing.T) {
	s := newTestStore()
	rec := httptest.NewRecorder()
	require.NoError(t, s.SetSession(rec, httptest.NewRequest(http.MethodPost, "/", nil), Session{Token: "tok", Name: "ola"}))

	// a store with different keys cannot read it
	_, ok := newTestStore().GetSession(carry(rec))
	assert.False(t, ok)
}

func TestClearSession(t *testing.T) {
	s := newTestStore()
	rec := httptest.NewRecorder()
	s.ClearSession(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookieName, cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)

	_, ok := s.GetSession(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestRequireAuth(t *testing.T) {
	s := newTestStore()
	var seen Session
	h := s.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	login := httptest.NewRecorder()
	require.NoError(t, s.SetSession(login, httptest.NewRequest(http.MethodPost, "/", nil), Session{Token: "tok", Name: "ola"}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, carry(login))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ola", seen.Name)
}

func TestRequireManager(t *testing.T) {
	h := RequireManager(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	tests := []struct {
		name string
		sess *Session
		want int
	}{
		{"no session", nil, http.StatusUnauthorized},
		{"guest", &Session{Token: "t", Name: "g"}, http.StatusForbidden},
		{"manager", &Session{Token: "t", Name: "m", VenueManager: true}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.sess != nil {
				r = r.WithContext(WithSession(r.Context(), *tt.sess))
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, r)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestSelectionCookie(t *testing.T) {
	s := newTestStore()
	from, _ := availability.ParseDate("2024-06-10")
	to, _ := availability.ParseDate("2024-06-15")
	sel := availability.Selection{}.Click(from).Click(to)

	rec := httptest.NewRecorder()
	require.NoError(t, s.SaveSelection(rec, httptest.NewRequest(http.MethodPost, "/", nil), "v1", sel))

	got := s.LoadSelection(carry(rec), "v1")
	assert.Equal(t, sel, got)
	assert.Equal(t, availability.Empty, s.LoadSelection(carry(rec), "v2").State())
}

func TestSelectionCookiePartial(t *testing.T) {
	s := newTestStore()
	from, _ := availability.ParseDate("2024-06-10")
	sel := availability.Selection{}.Click(from)

	rec := httptest.NewRecorder()
	require.NoError(t, s.SaveSelection(rec, httptest.NewRequest(http.MethodPost, "/", nil), "v1", sel))

	got := s.LoadSelection(carry(rec), "v1")
	assert.Equal(t, availability.PartialFrom, got.State())
	d, ok := got.From()
	assert.True(t, ok)
	assert.Equal(t, from, d)
}

func TestSelectionCookieOddVenueID(t *testing.T) {
	s := newTestStore()
	from, _ := availability.ParseDate("2024-06-10")
	to, _ := availability.ParseDate("2024-06-12")
	sel := availability.Selection{}.Click(from).Click(to)
	id := "a b;c=d/\u00e9"

	rec := httptest.NewRecorder()
	require.NoError(t, s.SaveSelection(rec, httptest.NewRequest(http.MethodPost, "/", nil), id, sel))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Regexp(t, `^holidaze_sel_[0-9a-f]{32}$`, cookies[0].Name)

	assert.Equal(t, sel, s.LoadSelection(carry(rec), id))
	assert.Equal(t, availability.Empty, s.LoadSelection(carry(rec), "a b").State())
}

func TestSaveEmptySelectionClears(t *testing.T) {
	s := newTestStore()
	rec := httptest.NewRecorder()
	require.NoError(t, s.SaveSelection(rec, httptest.NewRequest(http.MethodPost, "/", nil), "v1", availability.Selection{}))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestNameFromToken(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"name": "ola", "email": "ola@stud.noroff.no"}).
		SignedString([]byte("not-the-api-secret"))
	require.NoError(t, err)

	name, err := NameFromToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "ola", name)

	_, err = NameFromToken("garbage")
	assert.Error(t, err)

	noName, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1"}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, err = NameFromToken(noName)
	assert.EqualError(t, err, "token has no name claim")
}
