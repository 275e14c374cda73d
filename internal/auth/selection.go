package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/example/holidaze/internal/availability"
)

const selectionTTL = 24 * time.Hour

type storedSelection struct {
	From availability.Date `json:"f"`
	To   availability.Date `json:"t"`
}

// selectionCookie derives a cookie name from the venue id. Ids come from
// the URL, so they are hashed to stay within cookie-name characters.
func selectionCookie(venueID string) string {
	sum := sha256.Sum256([]byte(venueID))
	return "holidaze_sel_" + hex.EncodeToString(sum[:16])
}

// SaveSelection keeps the in-progress date range for one venue. An empty
// selection removes the cookie.
func (s *Store) SaveSelection(w http.ResponseWriter, r *http.Request, venueID string, sel availability.Selection) error {
	name := selectionCookie(venueID)
	if sel.State() == availability.Empty {
		http.SetCookie(w, &http.Cookie{Name: name, Path: "/", HttpOnly: true, MaxAge: -1})
		return nil
	}
	var v storedSelection
	v.From, _ = sel.From()
	v.To, _ = sel.To()
	encoded, err := s.sc.Encode(name, v)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
		MaxAge:   int(selectionTTL.Seconds()),
	})
	return nil
}

// LoadSelection returns the stored range for a venue, or an empty selection
// when there is none or it does not decode.
func (s *Store) LoadSelection(r *http.Request, venueID string) availability.Selection {
	name := selectionCookie(venueID)
	c, err := r.Cookie(name)
	if err != nil {
		return availability.Selection{}
	}
	var v storedSelection
	if err := s.sc.Decode(name, c.Value, &v); err != nil {
		return availability.Selection{}
	}
	sel, err := availability.RestoreSelection(v.From, v.To)
	if err != nil {
		return availability.Selection{}
	}
	return sel
}
