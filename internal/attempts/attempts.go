package attempts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/holidaze/internal/db"
)

type Outcome string

const (
	Booked      Outcome = "booked"
	Invalid     Outcome = "invalid"
	Rejected    Outcome = "rejected"
	FetchFailed Outcome = "fetch_failed"
)

// Attempt is one submission through the booking service, successful or not.
type Attempt struct {
	ID        uuid.UUID `json:"id"`
	Profile   string    `json:"profile"`
	VenueID   string    `json:"venueId"`
	DateFrom  string    `json:"dateFrom,omitempty"`
	DateTo    string    `json:"dateTo,omitempty"`
	Guests    int       `json:"guests"`
	Outcome   Outcome   `json:"outcome"`
	BookingID *string   `json:"bookingId,omitempty"`
	Code      *string   `json:"code,omitempty"`
	Message   *string   `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Recorder interface {
	Record(ctx context.Context, a Attempt) error
	ListByProfile(ctx context.Context, profile string, limit int) ([]Attempt, error)
	// Get returns db.ErrNotFound when the attempt does not exist or
	// belongs to another profile.
	Get(ctx context.Context, profile string, id uuid.UUID) (Attempt, error)
}

// Nop is used when no database is configured.
type Nop struct{}

func (Nop) Record(context.Context, Attempt) error { return nil }

func (Nop) ListByProfile(context.Context, string, int) ([]Attempt, error) { return nil, nil }

func (Nop) Get(context.Context, string, uuid.UUID) (Attempt, error) { return Attempt{}, db.ErrNotFound }

type Repo struct{ db *db.DB }

func NewRepo(d *db.DB) *Repo { return &Repo{db: d} }

func (r *Repo) Record(ctx context.Context, a Attempt) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return r.db.Exec(ctx, `
INSERT INTO booking_attempts(id,profile,venue_id,date_from,date_to,guests,outcome,booking_id,code,message)
VALUES ($1,$2,$3,NULLIF($4,'')::date,NULLIF($5,'')::date,$6,$7,$8,$9,$10)`,
		a.ID, a.Profile, a.VenueID, a.DateFrom, a.DateTo, a.Guests, string(a.Outcome), a.BookingID, a.Code, a.Message)
}

func (r *Repo) ListByProfile(ctx context.Context, profile string, limit int) ([]Attempt, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.db.Query(ctx, selectAttempt+`
WHERE profile=$1
ORDER BY created_at DESC
LIMIT $2`, profile, limit)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, profile string, id uuid.UUID) (Attempt, error) {
	a, err := scanAttempt(r.db.QueryRow(ctx, selectAttempt+`
WHERE id=$1 AND profile=$2`, id, profile))
	if err != nil {
		return Attempt{}, db.WrapNotFound(err)
	}
	return a, nil
}

const selectAttempt = `
SELECT id,profile,venue_id,COALESCE(to_char(date_from,'YYYY-MM-DD'),''),COALESCE(to_char(date_to,'YYYY-MM-DD'),''),guests,outcome,booking_id,code,message,created_at
FROM booking_attempts`

func scanAttempt(row db.Row) (Attempt, error) {
	var a Attempt
	var outcome string
	if err := row.Scan(&a.ID, &a.Profile, &a.VenueID, &a.DateFrom, &a.DateTo, &a.Guests, &outcome,
		&a.BookingID, &a.Code, &a.Message, &a.CreatedAt); err != nil {
		return Attempt{}, err
	}
	a.Outcome = Outcome(outcome)
	return a, nil
}
