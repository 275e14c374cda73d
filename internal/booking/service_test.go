package booking

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/example/holidaze/internal/attempts"
	"github.com/example/holidaze/internal/availability"
	"github.com/example/holidaze/internal/db"
	"github.com/example/holidaze/internal/holidaze"
)

type fakeAPI struct {
	venue      holidaze.Venue
	venueErr   error
	booking    holidaze.Booking
	bookingErr error
	submitErr  error

	created []availability.BookingRequest
	updated []holidaze.BookingUpdate
}

func (f *fakeAPI) GetVenue(_ context.Context, id string) (holidaze.Venue, error) {
	if f.venueErr != nil {
		return holidaze.Venue{}, f.venueErr
	}
	return f.venue, nil
}

func (f *fakeAPI) CreateBooking(_ context.Context, req availability.BookingRequest) (holidaze.Booking, error) {
	f.created = append(f.created, req)
	if f.submitErr != nil {
		return holidaze.Booking{}, f.submitErr
	}
	return holidaze.Booking{ID: "new", DateFrom: req.DateFrom, DateTo: req.DateTo, Guests: req.Guests}, nil
}

func (f *fakeAPI) GetBooking(_ context.Context, id string) (holidaze.Booking, error) {
	if f.bookingErr != nil {
		return holidaze.Booking{}, f.bookingErr
	}
	return f.booking, nil
}

func (f *fakeAPI) UpdateBooking(_ context.Context, id string, in holidaze.BookingUpdate) (holidaze.Booking, error) {
	f.updated = append(f.updated, in)
	if f.submitErr != nil {
		return holidaze.Booking{}, f.submitErr
	}
	return holidaze.Booking{ID: id, DateFrom: *in.DateFrom, DateTo: *in.DateTo, Guests: *in.Guests}, nil
}

type memRecorder struct {
	mu  sync.Mutex
	all []attempts.Attempt
}

func (m *memRecorder) Record(_ context.Context, a attempts.Attempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.all = append(m.all, a)
	return nil
}

func (m *memRecorder) ListByProfile(context.Context, string, int) ([]attempts.Attempt, error) {
	return m.all, nil
}

func (m *memRecorder) Get(_ context.Context, _ string, id uuid.UUID) (attempts.Attempt, error) {
	for _, a := range m.all {
		if a.ID == id {
			return a, nil
		}
	}
	return attempts.Attempt{}, db.ErrNotFound
}

func d(s string) availability.Date {
	out, err := availability.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return out
}

func cabin() holidaze.Venue {
	return holidaze.Venue{
		ID: "v1", Name: "Cabin", Price: 100, MaxGuests: 4,
		Bookings: []holidaze.Booking{
			{ID: "b1", DateFrom: "2024-06-10T00:00:00.000Z", DateTo: "2024-06-12T00:00:00.000Z", Guests: 2},
			{ID: "bad", DateFrom: "whenever", DateTo: "2024-06-01"},
		},
	}
}

func TestBookSubmitsValidStay(t *testing.T) {
	api := &fakeAPI{venue: cabin()}
	rec := &memRecorder{}
	svc := NewService(zaptest.NewLogger(t), rec)

	got, err := svc.Book(context.Background(), api, "ola", "v1", availability.Stay{From: d("2024-06-12"), To: d("2024-06-14"), Guests: 2})
	require.NoError(t, err)
	assert.Equal(t, "new", got.ID)
	require.Len(t, api.created, 1)
	assert.Equal(t, availability.BookingRequest{VenueID: "v1", DateFrom: "2024-06-12", DateTo: "2024-06-14", Guests: 2}, api.created[0])

	require.Len(t, rec.all, 1)
	assert.Equal(t, attempts.Booked, rec.all[0].Outcome)
	assert.Equal(t, "new", *rec.all[0].BookingID)
}

func TestBookValidationNeverSubmits(t *testing.T) {
	tests := []struct {
		name string
		stay availability.Stay
		want error
	}{
		{"missing", availability.Stay{Guests: 1}, availability.ErrMissingDates},
		{"inverted", availability.Stay{From: d("2024-06-14"), To: d("2024-06-13"), Guests: 1}, availability.ErrInvalidRange},
		{"no guests", availability.Stay{From: d("2024-06-14"), To: d("2024-06-15")}, availability.ErrInvalidGuestCount},
		{"too many", availability.Stay{From: d("2024-06-14"), To: d("2024-06-15"), Guests: 5}, availability.ErrGuestLimitExceeded},
		{"conflict", availability.Stay{From: d("2024-06-09"), To: d("2024-06-11"), Guests: 1}, availability.ErrDateConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{venue: cabin()}
			rec := &memRecorder{}
			svc := NewService(zaptest.NewLogger(t), rec)

			_, err := svc.Book(context.Background(), api, "ola", "v1", tt.stay)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, api.created)
			require.Len(t, rec.all, 1)
			assert.Equal(t, attempts.Invalid, rec.all[0].Outcome)
			require.NotNil(t, rec.all[0].Code)
		})
	}
}

func TestBookFetchFailure(t *testing.T) {
	api := &fakeAPI{venueErr: errors.New("dial tcp: timeout")}
	rec := &memRecorder{}
	svc := NewService(zaptest.NewLogger(t), rec)

	_, err := svc.Book(context.Background(), api, "ola", "v1", availability.Stay{From: d("2024-06-12"), To: d("2024-06-14"), Guests: 1})
	var ff *FetchFailure
	require.ErrorAs(t, err, &ff)
	assert.Empty(t, api.created)
	assert.Equal(t, attempts.FetchFailed, rec.all[0].Outcome)
}

func TestBookVenueNotFound(t *testing.T) {
	api := &fakeAPI{venueErr: &holidaze.APIError{Status: 404, Message: "No venue with such ID"}}
	svc := NewService(zaptest.NewLogger(t), nil)

	_, err := svc.Book(context.Background(), api, "ola", "v1", availability.Stay{})
	assert.ErrorIs(t, err, holidaze.ErrNotFound)
}

func TestBookRemoteRejection(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"api message", &holidaze.APIError{Status: 409, Message: "The selected dates overlap"}, 409, "The selected dates overlap"},
		{"api no message", &holidaze.APIError{Status: 400}, 400, "Could not create booking"},
		{"network", errors.New("connection reset"), 0, "Could not create booking"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{venue: cabin(), submitErr: tt.err}
			rec := &memRecorder{}
			svc := NewService(zaptest.NewLogger(t), rec)

			_, err := svc.Book(context.Background(), api, "ola", "v1", availability.Stay{From: d("2024-06-12"), To: d("2024-06-14"), Guests: 1})
			var rr *RemoteRejection
			require.ErrorAs(t, err, &rr)
			assert.Equal(t, tt.wantStatus, rr.Status)
			assert.Equal(t, tt.wantMsg, rr.Message)
			assert.Equal(t, attempts.Rejected, rec.all[0].Outcome)
		})
	}
}

func TestBookNotAuthenticatedPassesThrough(t *testing.T) {
	api := &fakeAPI{venue: cabin(), submitErr: holidaze.ErrNotAuthenticated}
	svc := NewService(zaptest.NewLogger(t), nil)
	_, err := svc.Book(context.Background(), api, "", "v1", availability.Stay{From: d("2024-06-12"), To: d("2024-06-14"), Guests: 1})
	assert.ErrorIs(t, err, holidaze.ErrNotAuthenticated)
}

func TestLoadSkipsUnreadableBookings(t *testing.T) {
	svc := NewService(zaptest.NewLogger(t), nil)
	va, err := svc.Load(context.Background(), &fakeAPI{venue: cabin()}, "v1")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-10", "2024-06-11"}, va.Blocked.Strings())
}

func TestUpdateIgnoresOwnBooking(t *testing.T) {
	current := holidaze.Booking{ID: "b1", DateFrom: "2024-06-10", DateTo: "2024-06-12", Guests: 2, Venue: &holidaze.Venue{ID: "v1"}}
	api := &fakeAPI{venue: cabin(), booking: current}
	svc := NewService(zaptest.NewLogger(t), nil)

	// extending b1 by a night overlaps only itself
	to := "2024-06-13"
	got, err := svc.Update(context.Background(), api, "ola", "b1", holidaze.BookingUpdate{DateTo: &to})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-10", got.DateFrom)
	assert.Equal(t, "2024-06-13", got.DateTo)
	assert.Equal(t, 2, got.Guests)
}

func TestUpdateConflictWithOtherBooking(t *testing.T) {
	v := cabin()
	v.Bookings = append(v.Bookings, holidaze.Booking{ID: "b2", DateFrom: "2024-06-20", DateTo: "2024-06-22"})
	current := holidaze.Booking{ID: "b1", DateFrom: "2024-06-10", DateTo: "2024-06-12", Guests: 2, Venue: &holidaze.Venue{ID: "v1"}}
	api := &fakeAPI{venue: v, booking: current}
	svc := NewService(zaptest.NewLogger(t), nil)

	to := "2024-06-21"
	_, err := svc.Update(context.Background(), api, "ola", "b1", holidaze.BookingUpdate{DateTo: &to})
	assert.ErrorIs(t, err, availability.ErrDateConflict)
	assert.Empty(t, api.updated)
}

func TestUpdateBadDate(t *testing.T) {
	current := holidaze.Booking{ID: "b1", DateFrom: "2024-06-10", DateTo: "2024-06-12", Guests: 2, Venue: &holidaze.Venue{ID: "v1"}}
	api := &fakeAPI{venue: cabin(), booking: current}
	svc := NewService(zaptest.NewLogger(t), nil)

	from := "tomorrow"
	_, err := svc.Update(context.Background(), api, "ola", "b1", holidaze.BookingUpdate{DateFrom: &from})
	var inErr *holidaze.InputError
	require.ErrorAs(t, err, &inErr)
	assert.Empty(t, api.updated)
}

func TestUpdateBookingWithoutVenue(t *testing.T) {
	api := &fakeAPI{booking: holidaze.Booking{ID: "b1"}}
	svc := NewService(zaptest.NewLogger(t), nil)
	_, err := svc.Update(context.Background(), api, "ola", "b1", holidaze.BookingUpdate{})
	var ff *FetchFailure
	assert.ErrorAs(t, err, &ff)
}
