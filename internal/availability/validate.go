package availability

// Venue is the part of a venue the validator needs.
type Venue struct {
	ID        string
	Price     float64
	MaxGuests int
}

// Stay is a proposed booking before validation. Zero dates are missing.
type Stay struct {
	From   Date
	To     Date
	Guests int
}

// BookingRequest is a validated booking ready for submission.
type BookingRequest struct {
	VenueID  string `json:"venueId"`
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`
	Guests   int    `json:"guests"`
}

func (r BookingRequest) Interval() (Interval, error) {
	from, err := ParseDate(r.DateFrom)
	if err != nil {
		return Interval{}, err
	}
	to, err := ParseDate(r.DateTo)
	if err != nil {
		return Interval{}, err
	}
	return Interval{From: from, To: to}, nil
}

// Validate runs the booking checks in order and stops at the first failure.
func Validate(stay Stay, venue Venue, blocked BlockedSet) (BookingRequest, error) {
	if stay.From.IsZero() || stay.To.IsZero() {
		return BookingRequest{}, ErrMissingDates
	}
	if !stay.To.After(stay.From) {
		return BookingRequest{}, ErrInvalidRange
	}
	if stay.Guests < 1 {
		return BookingRequest{}, ErrInvalidGuestCount
	}
	if stay.Guests > venue.MaxGuests {
		return BookingRequest{}, guestLimitExceeded(venue.MaxGuests)
	}
	if d, ok := blocked.FirstConflict(stay.From, stay.To); ok {
		return BookingRequest{}, dateConflict(d)
	}
	return BookingRequest{
		VenueID:  venue.ID,
		DateFrom: stay.From.String(),
		DateTo:   stay.To.String(),
		Guests:   stay.Guests,
	}, nil
}

// Nights counts the nights between check-in and check-out. Missing or
// inverted ranges count as zero.
func Nights(from, to Date) int {
	if from.IsZero() || to.IsZero() {
		return 0
	}
	n := from.DaysUntil(to)
	if n < 0 {
		return 0
	}
	return n
}

// Quote is the price breakdown shown next to the booking form.
type Quote struct {
	Nights        int     `json:"nights"`
	PricePerNight float64 `json:"pricePerNight"`
	Total         float64 `json:"total"`
}

func QuoteFor(price float64, from, to Date) Quote {
	n := Nights(from, to)
	return Quote{Nights: n, PricePerNight: price, Total: float64(n) * price}
}
