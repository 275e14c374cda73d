package holidaze

import (
	"context"
	"net/http"
	"net/url"

	"github.com/example/holidaze/internal/availability"
)

func (c *Client) CreateBooking(ctx context.Context, req availability.BookingRequest) (Booking, error) {
	if err := c.requireToken(); err != nil {
		return Booking{}, err
	}
	var res envelope[Booking]
	if err := c.do(ctx, http.MethodPost, "/holidaze/bookings", nil, req, &res); err != nil {
		return Booking{}, err
	}
	return res.Data, nil
}

func (c *Client) GetBooking(ctx context.Context, id string) (Booking, error) {
	if err := c.requireToken(); err != nil {
		return Booking{}, err
	}
	q := url.Values{"_venue": {"true"}, "_customer": {"true"}}
	var res envelope[Booking]
	if err := c.do(ctx, http.MethodGet, "/holidaze/bookings/"+seg(id), q, nil, &res); err != nil {
		return Booking{}, err
	}
	return res.Data, nil
}

func (c *Client) UpdateBooking(ctx context.Context, id string, in BookingUpdate) (Booking, error) {
	if err := c.requireToken(); err != nil {
		return Booking{}, err
	}
	var res envelope[Booking]
	if err := c.do(ctx, http.MethodPut, "/holidaze/bookings/"+seg(id), nil, in, &res); err != nil {
		return Booking{}, err
	}
	return res.Data, nil
}

func (c *Client) DeleteBooking(ctx context.Context, id string) error {
	if err := c.requireToken(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, "/holidaze/bookings/"+seg(id), nil, nil, nil)
}
