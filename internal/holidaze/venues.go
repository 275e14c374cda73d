package holidaze

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

func (q VenueQuery) values() url.Values {
	v := url.Values{}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.SortOrder != "" {
		v.Set("sortOrder", q.SortOrder)
	}
	return v
}

// Key identifies the upstream page for caching. Q is a local filter and is
// not part of it.
func (q VenueQuery) Key() string { return q.values().Encode() }

func (c *Client) ListVenues(ctx context.Context, q VenueQuery) ([]Venue, PageMeta, error) {
	if err := Check(q); err != nil {
		return nil, PageMeta{}, err
	}
	var res envelope[[]Venue]
	if err := c.do(ctx, http.MethodGet, "/holidaze/venues", q.values(), nil, &res); err != nil {
		return nil, PageMeta{}, err
	}
	return res.Data, res.Meta, nil
}

// GetVenue returns the venue with its bookings and owner.
func (c *Client) GetVenue(ctx context.Context, id string) (Venue, error) {
	q := url.Values{"_bookings": {"true"}, "_owner": {"true"}}
	var res envelope[Venue]
	if err := c.do(ctx, http.MethodGet, "/holidaze/venues/"+seg(id), q, nil, &res); err != nil {
		return Venue{}, err
	}
	return res.Data, nil
}

func (c *Client) VenueBookings(ctx context.Context, id string) ([]Booking, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}
	q := url.Values{"_customer": {"true"}}
	var res envelope[[]Booking]
	if err := c.do(ctx, http.MethodGet, "/holidaze/venues/"+seg(id)+"/bookings", q, nil, &res); err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (c *Client) CreateVenue(ctx context.Context, in VenueInput) (Venue, error) {
	if err := c.requireToken(); err != nil {
		return Venue{}, err
	}
	if err := Check(in); err != nil {
		return Venue{}, err
	}
	var res envelope[Venue]
	if err := c.do(ctx, http.MethodPost, "/holidaze/venues", nil, in, &res); err != nil {
		return Venue{}, err
	}
	return res.Data, nil
}

func (c *Client) UpdateVenue(ctx context.Context, id string, in VenueUpdate) (Venue, error) {
	if err := c.requireToken(); err != nil {
		return Venue{}, err
	}
	if err := Check(in); err != nil {
		return Venue{}, err
	}
	var res envelope[Venue]
	if err := c.do(ctx, http.MethodPut, "/holidaze/venues/"+seg(id), nil, in, &res); err != nil {
		return Venue{}, err
	}
	return res.Data, nil
}

func (c *Client) DeleteVenue(ctx context.Context, id string) error {
	if err := c.requireToken(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, "/holidaze/venues/"+seg(id), nil, nil, nil)
}
