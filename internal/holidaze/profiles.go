package holidaze

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

func (c *Client) Profile(ctx context.Context, name string) (Profile, error) {
	if err := c.requireToken(); err != nil {
		return Profile{}, err
	}
	q := url.Values{"_bookings": {"true"}, "_venues": {"true"}}
	var res envelope[Profile]
	if err := c.do(ctx, http.MethodGet, "/holidaze/profiles/"+seg(name), q, nil, &res); err != nil {
		return Profile{}, err
	}
	return res.Data, nil
}

// UpdateAvatar sets the profile avatar, or removes it when avatarURL is empty.
func (c *Client) UpdateAvatar(ctx context.Context, name, avatarURL string) (Profile, error) {
	if err := c.requireToken(); err != nil {
		return Profile{}, err
	}
	body := struct {
		Avatar *Media `json:"avatar"`
	}{}
	if avatarURL != "" {
		m := Media{URL: avatarURL, Alt: name + "'s avatar"}
		if err := Check(m); err != nil {
			return Profile{}, err
		}
		body.Avatar = &m
	}
	var res envelope[Profile]
	if err := c.do(ctx, http.MethodPut, "/holidaze/profiles/"+seg(name), nil, body, &res); err != nil {
		return Profile{}, err
	}
	return res.Data, nil
}

const (
	bookingsPageSize = 100
	maxBookingPages  = 50
)

// ProfileBookings returns every booking of the profile, following pages
// until the API reports the last one.
func (c *Client) ProfileBookings(ctx context.Context, name string) ([]Booking, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errors.New("profile name is required")
	}
	q := url.Values{
		"_venue":    {"true"},
		"limit":     {strconv.Itoa(bookingsPageSize)},
		"sort":      {"dateFrom"},
		"sortOrder": {"asc"},
	}
	var all []Booking
	for page := 1; page <= maxBookingPages; page++ {
		q.Set("page", strconv.Itoa(page))
		var res envelope[[]Booking]
		if err := c.do(ctx, http.MethodGet, "/holidaze/profiles/"+seg(name)+"/bookings", q, nil, &res); err != nil {
			return nil, err
		}
		all = append(all, res.Data...)
		if res.Meta.IsLastPage || len(res.Data) < bookingsPageSize {
			return all, nil
		}
	}
	return nil, fmt.Errorf("profile %s has more than %d pages of bookings", name, maxBookingPages)
}

func (c *Client) ProfileVenues(ctx context.Context, name string) ([]Venue, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}
	q := url.Values{"_bookings": {"true"}}
	var res envelope[[]Venue]
	if err := c.do(ctx, http.MethodGet, "/holidaze/profiles/"+seg(name)+"/venues", q, nil, &res); err != nil {
		return nil, err
	}
	return res.Data, nil
}
