package holidaze

import (
	"time"

	"github.com/example/holidaze/internal/availability"
)

type Media struct {
	URL string `json:"url" validate:"required,url"`
	Alt string `json:"alt,omitempty"`
}

type Location struct {
	Address   string  `json:"address,omitempty"`
	City      string  `json:"city,omitempty"`
	Zip       string  `json:"zip,omitempty"`
	Country   string  `json:"country,omitempty"`
	Continent string  `json:"continent,omitempty"`
	Lat       float64 `json:"lat,omitempty"`
	Lng       float64 `json:"lng,omitempty"`
}

type Meta struct {
	Wifi      bool `json:"wifi"`
	Parking   bool `json:"parking"`
	Breakfast bool `json:"breakfast"`
	Pets      bool `json:"pets"`
}

type Counts struct {
	Bookings int `json:"bookings"`
	Venues   int `json:"venues"`
}

type Profile struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Bio          string    `json:"bio,omitempty"`
	Avatar       *Media    `json:"avatar,omitempty"`
	Banner       *Media    `json:"banner,omitempty"`
	VenueManager bool      `json:"venueManager"`
	Count        *Counts   `json:"_count,omitempty"`
	Bookings     []Booking `json:"bookings,omitempty"`
	Venues       []Venue   `json:"venues,omitempty"`
}

type Booking struct {
	ID       string    `json:"id"`
	DateFrom string    `json:"dateFrom"`
	DateTo   string    `json:"dateTo"`
	Guests   int       `json:"guests"`
	Created  time.Time `json:"created"`
	Updated  time.Time `json:"updated"`
	Venue    *Venue    `json:"venue,omitempty"`
	Customer *Profile  `json:"customer,omitempty"`
}

// Interval converts the API's date strings into an engine interval.
func (b Booking) Interval() (availability.Interval, error) {
	return availability.BookingRequest{DateFrom: b.DateFrom, DateTo: b.DateTo}.Interval()
}

type Venue struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Media       []Media   `json:"media"`
	Price       float64   `json:"price"`
	MaxGuests   int       `json:"maxGuests"`
	Rating      float64   `json:"rating"`
	Meta        *Meta     `json:"meta,omitempty"`
	Location    *Location `json:"location,omitempty"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
	Owner       *Profile  `json:"owner,omitempty"`
	Bookings    []Booking `json:"bookings,omitempty"`
}

func (v Venue) Availability() availability.Venue {
	return availability.Venue{ID: v.ID, Price: v.Price, MaxGuests: v.MaxGuests}
}

// PageMeta is the pagination block of list responses.
type PageMeta struct {
	IsFirstPage bool `json:"isFirstPage"`
	IsLastPage  bool `json:"isLastPage"`
	CurrentPage int  `json:"currentPage"`
	PageCount   int  `json:"pageCount"`
	TotalCount  int  `json:"totalCount"`
}

type envelope[T any] struct {
	Data T        `json:"data"`
	Meta PageMeta `json:"meta"`
}

// Session is what a successful login returns.
type Session struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Avatar       *Media `json:"avatar,omitempty"`
	VenueManager bool   `json:"venueManager"`
	AccessToken  string `json:"accessToken"`
}
