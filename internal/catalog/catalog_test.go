package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/holidaze/internal/availability"
	"github.com/example/holidaze/internal/holidaze"
)

func TestFilterByName(t *testing.T) {
	venues := []holidaze.Venue{{Name: "Sea Cabin"}, {Name: "Mountain Lodge"}, {Name: "Cabana"}}

	tests := []struct {
		q    string
		want []string
	}{
		{"", []string{"Sea Cabin", "Mountain Lodge", "Cabana"}},
		{"  ", []string{"Sea Cabin", "Mountain Lodge", "Cabana"}},
		{"cab", []string{"Sea Cabin", "Cabana"}},
		{"LODGE", []string{"Mountain Lodge"}},
		{"castle", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			got := []string{}
			for _, v := range FilterByName(venues, tt.q) {
				got = append(got, v.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestManagedUpcomingCounts(t *testing.T) {
	today := availability.NewDate(2024, 6, 10)
	venues := []holidaze.Venue{
		{ID: "a", Bookings: []holidaze.Booking{
			{DateFrom: "2024-06-01", DateTo: "2024-06-05"},
			{DateFrom: "2024-06-08", DateTo: "2024-06-10"},
			{DateFrom: "2024-07-01", DateTo: "2024-07-03"},
		}},
		{ID: "b"},
	}

	got := Managed(venues, today)
	assert.Equal(t, 2, got[0].UpcomingBookings)
	assert.Equal(t, 0, got[1].UpcomingBookings)
}
