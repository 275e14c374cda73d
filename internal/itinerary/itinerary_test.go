package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/holidaze/internal/availability"
	"github.com/example/holidaze/internal/holidaze"
)

func booking(id, from, to string) holidaze.Booking {
	return holidaze.Booking{ID: id, DateFrom: from, DateTo: to, Guests: 1}
}

func ids(stays []Stay) []string {
	out := make([]string, len(stays))
	for i, s := range stays {
		out[i] = s.ID
	}
	return out
}

func TestBuild(t *testing.T) {
	today := availability.NewDate(2024, 6, 10)
	it := Build([]holidaze.Booking{
		booking("late", "2024-07-01T00:00:00.000Z", "2024-07-04T00:00:00.000Z"),
		booking("old", "2024-05-01", "2024-05-03"),
		booking("today", "2024-06-10", "2024-06-11"),
		booking("older", "2024-04-01", "2024-04-02"),
		booking("ongoing", "2024-06-08", "2024-06-12"),
		booking("broken", "soon", "later"),
	}, today)

	assert.Equal(t, []string{"today", "late"}, ids(it.Upcoming))
	assert.Equal(t, []string{"ongoing", "old", "older"}, ids(it.Past))
	assert.Equal(t, 1, it.Skipped)
	assert.Equal(t, 3+2+1+1+4, it.TotalNights)

	require.NotNil(t, it.Next)
	assert.Equal(t, "today", it.Next.ID)
	assert.Equal(t, today, it.Next.CheckIn())
}

func TestBuildCountsAtLeastOneNight(t *testing.T) {
	it := Build([]holidaze.Booking{booking("same-day", "2024-06-20", "2024-06-20")}, availability.NewDate(2024, 6, 1))
	require.Len(t, it.Upcoming, 1)
	assert.Equal(t, 1, it.Upcoming[0].Nights)
	assert.Equal(t, 1, it.TotalNights)
}

func TestBuildEmpty(t *testing.T) {
	it := Build(nil, availability.NewDate(2024, 6, 1))
	assert.Nil(t, it.Next)
	assert.Zero(t, it.TotalNights)
}

func TestSplitByCheckout(t *testing.T) {
	today := availability.NewDate(2024, 6, 10)
	up, past := Split([]holidaze.Booking{
		booking("checkout-today", "2024-06-08", "2024-06-10"),
		booking("done", "2024-06-01", "2024-06-09"),
		booking("future", "2024-06-20", "2024-06-22"),
	}, today)

	require.Len(t, up, 2)
	assert.Equal(t, "checkout-today", up[0].ID)
	assert.Equal(t, "future", up[1].ID)
	require.Len(t, past, 1)
	assert.Equal(t, "done", past[0].ID)
}
