package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teksi-laju/service-booking/internal/domain"
)

func TestBookingSnapshot_RoundTrip(t *testing.T) {
	start, end := klPair(t)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, kl)

	b := NewBooking()
	b.SetBookingName("Petaling Jaya")
	b.AddStartLocation(start)
	b.AddEndLocation(end)
	b.SetSchedule(time.Date(2026, 9, 2, 14, 0, 0, 0, kl))
	b.SetTaxiType(TaxiTypeSUV)
	b.Recompute(NewMeteredFareStrategy(), now)

	restored, err := FromSnapshot(b.Snapshot())
	require.NoError(t, err)

	assert.Equal(t, b.BookingName(), restored.BookingName())
	assert.Equal(t, b.Locations(), restored.Locations())
	assert.True(t, b.ScheduledAt().Equal(restored.ScheduledAt()))
	assert.Equal(t, b.TaxiType(), restored.TaxiType())
	assert.Equal(t, b.TotalDistanceKm(), restored.TotalDistanceKm())
	assert.Equal(t, b.TotalFare(), restored.TotalFare())
}

func TestFromSnapshot_RejectsUnknownTaxiType(t *testing.T) {
	s := BookingSnapshot{
		BookingName: "bad",
		TaxiType:    "Rickshaw",
	}
	_, err := FromSnapshot(s)
	assert.True(t, domain.IsCode(err, domain.CodeDeserialization))
}

func TestFromSnapshot_AllowsUnselectedTaxiType(t *testing.T) {
	b, err := FromSnapshot(BookingSnapshot{BookingName: "draft"})
	require.NoError(t, err)
	assert.Equal(t, TaxiType(""), b.TaxiType())
}

func TestFromSnapshot_RejectsOutOfRangeCoordinates(t *testing.T) {
	s := BookingSnapshot{
		Locations: []Location{
			{Name: "bad", Address: "bad", Coordinate: Coordinate{Lat: 120, Lng: 0}},
		},
	}
	_, err := FromSnapshot(s)
	assert.True(t, domain.IsCode(err, domain.CodeDeserialization))
}

func TestListSnapshot_RoundTrip(t *testing.T) {
	start, end := klPair(t)

	first := NewBooking()
	first.SetBookingName("first")
	first.AddStartLocation(start)
	first.AddEndLocation(end)
	first.SetSchedule(time.Date(2026, 9, 2, 14, 0, 0, 0, kl))

	second := NewBooking()
	second.SetBookingName("second")
	second.SetSchedule(time.Date(2026, 9, 3, 9, 0, 0, 0, kl))

	list := NewBookingList()
	list.Add(first)
	list.Add(second)

	restored, err := ListFromSnapshot(list.Snapshot())
	require.NoError(t, err)
	require.Equal(t, 2, restored.Len())

	b, err := restored.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "first", b.BookingName())
	assert.Equal(t, 2, b.LocationCount())

	b, err = restored.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "second", b.BookingName())
}

func TestListFromSnapshot_RejectsCorruptEntry(t *testing.T) {
	s := BookingListSnapshot{
		Bookings: []BookingSnapshot{
			{BookingName: "fine"},
			{BookingName: "broken", TaxiType: "Hovercraft"},
		},
	}
	_, err := ListFromSnapshot(s)
	assert.True(t, domain.IsCode(err, domain.CodeDeserialization))
}
