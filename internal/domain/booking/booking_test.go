package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teksi-laju/service-booking/internal/domain"
)

func mustLocation(t *testing.T, name string, lat, lng float64) Location {
	t.Helper()
	loc, err := NewLocation(name, name+" full address", Coordinate{Lat: lat, Lng: lng})
	require.NoError(t, err)
	return loc
}

// Central KL to Petaling Jaya, about 10.78 km great-circle.
func klPair(t *testing.T) (Location, Location) {
	t.Helper()
	return mustLocation(t, "KL Sentral", 3.1390, 101.6869),
		mustLocation(t, "Petaling Jaya", 3.1073, 101.5951)
}

func TestBooking_WaypointOrdering(t *testing.T) {
	start, end := klPair(t)
	stop := mustLocation(t, "Mid Valley", 3.1579, 101.7123)

	b := NewBooking()
	b.AddStartLocation(start)
	b.AddEndLocation(end)
	b.AddStopLocation(stop)

	locs := b.Locations()
	require.Len(t, locs, 3)
	assert.Equal(t, "KL Sentral", locs[0].Name)
	assert.Equal(t, "Mid Valley", locs[1].Name)
	assert.Equal(t, "Petaling Jaya", locs[2].Name)
	assert.Equal(t, 1, b.Stops())

	got, err := b.StartLocation()
	require.NoError(t, err)
	assert.Equal(t, start, got)

	got, err = b.EndLocation()
	require.NoError(t, err)
	assert.Equal(t, end, got)
}

func TestBooking_AddStartPushesPriorPickupBack(t *testing.T) {
	first := mustLocation(t, "first", 3.10, 101.60)
	second := mustLocation(t, "second", 3.20, 101.70)

	b := NewBooking()
	b.AddStartLocation(first)
	b.AddStartLocation(second)

	locs := b.Locations()
	require.Len(t, locs, 2)
	assert.Equal(t, "second", locs[0].Name)
	assert.Equal(t, "first", locs[1].Name)
}

func TestBooking_AddStopBeforeBothEndsExist(t *testing.T) {
	only := mustLocation(t, "only", 3.10, 101.60)
	stop := mustLocation(t, "stop", 3.20, 101.70)

	b := NewBooking()
	b.AddStopLocation(stop)
	assert.Equal(t, 1, b.LocationCount())

	b = NewBooking()
	b.AddStartLocation(only)
	b.AddStopLocation(stop)

	locs := b.Locations()
	require.Len(t, locs, 2)
	assert.Equal(t, "stop", locs[1].Name, "with a single waypoint the stop is appended")
}

func TestBooking_RemoveLocation(t *testing.T) {
	start, end := klPair(t)

	b := NewBooking()
	b.AddStartLocation(start)
	b.AddEndLocation(end)

	err := b.RemoveLocation(5)
	assert.True(t, domain.IsCode(err, domain.CodeOutOfRange))
	assert.Equal(t, 2, b.LocationCount(), "a rejected remove leaves the sequence unmodified")

	err = b.RemoveLocation(-1)
	assert.True(t, domain.IsCode(err, domain.CodeOutOfRange))

	require.NoError(t, b.RemoveLocation(0))
	locs := b.Locations()
	require.Len(t, locs, 1)
	assert.Equal(t, "Petaling Jaya", locs[0].Name)
}

func TestBooking_EmptyBookingErrors(t *testing.T) {
	b := NewBooking()

	_, err := b.StartLocation()
	assert.ErrorIs(t, err, ErrEmptyBooking)

	_, err = b.EndLocation()
	assert.ErrorIs(t, err, ErrEmptyBooking)

	assert.Equal(t, 0, b.Stops())
}

func TestBooking_CalculateDistance(t *testing.T) {
	start, end := klPair(t)

	b := NewBooking()
	b.AddStartLocation(start)
	b.AddEndLocation(end)
	b.CalculateDistance()
	assert.InDelta(t, 10.78, b.TotalDistanceKm(), 0.01)

	// A stop re-routes the trip through each leg in sequence.
	stop := mustLocation(t, "Ampang Park", 3.1579, 101.7123)
	b.AddStopLocation(stop)
	b.CalculateDistance()
	assert.InDelta(t, 17.69, b.TotalDistanceKm(), 0.01)
}

func TestBooking_CalculateDistance_SamePoint(t *testing.T) {
	start, _ := klPair(t)

	b := NewBooking()
	b.AddStartLocation(start)
	b.AddEndLocation(start)
	b.CalculateDistance()
	assert.Equal(t, 0.0, b.TotalDistanceKm())
}

func TestBooking_Recompute(t *testing.T) {
	start, end := klPair(t)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, kl)

	b := NewBooking()
	b.AddStartLocation(start)
	b.AddEndLocation(end)
	b.SetSchedule(time.Date(2026, 9, 1, 14, 0, 0, 0, kl))
	b.SetTaxiType(TaxiTypeCar)
	b.Recompute(NewMeteredFareStrategy(), now)

	assert.InDelta(t, 10.78, b.TotalDistanceKm(), 0.01)
	// The fare is metered over the rounded distance, not the raw sum.
	assert.InDelta(t, 12.37, b.TotalFare(), 0.001)

	b.SetTaxiType(TaxiTypeVan)
	b.SetSchedule(time.Date(2026, 9, 2, 2, 0, 0, 0, kl))
	b.Recompute(NewMeteredFareStrategy(), now)
	assert.InDelta(t, 31.56, b.TotalFare(), 0.001)
}
