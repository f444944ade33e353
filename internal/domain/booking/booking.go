package booking

import (
	"math"
	"time"

	"github.com/teksi-laju/service-booking/internal/domain"
)

const earthRadiusKm = 6371.0

// MinimumLocations is the smallest waypoint sequence a confirmable trip can
// have: a pickup and a drop-off.
const MinimumLocations = 2

// ErrEmptyBooking is returned when a pickup or drop-off is requested from a
// booking with no waypoints.
var ErrEmptyBooking = domain.NewValidationError("booking has no locations")

// Booking is the aggregate root for a single taxi trip. It owns the ordered
// waypoint sequence (pickup first, drop-off last, stops in between) and the
// distance and fare derived from it.
type Booking struct {
	bookingName     string
	locations       []Location
	scheduledAt     time.Time
	taxiType        TaxiType
	totalDistanceKm float64
	totalFare       float64
}

// NewBooking creates an empty draft booking.
func NewBooking() *Booking {
	return &Booking{}
}

// --- Getters ---

// BookingName returns the display name, defaulted to the drop-off's name.
func (b *Booking) BookingName() string { return b.bookingName }

// Locations returns a copy of the waypoint sequence.
func (b *Booking) Locations() []Location {
	out := make([]Location, len(b.locations))
	copy(out, b.locations)
	return out
}

// LocationCount returns the number of waypoints.
func (b *Booking) LocationCount() int { return len(b.locations) }

// ScheduledAt returns the scheduled pickup time.
func (b *Booking) ScheduledAt() time.Time { return b.scheduledAt }

// TaxiType returns the selected taxi class, or "" if none selected yet.
func (b *Booking) TaxiType() TaxiType { return b.taxiType }

// TotalDistanceKm returns the derived trip distance, rounded to 2 decimals.
func (b *Booking) TotalDistanceKm() float64 { return b.totalDistanceKm }

// TotalFare returns the derived fare in MYR, rounded to 2 decimals.
func (b *Booking) TotalFare() float64 { return b.totalFare }

// Stops returns the number of intermediate waypoints.
func (b *Booking) Stops() int {
	if len(b.locations) < MinimumLocations {
		return 0
	}
	return len(b.locations) - MinimumLocations
}

// --- Setters ---

// SetBookingName sets the display name.
func (b *Booking) SetBookingName(name string) { b.bookingName = name }

// SetSchedule sets the scheduled pickup time.
func (b *Booking) SetSchedule(t time.Time) { b.scheduledAt = t }

// SetTaxiType sets the taxi class.
func (b *Booking) SetTaxiType(t TaxiType) { b.taxiType = t }

// --- Waypoint sequence ---

// AddStartLocation inserts loc at the front of the sequence, making it the
// new pickup and pushing any prior pickup to the second position.
func (b *Booking) AddStartLocation(loc Location) {
	b.locations = append([]Location{loc}, b.locations...)
}

// AddEndLocation appends loc, making it the new drop-off.
func (b *Booking) AddEndLocation(loc Location) {
	b.locations = append(b.locations, loc)
}

// AddStopLocation inserts loc immediately before the drop-off when both trip
// ends exist, so the drop-off stays last. While the booking is still being
// assembled with fewer than two waypoints, the stop is simply appended.
func (b *Booking) AddStopLocation(loc Location) {
	if len(b.locations) > 1 {
		last := len(b.locations) - 1
		b.locations = append(b.locations[:last], loc, b.locations[last])
		return
	}
	b.locations = append(b.locations, loc)
}

// RemoveLocation removes the waypoint at index, failing without modifying
// the sequence when index is out of range.
func (b *Booking) RemoveLocation(index int) error {
	if index < 0 || index >= len(b.locations) {
		return domain.NewOutOfRangeError(index, len(b.locations))
	}
	b.locations = append(b.locations[:index], b.locations[index+1:]...)
	return nil
}

// RemoveAllLocations resets the waypoint sequence.
func (b *Booking) RemoveAllLocations() {
	b.locations = nil
}

// StartLocation returns the pickup waypoint.
func (b *Booking) StartLocation() (Location, error) {
	if len(b.locations) == 0 {
		return Location{}, ErrEmptyBooking
	}
	return b.locations[0], nil
}

// EndLocation returns the drop-off waypoint.
func (b *Booking) EndLocation() (Location, error) {
	if len(b.locations) == 0 {
		return Location{}, ErrEmptyBooking
	}
	return b.locations[len(b.locations)-1], nil
}

// --- Derived fields ---

// CalculateDistance recomputes the total trip distance from scratch as the
// sum of great-circle distances between each consecutive waypoint pair,
// rounded to two decimals. It is idempotent and must be re-run after every
// change to the waypoint sequence.
func (b *Booking) CalculateDistance() {
	total := 0.0
	for i := 0; i+1 < len(b.locations); i++ {
		total += haversineKm(b.locations[i].Coordinate, b.locations[i+1].Coordinate)
	}
	b.totalDistanceKm = Round2(total)
}

// CalculateFare recomputes the fare from the current rounded distance,
// schedule and taxi class using the given strategy.
func (b *Booking) CalculateFare(strategy FareStrategy, now time.Time) {
	b.totalFare = strategy.Calculate(FareParams{
		DistanceKm:  b.totalDistanceKm,
		ScheduledAt: b.scheduledAt,
		Now:         now,
		TaxiType:    b.taxiType,
	})
}

// Recompute refreshes both derived fields. Call it after any change to the
// waypoints, schedule or taxi class; stale totals are a correctness bug.
func (b *Booking) Recompute(strategy FareStrategy, now time.Time) {
	b.CalculateDistance()
	b.CalculateFare(strategy, now)
}

// haversineKm returns the great-circle distance in kilometres between two
// coordinates.
func haversineKm(a, b Coordinate) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	lat1 := degreesToRadians(a.Lat)
	lat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
