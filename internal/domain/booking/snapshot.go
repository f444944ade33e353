package booking

import (
	"fmt"
	"time"

	"github.com/teksi-laju/service-booking/internal/domain"
)

// BookingSnapshot is the persisted form of a Booking. It carries only
// serializable state; transient UI associations never cross this boundary.
type BookingSnapshot struct {
	BookingName     string     `json:"booking_name"`
	Locations       []Location `json:"locations"`
	ScheduledAt     time.Time  `json:"scheduled_at"`
	TaxiType        string     `json:"taxi_type"`
	TotalDistanceKm float64    `json:"total_distance_km"`
	TotalFare       float64    `json:"total_fare"`
}

// BookingListSnapshot is the persisted form of a BookingList.
type BookingListSnapshot struct {
	Bookings []BookingSnapshot `json:"bookings"`
}

// Snapshot captures the booking's persistable state.
func (b *Booking) Snapshot() BookingSnapshot {
	return BookingSnapshot{
		BookingName:     b.bookingName,
		Locations:       b.Locations(),
		ScheduledAt:     b.scheduledAt,
		TaxiType:        string(b.taxiType),
		TotalDistanceKm: b.totalDistanceKm,
		TotalFare:       b.totalFare,
	}
}

// FromSnapshot rebuilds a Booking from its persisted form, validating the
// shape instead of blindly copying fields. A snapshot with out-of-range
// coordinates or an unknown taxi class fails with a deserialization error.
func FromSnapshot(s BookingSnapshot) (*Booking, error) {
	if s.TaxiType != "" && !TaxiType(s.TaxiType).IsValid() {
		return nil, domain.NewDeserializationError(fmt.Sprintf("unknown taxi type %q in stored booking", s.TaxiType))
	}
	for i, loc := range s.Locations {
		if err := loc.Coordinate.Validate(); err != nil {
			return nil, domain.NewDeserializationError(fmt.Sprintf("location %d: %v", i, err))
		}
	}

	b := NewBooking()
	b.bookingName = s.BookingName
	b.locations = make([]Location, len(s.Locations))
	copy(b.locations, s.Locations)
	b.scheduledAt = s.ScheduledAt
	b.taxiType = TaxiType(s.TaxiType)
	b.totalDistanceKm = s.TotalDistanceKm
	b.totalFare = s.TotalFare
	return b, nil
}

// Snapshot captures the list's persistable state.
func (l *BookingList) Snapshot() BookingListSnapshot {
	out := BookingListSnapshot{Bookings: make([]BookingSnapshot, len(l.bookings))}
	for i, b := range l.bookings {
		out.Bookings[i] = b.Snapshot()
	}
	return out
}

// ListFromSnapshot rebuilds a BookingList, rebuilding every contained
// booking in order.
func ListFromSnapshot(s BookingListSnapshot) (*BookingList, error) {
	list := NewBookingList()
	for i, bs := range s.Bookings {
		b, err := FromSnapshot(bs)
		if err != nil {
			return nil, domain.NewDeserializationError(fmt.Sprintf("booking %d: %v", i, err))
		}
		list.Add(b)
	}
	return list, nil
}
