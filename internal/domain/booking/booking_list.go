package booking

import (
	"sort"

	"github.com/teksi-laju/service-booking/internal/domain"
)

// BookingList is the ordered collection of confirmed bookings. Insertion
// order is creation order until SortByDateDesc rearranges it for display.
type BookingList struct {
	bookings []*Booking
}

// NewBookingList creates an empty BookingList.
func NewBookingList() *BookingList {
	return &BookingList{}
}

// Add appends a booking to the list.
func (l *BookingList) Add(b *Booking) {
	l.bookings = append(l.bookings, b)
}

// Remove deletes the booking at index, failing without modifying the list
// when index is out of range.
func (l *BookingList) Remove(index int) error {
	if index < 0 || index >= len(l.bookings) {
		return domain.NewOutOfRangeError(index, len(l.bookings))
	}
	l.bookings = append(l.bookings[:index], l.bookings[index+1:]...)
	return nil
}

// Get returns the booking at index.
func (l *BookingList) Get(index int) (*Booking, error) {
	if index < 0 || index >= len(l.bookings) {
		return nil, domain.NewOutOfRangeError(index, len(l.bookings))
	}
	return l.bookings[index], nil
}

// Len returns the number of bookings.
func (l *BookingList) Len() int {
	return len(l.bookings)
}

// Bookings returns the underlying sequence in its current order.
func (l *BookingList) Bookings() []*Booking {
	out := make([]*Booking, len(l.bookings))
	copy(out, l.bookings)
	return out
}

// SortByDateDesc orders the list latest schedule first. The sort is stable:
// bookings sharing a schedule keep their original relative order.
func (l *BookingList) SortByDateDesc() {
	sort.SliceStable(l.bookings, func(i, j int) bool {
		return l.bookings[i].scheduledAt.After(l.bookings[j].scheduledAt)
	})
}
