// Package repository persists the booking state as JSON blobs behind a
// key/value contract.
package repository

import "context"

// Logical storage keys. The confirmed list is durable; the draft booking and
// the selected-index handoff are transient session state.
const (
	BookingDataKey   = "bookingData"
	SingleBookingKey = "singleBookingData"
	IndexKey         = "indexData"
)

// KeyValueStore is the persistence collaborator: opaque JSON values under
// string keys. Get reports (value, found, error); a missing key is not an
// error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
