// Package taxi holds the static fleet reference data and class-based
// assignment used when a booking is confirmed.
package taxi

import (
	"fmt"

	"github.com/teksi-laju/service-booking/internal/domain"
	"github.com/teksi-laju/service-booking/internal/domain/booking"
)

// Taxi is one unit of the fleet. The booking flow only reads this data.
type Taxi struct {
	Rego      string           `json:"rego"`
	Type      booking.TaxiType `json:"type"`
	Available bool             `json:"available"`
}

// Registry answers class-and-availability lookups over a fixed fleet.
type Registry struct {
	taxis []Taxi
}

// NewRegistry creates a Registry over the given fleet.
func NewRegistry(taxis []Taxi) *Registry {
	fleet := make([]Taxi, len(taxis))
	copy(fleet, taxis)
	return &Registry{taxis: fleet}
}

// Fleet returns a copy of the full fleet.
func (r *Registry) Fleet() []Taxi {
	out := make([]Taxi, len(r.taxis))
	copy(out, r.taxis)
	return out
}

// Assign returns the first available taxi of the requested class. It does
// not reserve the unit: a repeated call for the same class returns the same
// taxi. Dispatch-side reservation is outside this service.
func (r *Registry) Assign(taxiType booking.TaxiType) (Taxi, error) {
	for _, t := range r.taxis {
		if t.Type == taxiType && t.Available {
			return t, nil
		}
	}
	return Taxi{}, domain.NewUnavailableError(fmt.Sprintf("no %s taxi is available right now", taxiType))
}

// DefaultFleet returns the standing Teksi Laju fleet.
func DefaultFleet() []Taxi {
	return []Taxi{
		{Rego: "VOV-887", Type: booking.TaxiTypeCar, Available: true},
		{Rego: "OZS-293", Type: booking.TaxiTypeVan, Available: false},
		{Rego: "WRE-188", Type: booking.TaxiTypeSUV, Available: true},
		{Rego: "FWZ-490", Type: booking.TaxiTypeCar, Available: true},
		{Rego: "NYE-874", Type: booking.TaxiTypeSUV, Available: true},
		{Rego: "TES-277", Type: booking.TaxiTypeCar, Available: false},
		{Rego: "GSP-874", Type: booking.TaxiTypeSUV, Available: false},
		{Rego: "UAH-328", Type: booking.TaxiTypeMinibus, Available: true},
		{Rego: "RJQ-001", Type: booking.TaxiTypeSUV, Available: false},
		{Rego: "AGD-793", Type: booking.TaxiTypeMinibus, Available: false},
	}
}
