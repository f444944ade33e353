package booking

import (
	"fmt"

	"github.com/teksi-laju/service-booking/internal/domain"
)

// TaxiType represents the class of taxi requested for a booking.
type TaxiType string

const (
	TaxiTypeCar     TaxiType = "Car"
	TaxiTypeSUV     TaxiType = "SUV"
	TaxiTypeVan     TaxiType = "Van"
	TaxiTypeMinibus TaxiType = "Minibus"
)

// IsValid returns true if the taxi type is recognized.
func (t TaxiType) IsValid() bool {
	switch t {
	case TaxiTypeCar, TaxiTypeSUV, TaxiTypeVan, TaxiTypeMinibus:
		return true
	}
	return false
}

// Surcharge returns the flat class surcharge in MYR added on top of the
// metered fare. Cars carry no surcharge.
func (t TaxiType) Surcharge() float64 {
	switch t {
	case TaxiTypeSUV:
		return 5.00
	case TaxiTypeVan:
		return 10.00
	case TaxiTypeMinibus:
		return 15.00
	default:
		return 0
	}
}

// String returns the string representation of the taxi type.
func (t TaxiType) String() string {
	return string(t)
}

// ParseTaxiType converts a string to a TaxiType, returning a validation
// error if it names no known class.
func ParseTaxiType(s string) (TaxiType, error) {
	t := TaxiType(s)
	if !t.IsValid() {
		return "", domain.NewValidationError(fmt.Sprintf("invalid taxi type: %q", s))
	}
	return t, nil
}
