package booking

import (
	"fmt"

	"github.com/teksi-laju/service-booking/internal/domain"
)

// Coordinate is a WGS84 point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Validate checks that the coordinate lies within the valid latitude and
// longitude ranges.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return domain.NewValidationError(fmt.Sprintf("latitude %v out of range [-90, 90]", c.Lat))
	}
	if c.Lng < -180 || c.Lng > 180 {
		return domain.NewValidationError(fmt.Sprintf("longitude %v out of range [-180, 180]", c.Lng))
	}
	return nil
}

// String formats the coordinate the way the booking form displays a map click.
func (c Coordinate) String() string {
	return fmt.Sprintf("%.5f, %.5f", c.Lat, c.Lng)
}

// Location is an immutable value object describing one waypoint of a trip.
type Location struct {
	Name       string     `json:"name"`
	Address    string     `json:"address"`
	Coordinate Coordinate `json:"coordinates"`
}

// NewLocation creates a Location, rejecting out-of-range coordinates.
func NewLocation(name, address string, coord Coordinate) (Location, error) {
	if err := coord.Validate(); err != nil {
		return Location{}, err
	}
	return Location{Name: name, Address: address, Coordinate: coord}, nil
}

// NewCoordinateLocation creates a Location for a raw map-click coordinate;
// the formatted coordinate doubles as its display name and address.
func NewCoordinateLocation(coord Coordinate) (Location, error) {
	return NewLocation(coord.String(), coord.String(), coord)
}
