// Package geocode resolves free-text addresses to booking locations.
package geocode

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"github.com/teksi-laju/service-booking/internal/domain"
	"github.com/teksi-laju/service-booking/internal/domain/booking"
)

// Geocoder resolves a free-text query to a single Location. Each call is a
// single awaited lookup; callers issue them sequentially, so responses can
// never be attributed to the wrong waypoint.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (booking.Location, error)
}

// GoogleGeocoder resolves addresses through the Google Maps Geocoding API.
type GoogleGeocoder struct {
	client *maps.Client
}

// NewGoogleGeocoder creates a GoogleGeocoder with the given API key.
func NewGoogleGeocoder(apiKey string) (*GoogleGeocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleGeocoder{client: client}, nil
}

// Geocode resolves query to a Location. The first result wins; its display
// name is the formatted address up to the first comma. An empty result set
// is a validation error for the caller to surface, not a silent no-op.
func (g *GoogleGeocoder) Geocode(ctx context.Context, query string) (booking.Location, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: query})
	if err != nil {
		return booking.Location{}, fmt.Errorf("geocoding request failed: %w", err)
	}
	if len(results) == 0 {
		return booking.Location{}, domain.NewValidationError(fmt.Sprintf("no location found for %q", query))
	}

	first := results[0]
	return booking.NewLocation(displayName(first.FormattedAddress), first.FormattedAddress, booking.Coordinate{
		Lat: first.Geometry.Location.Lat,
		Lng: first.Geometry.Location.Lng,
	})
}

// displayName shortens a formatted address to everything before the first
// comma, which is what the booking form shows as the waypoint name.
func displayName(formattedAddress string) string {
	name, _, _ := strings.Cut(formattedAddress, ",")
	return name
}
