// Package geojson renders a waypoint sequence as the GeoJSON document map
// clients draw: one point feature per waypoint plus a connecting line. The
// document is rebuilt wholesale on every request; there is no diffing.
package geojson

import "github.com/teksi-laju/service-booking/internal/domain/booking"

// Geometry is a GeoJSON geometry. Coordinates are [lng, lat] pairs for
// points, or a sequence of them for line strings.
type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

// Feature is a GeoJSON feature.
type Feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   Geometry       `json:"geometry"`
}

// FeatureCollection is a GeoJSON feature collection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// RouteDocument builds the render document for a trip: a marker feature per
// waypoint carrying its popup name and address plus the role it plays in
// the trip, and a LineString tracing the full path in order.
func RouteDocument(locations []booking.Location) FeatureCollection {
	doc := FeatureCollection{Type: "FeatureCollection"}

	path := make([][2]float64, 0, len(locations))
	for i, loc := range locations {
		coord := [2]float64{loc.Coordinate.Lng, loc.Coordinate.Lat}
		path = append(path, coord)

		doc.Features = append(doc.Features, Feature{
			Type: "Feature",
			Properties: map[string]any{
				"name":    loc.Name,
				"address": loc.Address,
				"role":    role(i, len(locations)),
			},
			Geometry: Geometry{Type: "Point", Coordinates: coord},
		})
	}

	if len(path) >= booking.MinimumLocations {
		doc.Features = append(doc.Features, Feature{
			Type:       "Feature",
			Properties: map[string]any{"name": "route"},
			Geometry:   Geometry{Type: "LineString", Coordinates: path},
		})
	}

	return doc
}

func role(index, total int) string {
	switch {
	case index == 0:
		return "pickup"
	case index == total-1:
		return "dropoff"
	default:
		return "stop"
	}
}
