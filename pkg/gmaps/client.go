// Package gmaps wraps the Google Maps Platform APIs used by the freight
// flow: place autocomplete, geocoding and driving directions.
//
// All failures stay inside this boundary; callers receive either resolved
// values or an error they are expected to treat as "not yet available".
package gmaps

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"googlemaps.github.io/maps"
)

// Client wraps the Google Maps API client
type Client struct {
	client *maps.Client
	region string
}

// NewClient creates a new Google Maps API client.
// The region code (ccTLD, e.g. "br") biases autocomplete predictions.
func NewClient(apiKey, region string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("google maps api key is not set")
	}

	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create google maps client: %w", err)
	}

	return &Client{client: client, region: region}, nil
}

// Location represents a geographic coordinate
type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// String returns the location as "lat,lng" format for the Maps API
func (l Location) String() string {
	return fmt.Sprintf("%f,%f", l.Latitude, l.Longitude)
}

// Prediction is a single address autocomplete suggestion
type Prediction struct {
	PlaceID       string `json:"place_id"`
	Description   string `json:"description"`
	MainText      string `json:"main_text"`
	SecondaryText string `json:"secondary_text"`
}

// ResolvedAddress is a geocoded address with coordinates
type ResolvedAddress struct {
	FormattedAddress string   `json:"formatted_address"`
	Location         Location `json:"location"`
}

// RouteResult contains a computed driving route between two points,
// optionally through intermediate stops.
type RouteResult struct {
	DistanceText    string `json:"distance_text"`
	DistanceMeters  int    `json:"distance_meters"`
	DistanceKm      float64
	DurationText    string `json:"duration_text"`
	DurationMinutes int    `json:"duration_minutes"`
	// Polyline is the encoded overview geometry. The core never inspects
	// it; it is passed through to the map rendering layer.
	Polyline string `json:"polyline"`
	// WaypointOrder is the optimized visiting order when waypoint
	// optimization was requested.
	WaypointOrder []int `json:"waypoint_order,omitempty"`
}

// Predict returns autocomplete predictions for a partial address,
// biased to the configured region.
func (c *Client) Predict(ctx context.Context, input string) ([]Prediction, error) {
	req := &maps.PlaceAutocompleteRequest{
		Input: input,
	}
	if c.region != "" {
		req.Components = map[maps.Component][]string{
			maps.ComponentCountry: {c.region},
		}
	}

	resp, err := c.client.PlaceAutocomplete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("place autocomplete failed: %w", err)
	}

	predictions := make([]Prediction, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		predictions = append(predictions, Prediction{
			PlaceID:       p.PlaceID,
			Description:   p.Description,
			MainText:      p.StructuredFormatting.MainText,
			SecondaryText: p.StructuredFormatting.SecondaryText,
		})
	}
	return predictions, nil
}

// Resolve geocodes a place ID into a formatted address and coordinates.
func (c *Client) Resolve(ctx context.Context, placeID string) (*ResolvedAddress, error) {
	results, err := c.client.Geocode(ctx, &maps.GeocodingRequest{PlaceID: placeID})
	if err != nil {
		return nil, fmt.Errorf("geocoding failed: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no geocoding result for place %q", placeID)
	}

	r := results[0]
	return &ResolvedAddress{
		FormattedAddress: r.FormattedAddress,
		Location: Location{
			Latitude:  r.Geometry.Location.Lat,
			Longitude: r.Geometry.Location.Lng,
		},
	}, nil
}

// ReverseGeocode resolves coordinates into the nearest formatted address.
func (c *Client) ReverseGeocode(ctx context.Context, loc Location) (*ResolvedAddress, error) {
	results, err := c.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: loc.Latitude, Lng: loc.Longitude},
	})
	if err != nil {
		return nil, fmt.Errorf("reverse geocoding failed: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no address found for %s", loc)
	}

	return &ResolvedAddress{
		FormattedAddress: results[0].FormattedAddress,
		Location:         loc,
	}, nil
}

// ResolvePair geocodes two place IDs in parallel. Used by the quote
// wizard when both endpoints change at once.
func (c *Client) ResolvePair(ctx context.Context, pickupPlaceID, destPlaceID string) (pickup, dest *ResolvedAddress, err error) {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var e error
		pickup, e = c.Resolve(ctx, pickupPlaceID)
		return e
	})
	g.Go(func() error {
		var e error
		dest, e = c.Resolve(ctx, destPlaceID)
		return e
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return pickup, dest, nil
}

// Route computes a driving route from origin to destination through the
// given waypoints. With optimize=true the Maps API is allowed to permute
// the waypoint visiting order.
func (c *Client) Route(ctx context.Context, origin, destination Location, waypoints []Location, optimize bool) (*RouteResult, error) {
	req := &maps.DirectionsRequest{
		Origin:      origin.String(),
		Destination: destination.String(),
		Mode:        maps.TravelModeDriving,
		Units:       maps.UnitsMetric,
		Optimize:    optimize,
	}
	for _, wp := range waypoints {
		req.Waypoints = append(req.Waypoints, wp.String())
	}

	routes, _, err := c.client.Directions(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("directions request failed: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return nil, fmt.Errorf("no route found")
	}

	route := routes[0]

	// Totals across all legs; a two-point route has exactly one leg.
	var meters int
	var minutes int
	for _, leg := range route.Legs {
		meters += leg.Distance.Meters
		minutes += int(leg.Duration.Minutes())
	}

	distanceText := route.Legs[0].Distance.HumanReadable
	if len(route.Legs) > 1 {
		distanceText = fmt.Sprintf("%.1f km", float64(meters)/1000.0)
	}

	return &RouteResult{
		DistanceText:    distanceText,
		DistanceMeters:  meters,
		DistanceKm:      float64(meters) / 1000.0,
		DurationText:    fmt.Sprintf("%d min", minutes),
		DurationMinutes: minutes,
		Polyline:        route.OverviewPolyline.Points,
		WaypointOrder:   route.WaypointOrder,
	}, nil
}
