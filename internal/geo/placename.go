package geo

import (
	"context"
	"errors"
	"log"

	"github.com/kelvins/geocoder"
)

// PlaceNamer resolves a human-readable label for a coordinate.
type PlaceNamer interface {
	PlaceName(ctx context.Context, c Coordinate) (string, error)
}

// NoPlaceNamer is used when reverse geocoding is not configured.
type NoPlaceNamer struct{}

func (NoPlaceNamer) PlaceName(context.Context, Coordinate) (string, error) {
	return "", nil
}

var errNoAddress = errors.New("reverse geocoding returned no address")

// GoogleGeocoder reverse-geocodes through the Google Geocoding API.
type GoogleGeocoder struct{}

// NewGoogleGeocoder configures the geocoder package with apiKey.
// The key is package-global in the underlying library, so only one
// GoogleGeocoder should be created per process.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	geocoder.ApiKey = apiKey
	return &GoogleGeocoder{}
}

// PlaceName returns the formatted address closest to c. The underlying
// library takes no context, so the lookup runs on its own goroutine and
// PlaceName returns ctx.Err() as soon as ctx is done.
func (g *GoogleGeocoder) PlaceName(ctx context.Context, c Coordinate) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		name string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		name, err := reverseGeocode(c)
		done <- result{name, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.name, r.err
	}
}

func reverseGeocode(c Coordinate) (string, error) {
	addresses, err := geocoder.GeocodingReverse(geocoder.Location{
		Latitude:  c.Lat,
		Longitude: c.Lon,
	})
	if err != nil {
		log.Printf("geocoder: reverse lookup failed for %s: %v", c, err)
		return "", err
	}
	if len(addresses) == 0 {
		return "", errNoAddress
	}

	addr := addresses[0]
	if addr.FormattedAddress != "" {
		return addr.FormattedAddress, nil
	}
	return addr.FormatAddress(), nil
}
