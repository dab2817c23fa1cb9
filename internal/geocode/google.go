// Package geocode resolves free-text place names to coordinates through the
// Google Geocoding API.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kelvins/geocoder"
)

var errNoAPIKey = errors.New("geocoder api key is not configured")

// geocoder keeps its key in a package variable; it is only written here.
var apiKeyMu sync.Mutex

// GoogleGeocoder implements weather.Geocoder.
type GoogleGeocoder struct {
	apiKey string
	lookup func(geocoder.Address) (geocoder.Location, error)
}

// NewGoogleGeocoder creates a geocoder using the given Google API key.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	apiKeyMu.Lock()
	geocoder.ApiKey = apiKey
	apiKeyMu.Unlock()

	return &GoogleGeocoder{
		apiKey: apiKey,
		lookup: geocoder.Geocoding,
	}
}

type lookupResult struct {
	loc geocoder.Location
	err error
}

// Geocode returns the coordinates of the best match for name. The underlying
// client has no timeout of its own, so the lookup is abandoned when ctx is
// done.
func (g *GoogleGeocoder) Geocode(ctx context.Context, name string) (float64, float64, error) {
	if g.apiKey == "" {
		return 0, 0, errNoAPIKey
	}
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}

	done := make(chan lookupResult, 1)
	go func() {
		loc, err := g.lookup(geocoder.Address{City: name})
		done <- lookupResult{loc: loc, err: err}
	}()

	select {
	case <-ctx.Done():
		return 0, 0, fmt.Errorf("geocode %q: %w", name, ctx.Err())
	case res := <-done:
		if res.err != nil {
			return 0, 0, fmt.Errorf("geocode %q: %w", name, res.err)
		}
		return res.loc.Latitude, res.loc.Longitude, nil
	}
}
