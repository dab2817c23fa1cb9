package weather

import (
	"context"
	"errors"
)

var (
	// ErrInvalidLocation is returned when the request carries no usable location.
	ErrInvalidLocation = errors.New("location is required")

	// ErrUpstream covers non-success statuses, network failures and timeouts
	// from the weather provider.
	ErrUpstream = errors.New("upstream weather provider failure")

	// ErrMalformedUpstream is returned when a successful upstream response
	// lacks fields the response is built from.
	ErrMalformedUpstream = errors.New("malformed upstream response")
)

// Provider abstracts the upstream weather API (OpenWeatherMap).
type Provider interface {
	Name() string
	FetchCurrent(ctx context.Context, q Query) (CurrentConditions, error)
	FetchForecast(ctx context.Context, q Query) ([]ForecastInterval, error)
}

// Geocoder resolves a place name to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, name string) (lat, lon float64, err error)
}
