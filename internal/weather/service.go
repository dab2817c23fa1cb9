package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
)

// Service orchestrates the two upstream calls and response assembly.
type Service struct {
	provider Provider
	geocoder Geocoder
	timeout  time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithGeocoder resolves place names to coordinates before querying upstream.
func WithGeocoder(g Geocoder) Option {
	return func(s *Service) {
		s.geocoder = g
	}
}

// WithTimeout bounds each upstream call. Zero disables the per-call deadline.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.timeout = d
	}
}

// NewService creates a new Service.
func NewService(provider Provider, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		timeout:  10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetWeather fetches current conditions and the forecast for the raw location
// concurrently and reshapes them into a WeatherResponse. Any upstream failure
// fails the whole request.
func (s *Service) GetWeather(ctx context.Context, raw string) (WeatherResponse, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return WeatherResponse{}, ErrInvalidLocation
	}

	q := s.resolve(ctx, ParseLocation(raw))
	log.Printf("INFO: weather requested for %s", q.Key())

	var (
		wg          sync.WaitGroup
		current     CurrentConditions
		intervals   []ForecastInterval
		currentErr  error
		forecastErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()

		callCtx, cancel := s.callContext(ctx)
		defer cancel()
		current, currentErr = s.provider.FetchCurrent(callCtx, q)
	}()
	go func() {
		defer wg.Done()

		callCtx, cancel := s.callContext(ctx)
		defer cancel()
		intervals, forecastErr = s.provider.FetchForecast(callCtx, q)
	}()
	wg.Wait()

	if err := errors.Join(currentErr, forecastErr); err != nil {
		log.Printf("ERROR: provider %s failed for %s: %v", s.provider.Name(), q.Key(), err)
		return WeatherResponse{}, err
	}

	log.Printf("DEBUG: weather retrieved for %s: %d forecast intervals", q.Key(), len(intervals))
	return BuildResponse(current, intervals), nil
}

// Probe performs a single current-conditions call and reports its outcome.
func (s *Service) Probe(ctx context.Context, raw string) ProbeResult {
	raw = strings.TrimSpace(raw)
	q := ParseLocation(raw)

	callCtx, cancel := s.callContext(ctx)
	defer cancel()

	start := time.Now()
	_, err := s.provider.FetchCurrent(callCtx, q)

	res := ProbeResult{
		Location:  raw,
		Provider:  s.provider.Name(),
		Timestamp: start.UTC(),
		Latency:   time.Since(start),
		OK:        err == nil,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}

func (s *Service) resolve(ctx context.Context, q Query) Query {
	if q.HasCoords || s.geocoder == nil {
		return q
	}

	geoCtx, cancel := s.callContext(ctx)
	defer cancel()

	lat, lon, err := s.geocoder.Geocode(geoCtx, q.Name)
	if err != nil {
		log.Printf("INFO: geocoding %q failed, querying by name: %v", q.Name, err)
		return q
	}
	return Query{Name: q.Name, Lat: lat, Lon: lon, HasCoords: true}
}

func (s *Service) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// IsUpstreamFailure reports whether err should be surfaced as a provider
// failure rather than a client or internal error.
func IsUpstreamFailure(err error) bool {
	return errors.Is(err, ErrUpstream) || errors.Is(err, ErrMalformedUpstream)
}

// ProbeResult is the outcome of one upstream health probe.
type ProbeResult struct {
	Location  string        `json:"location"`
	Provider  string        `json:"provider"`
	Timestamp time.Time     `json:"timestamp"` // always UTC
	Latency   time.Duration `json:"latencyNs"`
	OK        bool          `json:"ok"`
	Error     string        `json:"error,omitempty"`
}

// String is used in scheduler logs.
func (r ProbeResult) String() string {
	if r.OK {
		return fmt.Sprintf("%s %s ok in %s", r.Provider, r.Location, r.Latency)
	}
	return fmt.Sprintf("%s %s failed after %s: %s", r.Provider, r.Location, r.Latency, r.Error)
}
