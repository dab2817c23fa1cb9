package geocode

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kelvins/geocoder"
)

func TestGeocode(t *testing.T) {
	var gotCity, gotKey string
	g := NewGoogleGeocoder("test-key")
	g.lookup = func(addr geocoder.Address) (geocoder.Location, error) {
		gotCity = addr.City
		gotKey = geocoder.ApiKey
		return geocoder.Location{Latitude: 42.36, Longitude: -71.06}, nil
	}

	lat, lon, err := g.Geocode(context.Background(), "Boston")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lat != 42.36 || lon != -71.06 {
		t.Errorf("got (%v, %v)", lat, lon)
	}
	if gotCity != "Boston" || gotKey != "test-key" {
		t.Errorf("lookup called with city=%q key=%q", gotCity, gotKey)
	}
}

func TestGeocodeErrors(t *testing.T) {
	if _, _, err := NewGoogleGeocoder("").Geocode(context.Background(), "Boston"); !errors.Is(err, errNoAPIKey) {
		t.Errorf("expected errNoAPIKey, got %v", err)
	}

	lookupErr := errors.New("ZERO_RESULTS")
	g := NewGoogleGeocoder("k")
	g.lookup = func(geocoder.Address) (geocoder.Location, error) {
		return geocoder.Location{}, lookupErr
	}
	if _, _, err := g.Geocode(context.Background(), "Atlantis"); !errors.Is(err, lookupErr) {
		t.Errorf("expected wrapped lookup error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := g.Geocode(ctx, "Boston"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestGeocodeHonoursDeadline(t *testing.T) {
	g := NewGoogleGeocoder("k")
	g.lookup = func(geocoder.Address) (geocoder.Location, error) {
		time.Sleep(500 * time.Millisecond)
		return geocoder.Location{Latitude: 1, Longitude: 2}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, _, err := g.Geocode(ctx, "Boston")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 300*time.Millisecond {
		t.Errorf("deadline not applied, took %s", elapsed)
	}
}

func TestGeocodeConcurrentLookupsDoNotSerialize(t *testing.T) {
	g := NewGoogleGeocoder("k")
	g.lookup = func(geocoder.Address) (geocoder.Location, error) {
		time.Sleep(200 * time.Millisecond)
		return geocoder.Location{Latitude: 1, Longitude: 2}, nil
	}

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := g.Geocode(context.Background(), "Boston"); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if elapsed := time.Since(start); elapsed > 600*time.Millisecond {
		t.Errorf("lookups ran one after another, took %s", elapsed)
	}
}
