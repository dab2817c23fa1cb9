package store

import (
	"errors"
	"testing"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

func result(loc string, ts time.Time, ok bool) weather.ProbeResult {
	return weather.ProbeResult{Location: loc, Provider: "fake", Timestamp: ts, OK: ok}
}

func TestMemoryStoreLatest(t *testing.T) {
	s := NewMemoryStore(0, 0)

	if _, err := s.GetLatest("Boston"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	now := time.Now().UTC()
	s.Save(result("Boston", now.Add(-time.Minute), false))
	s.Save(result("Boston", now, true))
	s.Save(result("Paris", now, false))

	got, err := s.GetLatest("Boston")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.OK || !got.Timestamp.Equal(now) {
		t.Errorf("unexpected latest: %+v", got)
	}

	if n := len(s.Latest()); n != 2 {
		t.Errorf("expected 2 locations, got %d", n)
	}
}

func TestMemoryStoreRetentionByCount(t *testing.T) {
	s := NewMemoryStore(3, 0)
	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		s.Save(result("Boston", base.Add(time.Duration(i)*time.Second), true))
	}

	all, err := s.GetRange("Boston", base.Add(-time.Hour), base.Add(time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 results, got %d", len(all))
	}
	if !all[0].Timestamp.Equal(base.Add(2 * time.Second)) {
		t.Errorf("oldest entries should be dropped first, got %v", all[0].Timestamp)
	}
}

func TestMemoryStoreRetentionByAge(t *testing.T) {
	s := NewMemoryStore(0, time.Hour)
	now := time.Now().UTC()

	s.Save(result("Boston", now.Add(-3*time.Hour), true))
	s.Save(result("Boston", now.Add(-2*time.Hour), true))
	s.Save(result("Boston", now, true))

	all, err := s.GetRange("Boston", now.Add(-24*time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected only the fresh result, got %d", len(all))
	}
}

func TestMemoryStoreGetRange(t *testing.T) {
	s := NewMemoryStore(0, 0)
	base := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		s.Save(result("Boston", base.Add(time.Duration(i)*time.Hour), true))
	}

	got, err := s.GetRange("Boston", base.Add(time.Hour), base.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected inclusive range of 2, got %d", len(got))
	}

	if _, err := s.GetRange("Boston", base.Add(10*time.Hour), base.Add(11*time.Hour)); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for empty range, got %v", err)
	}
}
