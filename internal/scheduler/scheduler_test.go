package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

type stubProber struct{}

func (stubProber) Probe(_ context.Context, location string) weather.ProbeResult {
	return weather.ProbeResult{Location: location, OK: location != "broken", Timestamp: time.Now().UTC()}
}

type memRecorder struct {
	mu      sync.Mutex
	results map[string]weather.ProbeResult
}

func (m *memRecorder) Save(res weather.ProbeResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[res.Location] = res
}

func TestRunOnceProbesEveryLocation(t *testing.T) {
	rec := &memRecorder{results: map[string]weather.ProbeResult{}}
	s := New([]string{"Boston", "40.7,-74.0", "broken"}, time.Minute, stubProber{}, rec)

	s.RunOnce()

	if len(rec.results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(rec.results))
	}
	if rec.results["broken"].OK {
		t.Error("expected failed probe for broken location")
	}
	if !rec.results["40.7,-74.0"].OK {
		t.Error("expected successful probe for coordinates")
	}
}

func TestStartWithoutLocations(t *testing.T) {
	rec := &memRecorder{results: map[string]weather.ProbeResult{}}
	s := New(nil, time.Minute, stubProber{}, rec)

	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Stop()

	if len(rec.results) != 0 {
		t.Errorf("expected no probes, got %d", len(rec.results))
	}
}
