package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

var (
	// ErrNotFound is returned when no probe results exist for a given location.
	ErrNotFound = errors.New("no probe results for location")
)

// ProbeHistory holds a time-ordered list of probe results for a location.
type ProbeHistory struct {
	Results []weather.ProbeResult
}

// MemoryStore is a concurrency-safe in-memory store of upstream probe results.
type MemoryStore struct {
	mu sync.RWMutex

	// key: probe location, value: history
	data map[string]*ProbeHistory

	// retention configuration
	maxHistory int           // max number of results per location
	maxAge     time.Duration // optional max age for results
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*ProbeHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// Save appends a probe result and enforces retention.
func (s *MemoryStore) Save(res weather.ProbeResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[res.Location]
	if !ok {
		history = &ProbeHistory{}
		s.data[res.Location] = history
	}

	history.Results = append(history.Results, res)

	if s.maxHistory > 0 && len(history.Results) > s.maxHistory {
		over := len(history.Results) - s.maxHistory
		history.Results = history.Results[over:]
	}

	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(history.Results); i++ {
			if !history.Results[i].Timestamp.Before(cutoff) {
				break
			}
		}
		history.Results = history.Results[i:]
	}
}

// GetLatest returns the most recent result for a location.
func (s *MemoryStore) GetLatest(location string) (weather.ProbeResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[location]
	if !ok || len(history.Results) == 0 {
		return weather.ProbeResult{}, ErrNotFound
	}
	return history.Results[len(history.Results)-1], nil
}

// Latest returns the most recent result of every probed location.
func (s *MemoryStore) Latest() []weather.ProbeResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]weather.ProbeResult, 0, len(s.data))
	for _, history := range s.data {
		if n := len(history.Results); n > 0 {
			out = append(out, history.Results[n-1])
		}
	}
	return out
}

// GetRange returns all results for a location between from and to (inclusive).
func (s *MemoryStore) GetRange(location string, from, to time.Time) ([]weather.ProbeResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[location]
	if !ok || len(history.Results) == 0 {
		return nil, ErrNotFound
	}

	var result []weather.ProbeResult
	for _, res := range history.Results {
		if !res.Timestamp.Before(from) && !res.Timestamp.After(to) {
			result = append(result, res)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}

	return result, nil
}
