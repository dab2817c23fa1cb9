package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Prober checks upstream health for a single location.
type Prober interface {
	Probe(ctx context.Context, location string) weather.ProbeResult
}

// Recorder keeps probe results.
type Recorder interface {
	Save(res weather.ProbeResult)
}

// Scheduler periodically probes the weather provider for configured locations.
type Scheduler struct {
	scheduler *gocron.Scheduler
	prober    Prober
	recorder  Recorder
	locations []string
	interval  time.Duration
}

// New creates a new Scheduler.
func New(locations []string, interval time.Duration, prober Prober, recorder Recorder) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		prober:    prober,
		recorder:  recorder,
		locations: locations,
		interval:  interval,
	}
}

// Start schedules the periodic probe job and starts the underlying scheduler.
// The first run happens immediately.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		log.Println("scheduler: no probe locations configured; nothing to schedule")
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	_, err := s.scheduler.Every(interval).Do(s.RunOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce probes every location concurrently and records the results.
func (s *Scheduler) RunOnce() {
	log.Println("scheduler: running upstream probe job")

	var wg sync.WaitGroup
	for _, loc := range s.locations {
		loc := loc
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			res := s.prober.Probe(ctx, loc)
			if !res.OK {
				log.Printf("scheduler: probe failed: %s", res)
			}
			s.recorder.Save(res)
		}()
	}
	wg.Wait()
	log.Println("scheduler: completed upstream probe job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
