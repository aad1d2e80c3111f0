package scheduler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// Prober is an upstream whose reachability can be checked.
type Prober interface {
	Name() string
	Probe(ctx context.Context) error
}

// ProbeResult is the outcome of the most recent probe of one upstream.
type ProbeResult struct {
	Service   string    `json:"service"`
	Reachable bool      `json:"reachable"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Scheduler periodically probes the configured upstreams and keeps the
// latest result per upstream.
type Scheduler struct {
	scheduler *gocron.Scheduler
	probers   []Prober
	interval  time.Duration
	timeout   time.Duration
	logger    logrus.FieldLogger

	mu      sync.RWMutex
	results map[string]ProbeResult
}

// New creates a new Scheduler.
func New(probers []Prober, interval, timeout time.Duration, logger logrus.FieldLogger) *Scheduler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		probers:   probers,
		interval:  interval,
		timeout:   timeout,
		logger:    logger,
		results:   make(map[string]ProbeResult),
	}
}

// Start schedules the probe job and starts the underlying scheduler.
// The first run happens immediately.
func (s *Scheduler) Start() error {
	if len(s.probers) == 0 {
		s.logger.Info("scheduler: no upstreams configured; nothing to probe")
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	if _, err := s.scheduler.Every(interval).Do(s.RunOnce); err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// RunOnce probes every upstream concurrently and records the results.
func (s *Scheduler) RunOnce() {
	s.logger.Debug("scheduler: probing upstreams")

	var wg sync.WaitGroup
	for _, p := range s.probers {
		wg.Add(1)
		go func(p Prober) {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			defer cancel()

			res := ProbeResult{
				Service:   p.Name(),
				Reachable: true,
				CheckedAt: time.Now().UTC(),
			}
			if err := p.Probe(ctx); err != nil {
				res.Reachable = false
				res.Error = err.Error()
				s.logger.WithFields(logrus.Fields{
					"service": p.Name(),
					"error":   err.Error(),
				}).Warn("scheduler: upstream probe failed")
			}

			s.mu.Lock()
			s.results[res.Service] = res
			s.mu.Unlock()
		}(p)
	}
	wg.Wait()
}

// Snapshot returns the latest probe results ordered by service name.
func (s *Scheduler) Snapshot() []ProbeResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ProbeResult, 0, len(s.results))
	for _, r := range s.results {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Service < out[j].Service })
	return out
}
