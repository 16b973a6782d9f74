// Package health runs periodic dependency probes and caches the latest
// snapshot for the readiness endpoint and any interested subscriber.
package health

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pondokdigital/pesantren-api/internal/observability/logger"
)

// Probe is one named dependency check. Check must respect ctx.
type Probe struct {
	Name  string
	Check func(ctx context.Context) error
}

// CheckResult is the outcome of a single probe run.
type CheckResult struct {
	Healthy   bool          `json:"healthy"`
	Error     string        `json:"error,omitempty"`
	LatencyMs int64         `json:"latencyMs"`
	Latency   time.Duration `json:"-"`
}

// Status is one full snapshot across all probes.
type Status struct {
	Healthy   bool                   `json:"healthy"`
	Checks    map[string]CheckResult `json:"checks"`
	CheckedAt time.Time              `json:"checkedAt"`
}

// Monitor owns the probe loop. Construct with NewMonitor, then Start once;
// Stop tears the loop down and closes subscriber channels.
type Monitor struct {
	probes   []Probe
	interval time.Duration
	timeout  time.Duration

	mu   sync.RWMutex
	last Status
	subs map[int]chan Status
	next int

	cancel context.CancelFunc
	done   chan struct{}
}

func NewMonitor(interval, timeout time.Duration, probes ...Probe) *Monitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Monitor{
		probes:   probes,
		interval: interval,
		timeout:  timeout,
		subs:     make(map[int]chan Status),
	}
}

// Start launches the probe loop. The first run happens immediately so
// readiness is meaningful before the first tick.
func (m *Monitor) Start(ctx context.Context) {
	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})

	go func() {
		defer close(m.done)

		m.runOnce(ctx)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.runOnce(ctx)
			}
		}
	}()
}

// Stop halts the loop, waits for it to finish and closes all subscriber
// channels.
func (m *Monitor) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, ch := range m.subs {
		close(ch)
		delete(m.subs, id)
	}
}

// Subscribe returns a channel receiving every new snapshot and a cancel
// function. Slow subscribers miss snapshots instead of blocking the loop.
func (m *Monitor) Subscribe() (<-chan Status, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.next
	m.next++
	ch := make(chan Status, 1)
	m.subs[id] = ch

	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if c, ok := m.subs[id]; ok {
			close(c)
			delete(m.subs, id)
		}
	}
}

// Last returns the most recent snapshot. Zero-value Status (not healthy)
// before the first run completes.
func (m *Monitor) Last() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last
}

// Ready reports whether the last run saw every dependency healthy.
func (m *Monitor) Ready() bool {
	return m.Last().Healthy
}

// runOnce executes all probes in parallel and publishes the snapshot.
func (m *Monitor) runOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	results := make([]CheckResult, len(m.probes))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range m.probes {
		i, p := i, p
		g.Go(func() error {
			start := time.Now()
			err := p.Check(gctx)
			lat := time.Since(start)
			res := CheckResult{Healthy: err == nil, Latency: lat, LatencyMs: lat.Milliseconds()}
			if err != nil {
				res.Error = err.Error()
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	status := Status{
		Healthy:   true,
		Checks:    make(map[string]CheckResult, len(m.probes)),
		CheckedAt: time.Now().UTC(),
	}
	for i, p := range m.probes {
		status.Checks[p.Name] = results[i]
		if !results[i].Healthy {
			status.Healthy = false
			logger.L().Warn("dependency probe failed",
				logger.Component("health"),
				logger.String("probe", p.Name),
				logger.String("error", results[i].Error),
			)
		}
	}

	m.publish(status)
}

func (m *Monitor) publish(s Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = s
	for _, ch := range m.subs {
		select {
		case ch <- s:
		default:
			// drop: subscriber has not drained the previous snapshot
		}
	}
}
