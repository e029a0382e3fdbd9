package telemetry

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"sync"
	"time"

	"cropadvisory/models"
)

// SeriesLength is the number of samples kept per chart series.
const SeriesLength = 24

// DefaultInterval is how often the simulator ticks.
const DefaultInterval = 1500 * time.Millisecond

// Clamp bounds for the running readings.
const (
	MoistureMin = 30.0
	MoistureMax = 80.0
	HumidityMin = 40.0
	HumidityMax = 90.0
)

var initialReading = models.Reading{Temperature: 26, Moisture: 48, Humidity: 62}

// ring is a fixed-size sample buffer; head points at the oldest sample.
type ring struct {
	buf  [SeriesLength]float64
	head int
}

func (r *ring) push(v float64) {
	r.buf[r.head] = v
	r.head = (r.head + 1) % SeriesLength
}

func (r *ring) values() []float64 {
	out := make([]float64, SeriesLength)
	for i := range out {
		out[i] = r.buf[(r.head+i)%SeriesLength]
	}
	return out
}

var labels = func() []string {
	out := make([]string, SeriesLength)
	for i := range out {
		out[i] = fmt.Sprintf("%d:00", i)
	}
	return out
}()

// Simulator produces pseudo-random sensor readings and keeps the chart
// history. It is safe for concurrent use; Tick is expected to be driven by
// a single goroutine (Run).
type Simulator struct {
	mu        sync.RWMutex
	rng       *rand.Rand
	reading   models.Reading
	temp      ring
	moisture  ring
	humidity  ring
	tick      uint64
	updatedAt time.Time

	interval time.Duration
	now      func() time.Time

	subMu   sync.Mutex
	subs    map[chan models.TelemetrySnapshot]struct{}
	stopped bool // set once Run has returned
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithRand sets the random source. Useful for deterministic tests.
func WithRand(r *rand.Rand) Option {
	return func(s *Simulator) { s.rng = r }
}

// WithInterval overrides DefaultInterval.
func WithInterval(d time.Duration) Option {
	return func(s *Simulator) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Simulator) { s.now = now }
}

// NewSimulator returns a simulator with the initial reading and freshly
// randomised history.
func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		reading:  initialReading,
		interval: DefaultInterval,
		now:      time.Now,
		subs:     make(map[chan models.TelemetrySnapshot]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for i := 0; i < SeriesLength; i++ {
		s.temp.push(20 + s.rng.Float64()*10)
		s.moisture.push(40 + s.rng.Float64()*20)
		s.humidity.push(55 + s.rng.Float64()*15)
	}
	s.updatedAt = s.now()
	return s
}

// Interval returns the tick interval.
func (s *Simulator) Interval() time.Duration {
	return s.interval
}

// Tick perturbs the readings, shifts every series by one sample and
// notifies subscribers.
func (s *Simulator) Tick() models.TelemetrySnapshot {
	s.mu.Lock()
	cur := s.reading
	s.reading = models.Reading{
		Temperature: round1(cur.Temperature + (s.rng.Float64()*2 - 1)),
		Moisture:    clamp(round1(cur.Moisture+(s.rng.Float64()*4-2)), MoistureMin, MoistureMax),
		Humidity:    clamp(round1(cur.Humidity+(s.rng.Float64()*4-2)), HumidityMin, HumidityMax),
	}
	s.temp.push(22 + s.rng.Float64()*10)
	s.moisture.push(40 + s.rng.Float64()*20)
	s.humidity.push(55 + s.rng.Float64()*20)
	s.tick++
	s.updatedAt = s.now()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
	return snap
}

// Snapshot returns a copy of the current state.
func (s *Simulator) Snapshot() models.TelemetrySnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Simulator) snapshotLocked() models.TelemetrySnapshot {
	lbl := make([]string, SeriesLength)
	copy(lbl, labels)
	return models.TelemetrySnapshot{
		Reading: s.reading,
		Series: models.Series{
			Labels:      lbl,
			Temperature: s.temp.values(),
			Moisture:    s.moisture.values(),
			Humidity:    s.humidity.values(),
		},
		Tick:      s.tick,
		UpdatedAt: s.updatedAt,
	}
}

// Run ticks every interval until ctx is done.
func (s *Simulator) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("[telemetry] simulator started, interval %s", s.interval)
	for {
		select {
		case <-ctx.Done():
			log.Println("[telemetry] simulator stopped")
			s.closeSubscribers()
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Subscribe returns a channel that receives a snapshot after every tick.
// A subscriber that falls behind only ever sees the latest snapshot. After
// Run has returned the channel comes back already closed.
func (s *Simulator) Subscribe() chan models.TelemetrySnapshot {
	ch := make(chan models.TelemetrySnapshot, 1)
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if s.stopped {
		close(ch)
		return ch
	}
	s.subs[ch] = struct{}{}
	return ch
}

// Unsubscribe removes ch and closes it.
func (s *Simulator) Unsubscribe(ch chan models.TelemetrySnapshot) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if _, ok := s.subs[ch]; ok {
		delete(s.subs, ch)
		close(ch)
	}
}

// Subscribers returns the number of live subscriptions.
func (s *Simulator) Subscribers() int {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	return len(s.subs)
}

func (s *Simulator) publish(snap models.TelemetrySnapshot) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- snap:
		default:
			// drop the stale snapshot and keep the newest
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

func (s *Simulator) closeSubscribers() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.stopped = true
	for ch := range s.subs {
		delete(s.subs, ch)
		close(ch)
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
