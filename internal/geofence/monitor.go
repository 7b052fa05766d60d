package geofence

import (
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sandeepkv93/locrem/internal/model"
	"github.com/sandeepkv93/locrem/internal/observability"
)

type regionState struct {
	region Region
	inside bool
}

// Monitor watches registered regions against reported fixes and emits a
// transition each time a fix crosses a region boundary. Delivery on C never
// blocks; transitions are dropped and counted when the consumer falls behind.
type Monitor struct {
	mu            sync.Mutex
	regions       map[string]*regionState
	pending       []Fix
	defaultRadius float64
	out           chan Event
	wakeup        chan struct{}
	stopCh        chan struct{}
	doneCh        chan struct{}
	started       bool
	stopped       bool
	dropped       uint64
	logger        *slog.Logger
	metrics       *observability.Metrics
}

type Option func(*Monitor)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Monitor) { m.logger = observability.OrDiscard(logger) }
}

func WithMetrics(metrics *observability.Metrics) Option {
	return func(m *Monitor) { m.metrics = metrics }
}

func WithDefaultRadius(meters float64) Option {
	return func(m *Monitor) {
		if meters > 0 {
			m.defaultRadius = meters
		}
	}
}

func NewMonitor(bufferSize int, opts ...Option) *Monitor {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	m := &Monitor{
		regions:       make(map[string]*regionState),
		defaultRadius: DefaultRadiusMeters,
		out:           make(chan Event, bufferSize),
		wakeup:        make(chan struct{}, 1),
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
		logger:        observability.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Monitor) C() <-chan Event {
	return m.out
}

func (m *Monitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started || m.stopped {
		return
	}
	m.started = true
	go m.loop()
}

// Stop ends the loop and closes C. Fixes still queued are discarded. A
// stopped monitor cannot be started again.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		<-m.doneCh
		return
	}
	m.stopped = true
	if !m.started {
		close(m.out)
		close(m.doneCh)
		m.mu.Unlock()
		return
	}
	close(m.stopCh)
	m.mu.Unlock()
	<-m.doneCh
}

// Register adds or replaces a region. A zero radius takes the monitor default.
func (m *Monitor) Register(r Region) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.RadiusMeters == 0 {
		r.RadiusMeters = m.defaultRadius
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return ErrStopped
	}
	m.regions[r.ID] = &regionState{region: r}
	m.logger.Debug("geofence registered", "id", r.ID, "radius_m", r.RadiusMeters)
	return nil
}

func (m *Monitor) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.regions, id)
}

func (m *Monitor) RemoveAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.regions = make(map[string]*regionState)
}

func (m *Monitor) Regions() []Region {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Region, 0, len(m.regions))
	for _, st := range m.regions {
		out = append(out, st.region)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Report queues a fix for evaluation.
func (m *Monitor) Report(f Fix) error {
	if err := validateFix(f); err != nil {
		return err
	}
	if f.At.IsZero() {
		f.At = time.Now().UTC()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return ErrStopped
	}
	m.pending = append(m.pending, f)
	m.signalWakeup()
	return nil
}

func (m *Monitor) Dropped() uint64 {
	return atomic.LoadUint64(&m.dropped)
}

func (m *Monitor) loop() {
	defer close(m.doneCh)
	defer close(m.out)

	for {
		select {
		case <-m.wakeup:
			for _, f := range m.drain() {
				for _, ev := range m.evaluate(f) {
					m.deliver(ev)
				}
			}
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) deliver(ev Event) {
	select {
	case m.out <- ev:
		if m.metrics != nil {
			m.metrics.GeofenceTransitions.WithLabelValues(string(ev.Transition)).Inc()
		}
	default:
		atomic.AddUint64(&m.dropped, 1)
		if m.metrics != nil {
			m.metrics.GeofenceDropped.Inc()
		}
		m.logger.Warn("geofence event dropped", "id", ev.RegionID, "transition", ev.Transition)
	}
}

func (m *Monitor) signalWakeup() {
	select {
	case m.wakeup <- struct{}{}:
	default:
	}
}

func (m *Monitor) drain() []Fix {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.pending
	m.pending = nil
	return out
}

// evaluate updates inside/outside state for every region and returns the
// crossings in region id order.
func (m *Monitor) evaluate(f Fix) []Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.regions))
	for id := range m.regions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]Event, 0)
	for _, id := range ids {
		st := m.regions[id]
		dist := DistanceMeters(f.Latitude, f.Longitude, st.region.Latitude, st.region.Longitude)
		inside := dist <= st.region.RadiusMeters
		if inside == st.inside {
			continue
		}
		st.inside = inside
		tr := TransitionExit
		if inside {
			tr = TransitionEnter
		}
		out = append(out, Event{RegionID: id, Transition: tr, Fix: f, DistanceMeters: dist})
	}
	return out
}

func validateFix(f Fix) error {
	if err := model.ValidateLatitude(f.Latitude); err != nil {
		return err
	}
	return model.ValidateLongitude(f.Longitude)
}
