package ticktimer

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Aleph-Alpha/sim-exporter/pkg/metrics"
)

const (
	scopeServer    = "server"
	scopeDimension = "dimension"

	ServerTickSecondsName    = "mc_server_tick_seconds"
	DimensionTickSecondsName = "mc_dimension_tick_seconds"
)

// DefaultBuckets are the histogram buckets, in seconds, for tick durations.
var DefaultBuckets = []float64{0.01, 0.025, 0.05, 0.10, 0.25, 0.5, 1.0}

// Logger is the subset of the std logger used by the timer.
//
//go:generate mockgen -source=timer.go -destination=mock_logger_test.go -package=ticktimer
type Logger interface {
	Warn(msg string, err error, fields ...map[string]interface{})
}

type scope struct {
	running bool
	start   time.Time
	name    string
}

// Timer measures server and per-dimension tick durations from start and
// stop signals.
//
// Each scope is either idle or running. A start on a running scope keeps
// the original start time and a stop on an idle scope records nothing;
// what else happens depends on the Policy. Dimension scopes are created
// on their first start and kept for the lifetime of the Timer.
//
// The tick loop is the only writer. Scrapes read the histograms
// concurrently.
type Timer struct {
	mu     sync.Mutex
	server scope
	dims   map[int]*scope

	now     func() time.Time
	policy  Policy
	logger  Logger
	buckets []float64

	serverSeconds prometheus.Histogram
	dimSeconds    *prometheus.HistogramVec
}

// Option configures a Timer.
type Option func(*Timer)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Timer) { t.now = now }
}

// WithPolicy sets the violation policy. The default is PolicyLog.
func WithPolicy(p Policy) Option {
	return func(t *Timer) { t.policy = p }
}

// WithLogger sets the logger used by PolicyLog.
func WithLogger(l Logger) Option {
	return func(t *Timer) { t.logger = l }
}

// WithBuckets overrides DefaultBuckets.
func WithBuckets(b []float64) Option {
	return func(t *Timer) { t.buckets = append([]float64(nil), b...) }
}

// New creates an idle Timer.
func New(opts ...Option) *Timer {
	t := &Timer{
		dims:    make(map[int]*scope),
		now:     time.Now,
		policy:  PolicyLog,
		buckets: DefaultBuckets,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.serverSeconds = metrics.NewHistogramMetric(ServerTickSecondsName, "Stats on server tick times.", t.buckets)
	t.dimSeconds = metrics.NewHistogramVec(DimensionTickSecondsName, "Stats on dimension tick times.", []string{"id", "name"}, t.buckets)
	return t
}

// Policy returns the configured violation policy.
func (t *Timer) Policy() Policy {
	return t.policy
}

// StartServerTick records the start of a server tick.
func (t *Timer) StartServerTick() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.server.running {
		return t.violation(&TickError{Scope: scopeServer, Err: ErrTickOverlap})
	}
	t.server.running = true
	t.server.start = t.now()
	return nil
}

// StopServerTick records the end of a server tick.
func (t *Timer) StopServerTick() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.server.running {
		return t.violation(&TickError{Scope: scopeServer, Err: ErrTickUnderflow})
	}
	t.server.running = false
	t.serverSeconds.Observe(t.elapsed(t.server.start))
	return nil
}

// StartDimensionTick records the start of a tick of dimension id.
func (t *Timer) StartDimensionTick(id int, name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.dims[id]
	if !ok {
		s = &scope{}
		t.dims[id] = s
	}
	if s.running {
		return t.violation(&TickError{Scope: scopeDimension, DimensionID: id, DimensionName: name, Err: ErrTickOverlap})
	}
	s.running = true
	s.start = t.now()
	s.name = name
	return nil
}

// StopDimensionTick records the end of a tick of dimension id. The sample
// is labeled with the name given at start.
func (t *Timer) StopDimensionTick(id int, name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.dims[id]
	if !ok || !s.running {
		return t.violation(&TickError{Scope: scopeDimension, DimensionID: id, DimensionName: name, Err: ErrTickUnderflow})
	}
	s.running = false
	t.dimSeconds.WithLabelValues(strconv.Itoa(id), s.name).Observe(t.elapsed(s.start))
	return nil
}

// Running reports whether the server scope is running.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.server.running
}

// DimensionRunning reports whether the scope of dimension id is running.
func (t *Timer) DimensionRunning(id int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.dims[id]
	return ok && s.running
}

func (t *Timer) elapsed(start time.Time) float64 {
	d := t.now().Sub(start)
	if d < 0 {
		d = 0
	}
	return d.Seconds()
}

func (t *Timer) violation(err *TickError) error {
	switch t.policy {
	case PolicyStrict:
		return err
	case PolicyLog:
		if t.logger != nil {
			fields := map[string]interface{}{"scope": err.Scope}
			if err.Scope == scopeDimension {
				fields["dimension_id"] = err.DimensionID
				fields["dimension_name"] = err.DimensionName
			}
			t.logger.Warn("tick protocol violation", err, fields)
		}
	}
	return nil
}
