package runner

import "math/rand"

// SimulationContext carries the state every subsystem of a run shares: game
// time, distance travelled, scroll speed, the seeded RNG, pending deferred
// callbacks and the events emitted during the current frame.
//
// It is created when a run starts, reset on restart and torn down on game
// over, at which point pending callbacks are dropped.
type SimulationContext struct {
	Time     float64 // seconds of game time
	Distance float64 // world pixels travelled
	Scroll   float64 // current scroll speed, pixels/second
	Frame    int

	rng      *rand.Rand
	deferred DeferredQueue
	events   []Event
}

// NewSimulationContext creates a context for a run at the given scroll speed.
func NewSimulationContext(seed int64, scroll float64) *SimulationContext {
	return &SimulationContext{
		Scroll: scroll,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Reset rewinds the context for a fresh run.
func (c *SimulationContext) Reset(seed int64, scroll float64) {
	c.Time = 0
	c.Distance = 0
	c.Scroll = scroll
	c.Frame = 0
	c.rng = rand.New(rand.NewSource(seed))
	c.deferred.Reset()
	c.events = c.events[:0]
}

// Teardown drops pending callbacks so nothing fires after the run ends.
func (c *SimulationContext) Teardown() {
	c.deferred.Reset()
}

// After schedules fn to run delay seconds of game time from now.
func (c *SimulationContext) After(delay float64, fn func()) {
	c.deferred.Schedule(c.Time+delay, fn)
}

// Pending returns the number of deferred callbacks not yet run.
func (c *SimulationContext) Pending() int {
	return c.deferred.Len()
}

// Uniform returns a random value in [lo, hi].
func (c *SimulationContext) Uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + c.rng.Float64()*(hi-lo)
}

// Intn returns a random index in [0, n).
func (c *SimulationContext) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	return c.rng.Intn(n)
}

func (c *SimulationContext) emit(e Event) {
	c.events = append(c.events, e)
}

// drainEvents returns the events emitted since the last call.
func (c *SimulationContext) drainEvents() []Event {
	if len(c.events) == 0 {
		return nil
	}
	out := make([]Event, len(c.events))
	copy(out, c.events)
	c.events = c.events[:0]
	return out
}
