package sim

import (
	"context"
	"math"
	"time"

	"github.com/BonnyAD9/stick-ants/internal/rod"
)

// Observer receives a read-only snapshot after every tick is rendered.
type Observer interface {
	OnTick(snap rod.Snapshot)
}

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(snap rod.Snapshot)
	Value() float64
	Reset()
}

// Config controls the driving loop, not the physics.
type Config struct {
	// Delay is the pause between ticks. Zero runs flat out.
	Delay time.Duration
	// MaxTicks stops a run early; zero means run until the rod clears.
	MaxTicks int
}

// Result is the recorded history of one run.
type Result struct {
	Ticks   int
	Times   []float64
	Counts  []int
	Molly   []float64 // NaN after Molly leaves the rod
	Metrics map[string]float64
}

// Runner owns the render/pace/step sequencing around a rod state. The state
// is mutated only here; everything handed out is a snapshot.
type Runner struct {
	state     *rod.State
	metrics   []Metric
	observers []Observer
}

func New(state *rod.State) *Runner {
	return &Runner{state: state}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run drives the simulation until the rod clears, cfg.MaxTicks is reached,
// or ctx is cancelled. The initial state is observed before the first step.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	for _, m := range r.metrics {
		m.Reset()
	}

	res := &Result{Metrics: make(map[string]float64)}

	for {
		snap := r.state.Snapshot()
		r.record(res, snap)
		for _, m := range r.metrics {
			m.Observe(snap)
		}
		for _, o := range r.observers {
			o.OnTick(snap)
		}

		if r.state.Terminated() {
			break
		}
		if cfg.MaxTicks > 0 && r.state.Tick >= cfg.MaxTicks {
			break
		}

		if err := pause(ctx, cfg.Delay); err != nil {
			r.finish(res)
			return res, err
		}

		r.state.Step()
	}

	r.finish(res)
	return res, nil
}

func (r *Runner) record(res *Result, snap rod.Snapshot) {
	res.Ticks = snap.Tick
	res.Times = append(res.Times, snap.Time)
	res.Counts = append(res.Counts, len(snap.Ants))
	if pos, ok := snap.Molly(); ok {
		res.Molly = append(res.Molly, pos)
	} else {
		res.Molly = append(res.Molly, math.NaN())
	}
}

func (r *Runner) finish(res *Result) {
	for _, m := range r.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
