package metrics

import (
	"math"

	"github.com/BonnyAD9/stick-ants/internal/rod"
)

// Population tracks the mean number of ants on the rod per observed tick.
type Population struct {
	sum     int
	samples int
}

func NewPopulation() *Population { return &Population{} }

func (p *Population) Name() string { return "mean_population" }

func (p *Population) Observe(snap rod.Snapshot) {
	p.sum += len(snap.Ants)
	p.samples++
}

func (p *Population) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return float64(p.sum) / float64(p.samples)
}

func (p *Population) Reset() {
	p.sum = 0
	p.samples = 0
}

// MollySurvival records the last tick at which Molly was still on the rod.
type MollySurvival struct {
	lastTick int
	gone     bool
}

func NewMollySurvival() *MollySurvival { return &MollySurvival{} }

func (m *MollySurvival) Name() string { return "molly_survival_ticks" }

func (m *MollySurvival) Observe(snap rod.Snapshot) {
	if m.gone {
		return
	}
	if _, ok := snap.Molly(); ok {
		m.lastTick = snap.Tick
	} else {
		m.gone = true
	}
}

func (m *MollySurvival) Value() float64 { return float64(m.lastTick) }

func (m *MollySurvival) Reset() {
	m.lastTick = 0
	m.gone = false
}

// MollyExcursion tracks how far Molly's label has drifted from where it
// started. The label moves only through collisions, so this measures how
// much Molly got bounced around.
type MollyExcursion struct {
	start   float64
	started bool
	max     float64
}

func NewMollyExcursion() *MollyExcursion { return &MollyExcursion{} }

func (m *MollyExcursion) Name() string { return "molly_excursion" }

func (m *MollyExcursion) Observe(snap rod.Snapshot) {
	pos, ok := snap.Molly()
	if !ok {
		return
	}
	if !m.started {
		m.start = pos
		m.started = true
		return
	}
	if d := math.Abs(pos - m.start); d > m.max {
		m.max = d
	}
}

func (m *MollyExcursion) Value() float64 { return m.max }

func (m *MollyExcursion) Reset() {
	m.start = 0
	m.started = false
	m.max = 0
}
