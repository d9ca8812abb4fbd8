package rod

import (
	"fmt"
	"math/rand"
	"sort"
)

// Kind labels an ant. Empty is only used by renderers for unoccupied cells.
type Kind int

const (
	Empty Kind = iota
	Plain
	Molly
)

func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Molly:
		return "molly"
	default:
		return "empty"
	}
}

// Merge resolves two labels landing on the same render cell.
// Molly is never hidden behind a plain ant.
func (k Kind) Merge(other Kind) Kind {
	if k == Molly && other == Plain {
		return Molly
	}
	return other
}

// Ant is a point particle on the rod. Speed is +1 or -1 and is fixed for
// the ant's whole lifetime; collisions never reverse it.
type Ant struct {
	Position float64
	Speed    float64
	Kind     Kind
}

// State holds all ants on the rod, ordered ascending by position, plus the
// tick counter. StepSize is the distance every ant walks per tick.
type State struct {
	Ants     []Ant
	StepSize float64
	Tick     int

	kinds []Kind // scratch buffer reused across ticks
}

// NewState builds the initial state from cfg. Random placement draws from
// rng; Regular placement ignores it. Returns ErrInvalidConfig when cfg is
// out of domain or when random placement is asked to draw ants without a
// source.
func NewState(cfg Config, rng *rand.Rand) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Placement != Regular && cfg.Count > 0 && rng == nil {
		return nil, fmt.Errorf("%w: random placement needs a random source", ErrInvalidConfig)
	}

	ants := make([]Ant, cfg.Count)
	switch cfg.Placement {
	case Regular:
		placeRegular(ants)
	default:
		placeRandom(ants, rng, cfg.mollyIndex())
	}

	return &State{Ants: ants, StepSize: cfg.Step}, nil
}

// placeRegular spaces n ants evenly at k/(n+1), k = 1..n. Ants left of the
// center rank walk right, ants right of it walk left, and the ant at rank
// n/2 is Molly walking right. For even n that rank sits left of the true
// center; the integer division is the documented tie-break.
func placeRegular(ants []Ant) {
	n := len(ants)
	if n == 0 {
		return
	}
	gap := 1.0 / float64(n+1)
	mid := n / 2

	for i := range ants {
		ants[i].Position = gap * float64(i+1)
		switch {
		case i < mid:
			ants[i].Speed = 1
			ants[i].Kind = Plain
		case i == mid:
			ants[i].Speed = 1
			ants[i].Kind = Molly
		default:
			ants[i].Speed = -1
			ants[i].Kind = Plain
		}
	}
}

func placeRandom(ants []Ant, rng *rand.Rand, mollyIndex int) {
	for i := range ants {
		ants[i].Position = rng.Float64()
		if rng.Intn(2) == 0 {
			ants[i].Speed = 1
		} else {
			ants[i].Speed = -1
		}
		ants[i].Kind = Plain
	}

	sortByPosition(ants)
	if len(ants) > 0 {
		ants[mollyIndex].Kind = Molly
	}
}

// Step advances the simulation by one tick.
//
// Speeds are never reversed: two equal ants bouncing off each other trace
// the same positions as two ants passing through each other, so advancing
// every ant along its original direction, re-sorting by position and handing
// the kind labels back out by rank reproduces elastic collisions without
// ever detecting one.
func (s *State) Step() {
	for i := range s.Ants {
		s.Ants[i].Position += s.Ants[i].Speed * s.StepSize
	}

	// kinds ride the position ranks, not the ants
	if cap(s.kinds) < len(s.Ants) {
		s.kinds = make([]Kind, len(s.Ants))
	}
	kinds := s.kinds[:len(s.Ants)]
	for i, a := range s.Ants {
		kinds[i] = a.Kind
	}

	// stable sort: ants at the exact same position keep their prior order
	sortByPosition(s.Ants)
	for i := range s.Ants {
		s.Ants[i].Kind = kinds[i]
	}

	// ants that walked off either end sit contiguously at the edges of the
	// sorted slice
	hi := len(s.Ants)
	for hi > 0 && s.Ants[hi-1].Position >= 1 {
		hi--
	}
	lo := 0
	for lo < hi && s.Ants[lo].Position < 0 {
		lo++
	}
	s.Ants = s.Ants[lo:hi]

	s.Tick++
}

func sortByPosition(ants []Ant) {
	sort.SliceStable(ants, func(i, j int) bool {
		return ants[i].Position < ants[j].Position
	})
}

// Terminated reports whether the rod has cleared.
func (s *State) Terminated() bool {
	return len(s.Ants) == 0
}

// Elapsed is the simulated time, in step units.
func (s *State) Elapsed() float64 {
	return float64(s.Tick) * s.StepSize
}

// AntView is a read-only (position, kind) pair handed across the render
// boundary.
type AntView struct {
	Position float64
	Kind     Kind
}

// Snapshot is a copied view of the state at one tick. It shares no memory
// with the engine, so holding one across later ticks is safe.
type Snapshot struct {
	Ants []AntView
	Tick int
	Time float64
}

func (s *State) Snapshot() Snapshot {
	views := make([]AntView, len(s.Ants))
	for i, a := range s.Ants {
		views[i] = AntView{Position: a.Position, Kind: a.Kind}
	}
	return Snapshot{Ants: views, Tick: s.Tick, Time: s.Elapsed()}
}

// Molly returns the position of the Molly ant, or false once it has left
// the rod.
func (s Snapshot) Molly() (float64, bool) {
	for _, a := range s.Ants {
		if a.Kind == Molly {
			return a.Position, true
		}
	}
	return 0, false
}

// Raster paints the snapshot onto a row of cells, merging labels when two
// ants share a cell.
func (s Snapshot) Raster(cells []Kind) {
	for i := range cells {
		cells[i] = Empty
	}
	n := float64(len(cells))
	for _, a := range s.Ants {
		i := int(a.Position * n)
		if i < 0 || i >= len(cells) {
			continue
		}
		cells[i] = cells[i].Merge(a.Kind)
	}
}
