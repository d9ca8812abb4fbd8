package rod_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/BonnyAD9/stick-ants/internal/rod"
)

func mollies(s *rod.State) int {
	n := 0
	for _, a := range s.Ants {
		if a.Kind == rod.Molly {
			n++
		}
	}
	return n
}

func sorted(s *rod.State) bool {
	for i := 1; i < len(s.Ants); i++ {
		if s.Ants[i].Position < s.Ants[i-1].Position {
			return false
		}
	}
	return true
}

var _ = Describe("Step", func() {
	seeds := []int64{1, 2, 3, 17, 99, 1234}

	It("keeps the ants sorted by position on every tick", func() {
		for _, seed := range seeds {
			state, err := rod.NewState(
				rod.Config{Count: 40, MollyIndex: -1, Step: 0.013},
				rand.New(rand.NewSource(seed)),
			)
			Expect(err).NotTo(HaveOccurred())

			for !state.Terminated() {
				state.Step()
				Expect(sorted(state)).To(BeTrue(), "seed %d tick %d", seed, state.Tick)
			}
		}
	})

	It("keeps exactly one Molly until her trajectory leaves the rod", func() {
		for _, seed := range seeds {
			state, err := rod.NewState(
				rod.Config{Count: 40, MollyIndex: -1, Step: 0.013},
				rand.New(rand.NewSource(seed)),
			)
			Expect(err).NotTo(HaveOccurred())

			gone := false
			for !state.Terminated() {
				state.Step()
				n := mollies(state)
				if gone {
					Expect(n).To(BeZero(), "seed %d tick %d", seed, state.Tick)
					continue
				}
				Expect(n).To(BeNumerically("<=", 1), "seed %d tick %d", seed, state.Tick)
				if n == 0 {
					gone = true
				}
			}
		}
	})

	It("never grows the ant sequence", func() {
		for _, seed := range seeds {
			state, err := rod.NewState(
				rod.Config{Count: 40, MollyIndex: -1, Step: 0.013},
				rand.New(rand.NewSource(seed)),
			)
			Expect(err).NotTo(HaveOccurred())

			for !state.Terminated() {
				before := len(state.Ants)
				state.Step()
				Expect(len(state.Ants)).To(BeNumerically("<=", before))
			}
		}
	})

	It("never reverses an ant's speed", func() {
		state, err := rod.NewState(
			rod.Config{Count: 25, MollyIndex: -1, Step: 0.02},
			rand.New(rand.NewSource(5)),
		)
		Expect(err).NotTo(HaveOccurred())

		for !state.Terminated() {
			state.Step()
			for _, a := range state.Ants {
				Expect(a.Speed).To(Or(Equal(1.0), Equal(-1.0)))
			}
		}
	})

	It("clears the rod within one full crossing", func() {
		for _, seed := range seeds {
			state, err := rod.NewState(
				rod.Config{Count: 40, MollyIndex: -1, Step: 0.013},
				rand.New(rand.NewSource(seed)),
			)
			Expect(err).NotTo(HaveOccurred())

			// no ant needs longer than the whole rod at fixed speed
			stepSize := 0.013
			bound := int(1.0/stepSize) + 2
			for i := 0; i < bound && !state.Terminated(); i++ {
				state.Step()
			}
			Expect(state.Terminated()).To(BeTrue(), "seed %d", seed)
		}
	})
})
