// Package rod is the ants-on-a-rod simulation core.
//
// Ants walk a unit-length rod at fixed speed, bounce off each other
// elastically and fall off the ends. One ant, Molly, is tracked through
// every collision. The engine never resolves a collision directly: because
// equal ants bouncing apart trace the same positions as ants passing
// through each other, each tick advances every ant along its original
// direction, re-sorts by position and reassigns the kind labels by rank.
//
//	state, err := rod.NewState(rod.Config{Count: 25, MollyIndex: -1, Step: 0.001}, rng)
//	for !state.Terminated() {
//	    state.Step()
//	}
//
// State invariants after every [State.Step]:
//
//   - ants are sorted ascending by position
//   - at most one ant is Molly
//   - every position lies in [0, 1); ants outside are evicted
//   - speeds are the same values the ants were created with
package rod
