package quantum

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Simulator executes circuits against fresh state vectors.
//
// Run is fully deterministic; only Sample draws randomness. Every Run and
// Sample call allocates its own state vector, so a single Simulator value
// may be shared across goroutines as long as it was seeded (an unseeded
// simulator's RNG is not safe for concurrent Sample calls).
type Simulator struct {
	seed   uint64
	seeded bool
}

// NewSimulator returns a simulator whose sampling draws fresh entropy.
func NewSimulator() *Simulator {
	return &Simulator{}
}

// NewSimulatorSeeded returns a simulator with reproducible sampling: the
// same seed, circuit and shot count always yield identical outcome counts.
func NewSimulatorSeeded(seed uint64) *Simulator {
	return &Simulator{seed: seed, seeded: true}
}

// Run interprets the circuit's gates in order against a new state vector
// initialized to |0...0⟩ and returns the final state. Measure markers are
// no-ops here. Two runs of the same circuit produce bit-identical
// amplitudes.
func (sim *Simulator) Run(c *Circuit) (*StateVector, error) {
	if err := c.Err(); err != nil {
		return nil, err
	}
	state, err := NewStateVector(c.NumQubits())
	if err != nil {
		return nil, err
	}
	for _, g := range c.Gates() {
		if err := applyGate(state, g); err != nil {
			return nil, fmt.Errorf("apply %s: %w", g.Kind, err)
		}
	}
	return state, nil
}

func applyGate(state *StateVector, g Gate) error {
	switch g.Kind {
	case KindMeasure:
		return nil
	case KindSwap:
		return state.ApplySwap(g.Qubits[0], g.Qubits[1])
	case KindCCX:
		return state.ApplyToffoli(g.Qubits[0], g.Qubits[1], g.Qubits[2])
	case KindCSwap:
		return state.ApplyFredkin(g.Qubits[0], g.Qubits[1], g.Qubits[2])
	}

	m, ok := g.Matrix()
	if !ok {
		return fmt.Errorf("%w: no matrix for gate kind %q", ErrBadCircuit, g.Kind)
	}
	if g.Kind.Arity() == 2 {
		return state.ApplyControlled(g.Qubits[0], g.Qubits[1], m)
	}
	return state.ApplySingle(g.Qubits[0], m)
}

// Sample runs the circuit once, then draws shots independent outcomes from
// the final state's measurement distribution. It returns a map from outcome
// bitstring to occurrence count; counts always sum to shots. Zero shots
// yield an empty map, negative shots an error. Each call re-runs the
// circuit, so repeated calls never share state.
func (sim *Simulator) Sample(c *Circuit, shots int) (map[string]int, error) {
	if shots < 0 {
		return nil, &ShotCountError{Shots: shots}
	}
	state, err := sim.Run(c)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, 4)
	if shots == 0 {
		return counts, nil
	}

	probs := state.Probabilities()
	rng := sim.newRand()
	for range shots {
		idx := drawIndex(probs, rng.Float64())
		counts[Bitstring(idx, c.NumQubits())]++
	}
	return counts, nil
}

func (sim *Simulator) newRand() *rand.Rand {
	if sim.seeded {
		return rand.New(rand.NewPCG(sim.seed, sim.seed^0x9e3779b97f4a7c15))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// drawIndex maps a uniform draw in [0, 1) onto the categorical
// distribution probs by cumulative scan. Drift in the total (which should
// be 1 within tolerance) lands on the last nonzero outcome.
func drawIndex(probs []float64, u float64) int {
	cumulative := 0.0
	last := 0
	for i, p := range probs {
		if p == 0 {
			continue
		}
		cumulative += p
		last = i
		if u < cumulative {
			return i
		}
	}
	return last
}

// Bitstring formats basis state index as one character per qubit, qubit 0
// (the least significant index bit) leftmost: with two qubits, index 0b01
// formats as "10".
func Bitstring(index, numQubits int) string {
	var b strings.Builder
	b.Grow(numQubits)
	for q := range numQubits {
		if index&(1<<q) != 0 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
