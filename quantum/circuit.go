package quantum

// Circuit is an ordered description of gate operations on a fixed-size
// qubit register. It performs no computation: the simulator interprets it
// against a fresh state vector, so one circuit can be replayed any number
// of times with identical results.
//
// Circuits are built fluently:
//
//	c := quantum.New(2).H(0).CX(0, 1).MeasureAll()
//
// Every append validates its qubit indices against the register size
// immediately. The first failure is retained and reported by Err; once a
// build error is recorded, further appends are no-ops and the simulator
// refuses the circuit. After construction nothing in this package mutates
// a circuit.
type Circuit struct {
	numQubits int
	gates     []Gate
	measured  bool
	err       error
}

// New creates an empty circuit over numQubits qubits. A count below 1 is
// recorded as a build error surfaced by Err and by the simulator.
func New(numQubits int) *Circuit {
	c := &Circuit{numQubits: numQubits}
	if numQubits < 1 {
		c.err = &QubitCountError{Count: numQubits}
	}
	return c
}

// NumQubits returns the register size.
func (c *Circuit) NumQubits() int { return c.numQubits }

// Gates returns the operation sequence in append order. Callers must not
// modify the returned slice.
func (c *Circuit) Gates() []Gate { return c.gates }

// Len returns the number of appended operations, including the
// measure-all marker.
func (c *Circuit) Len() int { return len(c.gates) }

// Measured reports whether MeasureAll was called.
func (c *Circuit) Measured() bool { return c.measured }

// Err returns the first build error, or nil for a well-formed circuit.
func (c *Circuit) Err() error { return c.err }

// Append adds a gate of the given kind, with qubits in catalog order
// (controls first, target last). Most callers use the named methods below;
// Append serves code that builds circuits from data, such as the QASM
// reader. A measure kind is routed to MeasureAll.
func (c *Circuit) Append(kind Kind, theta float64, qubits ...int) *Circuit {
	if c.err != nil {
		return c
	}
	if kind == KindMeasure {
		return c.MeasureAll()
	}
	for i, q := range qubits {
		if q < 0 || q >= c.numQubits {
			c.err = &QubitRangeError{Gate: kind, Qubit: q, Count: c.numQubits}
			return c
		}
		for _, prev := range qubits[:i] {
			if prev == q {
				c.err = &DuplicateQubitError{Gate: kind, Qubit: q}
				return c
			}
		}
	}
	c.gates = append(c.gates, Gate{Kind: kind, Qubits: qubits, Theta: theta})
	return c
}

// I appends an identity gate on qubit q.
func (c *Circuit) I(q int) *Circuit { return c.Append(KindI, 0, q) }

// X appends a Pauli-X (NOT) gate on qubit q.
func (c *Circuit) X(q int) *Circuit { return c.Append(KindX, 0, q) }

// Y appends a Pauli-Y gate on qubit q.
func (c *Circuit) Y(q int) *Circuit { return c.Append(KindY, 0, q) }

// Z appends a Pauli-Z gate on qubit q.
func (c *Circuit) Z(q int) *Circuit { return c.Append(KindZ, 0, q) }

// H appends a Hadamard gate on qubit q.
func (c *Circuit) H(q int) *Circuit { return c.Append(KindH, 0, q) }

// S appends an S (√Z phase) gate on qubit q.
func (c *Circuit) S(q int) *Circuit { return c.Append(KindS, 0, q) }

// Sdg appends an S† gate on qubit q.
func (c *Circuit) Sdg(q int) *Circuit { return c.Append(KindSdg, 0, q) }

// T appends a T (π/8) gate on qubit q.
func (c *Circuit) T(q int) *Circuit { return c.Append(KindT, 0, q) }

// Tdg appends a T† gate on qubit q.
func (c *Circuit) Tdg(q int) *Circuit { return c.Append(KindTdg, 0, q) }

// P appends a phase gate with angle theta on qubit q.
func (c *Circuit) P(theta float64, q int) *Circuit { return c.Append(KindP, theta, q) }

// RX appends an X-axis rotation by theta on qubit q.
func (c *Circuit) RX(theta float64, q int) *Circuit { return c.Append(KindRX, theta, q) }

// RY appends a Y-axis rotation by theta on qubit q.
func (c *Circuit) RY(theta float64, q int) *Circuit { return c.Append(KindRY, theta, q) }

// RZ appends a Z-axis rotation by theta on qubit q.
func (c *Circuit) RZ(theta float64, q int) *Circuit { return c.Append(KindRZ, theta, q) }

// CX appends a CNOT gate.
func (c *Circuit) CX(control, target int) *Circuit { return c.Append(KindCX, 0, control, target) }

// CY appends a controlled-Y gate.
func (c *Circuit) CY(control, target int) *Circuit { return c.Append(KindCY, 0, control, target) }

// CZ appends a controlled-Z gate.
func (c *Circuit) CZ(control, target int) *Circuit { return c.Append(KindCZ, 0, control, target) }

// CH appends a controlled-Hadamard gate.
func (c *Circuit) CH(control, target int) *Circuit { return c.Append(KindCH, 0, control, target) }

// CP appends a controlled-phase gate with angle theta.
func (c *Circuit) CP(theta float64, control, target int) *Circuit {
	return c.Append(KindCP, theta, control, target)
}

// Swap appends a SWAP gate exchanging qubits a and b.
func (c *Circuit) Swap(a, b int) *Circuit { return c.Append(KindSwap, 0, a, b) }

// CCX appends a Toffoli gate: X on target when both controls are 1.
func (c *Circuit) CCX(control1, control2, target int) *Circuit {
	return c.Append(KindCCX, 0, control1, control2, target)
}

// CSwap appends a Fredkin gate: swap a and b when control is 1.
func (c *Circuit) CSwap(control, a, b int) *Circuit {
	return c.Append(KindCSwap, 0, control, a, b)
}

// MeasureAll marks the circuit for full-register measurement. The marker
// does not have to be the last operation; it only tells the simulator that
// sampled outcomes cover every qubit.
func (c *Circuit) MeasureAll() *Circuit {
	if c.err != nil {
		return c
	}
	c.measured = true
	c.gates = append(c.gates, Gate{Kind: KindMeasure})
	return c
}

// Depth returns the critical path length: the longest chain of gates that
// must execute sequentially on some qubit. Measure markers do not count.
func (c *Circuit) Depth() int {
	perQubit := make([]int, c.numQubits)
	for _, g := range c.gates {
		if g.Kind == KindMeasure {
			continue
		}
		deepest := 0
		for _, q := range g.Qubits {
			deepest = max(deepest, perQubit[q])
		}
		for _, q := range g.Qubits {
			perQubit[q] = deepest + 1
		}
	}
	depth := 0
	for _, d := range perQubit {
		depth = max(depth, d)
	}
	return depth
}

// GateCounts tallies operations by kind, measure markers included.
func (c *Circuit) GateCounts() map[Kind]int {
	counts := make(map[Kind]int)
	for _, g := range c.gates {
		counts[g.Kind]++
	}
	return counts
}
