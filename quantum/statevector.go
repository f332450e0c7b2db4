package quantum

import (
	"math"
)

// StateVector holds the 2^n complex amplitudes of an n-qubit register.
//
// Basis index bit k (least significant) is the classical value of qubit k,
// so for two qubits index 0b01 means qubit 0 = 1, qubit 1 = 0. Gate
// application mutates the amplitudes in place with O(2^n) work per gate and
// no allocation beyond the array itself; the engine never renormalizes.
// Floating-point drift is the verification harness's problem, not something
// corrected at runtime.
//
// Memory is the scaling limit: n qubits take 16·2^n bytes of amplitudes,
// so around 30 qubits is the practical ceiling on ordinary hardware.
type StateVector struct {
	numQubits  int
	amplitudes []Complex
}

// NewStateVector allocates the |0...0⟩ basis state for numQubits qubits.
func NewStateVector(numQubits int) (*StateVector, error) {
	if numQubits < 1 {
		return nil, &QubitCountError{Count: numQubits}
	}
	amps := make([]Complex, 1<<numQubits)
	amps[0] = 1
	return &StateVector{numQubits: numQubits, amplitudes: amps}, nil
}

// Uniform allocates the equal superposition over all basis states.
func Uniform(numQubits int) (*StateVector, error) {
	if numQubits < 1 {
		return nil, &QubitCountError{Count: numQubits}
	}
	dim := 1 << numQubits
	amps := make([]Complex, dim)
	amp := complex(1/math.Sqrt(float64(dim)), 0)
	for i := range amps {
		amps[i] = amp
	}
	return &StateVector{numQubits: numQubits, amplitudes: amps}, nil
}

// NumQubits returns the register size.
func (s *StateVector) NumQubits() int { return s.numQubits }

// Dim returns the number of basis states, 2^n.
func (s *StateVector) Dim() int { return len(s.amplitudes) }

// Amplitudes returns the live amplitude slice. Callers must treat it as
// read-only.
func (s *StateVector) Amplitudes() []Complex { return s.amplitudes }

// Amplitude returns the amplitude of basis state index.
func (s *StateVector) Amplitude(index int) Complex { return s.amplitudes[index] }

// Probability returns |amplitude|² for basis state index.
func (s *StateVector) Probability(index int) float64 {
	return MagSqr(s.amplitudes[index])
}

// Probabilities returns the full measurement distribution.
func (s *StateVector) Probabilities() []float64 {
	probs := make([]float64, len(s.amplitudes))
	for i, a := range s.amplitudes {
		probs[i] = MagSqr(a)
	}
	return probs
}

// TotalProbability returns the squared norm of the state. A unitary-only
// evolution keeps this within numerical tolerance of 1.
func (s *StateVector) TotalProbability() float64 {
	total := 0.0
	for _, a := range s.amplitudes {
		total += MagSqr(a)
	}
	return total
}

// Clone returns an independent copy of the state.
func (s *StateVector) Clone() *StateVector {
	amps := make([]Complex, len(s.amplitudes))
	copy(amps, s.amplitudes)
	return &StateVector{numQubits: s.numQubits, amplitudes: amps}
}

func (s *StateVector) checkQubits(kind Kind, qubits ...int) error {
	for i, q := range qubits {
		if q < 0 || q >= s.numQubits {
			return &QubitRangeError{Gate: kind, Qubit: q, Count: s.numQubits}
		}
		for _, prev := range qubits[:i] {
			if prev == q {
				return &DuplicateQubitError{Gate: kind, Qubit: q}
			}
		}
	}
	return nil
}

// ApplySingle applies a 2×2 matrix to qubit q. The index space partitions
// into pairs differing only in bit q; each pair is replaced by the linear
// combination the matrix defines, computed from both pre-update values.
func (s *StateVector) ApplySingle(q int, m Matrix2) error {
	if err := s.checkQubits("", q); err != nil {
		return err
	}
	bit := 1 << q
	for i := range s.amplitudes {
		if i&bit == 0 {
			j := i | bit
			a0, a1 := s.amplitudes[i], s.amplitudes[j]
			s.amplitudes[i] = m[0][0]*a0 + m[0][1]*a1
			s.amplitudes[j] = m[1][0]*a0 + m[1][1]*a1
		}
	}
	return nil
}

// ApplyControlled applies a 2×2 matrix to the target qubit on the subspace
// where the control qubit is 1. Indices with control bit 0 are untouched.
func (s *StateVector) ApplyControlled(control, target int, m Matrix2) error {
	if err := s.checkQubits("", control, target); err != nil {
		return err
	}
	cBit := 1 << control
	tBit := 1 << target
	for i := range s.amplitudes {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			a0, a1 := s.amplitudes[i], s.amplitudes[j]
			s.amplitudes[i] = m[0][0]*a0 + m[0][1]*a1
			s.amplitudes[j] = m[1][0]*a0 + m[1][1]*a1
		}
	}
	return nil
}

// ApplySwap exchanges the amplitudes of every index pair whose bits a and b
// differ; indices where the two bits agree are untouched.
func (s *StateVector) ApplySwap(a, b int) error {
	if err := s.checkQubits(KindSwap, a, b); err != nil {
		return err
	}
	aBit := 1 << a
	bBit := 1 << b
	for i := range s.amplitudes {
		if i&aBit != 0 && i&bBit == 0 {
			j := (i &^ aBit) | bBit
			s.amplitudes[i], s.amplitudes[j] = s.amplitudes[j], s.amplitudes[i]
		}
	}
	return nil
}

// ApplyToffoli flips the target bit on the subspace where both control
// bits are 1.
func (s *StateVector) ApplyToffoli(control1, control2, target int) error {
	if err := s.checkQubits(KindCCX, control1, control2, target); err != nil {
		return err
	}
	c1Bit := 1 << control1
	c2Bit := 1 << control2
	tBit := 1 << target
	for i := range s.amplitudes {
		if i&c1Bit != 0 && i&c2Bit != 0 && i&tBit == 0 {
			j := i | tBit
			s.amplitudes[i], s.amplitudes[j] = s.amplitudes[j], s.amplitudes[i]
		}
	}
	return nil
}

// ApplyFredkin swaps bits a and b on the subspace where the control bit
// is 1.
func (s *StateVector) ApplyFredkin(control, a, b int) error {
	if err := s.checkQubits(KindCSwap, control, a, b); err != nil {
		return err
	}
	cBit := 1 << control
	aBit := 1 << a
	bBit := 1 << b
	for i := range s.amplitudes {
		if i&cBit != 0 && i&aBit != 0 && i&bBit == 0 {
			j := (i &^ aBit) | bBit
			s.amplitudes[i], s.amplitudes[j] = s.amplitudes[j], s.amplitudes[i]
		}
	}
	return nil
}

// InnerProduct returns ⟨s|other⟩. States of different sizes yield 0.
func (s *StateVector) InnerProduct(other *StateVector) Complex {
	if s.numQubits != other.numQubits {
		return 0
	}
	var sum Complex
	for i, a := range s.amplitudes {
		sum += complex(real(a), -imag(a)) * other.amplitudes[i]
	}
	return sum
}

// Fidelity returns |⟨s|other⟩|², the overlap probability of two states.
func (s *StateVector) Fidelity(other *StateVector) float64 {
	return MagSqr(s.InnerProduct(other))
}
