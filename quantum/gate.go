package quantum

import (
	"math"
)

// Kind identifies a gate operation.
type Kind string

// Gate kinds known to the catalog. MEASURE marks the measure-all point in a
// circuit; it is not a unitary.
const (
	KindI     Kind = "I"
	KindX     Kind = "X"
	KindY     Kind = "Y"
	KindZ     Kind = "Z"
	KindH     Kind = "H"
	KindS     Kind = "S"
	KindSdg   Kind = "SDG"
	KindT     Kind = "T"
	KindTdg   Kind = "TDG"
	KindP     Kind = "P"
	KindRX    Kind = "RX"
	KindRY    Kind = "RY"
	KindRZ    Kind = "RZ"
	KindCX    Kind = "CX"
	KindCY    Kind = "CY"
	KindCZ    Kind = "CZ"
	KindCH    Kind = "CH"
	KindCP    Kind = "CP"
	KindSwap  Kind = "SWAP"
	KindCCX   Kind = "CCX"
	KindCSwap Kind = "CSWAP"

	KindMeasure Kind = "MEASURE"
)

// Matrix2 is a dense 2×2 complex matrix in row-major order.
type Matrix2 [2][2]Complex

// Gate is an immutable operation bound to specific qubits.
//
// Qubits are ordered control-first: for controlled two-qubit gates
// Qubits[0] is the control and Qubits[1] the target; for CCX the target is
// Qubits[2]; for CSWAP the swapped pair is Qubits[1], Qubits[2]. SWAP's two
// qubits are interchangeable. A MEASURE gate carries no qubits: it always
// covers the whole register.
type Gate struct {
	Kind   Kind
	Qubits []int
	Theta  float64 // angle in radians, only meaningful for parameterized kinds
}

// Arity returns the number of qubit operands a kind takes, or -1 for
// unknown kinds. MEASURE reports 0 because it spans the register.
func (k Kind) Arity() int {
	switch k {
	case KindI, KindX, KindY, KindZ, KindH, KindS, KindSdg, KindT, KindTdg,
		KindP, KindRX, KindRY, KindRZ:
		return 1
	case KindCX, KindCY, KindCZ, KindCH, KindCP, KindSwap:
		return 2
	case KindCCX, KindCSwap:
		return 3
	case KindMeasure:
		return 0
	}
	return -1
}

// Parameterized reports whether the kind takes a rotation/phase angle.
func (k Kind) Parameterized() bool {
	switch k {
	case KindP, KindRX, KindRY, KindRZ, KindCP:
		return true
	}
	return false
}

// Unitary reports whether the kind transforms the state vector.
func (k Kind) Unitary() bool {
	return k != KindMeasure
}

// Matrix returns the 2×2 matrix a gate applies to its target qubit: the
// full operator for single-qubit kinds, the controlled block for CX, CY,
// CZ, CH and CP. Kinds without a 2×2 form (SWAP, CCX, CSWAP, MEASURE)
// return ok=false; the state-vector engine applies those as bit-indexed
// transforms instead.
func (g Gate) Matrix() (Matrix2, bool) {
	h := complex(InvSqrt2, 0)

	switch g.Kind {
	case KindI:
		return Matrix2{{1, 0}, {0, 1}}, true
	case KindX, KindCX:
		return Matrix2{{0, 1}, {1, 0}}, true
	case KindY, KindCY:
		return Matrix2{{0, -1i}, {1i, 0}}, true
	case KindZ, KindCZ:
		return Matrix2{{1, 0}, {0, -1}}, true
	case KindH, KindCH:
		return Matrix2{{h, h}, {h, -h}}, true
	case KindS:
		return Matrix2{{1, 0}, {0, 1i}}, true
	case KindSdg:
		return Matrix2{{1, 0}, {0, -1i}}, true
	case KindT:
		return Matrix2{{1, 0}, {0, Polar(1, math.Pi/4)}}, true
	case KindTdg:
		return Matrix2{{1, 0}, {0, Polar(1, -math.Pi/4)}}, true
	case KindP, KindCP:
		return Matrix2{{1, 0}, {0, Polar(1, g.Theta)}}, true
	case KindRX:
		c := complex(math.Cos(g.Theta/2), 0)
		js := complex(0, -math.Sin(g.Theta/2))
		return Matrix2{{c, js}, {js, c}}, true
	case KindRY:
		c := complex(math.Cos(g.Theta/2), 0)
		s := complex(math.Sin(g.Theta/2), 0)
		return Matrix2{{c, -s}, {s, c}}, true
	case KindRZ:
		return Matrix2{{Polar(1, -g.Theta/2), 0}, {0, Polar(1, g.Theta/2)}}, true
	}
	return Matrix2{}, false
}

// SingleQubitKinds lists every kind with a full single-qubit matrix, in
// catalog order. The verification harness checks unitarity over this set.
func SingleQubitKinds() []Kind {
	return []Kind{
		KindI, KindX, KindY, KindZ, KindH,
		KindS, KindSdg, KindT, KindTdg,
		KindP, KindRX, KindRY, KindRZ,
	}
}
