// Package verify is the physics correctness contract of the simulation
// engine: a fixed battery of numeric and statistical checks, each with an
// explicit tolerance, run against the public simulator API. A failing check
// means the engine violates quantum mechanics, not that an input was bad.
package verify

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"quasim/quantum"
)

// Tolerances. Amplitude-level checks use the numeric tolerance; sampled
// frequencies get a statistical band instead.
const (
	numTol = 1e-10

	sampleShots = 10000
	sampleSeed  = 12345
	// ~6 sigma for a fair binomial at sampleShots/2.
	sampleTol = 300
	// Chi-square over 2 effective bins; generous versus the 0.999 quantile.
	chiSquareMax = 20.0
)

// Result is the outcome of one check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

type checkFunc func() Result

// RunAll executes the whole battery in order, logging each result, and
// returns every outcome.
func RunAll(log zerolog.Logger) []Result {
	checks := []checkFunc{
		checkProbabilityConservation,
		checkHadamardInvolution,
		checkPauliXInvolution,
		checkCatalogUnitarity,
		checkRotationIdentity,
		checkFullRotationGlobalPhase,
		checkBellCorrelation,
		checkCNOTTruthTable,
		checkSwap,
		checkToffoliTruthTable,
		checkFredkin,
		checkSamplingConvergence,
	}

	results := make([]Result, 0, len(checks))
	for _, check := range checks {
		r := check()
		ev := log.Info()
		if !r.Passed {
			ev = log.Error()
		}
		ev.Bool("passed", r.Passed).Str("detail", r.Detail).Msg(r.Name)
		results = append(results, r)
	}
	return results
}

// Passed reports whether every result in the battery passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

func pass(name, format string, args ...any) Result {
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf(format, args...)}
}

func fail(name, format string, args ...any) Result {
	return Result{Name: name, Passed: false, Detail: fmt.Sprintf(format, args...)}
}

// checkProbabilityConservation runs assorted circuits and asserts the Born
// rule: squared amplitude magnitudes sum to 1.
func checkProbabilityConservation() Result {
	const name = "probability conservation"
	circuits := []struct {
		label   string
		circuit *quantum.Circuit
	}{
		{"empty", quantum.New(3)},
		{"all hadamards", quantum.New(3).H(0).H(1).H(2)},
		{"bell", quantum.New(2).H(0).CX(0, 1)},
		{"ghz", quantum.New(3).H(0).CX(0, 1).CX(1, 2)},
		{"mixed rotations", quantum.New(2).RX(math.Pi/4, 0).RY(math.Pi/3, 1).CZ(0, 1)},
	}

	sim := quantum.NewSimulator()
	worst := 0.0
	for _, tc := range circuits {
		state, err := sim.Run(tc.circuit)
		if err != nil {
			return fail(name, "%s: %v", tc.label, err)
		}
		total := floats.Sum(state.Probabilities())
		drift := math.Abs(total - 1)
		worst = max(worst, drift)
		if drift > numTol {
			return fail(name, "%s: total probability %.12f", tc.label, total)
		}
	}
	return pass(name, "worst drift %.3g over %d circuits", worst, len(circuits))
}

// checkHadamardInvolution verifies H·H = I on both basis states.
func checkHadamardInvolution() Result {
	const name = "hadamard involution"
	sim := quantum.NewSimulator()

	for _, prepared := range []int{0, 1} {
		c := quantum.New(1)
		if prepared == 1 {
			c.X(0)
		}
		c.H(0).H(0)
		state, err := sim.Run(c)
		if err != nil {
			return fail(name, "%v", err)
		}
		if math.Abs(state.Probability(prepared)-1) > numTol {
			return fail(name, "|%d⟩ round trip: P = %.12f", prepared, state.Probability(prepared))
		}
	}
	return pass(name, "H·H = I on |0⟩ and |1⟩")
}

// checkPauliXInvolution verifies X·X = I.
func checkPauliXInvolution() Result {
	const name = "pauli-x involution"
	state, err := quantum.NewSimulator().Run(quantum.New(1).X(0).X(0))
	if err != nil {
		return fail(name, "%v", err)
	}
	if math.Abs(state.Probability(0)-1) > numTol {
		return fail(name, "P(|0⟩) = %.12f", state.Probability(0))
	}
	return pass(name, "X·X = I")
}

// checkCatalogUnitarity computes U†U for every single-qubit catalog matrix
// and compares against the identity.
func checkCatalogUnitarity() Result {
	const name = "catalog unitarity"
	angles := []float64{0, math.Pi / 5, math.Pi / 2, math.Pi, 2.31}

	checked := 0
	for _, kind := range quantum.SingleQubitKinds() {
		thetas := []float64{0}
		if kind.Parameterized() {
			thetas = angles
		}
		for _, theta := range thetas {
			m, ok := quantum.Gate{Kind: kind, Theta: theta}.Matrix()
			if !ok {
				return fail(name, "%s: no matrix", kind)
			}
			u := mat.NewCDense(2, 2, []complex128{m[0][0], m[0][1], m[1][0], m[1][1]})
			var product mat.CDense
			product.Mul(u.H(), u)
			for i := range 2 {
				for j := range 2 {
					want := complex(0, 0)
					if i == j {
						want = 1
					}
					if !quantum.ApproxEq(product.At(i, j), want, numTol) {
						return fail(name, "%s(θ=%g): (U†U)[%d][%d] = %v", kind, theta, i, j, product.At(i, j))
					}
				}
			}
			checked++
		}
	}
	return pass(name, "U†U = I for %d catalog matrices", checked)
}

// checkRotationIdentity verifies zero-angle rotations leave states alone.
func checkRotationIdentity() Result {
	const name = "zero-angle rotations"
	reference, err := quantum.NewSimulator().Run(quantum.New(1).H(0))
	if err != nil {
		return fail(name, "%v", err)
	}
	rotated, err := quantum.NewSimulator().Run(quantum.New(1).H(0).RX(0, 0).RY(0, 0).RZ(0, 0))
	if err != nil {
		return fail(name, "%v", err)
	}
	if fid := reference.Fidelity(rotated); math.Abs(fid-1) > numTol {
		return fail(name, "fidelity after zero rotations: %.12f", fid)
	}
	return pass(name, "Rx(0), Ry(0), Rz(0) are identities")
}

// checkFullRotationGlobalPhase verifies Rx(2π) changes only the global
// phase: probabilities match, amplitude flips sign.
func checkFullRotationGlobalPhase() Result {
	const name = "full rotation global phase"
	state, err := quantum.NewSimulator().Run(quantum.New(1).RX(2*math.Pi, 0))
	if err != nil {
		return fail(name, "%v", err)
	}
	if math.Abs(state.Probability(0)-1) > numTol {
		return fail(name, "P(|0⟩) = %.12f", state.Probability(0))
	}
	if !quantum.ApproxEq(state.Amplitude(0), -1, numTol) {
		return fail(name, "amplitude %v, want -1", state.Amplitude(0))
	}
	return pass(name, "Rx(2π) = -I: same probabilities, flipped phase")
}

// checkBellCorrelation prepares the Bell state and checks the amplitudes.
func checkBellCorrelation() Result {
	const name = "bell correlation"
	state, err := quantum.NewSimulator().Run(quantum.New(2).H(0).CX(0, 1))
	if err != nil {
		return fail(name, "%v", err)
	}
	h := complex(quantum.InvSqrt2, 0)
	if !quantum.ApproxEq(state.Amplitude(0b00), h, numTol) ||
		!quantum.ApproxEq(state.Amplitude(0b11), h, numTol) {
		return fail(name, "entangled amplitudes %v, %v, want %v",
			state.Amplitude(0b00), state.Amplitude(0b11), h)
	}
	if !quantum.ApproxZero(state.Amplitude(0b01), numTol) ||
		!quantum.ApproxZero(state.Amplitude(0b10), numTol) {
		return fail(name, "anti-correlated amplitudes nonzero: %v, %v",
			state.Amplitude(0b01), state.Amplitude(0b10))
	}
	return pass(name, "amplitudes 1/√2 at 00 and 11, zero elsewhere")
}

// checkCNOTTruthTable prepares all four basis inputs and checks the
// classical controlled-XOR table.
func checkCNOTTruthTable() Result {
	const name = "cnot truth table"
	table := []struct {
		control, target int
		wantIndex       int
	}{
		{0, 0, 0b00},
		{0, 1, 0b10},
		{1, 0, 0b11},
		{1, 1, 0b01},
	}
	sim := quantum.NewSimulator()
	for _, row := range table {
		c := quantum.New(2)
		if row.control == 1 {
			c.X(0)
		}
		if row.target == 1 {
			c.X(1)
		}
		c.CX(0, 1)
		state, err := sim.Run(c)
		if err != nil {
			return fail(name, "%v", err)
		}
		if math.Abs(state.Probability(row.wantIndex)-1) > numTol {
			return fail(name, "input c=%d t=%d: P(index %b) = %.12f",
				row.control, row.target, row.wantIndex, state.Probability(row.wantIndex))
		}
	}
	return pass(name, "all four basis inputs map correctly")
}

// checkSwap verifies |01⟩ ↔ |10⟩ exchange.
func checkSwap() Result {
	const name = "swap"
	state, err := quantum.NewSimulator().Run(quantum.New(2).X(0).Swap(0, 1))
	if err != nil {
		return fail(name, "%v", err)
	}
	if math.Abs(state.Probability(0b10)-1) > numTol {
		return fail(name, "P(|10⟩) = %.12f", state.Probability(0b10))
	}
	return pass(name, "qubit values exchanged")
}

// checkToffoliTruthTable verifies the target flips exactly when both
// controls are set.
func checkToffoliTruthTable() Result {
	const name = "toffoli truth table"
	sim := quantum.NewSimulator()
	for input := range 4 {
		c := quantum.New(3)
		if input&1 != 0 {
			c.X(0)
		}
		if input&2 != 0 {
			c.X(1)
		}
		c.CCX(0, 1, 2)
		wantIndex := input
		if input == 3 {
			wantIndex = 0b111
		}
		state, err := sim.Run(c)
		if err != nil {
			return fail(name, "%v", err)
		}
		if math.Abs(state.Probability(wantIndex)-1) > numTol {
			return fail(name, "controls %02b: P(index %03b) = %.12f",
				input, wantIndex, state.Probability(wantIndex))
		}
	}
	return pass(name, "target flips only with both controls set")
}

// checkFredkin verifies the controlled swap over its interesting inputs.
func checkFredkin() Result {
	const name = "fredkin"
	sim := quantum.NewSimulator()

	// Control off: |010⟩ untouched.
	state, err := sim.Run(quantum.New(3).X(1).CSwap(0, 1, 2))
	if err != nil {
		return fail(name, "%v", err)
	}
	if math.Abs(state.Probability(0b010)-1) > numTol {
		return fail(name, "control off: P(|010⟩) = %.12f", state.Probability(0b010))
	}

	// Control on: targets exchange, |011⟩ → |101⟩.
	state, err = sim.Run(quantum.New(3).X(0).X(1).CSwap(0, 1, 2))
	if err != nil {
		return fail(name, "%v", err)
	}
	if math.Abs(state.Probability(0b101)-1) > numTol {
		return fail(name, "control on: P(|101⟩) = %.12f", state.Probability(0b101))
	}
	return pass(name, "targets swap only when control is set")
}

// checkSamplingConvergence samples the Bell state and compares observed
// frequencies against the analytic distribution: impossible outcomes must
// be exactly zero, possible outcomes within the statistical band, and the
// chi-square distance small.
func checkSamplingConvergence() Result {
	const name = "sampling convergence"
	circuit := quantum.New(2).H(0).CX(0, 1).MeasureAll()
	counts, err := quantum.NewSimulatorSeeded(sampleSeed).Sample(circuit, sampleShots)
	if err != nil {
		return fail(name, "%v", err)
	}

	if counts["01"] != 0 || counts["10"] != 0 {
		return fail(name, "impossible outcomes observed: 01=%d 10=%d", counts["01"], counts["10"])
	}

	expected := float64(sampleShots) / 2
	n00 := float64(counts["00"])
	n11 := float64(counts["11"])
	if math.Abs(n00-expected) > sampleTol || math.Abs(n11-expected) > sampleTol {
		return fail(name, "counts 00=%d 11=%d outside ±%d of %g",
			counts["00"], counts["11"], sampleTol, expected)
	}

	chi2 := stat.ChiSquare([]float64{n00, n11}, []float64{expected, expected})
	if chi2 > chiSquareMax {
		return fail(name, "chi-square %.3f exceeds %.1f", chi2, chiSquareMax)
	}
	return pass(name, "%d shots: 00=%d 11=%d, chi-square %.3f",
		sampleShots, counts["00"], counts["11"], chi2)
}
