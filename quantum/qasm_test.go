package quantum

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQASMExport(t *testing.T) {
	c := New(2).H(0).RZ(math.Pi/2, 1).CX(0, 1).MeasureAll()
	qasm := c.QASM()

	assert.Contains(t, qasm, "OPENQASM 2.0;")
	assert.Contains(t, qasm, "qreg q[2];")
	assert.Contains(t, qasm, "creg c[2];")
	assert.Contains(t, qasm, "h q[0];")
	assert.Contains(t, qasm, "rz(pi/2) q[1];")
	assert.Contains(t, qasm, "cx q[0], q[1];")
	assert.Contains(t, qasm, "measure q[0] -> c[0];")
	assert.Contains(t, qasm, "measure q[1] -> c[1];")
}

func TestParseQASM(t *testing.T) {
	qasm := `OPENQASM 2.0;
include "qelib1.inc";

qreg q[3];
creg c[3];

h q[0];
cx q[0], q[1];
rz(pi/4) q[2];
ccx q[0], q[1], q[2];
swap q[1], q[2];
measure q[0] -> c[0];
measure q[1] -> c[1];
measure q[2] -> c[2];`

	c, err := ParseQASM(qasm)
	require.NoError(t, err)
	assert.Equal(t, 3, c.NumQubits())
	assert.True(t, c.Measured())

	gates := c.Gates()
	require.Len(t, gates, 6) // 5 gates + 1 measure marker
	assert.Equal(t, KindH, gates[0].Kind)
	assert.Equal(t, KindCX, gates[1].Kind)
	assert.Equal(t, KindRZ, gates[2].Kind)
	assert.InDelta(t, math.Pi/4, gates[2].Theta, eps)
	assert.Equal(t, KindCCX, gates[3].Kind)
	assert.Equal(t, []int{0, 1, 2}, gates[3].Qubits)
	assert.Equal(t, KindSwap, gates[4].Kind)
	assert.Equal(t, KindMeasure, gates[5].Kind)
}

func TestParseQASMAliases(t *testing.T) {
	qasm := `qreg q[2];
id q[0];
u1(pi/2) q[0];
cu1(pi/4) q[0], q[1];
toffoli q[0], q[1], q[1];`

	// The toffoli line duplicates a qubit: builder validation must reject it.
	_, err := ParseQASM(qasm)
	var dqe *DuplicateQubitError
	require.ErrorAs(t, err, &dqe)

	c, err := ParseQASM(strings.Replace(qasm, "toffoli q[0], q[1], q[1];", "", 1))
	require.NoError(t, err)
	gates := c.Gates()
	require.Len(t, gates, 3)
	assert.Equal(t, KindI, gates[0].Kind)
	assert.Equal(t, KindP, gates[1].Kind)
	assert.Equal(t, KindCP, gates[2].Kind)
}

func TestParseQASMErrors(t *testing.T) {
	tests := []struct {
		name string
		qasm string
	}{
		{"no qreg", "h q[0];"},
		{"unknown gate", "qreg q[1];\nfrobnicate q[0];"},
		{"bad statement", "qreg q[1];\nthis is not qasm"},
		{"out of range", "qreg q[2];\nh q[5];"},
		{"unknown two-qubit", "qreg q[2];\nxx q[0], q[1];"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQASM(tt.qasm)
			assert.Error(t, err)
		})
	}
}

func TestQASMRoundTrip(t *testing.T) {
	orig := New(3).
		H(0).X(1).Y(2).Z(0).
		S(1).Sdg(2).T(0).Tdg(1).
		P(math.Pi/8, 2).
		RX(math.Pi/2, 0).RY(1.25, 1).RZ(-math.Pi, 2).
		CX(0, 1).CY(1, 2).CZ(0, 2).CH(2, 0).CP(math.Pi/3, 0, 1).
		Swap(0, 2).
		CCX(0, 1, 2).CSwap(2, 0, 1).
		MeasureAll()
	require.NoError(t, orig.Err())

	parsed, err := ParseQASM(orig.QASM())
	require.NoError(t, err)

	require.Equal(t, orig.NumQubits(), parsed.NumQubits())
	require.Equal(t, orig.Len(), parsed.Len())
	assert.Equal(t, orig.Measured(), parsed.Measured())

	for i, want := range orig.Gates() {
		got := parsed.Gates()[i]
		assert.Equal(t, want.Kind, got.Kind, "gate %d", i)
		assert.Equal(t, want.Qubits, got.Qubits, "gate %d", i)
		assert.InDelta(t, want.Theta, got.Theta, eps, "gate %d", i)
	}
}

func TestParseAngle(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"1.5707", 1.5707, true},
		{"-0.5", -0.5, true},
		{"3.14e-2", 0.0314, true},
		{"pi", math.Pi, true},
		{"PI", math.Pi, true},
		{"pi/2", math.Pi / 2, true},
		{"2*pi", 2 * math.Pi, true},
		{"2pi", 2 * math.Pi, true},
		{"3*pi/4", 3 * math.Pi / 4, true},
		{"-pi/2", -math.Pi / 2, true},
		{"", 0, false},
		{"tau", 0, false},
		{"pi/0", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseAngle(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		if tt.ok {
			assert.InDelta(t, tt.want, got, eps, "input %q", tt.input)
		}
	}
}

func TestFormatAngle(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{math.Pi, "pi"},
		{math.Pi / 2, "pi/2"},
		{-math.Pi / 4, "-pi/4"},
		{2 * math.Pi, "2*pi"},
		{3 * math.Pi / 4, "3*pi/4"},
		{0.125, "0.125"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAngle(tt.input), "input %v", tt.input)
	}
}

func TestFormatParseAngleRoundTrip(t *testing.T) {
	for _, val := range []float64{math.Pi, math.Pi / 3, -math.Pi / 2, 0.731, 2 * math.Pi} {
		got, ok := ParseAngle(FormatAngle(val))
		require.True(t, ok, "value %v", val)
		assert.InDelta(t, val, got, eps)
	}
}
