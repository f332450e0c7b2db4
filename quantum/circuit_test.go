package quantum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadQubitCount(t *testing.T) {
	for _, n := range []int{0, -1, -100} {
		c := New(n)
		var qce *QubitCountError
		require.ErrorAs(t, c.Err(), &qce, "count %d", n)
		assert.Equal(t, n, qce.Count)
		assert.ErrorIs(t, c.Err(), ErrBadCircuit)
	}
}

func TestBuilderChaining(t *testing.T) {
	c := New(2).H(0).CX(0, 1).MeasureAll()
	require.NoError(t, c.Err())
	assert.Equal(t, 2, c.NumQubits())
	assert.Equal(t, 3, c.Len())
	assert.True(t, c.Measured())

	gates := c.Gates()
	assert.Equal(t, KindH, gates[0].Kind)
	assert.Equal(t, []int{0}, gates[0].Qubits)
	assert.Equal(t, KindCX, gates[1].Kind)
	assert.Equal(t, []int{0, 1}, gates[1].Qubits)
	assert.Equal(t, KindMeasure, gates[2].Kind)
}

func TestBuilderValidatesEagerly(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Circuit
	}{
		{"target out of range", func() *Circuit { return New(2).H(2) }},
		{"negative index", func() *Circuit { return New(2).X(-1) }},
		{"control out of range", func() *Circuit { return New(2).CX(5, 0) }},
		{"toffoli target out of range", func() *Circuit { return New(3).CCX(0, 1, 3) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.build()
			var qre *QubitRangeError
			require.ErrorAs(t, c.Err(), &qre)
			assert.ErrorIs(t, c.Err(), ErrBadCircuit)
		})
	}
}

func TestBuilderRejectsDuplicateQubits(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Circuit
	}{
		{"cx same qubit", func() *Circuit { return New(2).CX(1, 1) }},
		{"swap same qubit", func() *Circuit { return New(2).Swap(0, 0) }},
		{"ccx control repeats", func() *Circuit { return New(3).CCX(0, 0, 2) }},
		{"cswap control is target", func() *Circuit { return New(3).CSwap(1, 1, 2) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.build()
			var dqe *DuplicateQubitError
			require.ErrorAs(t, c.Err(), &dqe)
		})
	}
}

func TestBuilderStickyError(t *testing.T) {
	c := New(2).H(5).X(0).CX(0, 1)
	var qre *QubitRangeError
	require.ErrorAs(t, c.Err(), &qre)
	assert.Equal(t, 5, qre.Qubit)
	// Nothing after the failing call is appended.
	assert.Equal(t, 0, c.Len())
}

func TestDepth(t *testing.T) {
	tests := []struct {
		name    string
		circuit *Circuit
		want    int
	}{
		{"empty", New(3), 0},
		{"bell", New(2).H(0).CX(0, 1), 2},
		{"ghz", New(3).H(0).CX(0, 1).CX(1, 2), 3},
		{"parallel hadamards", New(4).H(0).H(1).H(2).H(3), 1},
		{"measure ignored", New(1).H(0).MeasureAll(), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.circuit.Err())
			assert.Equal(t, tt.want, tt.circuit.Depth())
		})
	}
}

func TestGateCounts(t *testing.T) {
	c := New(2).H(0).H(1).CX(0, 1).H(0).MeasureAll()
	counts := c.GateCounts()
	assert.Equal(t, 3, counts[KindH])
	assert.Equal(t, 1, counts[KindCX])
	assert.Equal(t, 1, counts[KindMeasure])
}

func TestCircuitReplaySafe(t *testing.T) {
	c := New(2).H(0).CX(0, 1)
	sim := NewSimulator()

	first, err := sim.Run(c)
	require.NoError(t, err)
	second, err := sim.Run(c)
	require.NoError(t, err)

	assert.Equal(t, first.Amplitudes(), second.Amplitudes())
	// The circuit itself is untouched by execution.
	assert.Equal(t, 2, c.Len())
	require.NoError(t, c.Err())
}
