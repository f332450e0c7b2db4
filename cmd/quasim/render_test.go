package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"quasim/quantum"
)

func TestPadCenter(t *testing.T) {
	assert.Equal(t, "  ab ", padCenter("ab", 5))
	assert.Equal(t, "abc", padCenter("abc", 3))
	assert.Equal(t, "abc", padCenter("abcdef", 3))
}

func TestVisibleLen(t *testing.T) {
	assert.Equal(t, 5, visibleLen("hello"))
	assert.Equal(t, 5, visibleLen("\x1b[31mhello\x1b[0m"))
	assert.Equal(t, 0, visibleLen(""))
}

func TestOverlayAt(t *testing.T) {
	bg := "aaaaaaaa\nbbbbbbbb\ncccccccc"
	out := overlayAt(bg, "XX", 2, 1)
	assert.Equal(t, "aaaaaaaa\nbbXXbbbb\ncccccccc", out)
}

func TestOverlayAtOutOfRange(t *testing.T) {
	bg := "aaaa"
	out := overlayAt(bg, "XX\nYY", 0, 3)
	assert.Equal(t, "aaaa", out)
}

func TestCellForSingleQubit(t *testing.T) {
	g := quantum.Gate{Kind: quantum.KindH, Qubits: []int{1}}

	assert.Equal(t, cellInfo{}, cellFor(g, 0))
	assert.Equal(t, "H", cellFor(g, 1).boxed)
}

func TestCellForControlledGate(t *testing.T) {
	g := quantum.Gate{Kind: quantum.KindCX, Qubits: []int{0, 2}}

	control := cellFor(g, 0)
	assert.Equal(t, "●", control.symbol)
	assert.False(t, control.vertAbove)
	assert.True(t, control.vertBelow)

	middle := cellFor(g, 1)
	assert.True(t, middle.passThrough)
	assert.True(t, middle.vertAbove)
	assert.True(t, middle.vertBelow)

	target := cellFor(g, 2)
	assert.Equal(t, "⊕", target.symbol)
	assert.True(t, target.vertAbove)
	assert.False(t, target.vertBelow)
}

func TestCellForMeasureMarker(t *testing.T) {
	g := quantum.Gate{Kind: quantum.KindMeasure}
	assert.Equal(t, "M", cellFor(g, 0).boxed)
	assert.Equal(t, "M", cellFor(g, 3).boxed)
}

func TestRoleSymbol(t *testing.T) {
	tests := []struct {
		kind   quantum.Kind
		qubits []int
		qubit  int
		want   string
	}{
		{quantum.KindCX, []int{0, 1}, 0, "●"},
		{quantum.KindCX, []int{0, 1}, 1, "⊕"},
		{quantum.KindCZ, []int{0, 1}, 1, "●"},
		{quantum.KindCH, []int{0, 1}, 1, "H"},
		{quantum.KindSwap, []int{0, 1}, 0, "×"},
		{quantum.KindSwap, []int{0, 1}, 1, "×"},
		{quantum.KindCSwap, []int{0, 1, 2}, 0, "●"},
		{quantum.KindCSwap, []int{0, 1, 2}, 1, "×"},
		{quantum.KindCCX, []int{0, 1, 2}, 1, "●"},
		{quantum.KindCCX, []int{0, 1, 2}, 2, "⊕"},
	}
	for _, tc := range tests {
		g := quantum.Gate{Kind: tc.kind, Qubits: tc.qubits}
		assert.Equal(t, tc.want, roleSymbol(g, tc.qubit), "%s on qubit %d", tc.kind, tc.qubit)
	}
}

func TestPickRolesMatchArity(t *testing.T) {
	for _, kind := range []quantum.Kind{
		quantum.KindH, quantum.KindRX, quantum.KindCX, quantum.KindSwap,
		quantum.KindCCX, quantum.KindCSwap,
	} {
		assert.Len(t, pickRoles(kind), kind.Arity(), "roles for %s", kind)
	}
}

func TestRenderCellWidths(t *testing.T) {
	infos := []cellInfo{
		{},
		{boxed: "H"},
		{symbol: "●", vertBelow: true},
		{passThrough: true, vertAbove: true, vertBelow: true},
	}
	for _, info := range infos {
		for _, hl := range []bool{false, true} {
			top, mid, bot := renderCell(info, hl)
			assert.Equal(t, cellW, visibleLen(top), "top width for %+v", info)
			assert.Equal(t, cellW, visibleLen(mid), "mid width for %+v", info)
			assert.Equal(t, cellW, visibleLen(bot), "bot width for %+v", info)
		}
	}
}
