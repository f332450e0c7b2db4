package main

import (
	"fmt"
	"strings"

	"quasim/quantum"
)

// menuItem represents a single gate choice in the picker.
type menuItem struct {
	name   string
	kind   quantum.Kind
	symbol string
	hint   string // example angle for parameterized gates
}

// menuCategory groups related menu items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

// gateMenu defines the gate picker categories and items. Every entry maps
// straight onto a catalog kind; qubit count and angle requirements come
// from the kind itself.
var gateMenu = []menuCategory{
	{
		name: "Single Qubit",
		items: []menuItem{
			{name: "Hadamard", kind: quantum.KindH, symbol: "H"},
			{name: "Pauli-X (NOT)", kind: quantum.KindX, symbol: "X"},
			{name: "Pauli-Y", kind: quantum.KindY, symbol: "Y"},
			{name: "Pauli-Z", kind: quantum.KindZ, symbol: "Z"},
			{name: "Identity", kind: quantum.KindI, symbol: "I"},
			{name: "Phase (S)", kind: quantum.KindS, symbol: "S"},
			{name: "Phase Dagger (S†)", kind: quantum.KindSdg, symbol: "S†"},
			{name: "T Gate", kind: quantum.KindT, symbol: "T"},
			{name: "T Dagger (T†)", kind: quantum.KindTdg, symbol: "T†"},
		},
	},
	{
		name: "Rotation",
		items: []menuItem{
			{name: "Rotate X", kind: quantum.KindRX, symbol: "RX", hint: "pi/2"},
			{name: "Rotate Y", kind: quantum.KindRY, symbol: "RY", hint: "pi/2"},
			{name: "Rotate Z", kind: quantum.KindRZ, symbol: "RZ", hint: "pi/2"},
			{name: "Phase Shift", kind: quantum.KindP, symbol: "P", hint: "pi/4"},
		},
	},
	{
		name: "Two Qubit",
		items: []menuItem{
			{name: "CNOT", kind: quantum.KindCX, symbol: "●─⊕"},
			{name: "Controlled-Y", kind: quantum.KindCY, symbol: "●─Y"},
			{name: "Controlled-Z", kind: quantum.KindCZ, symbol: "●─●"},
			{name: "Controlled-H", kind: quantum.KindCH, symbol: "●─H"},
			{name: "C-Phase", kind: quantum.KindCP, symbol: "●─P", hint: "pi/4"},
			{name: "SWAP", kind: quantum.KindSwap, symbol: "×─×"},
		},
	},
	{
		name: "Three Qubit",
		items: []menuItem{
			{name: "Toffoli (CCX)", kind: quantum.KindCCX, symbol: "●─●─⊕"},
			{name: "Fredkin (CSWAP)", kind: quantum.KindCSwap, symbol: "●─×─×"},
		},
	},
	{
		name: "Measurement",
		items: []menuItem{
			{name: "Measure All", kind: quantum.KindMeasure, symbol: "M"},
		},
	},
}

// renderMenu renders the floating gate-picker popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Add Gate"))
	sb.WriteString("\n")

	for i, cat := range gateMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(accentStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(gateMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 46)))
	sb.WriteString("\n")

	cat := gateMenu[m.menuCat]
	for i, item := range cat.items {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-18s", item.name)))
			sb.WriteString(gateStyle.Render(item.symbol))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-18s", item.name)))
			sb.WriteString(dimStyle.Render(item.symbol))
		}
		if item.kind.Parameterized() {
			sb.WriteString(dimStyle.Render(fmt.Sprintf(" (%s)", item.hint)))
		}
		if item.kind.Arity() > 1 {
			sb.WriteString(dimStyle.Render(fmt.Sprintf(" %d qubits", item.kind.Arity())))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Category  ⏎ Ok  Esc ✕"))

	return popupStyle.Render(sb.String())
}
