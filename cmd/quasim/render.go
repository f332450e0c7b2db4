package main

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"

	"quasim/quantum"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	total := width - len(s)
	left := total / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", total-left)
}

// gateDisplayName returns the short boxed name for a gate kind.
func gateDisplayName(kind quantum.Kind) string {
	if kind == quantum.KindMeasure {
		return "M"
	}
	return string(kind)
}

// roleSymbol returns the wire symbol a multi-qubit gate draws on one of
// its qubits. The last qubit is the target; the rest are controls.
func roleSymbol(g quantum.Gate, qubit int) string {
	switch g.Kind {
	case quantum.KindSwap:
		return "×"
	case quantum.KindCSwap:
		if qubit == g.Qubits[0] {
			return "●"
		}
		return "×"
	}
	if qubit == g.Qubits[len(g.Qubits)-1] {
		switch g.Kind {
		case quantum.KindCZ:
			return "●"
		case quantum.KindCY:
			return "Y"
		case quantum.KindCH:
			return "H"
		case quantum.KindCP:
			return "P"
		default:
			return "⊕"
		}
	}
	return "●"
}

// formatAmp renders a complex amplitude in fixed width.
func formatAmp(a quantum.Complex) string {
	return fmt.Sprintf("%+.3f%+.3fi", real(a), imag(a))
}

// ──────────────────────────── Cell rendering ────────────────────────────

// cellInfo describes what one (column, qubit) cell of the wire diagram
// must show.
type cellInfo struct {
	symbol      string // wire symbol for a multi-qubit role, empty otherwise
	boxed       string // boxed gate name, empty otherwise
	passThrough bool   // a vertical connector crosses this wire
	vertAbove   bool
	vertBelow   bool
}

// cellFor computes the cell content for gate g on the given qubit wire.
func cellFor(g quantum.Gate, qubit int) cellInfo {
	if g.Kind == quantum.KindMeasure {
		return cellInfo{boxed: "M"}
	}
	if len(g.Qubits) == 1 {
		if g.Qubits[0] == qubit {
			return cellInfo{boxed: gateDisplayName(g.Kind)}
		}
		return cellInfo{}
	}

	lo := slices.Min(g.Qubits)
	hi := slices.Max(g.Qubits)
	if qubit < lo || qubit > hi {
		return cellInfo{}
	}

	info := cellInfo{
		vertAbove: qubit > lo,
		vertBelow: qubit < hi,
	}
	if slices.Contains(g.Qubits, qubit) {
		info.symbol = roleSymbol(g, qubit)
	} else {
		info.passThrough = true
	}
	return info
}

// renderCell returns 3 lines (top, mid, bot), each exactly cellW visual
// characters wide.
func renderCell(info cellInfo, highlighted bool) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)

	// Cursor column gets a double-line border around the cell.
	if highlighted {
		bdr := cursorStyle
		innerW := cellW - 2
		dashL := (innerW - 1) / 2
		dashR := innerW - dashL - 1

		top = bdr.Render("╔" + strings.Repeat("═", innerW) + "╗")
		bot = bdr.Render("╚" + strings.Repeat("═", innerW) + "╝")

		switch {
		case info.boxed != "":
			name := padCenter(info.boxed, gateNameW)
			mid = bdr.Render("║") + "─┤" + gateStyle.Render(name) + "├─" + bdr.Render("║")
		case info.symbol != "":
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + gateStyle.Render(info.symbol) + strings.Repeat("─", dashR) + bdr.Render("║")
		case info.passThrough:
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR) + bdr.Render("║")
		default:
			mid = bdr.Render("║") + strings.Repeat("─", innerW) + bdr.Render("║")
		}
		return
	}

	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1

	switch {
	case info.boxed != "":
		margin := (cellW - gateBoxW) / 2
		rightMargin := cellW - margin - gateBoxW
		name := padCenter(info.boxed, gateNameW)
		top = strings.Repeat(" ", margin) + gateStyle.Render("┌"+strings.Repeat("─", gateNameW)+"┐") + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + gateStyle.Render("┤"+name+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + gateStyle.Render("└"+strings.Repeat("─", gateNameW)+"┘") + strings.Repeat(" ", rightMargin)

	case info.symbol != "":
		top = emptyRow
		if info.vertAbove {
			top = vertRow
		}
		mid = strings.Repeat("─", dashL) + gateStyle.Render(info.symbol) + strings.Repeat("─", dashR)
		bot = emptyRow
		if info.vertBelow {
			bot = vertRow
		}

	case info.passThrough:
		top = vertRow
		mid = strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR)
		bot = vertRow

	default:
		top = emptyRow
		mid = strings.Repeat("─", cellW)
		bot = emptyRow
	}
	return
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderDeckPanel renders the circuit wire diagram, one column per gate.
func (m Model) renderDeckPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Circuit"))
	fmt.Fprintf(&sb, "  %s", dimStyle.Render(fmt.Sprintf("%d qubits, %d gates, depth %d",
		m.numQubits, m.circuit.Len(), m.circuit.Depth())))
	sb.WriteString("\n\n")

	availWidth := width - labelW - 4
	maxCols := max(availWidth/cellW, 1)

	start := 0
	if m.cursor >= maxCols {
		start = m.cursor - maxCols + 1
	}
	end := min(start+maxCols, len(m.gates))

	if start > 0 {
		fmt.Fprintf(&sb, "  ◀ showing gates %d-%d\n", start, end-1)
	}

	header := strings.Repeat(" ", labelW)
	for col := start; col < end; col++ {
		header += dimStyle.Render(padCenter(fmt.Sprintf("%d", col), cellW))
	}
	sb.WriteString(header + "\n")

	for qubit := range m.numQubits {
		label := fmt.Sprintf("q[%d]", qubit)
		labelText := qubitLabelStyle.Render(fmt.Sprintf("%-5s", label))
		if m.focus == focusPickQubit && qubit == m.pickQubit {
			labelText = qubitPickStyle.Render(fmt.Sprintf("%-5s", label))
		}

		topLine := strings.Repeat(" ", labelW)
		midLine := labelText + "──"
		botLine := strings.Repeat(" ", labelW)

		for col := start; col < end; col++ {
			info := cellFor(m.gates[col], qubit)
			highlighted := col == m.cursor && m.focus == focusDeck
			top, mid, bot := renderCell(info, highlighted)
			topLine += top
			midLine += mid
			botLine += bot
		}
		if end == start {
			midLine += strings.Repeat("─", cellW)
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	sb.WriteString("\n")
	switch {
	case m.focus == focusPickQubit:
		roles := pickRoles(m.pendingKind)
		role := roles[min(len(m.pendingQubits), len(roles)-1)]
		fmt.Fprintf(&sb, "  %s  Select %s: %s%s",
			accentStyle.Render(string(m.pendingKind)),
			role,
			qubitPickStyle.Render(fmt.Sprintf("q[%d]", m.pickQubit)),
			dimStyle.Render("   ↑↓ Move  ⏎ Confirm  Esc Cancel"))
	case m.statusMsg != "":
		sb.WriteString("  " + accentStyle.Render(m.statusMsg))
	case m.runErr != nil:
		sb.WriteString("  " + errStyle.Render(m.runErr.Error()))
	default:
		fmt.Fprintf(&sb, "  Gate %d of %d", min(m.cursor+1, len(m.gates)), len(m.gates))
		if m.circuit.Measured() {
			sb.WriteString(dimStyle.Render("  measured"))
		}
	}

	return circuitPanelStyle.Width(width).Height(height).Render(sb.String())
}

// renderStatePanel shows the live amplitudes and probabilities.
func (m Model) renderStatePanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("State Vector"))
	sb.WriteString("\n\n")

	if m.runErr != nil {
		sb.WriteString(errStyle.Render("Circuit invalid:"))
		sb.WriteString("\n" + m.runErr.Error())
		return statePanelStyle.Width(width).Height(height).Render(sb.String())
	}

	probs := m.state.Probabilities()
	indices := make([]int, m.state.Dim())
	for i := range indices {
		indices[i] = i
	}

	maxRows := max(height-6, 4)
	if len(indices) > maxRows {
		// Too many basis states to list; show the most probable ones.
		sort.Slice(indices, func(a, b int) bool {
			return probs[indices[a]] > probs[indices[b]]
		})
		indices = indices[:maxRows]
		sort.Ints(indices)
		sb.WriteString(dimStyle.Render(fmt.Sprintf("top %d of %d states", maxRows, m.state.Dim())))
		sb.WriteString("\n")
	}

	barMax := max(width-32, 4)
	for _, i := range indices {
		p := probs[i]
		bar := strings.Repeat("█", int(p*float64(barMax)+0.5))
		fmt.Fprintf(&sb, "|%s⟩ %s %5.1f%% %s\n",
			qubitLabelStyle.Render(quantum.Bitstring(i, m.state.NumQubits())),
			formatAmp(m.state.Amplitude(i)),
			p*100,
			barStyle.Render(bar))
	}

	return statePanelStyle.Width(width).Height(height).Render(sb.String())
}

// renderControlsPanel renders the bottom help bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(accentStyle.Render("Edit:    "))
	sb.WriteString("←→/hl Move  a Add gate  Bksp Delete  m Measure  +/- Qubits\n")

	sb.WriteString(accentStyle.Render("Actions: "))
	sb.WriteString("s Sample  Tab QASM  ^S Save  ^R Reset  q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// renderAngleInput renders the rotation angle prompt.
func (m Model) renderAngleInput() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s Angle", m.pendingKind)))
	sb.WriteString("\n\n")
	sb.WriteString(m.angleInput.View())
	sb.WriteString("\n\n")
	sb.WriteString(dimStyle.Render("Examples: pi/2, 3*pi/4, 1.57   ⏎ Ok  Esc ✕"))
	return popupStyle.Render(sb.String())
}

// renderShotsInput renders the shot count prompt.
func (m Model) renderShotsInput() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Sample Circuit"))
	sb.WriteString("\n\n")
	sb.WriteString("Shots: ")
	sb.WriteString(m.shotsInput.View())
	sb.WriteString("\n\n")
	sb.WriteString(dimStyle.Render("⏎ Run  Esc ✕"))
	return popupStyle.Render(sb.String())
}

// renderCounts renders the measurement histogram popup.
func (m Model) renderCounts() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Counts over %d shots", m.shots)))
	sb.WriteString("\n\n")

	peak := 0
	for _, n := range m.counts {
		peak = max(peak, n)
	}
	for _, outcome := range slices.Sorted(maps.Keys(m.counts)) {
		n := m.counts[outcome]
		barLen := 0
		if peak > 0 {
			barLen = n * 24 / peak
		}
		fmt.Fprintf(&sb, "%s %6d %6.2f%% %s\n",
			qubitLabelStyle.Render(outcome),
			n,
			float64(n)/float64(m.shots)*100,
			barStyle.Render(strings.Repeat("█", barLen)))
	}
	if len(m.counts) == 0 {
		sb.WriteString(dimStyle.Render("no shots drawn"))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("⏎/Esc Close"))
	return popupStyle.Render(sb.String())
}

// renderQASMEditor renders the QASM editing popup.
func (m Model) renderQASMEditor() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("QASM Editor"))
	sb.WriteString("\n\n")
	sb.WriteString(m.qasmEditor.View())
	sb.WriteString("\n")
	if m.qasmErr != nil {
		sb.WriteString(errStyle.Render(m.qasmErr.Error()))
	} else {
		sb.WriteString(dimStyle.Render("circuit ok"))
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("Tab Back to circuit"))
	return popupStyle.Render(sb.String())
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay string on top of the background at
// position (x, y), tracking visible columns across ANSI escape sequences.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	ovLines := strings.Split(overlay, "\n")

	for i, ovLine := range ovLines {
		bgIdx := y + i
		if bgIdx < 0 || bgIdx >= len(bgLines) {
			continue
		}
		bgLines[bgIdx] = spliceLineAt(bgLines[bgIdx], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLineAt replaces visible columns starting at position x in bgLine
// with the overlay content, preserving escape sequences in the prefix.
func spliceLineAt(bgLine, overlay string, x int) string {
	runes := []rune(bgLine)
	ovWidth := visibleLen(overlay)

	var prefix strings.Builder
	var suffix strings.Builder

	col := 0
	i := 0

	// Everything up to visible column x.
	for i < len(runes) && col < x {
		if runes[i] == '\x1b' {
			for i < len(runes) {
				prefix.WriteRune(runes[i])
				if isEscTerminator(runes[i]) {
					i++
					break
				}
				i++
			}
		} else {
			prefix.WriteRune(runes[i])
			col++
			i++
		}
	}
	for col < x {
		prefix.WriteRune(' ')
		col++
	}

	// Skip ovWidth visible columns of background.
	skipped := 0
	for i < len(runes) && skipped < ovWidth {
		if runes[i] == '\x1b' {
			for i < len(runes) {
				i++
				if isEscTerminator(runes[i-1]) {
					break
				}
			}
		} else {
			skipped++
			i++
		}
	}

	for i < len(runes) {
		suffix.WriteRune(runes[i])
		i++
	}

	return prefix.String() + overlay + suffix.String()
}

func isEscTerminator(r rune) bool {
	if r == '\x1b' || r == '[' {
		return false
	}
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

// visibleLen returns the number of visible (non-escape) characters.
func visibleLen(s string) int {
	n := 0
	inEsc := false
	for _, r := range s {
		if r == '\x1b' {
			inEsc = true
			continue
		}
		if inEsc {
			if isEscTerminator(r) {
				inEsc = false
			}
			continue
		}
		n++
	}
	return n
}
