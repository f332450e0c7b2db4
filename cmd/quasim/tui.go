package main

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"quasim/internal/config"
	"quasim/quantum"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusDeck focus = iota
	focusMenu
	focusPickQubit
	focusInputAngle
	focusInputShots
	focusCounts
	focusQASM
)

// Model is the TUI application state. The gate deck is the single source
// of truth; the circuit, the live state vector and the QASM view are all
// rebuilt from it after every edit.
type Model struct {
	numQubits int
	gates     []quantum.Gate

	circuit *quantum.Circuit
	state   *quantum.StateVector
	runErr  error

	cursor    int // selected column in the deck
	viewStart int // first column currently visible

	width  int
	height int
	focus  focus

	// Menu state
	menuCat  int
	menuItem int

	// Pending gate being assembled from the menu
	pendingKind   quantum.Kind
	pendingTheta  float64
	pendingQubits []int
	pickQubit     int

	angleInput textinput.Model
	shotsInput textinput.Model
	qasmEditor textarea.Model
	lastQASM   string
	qasmErr    error

	// Last sampling result
	counts map[string]int
	shots  int

	sim       *quantum.Simulator
	log       zerolog.Logger
	statusMsg string
}

func initialModel(cfg *config.Config, log zerolog.Logger) Model {
	ta := textarea.New()
	ta.Placeholder = "Edit QASM here..."
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true
	ta.KeyMap.InsertNewline.SetEnabled(true)

	angle := textinput.New()
	angle.Placeholder = "pi/2"
	angle.CharLimit = 24
	angle.Width = 20

	shots := textinput.New()
	shots.Placeholder = strconv.Itoa(cfg.DefaultShots)
	shots.CharLimit = 9
	shots.Width = 12

	m := Model{
		numQubits:  3,
		qasmEditor: ta,
		angleInput: angle,
		shotsInput: shots,
		focus:      focusDeck,
		shots:      cfg.DefaultShots,
		sim:        cfg.Simulator(),
		log:        log,
	}
	m.rebuild()
	return m
}

// rebuild reconstructs the circuit from the deck, reruns the simulation
// and refreshes the QASM view.
func (m *Model) rebuild() {
	c := quantum.New(m.numQubits)
	for _, g := range m.gates {
		c.Append(g.Kind, g.Theta, g.Qubits...)
	}
	m.circuit = c

	if err := c.Err(); err != nil {
		m.state, m.runErr = nil, err
	} else {
		m.state, m.runErr = m.sim.Run(c)
	}
	if m.runErr != nil {
		m.log.Debug().Err(m.runErr).Msg("live run failed")
	}

	qasm := c.QASM()
	m.qasmEditor.SetValue(qasm)
	m.lastQASM = qasm
	m.qasmErr = nil
}

// parseQASMInput replaces the deck from edited QASM text. A parse failure
// leaves the deck untouched and is shown in the editor panel.
func (m *Model) parseQASMInput() {
	qasm := m.qasmEditor.Value()
	if qasm == m.lastQASM {
		return
	}
	m.lastQASM = qasm

	parsed, err := quantum.ParseQASM(qasm)
	if err != nil {
		m.qasmErr = err
		return
	}
	m.qasmErr = nil
	m.numQubits = parsed.NumQubits()
	m.gates = slices.Clone(parsed.Gates())
	m.cursor = min(m.cursor, max(len(m.gates)-1, 0))

	c := parsed
	m.circuit = c
	m.state, m.runErr = m.sim.Run(c)
}

// startPending begins assembling a gate chosen from the menu.
func (m *Model) startPending(kind quantum.Kind) {
	if kind == quantum.KindMeasure {
		m.toggleMeasure()
		m.focus = focusDeck
		return
	}
	if kind.Arity() > m.numQubits {
		m.statusMsg = fmt.Sprintf("%s needs %d qubits", kind, kind.Arity())
		m.focus = focusDeck
		return
	}
	m.pendingKind = kind
	m.pendingTheta = 0
	m.pendingQubits = nil
	if kind.Parameterized() {
		m.angleInput.SetValue("")
		m.angleInput.Focus()
		m.focus = focusInputAngle
		return
	}
	m.beginQubitPick()
}

func (m *Model) beginQubitPick() {
	m.pickQubit = m.nextFreeQubit(0, +1)
	m.focus = focusPickQubit
}

// nextFreeQubit scans from start in the given direction for a qubit not
// already part of the pending gate. Returns the current pick when none is
// free.
func (m *Model) nextFreeQubit(start, dir int) int {
	for q := start; q >= 0 && q < m.numQubits; q += dir {
		if !slices.Contains(m.pendingQubits, q) {
			return q
		}
	}
	return m.pickQubit
}

// pickRoles names each qubit slot of the pending gate for the prompt.
func pickRoles(kind quantum.Kind) []string {
	switch kind {
	case quantum.KindSwap:
		return []string{"first qubit", "second qubit"}
	case quantum.KindCCX:
		return []string{"control 1", "control 2", "target"}
	case quantum.KindCSwap:
		return []string{"control", "first target", "second target"}
	}
	if kind.Arity() == 2 {
		return []string{"control", "target"}
	}
	return []string{"qubit"}
}

// confirmPick records the highlighted qubit; once every slot is filled the
// gate is placed after the cursor.
func (m *Model) confirmPick() {
	m.pendingQubits = append(m.pendingQubits, m.pickQubit)
	if len(m.pendingQubits) < m.pendingKind.Arity() {
		m.pickQubit = m.nextFreeQubit(0, +1)
		return
	}

	g := quantum.Gate{
		Kind:   m.pendingKind,
		Qubits: slices.Clone(m.pendingQubits),
		Theta:  m.pendingTheta,
	}
	idx := 0
	if len(m.gates) > 0 {
		idx = min(m.cursor+1, len(m.gates))
	}
	m.gates = slices.Insert(m.gates, idx, g)
	m.cursor = idx
	m.log.Debug().Str("gate", string(g.Kind)).Ints("qubits", g.Qubits).Msg("gate placed")

	m.clearPending()
	m.rebuild()
	m.focus = focusDeck
}

func (m *Model) clearPending() {
	m.pendingKind = ""
	m.pendingTheta = 0
	m.pendingQubits = nil
}

// toggleMeasure appends the measure-all marker, or removes it if present.
func (m *Model) toggleMeasure() {
	before := len(m.gates)
	m.gates = slices.DeleteFunc(m.gates, func(g quantum.Gate) bool {
		return g.Kind == quantum.KindMeasure
	})
	if len(m.gates) == before {
		m.gates = append(m.gates, quantum.Gate{Kind: quantum.KindMeasure})
	}
	m.cursor = min(m.cursor, max(len(m.gates)-1, 0))
	m.rebuild()
}

// runSample draws shots from the current circuit and opens the results
// popup.
func (m *Model) runSample(shots int) {
	counts, err := m.sim.Sample(m.circuit, shots)
	if err != nil {
		m.statusMsg = fmt.Sprintf("Sampling failed: %v", err)
		m.focus = focusDeck
		return
	}
	m.counts = counts
	m.shots = shots
	m.log.Info().Int("shots", shots).Int("outcomes", len(counts)).Msg("sampled circuit")
	m.focus = focusCounts
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		qasmW := max(msg.Width/3-6, 20)
		m.qasmEditor.SetWidth(qasmW)
		editorH := max(msg.Height-16, 4)
		m.qasmEditor.SetHeight(editorH)

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusDeck:
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				m.focus = focusQASM
				m.qasmEditor.Focus()
			case "a":
				m.focus = focusMenu
				m.menuCat = 0
				m.menuItem = 0
			case "m":
				m.toggleMeasure()
			case "s":
				m.shotsInput.SetValue("")
				m.shotsInput.Focus()
				m.focus = focusInputShots
			case "left", "h":
				if m.cursor > 0 {
					m.cursor--
					if m.cursor < m.viewStart {
						m.viewStart = m.cursor
					}
				}
			case "right", "l":
				if m.cursor < len(m.gates)-1 {
					m.cursor++
				}
			case "backspace", "delete":
				if m.cursor < len(m.gates) {
					m.gates = slices.Delete(m.gates, m.cursor, m.cursor+1)
					m.cursor = min(m.cursor, max(len(m.gates)-1, 0))
					m.rebuild()
				}
			case "+", "=":
				m.numQubits++
				m.rebuild()
			case "-":
				if m.numQubits > 1 {
					m.numQubits--
					m.gates = slices.DeleteFunc(m.gates, func(g quantum.Gate) bool {
						return slices.ContainsFunc(g.Qubits, func(q int) bool {
							return q >= m.numQubits
						})
					})
					m.cursor = min(m.cursor, max(len(m.gates)-1, 0))
					m.rebuild()
				}
			case "ctrl+r":
				m.gates = nil
				m.cursor = 0
				m.viewStart = 0
				m.rebuild()
			case "ctrl+s":
				if err := os.WriteFile("circuit.qasm", []byte(m.circuit.QASM()), 0644); err != nil {
					m.statusMsg = fmt.Sprintf("Save error: %v", err)
				} else {
					m.statusMsg = "Saved circuit.qasm"
				}
			}

		case focusMenu:
			switch key {
			case "esc":
				m.focus = focusDeck
			case "up", "k":
				if m.menuItem > 0 {
					m.menuItem--
				}
			case "down", "j":
				if m.menuItem < len(gateMenu[m.menuCat].items)-1 {
					m.menuItem++
				}
			case "left", "h":
				if m.menuCat > 0 {
					m.menuCat--
					m.menuItem = 0
				}
			case "right", "l":
				if m.menuCat < len(gateMenu)-1 {
					m.menuCat++
					m.menuItem = 0
				}
			case "enter":
				m.startPending(gateMenu[m.menuCat].items[m.menuItem].kind)
			}

		case focusPickQubit:
			switch key {
			case "esc":
				m.clearPending()
				m.focus = focusDeck
			case "up", "k":
				m.pickQubit = m.nextFreeQubit(m.pickQubit-1, -1)
			case "down", "j":
				m.pickQubit = m.nextFreeQubit(m.pickQubit+1, +1)
			case "enter":
				m.confirmPick()
			}

		case focusInputAngle:
			switch key {
			case "esc":
				m.clearPending()
				m.angleInput.Blur()
				m.focus = focusDeck
			case "enter":
				theta, ok := quantum.ParseAngle(strings.TrimSpace(m.angleInput.Value()))
				if !ok {
					m.statusMsg = "Invalid angle, use numbers or pi expressions (pi/2, 3*pi/4)"
					break
				}
				m.pendingTheta = theta
				m.angleInput.Blur()
				m.beginQubitPick()
			default:
				var cmd tea.Cmd
				m.angleInput, cmd = m.angleInput.Update(msg)
				cmds = append(cmds, cmd)
			}

		case focusInputShots:
			switch key {
			case "esc":
				m.shotsInput.Blur()
				m.focus = focusDeck
			case "enter":
				text := strings.TrimSpace(m.shotsInput.Value())
				shots := m.shots
				if text != "" {
					n, err := strconv.Atoi(text)
					if err != nil {
						m.statusMsg = "Shots must be a whole number"
						break
					}
					shots = n
				}
				m.shotsInput.Blur()
				m.runSample(shots)
			default:
				var cmd tea.Cmd
				m.shotsInput, cmd = m.shotsInput.Update(msg)
				cmds = append(cmds, cmd)
			}

		case focusCounts:
			switch key {
			case "esc", "enter", "q":
				m.focus = focusDeck
			}

		case focusQASM:
			switch key {
			case "tab":
				m.focus = focusDeck
				m.qasmEditor.Blur()
				if m.qasmErr == nil {
					m.rebuild()
				}
			default:
				var cmd tea.Cmd
				m.qasmEditor, cmd = m.qasmEditor.Update(msg)
				cmds = append(cmds, cmd)
				m.parseQASMInput()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	stateWidth := m.width / 3
	deckWidth := m.width - stateWidth - 4
	controlsHeight := 6
	panelHeight := max(m.height-controlsHeight-2, 6)

	deckPanel := m.renderDeckPanel(deckWidth, panelHeight)
	statePanel := m.renderStatePanel(stateWidth, panelHeight)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, deckPanel, statePanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	switch m.focus {
	case focusMenu:
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	case focusInputAngle:
		frame = overlayAt(frame, m.renderAngleInput(), 2, 2)
	case focusInputShots:
		frame = overlayAt(frame, m.renderShotsInput(), 2, 2)
	case focusCounts:
		frame = overlayAt(frame, m.renderCounts(), 2, 2)
	case focusQASM:
		frame = overlayAt(frame, m.renderQASMEditor(), 2, 2)
	}

	return frame
}
