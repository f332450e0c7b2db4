package quantum

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Pre-compiled regexps for the QASM 2.0 subset grammar.
var (
	singleGateRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	singleGateParamRegex = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `)\s*\)\s+q\[(\d+)\];?$`)
	twoQubitRegex        = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	twoQubitParamRegex   = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `)\s*\)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	threeQubitRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\],\s*q\[(\d+)\];?$`)
	measureRegex         = regexp.MustCompile(`^measure\s+q\[(\d+)\]\s*->\s*\w+\[(\d+)\];?$`)
	qregRegex            = regexp.MustCompile(`qreg\s+\w+\[(\d+)\]`)
)

// qasmNames maps gate kinds to their qelib1 statement names.
var qasmNames = map[Kind]string{
	KindI: "id", KindX: "x", KindY: "y", KindZ: "z", KindH: "h",
	KindS: "s", KindSdg: "sdg", KindT: "t", KindTdg: "tdg",
	KindP: "p", KindRX: "rx", KindRY: "ry", KindRZ: "rz",
	KindCX: "cx", KindCY: "cy", KindCZ: "cz", KindCH: "ch", KindCP: "cp",
	KindSwap: "swap", KindCCX: "ccx", KindCSwap: "cswap",
}

// kindsByQASMName is the reverse lookup, with the aliases qelib and older
// emitters use ("u1" for p, "cu1" for cp, "i" for id, "toffoli" for ccx).
var kindsByQASMName = func() map[string]Kind {
	m := make(map[string]Kind, len(qasmNames)+4)
	for kind, name := range qasmNames {
		m[name] = kind
	}
	m["i"] = KindI
	m["u1"] = KindP
	m["cu1"] = KindCP
	m["toffoli"] = KindCCX
	return m
}()

// QASM renders the circuit as OpenQASM 2.0 text. The measure-all marker
// becomes one measure statement per qubit.
func (c *Circuit) QASM() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", c.numQubits)
	fmt.Fprintf(&sb, "creg c[%d];\n\n", c.numQubits)

	for _, g := range c.gates {
		if g.Kind == KindMeasure {
			for q := range c.numQubits {
				fmt.Fprintf(&sb, "measure q[%d] -> c[%d];\n", q, q)
			}
			continue
		}
		name := qasmNames[g.Kind]
		if g.Kind.Parameterized() {
			fmt.Fprintf(&sb, "%s(%s)", name, FormatAngle(g.Theta))
		} else {
			sb.WriteString(name)
		}
		for i, q := range g.Qubits {
			if i == 0 {
				sb.WriteString(" ")
			} else {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "q[%d]", q)
		}
		sb.WriteString(";\n")
	}
	return sb.String()
}

// ParseQASM builds a circuit from OpenQASM 2.0 text covering the catalog's
// gate subset. Unknown statements are rejected; comments, the version
// header, includes and creg declarations are skipped. Any measure
// statement marks the circuit as measured (the simulator always reports
// the whole register).
func ParseQASM(text string) (*Circuit, error) {
	numQubits := 0
	type parsedGate struct {
		kind   Kind
		qubits []int
		theta  float64
	}
	var gates []parsedGate
	measured := false

	for lineNo, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "//") ||
			strings.HasPrefix(line, "OPENQASM") || strings.HasPrefix(line, "include") {
			continue
		}
		if strings.HasPrefix(line, "qreg") {
			matches := qregRegex.FindStringSubmatch(line)
			if matches == nil {
				return nil, fmt.Errorf("line %d: malformed qreg: %q", lineNo+1, line)
			}
			numQubits, _ = strconv.Atoi(matches[1])
			continue
		}
		if strings.HasPrefix(line, "creg") {
			continue
		}

		if matches := measureRegex.FindStringSubmatch(line); matches != nil {
			measured = true
			continue
		}

		if matches := twoQubitParamRegex.FindStringSubmatch(line); matches != nil {
			kind, ok := kindsByQASMName[strings.ToLower(matches[1])]
			if !ok || kind.Arity() != 2 || !kind.Parameterized() {
				return nil, fmt.Errorf("line %d: unknown gate %q", lineNo+1, matches[1])
			}
			theta, ok := ParseAngle(matches[2])
			if !ok {
				return nil, fmt.Errorf("line %d: bad angle %q", lineNo+1, matches[2])
			}
			q1, _ := strconv.Atoi(matches[3])
			q2, _ := strconv.Atoi(matches[4])
			gates = append(gates, parsedGate{kind: kind, qubits: []int{q1, q2}, theta: theta})
			continue
		}

		if matches := twoQubitRegex.FindStringSubmatch(line); matches != nil {
			kind, ok := kindsByQASMName[strings.ToLower(matches[1])]
			if !ok || kind.Arity() != 2 {
				return nil, fmt.Errorf("line %d: unknown gate %q", lineNo+1, matches[1])
			}
			q1, _ := strconv.Atoi(matches[2])
			q2, _ := strconv.Atoi(matches[3])
			gates = append(gates, parsedGate{kind: kind, qubits: []int{q1, q2}})
			continue
		}

		if matches := threeQubitRegex.FindStringSubmatch(line); matches != nil {
			kind, ok := kindsByQASMName[strings.ToLower(matches[1])]
			if !ok || kind.Arity() != 3 {
				return nil, fmt.Errorf("line %d: unknown gate %q", lineNo+1, matches[1])
			}
			q1, _ := strconv.Atoi(matches[2])
			q2, _ := strconv.Atoi(matches[3])
			q3, _ := strconv.Atoi(matches[4])
			gates = append(gates, parsedGate{kind: kind, qubits: []int{q1, q2, q3}})
			continue
		}

		if matches := singleGateParamRegex.FindStringSubmatch(line); matches != nil {
			kind, ok := kindsByQASMName[strings.ToLower(matches[1])]
			if !ok || kind.Arity() != 1 || !kind.Parameterized() {
				return nil, fmt.Errorf("line %d: unknown gate %q", lineNo+1, matches[1])
			}
			theta, ok := ParseAngle(matches[2])
			if !ok {
				return nil, fmt.Errorf("line %d: bad angle %q", lineNo+1, matches[2])
			}
			q, _ := strconv.Atoi(matches[3])
			gates = append(gates, parsedGate{kind: kind, qubits: []int{q}, theta: theta})
			continue
		}

		if matches := singleGateRegex.FindStringSubmatch(line); matches != nil {
			kind, ok := kindsByQASMName[strings.ToLower(matches[1])]
			if !ok || kind.Arity() != 1 || kind.Parameterized() {
				return nil, fmt.Errorf("line %d: unknown gate %q", lineNo+1, matches[1])
			}
			q, _ := strconv.Atoi(matches[2])
			gates = append(gates, parsedGate{kind: kind, qubits: []int{q}})
			continue
		}

		return nil, fmt.Errorf("line %d: unsupported statement: %q", lineNo+1, line)
	}

	if numQubits == 0 {
		return nil, fmt.Errorf("missing qreg declaration: %w", ErrBadCircuit)
	}

	c := New(numQubits)
	for _, g := range gates {
		c.Append(g.kind, g.theta, g.qubits...)
	}
	if measured {
		c.MeasureAll()
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	return c, nil
}
