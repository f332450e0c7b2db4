package main

import (
	"flag"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"quasim/internal/config"
	"quasim/pkg/logger"
	"quasim/quantum"
	"quasim/verify"
)

const version = "0.2.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logger.SetGlobalLogger(log)

	if len(os.Args) < 2 {
		os.Exit(runTUI(cfg, log))
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runCommand(cfg, log, os.Args[2:]))
	case "verify":
		os.Exit(verifyCommand(log))
	case "gates":
		gatesCommand()
	case "version":
		fmt.Println("quasim", version)
	case "help", "-h", "--help":
		usage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage(os.Stderr)
		os.Exit(2)
	}
}

func usage(w *os.File) {
	fmt.Fprint(w, `quasim - quantum circuit simulator

Usage:
  quasim                      open the interactive circuit editor
  quasim run [flags] <file>   simulate an OpenQASM 2.0 circuit file
  quasim verify               run the physics check battery
  quasim gates                list the supported gate catalog
  quasim version              print the version

Run flags:
  -shots N    number of measurement shots (default from QUASIM_SHOTS)
  -seed N     fixed sampling seed for reproducible counts
`)
}

func runTUI(cfg *config.Config, log zerolog.Logger) int {
	p := tea.NewProgram(initialModel(cfg, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("tui terminated")
		return 1
	}
	return 0
}

func runCommand(cfg *config.Config, log zerolog.Logger, args []string) int {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	shots := fs.Int("shots", cfg.DefaultShots, "number of measurement shots")
	seed := fs.Uint64("seed", 0, "fixed sampling seed")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: quasim run [flags] <circuit.qasm>")
		return 2
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		log.Error().Err(err).Msg("read circuit file")
		return 1
	}
	circuit, err := quantum.ParseQASM(string(data))
	if err != nil {
		log.Error().Err(err).Str("file", fs.Arg(0)).Msg("parse circuit")
		return 1
	}

	sim := cfg.Simulator()
	if *seed != 0 {
		sim = quantum.NewSimulatorSeeded(*seed)
	}

	log.Info().
		Int("qubits", circuit.NumQubits()).
		Int("gates", circuit.Len()).
		Int("depth", circuit.Depth()).
		Int("shots", *shots).
		Msg("simulating circuit")

	counts, err := sim.Sample(circuit, *shots)
	if err != nil {
		log.Error().Err(err).Msg("sampling failed")
		return 1
	}

	printCounts(counts, *shots)
	return 0
}

func printCounts(counts map[string]int, shots int) {
	fmt.Printf("Results over %d shots:\n", shots)
	for _, outcome := range slices.Sorted(maps.Keys(counts)) {
		n := counts[outcome]
		frac := float64(n) / float64(shots)
		bar := strings.Repeat("█", int(frac*40+0.5))
		fmt.Printf("  %s  %6d  %6.2f%%  %s\n", outcome, n, frac*100, bar)
	}
}

func verifyCommand(log zerolog.Logger) int {
	results := verify.RunAll(log)

	failed := 0
	for _, r := range results {
		mark := "PASS"
		if !r.Passed {
			mark = "FAIL"
			failed++
		}
		fmt.Printf("  [%s] %-28s %s\n", mark, r.Name, r.Detail)
	}
	if failed > 0 {
		fmt.Printf("\n%d of %d checks failed\n", failed, len(results))
		return 1
	}
	fmt.Printf("\nall %d checks passed\n", len(results))
	return 0
}

// catalogEntry describes one gate for the gates listing.
type catalogEntry struct {
	kind quantum.Kind
	desc string
}

var catalog = []catalogEntry{
	{quantum.KindI, "identity"},
	{quantum.KindX, "Pauli-X (NOT)"},
	{quantum.KindY, "Pauli-Y"},
	{quantum.KindZ, "Pauli-Z"},
	{quantum.KindH, "Hadamard"},
	{quantum.KindS, "phase (sqrt Z)"},
	{quantum.KindSdg, "phase dagger"},
	{quantum.KindT, "pi/8"},
	{quantum.KindTdg, "pi/8 dagger"},
	{quantum.KindP, "phase shift by theta"},
	{quantum.KindRX, "X-axis rotation"},
	{quantum.KindRY, "Y-axis rotation"},
	{quantum.KindRZ, "Z-axis rotation"},
	{quantum.KindCX, "controlled-NOT"},
	{quantum.KindCY, "controlled-Y"},
	{quantum.KindCZ, "controlled-Z"},
	{quantum.KindCH, "controlled-Hadamard"},
	{quantum.KindCP, "controlled phase shift"},
	{quantum.KindSwap, "exchange two qubits"},
	{quantum.KindCCX, "Toffoli (controlled-controlled-NOT)"},
	{quantum.KindCSwap, "Fredkin (controlled swap)"},
}

func gatesCommand() {
	fmt.Println("Supported gates:")
	for _, e := range catalog {
		param := ""
		if e.kind.Parameterized() {
			param = "theta"
		}
		fmt.Printf("  %-6s %d qubit(s)  %-6s %s\n", e.kind, e.kind.Arity(), param, e.desc)
	}
	fmt.Println("  MEASURE            full-register measurement marker")
}
