package quantum

import (
	"errors"
	"fmt"
)

// Sentinel errors for the three caller-error classes. Concrete errors wrap
// these, so callers can branch with errors.Is while still getting the
// offending values in the message.
var (
	// ErrBadCircuit covers construction-time failures: non-positive qubit
	// counts, out-of-range or duplicate qubit indices.
	ErrBadCircuit = errors.New("invalid circuit")

	// ErrBadSampling covers invalid sampling requests.
	ErrBadSampling = errors.New("invalid sampling request")
)

// QubitCountError reports a qubit count that cannot back a state vector.
type QubitCountError struct {
	Count int
}

func (e *QubitCountError) Error() string {
	return fmt.Sprintf("qubit count must be at least 1, got %d", e.Count)
}

func (e *QubitCountError) Unwrap() error { return ErrBadCircuit }

// QubitRangeError reports a gate referencing a qubit outside [0, Count).
type QubitRangeError struct {
	Gate  Kind
	Qubit int
	Count int
}

func (e *QubitRangeError) Error() string {
	if e.Gate == "" {
		return fmt.Sprintf("qubit index %d out of range [0, %d)", e.Qubit, e.Count)
	}
	return fmt.Sprintf("%s: qubit index %d out of range [0, %d)", e.Gate, e.Qubit, e.Count)
}

func (e *QubitRangeError) Unwrap() error { return ErrBadCircuit }

// DuplicateQubitError reports a multi-qubit gate naming the same qubit twice.
type DuplicateQubitError struct {
	Gate  Kind
	Qubit int
}

func (e *DuplicateQubitError) Error() string {
	if e.Gate == "" {
		return fmt.Sprintf("duplicate qubit %d", e.Qubit)
	}
	return fmt.Sprintf("%s: duplicate qubit %d", e.Gate, e.Qubit)
}

func (e *DuplicateQubitError) Unwrap() error { return ErrBadCircuit }

// ShotCountError reports a negative shot count.
type ShotCountError struct {
	Shots int
}

func (e *ShotCountError) Error() string {
	return fmt.Sprintf("shot count must be non-negative, got %d", e.Shots)
}

func (e *ShotCountError) Unwrap() error { return ErrBadSampling }
