// internal/game/types.go
//
// Core type definitions for feedback computation.
// Defines:
//   - Mark:    per-letter result of a guess (absent/present/correct).
//   - Outcome: the five marks of one guess packed into a single integer.

package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// Mark represents the evaluation result for a single letter in a guess.
// The numeric values are the base-3 digits of an Outcome.
type Mark uint8

const (
	MarkAbsent  Mark = 0 // letter not available in the answer
	MarkPresent Mark = 1 // letter in the answer, other position
	MarkCorrect Mark = 2 // letter in the correct position
)

func (m Mark) String() string {
	switch m {
	case MarkAbsent:
		return "absent"
	case MarkPresent:
		return "present"
	case MarkCorrect:
		return "correct"
	}
	return fmt.Sprintf("Mark(%d)", uint8(m))
}

// Outcome is the base-3 big-endian encoding of five marks: position 0 is the
// most significant digit. Values span [0, NumOutcomes).
type Outcome uint8

const (
	// NumOutcomes is 3^5.
	NumOutcomes = 243
	// Solved is the all-correct outcome.
	Solved Outcome = NumOutcomes - 1
)

// ErrInvalidOutcome is returned for outcome strings that are not exactly five
// characters from {b, y, g}.
var ErrInvalidOutcome = errors.New("invalid outcome format")

// FromMarks encodes five marks into an Outcome.
func FromMarks(m [words.Length]Mark) Outcome {
	var o Outcome
	for _, x := range m {
		o = o*3 + Outcome(x)
	}
	return o
}

// Marks decodes the outcome into its five marks.
func (o Outcome) Marks() [words.Length]Mark {
	var m [words.Length]Mark
	v := o
	for i := words.Length - 1; i >= 0; i-- {
		m[i] = Mark(v % 3)
		v /= 3
	}
	return m
}

// IsSolved reports whether every position is correct.
func (o Outcome) IsSolved() bool { return o == Solved }

// String renders the boundary form, e.g. "bygbb".
func (o Outcome) String() string {
	var b strings.Builder
	for _, m := range o.Marks() {
		switch m {
		case MarkAbsent:
			b.WriteByte('b')
		case MarkPresent:
			b.WriteByte('y')
		default:
			b.WriteByte('g')
		}
	}
	return b.String()
}

// ParseOutcome converts a b/y/g string (case-insensitive) to an Outcome.
// b=absent, y=present, g=correct. The input must be exactly five characters.
func ParseOutcome(s string) (Outcome, error) {
	if len(s) != words.Length {
		return 0, fmt.Errorf("%w: want %d characters, got %d", ErrInvalidOutcome, words.Length, len(s))
	}
	var o Outcome
	for i := 0; i < len(s); i++ {
		var d Outcome
		switch s[i] {
		case 'b', 'B':
			d = 0
		case 'y', 'Y':
			d = 1
		case 'g', 'G':
			d = 2
		default:
			return 0, fmt.Errorf("%w: character %q at position %d", ErrInvalidOutcome, s[i], i+1)
		}
		o = o*3 + d
	}
	return o, nil
}

// MarshalText renders the outcome as its b/y/g string.
func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText parses a b/y/g string.
func (o *Outcome) UnmarshalText(b []byte) error {
	p, err := ParseOutcome(string(b))
	if err != nil {
		return err
	}
	*o = p
	return nil
}
