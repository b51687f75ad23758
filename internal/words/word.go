// internal/words/word.go
//
// Word is the fixed-length value type shared by every solver component.
package words

import (
	"errors"
	"fmt"
	"strings"
)

// Length is the number of letters in every word.
const Length = 5

// ErrInvalidWord is returned when a string is not Length letters a–z.
var ErrInvalidWord = errors.New("invalid word")

// Word is a five-letter lowercase word. Comparable and usable as a map key.
type Word [Length]byte

// ParseWord lowercases and validates s.
func ParseWord(s string) (Word, error) {
	var w Word
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != Length {
		return w, fmt.Errorf("%w: %q is not %d letters", ErrInvalidWord, s, Length)
	}
	if !isAlpha(s) {
		return w, fmt.Errorf("%w: %q contains non a-z characters", ErrInvalidWord, s)
	}
	copy(w[:], s)
	return w, nil
}

// MustParse is ParseWord for literals known to be valid.
func MustParse(s string) Word {
	w, err := ParseWord(s)
	if err != nil {
		panic(err)
	}
	return w
}

func (w Word) String() string { return string(w[:]) }

// Upper renders the word the way the service reports guesses.
func (w Word) Upper() string { return strings.ToUpper(w.String()) }

// Less orders words lexicographically.
func (w Word) Less(o Word) bool {
	for i := 0; i < Length; i++ {
		if w[i] != o[i] {
			return w[i] < o[i]
		}
	}
	return false
}

// IsZero reports whether w was never assigned.
func (w Word) IsZero() bool { return w == Word{} }

// MarshalText renders the word as JSON/text.
func (w Word) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

// UnmarshalText parses a word from JSON/text.
func (w *Word) UnmarshalText(b []byte) error {
	p, err := ParseWord(string(b))
	if err != nil {
		return err
	}
	*w = p
	return nil
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
