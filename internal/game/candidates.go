// internal/game/candidates.go
//
// CandidateSet tracks which corpus words are still consistent with every
// outcome observed so far. Membership is a bit per corpus index, so filtering
// and copying stay cheap even for large corpora.

package game

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// CandidateSet is an immutable subset of a Corpus. Filter returns a new set.
type CandidateSet struct {
	corpus *words.Corpus
	bits   *bitset.BitSet
}

// FullSet returns a set holding every corpus word.
func FullSet(c *words.Corpus) *CandidateSet {
	n := uint(c.Len())
	b := bitset.New(n)
	for i := uint(0); i < n; i++ {
		b.Set(i)
	}
	return &CandidateSet{corpus: c, bits: b}
}

// NewSet builds a set from ws. Words missing from the corpus are ignored.
func NewSet(c *words.Corpus, ws []words.Word) *CandidateSet {
	b := bitset.New(uint(c.Len()))
	for _, w := range ws {
		if i, ok := c.Index(w); ok {
			b.Set(uint(i))
		}
	}
	return &CandidateSet{corpus: c, bits: b}
}

// Corpus returns the universe this set indexes into.
func (s *CandidateSet) Corpus() *words.Corpus { return s.corpus }

// Len returns the number of words in the set.
func (s *CandidateSet) Len() int { return int(s.bits.Count()) }

// Contains reports whether w is in the set.
func (s *CandidateSet) Contains(w words.Word) bool {
	i, ok := s.corpus.Index(w)
	return ok && s.bits.Test(uint(i))
}

// Words returns the members in corpus (lexicographic) order.
func (s *CandidateSet) Words() []words.Word {
	out := make([]words.Word, 0, s.Len())
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		out = append(out, s.corpus.At(int(i)))
	}
	return out
}

// First returns the lexicographically smallest member.
func (s *CandidateSet) First() (words.Word, bool) {
	i, ok := s.bits.NextSet(0)
	if !ok {
		return words.Word{}, false
	}
	return s.corpus.At(int(i)), true
}

// Filter keeps exactly the members w with Score(guess, w) == outcome.
func (s *CandidateSet) Filter(guess words.Word, outcome Outcome) *CandidateSet {
	b := bitset.New(s.bits.Len())
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		if Score(guess, s.corpus.At(int(i))) == outcome {
			b.Set(i)
		}
	}
	return &CandidateSet{corpus: s.corpus, bits: b}
}

// Equal reports whether both sets hold the same members of the same corpus.
func (s *CandidateSet) Equal(o *CandidateSet) bool {
	return s.corpus == o.corpus && s.bits.Equal(o.bits)
}

// Words64 exposes the raw bitmap words, used to fingerprint a set.
func (s *CandidateSet) Words64() []uint64 { return s.bits.Bytes() }
