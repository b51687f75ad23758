// internal/game/engine.go
//
// Feedback computation and candidate filtering.
// Responsibilities:
//   - Score guesses using the two‑pass consume‑once algorithm.
//   - Filter word lists down to the words consistent with an outcome.
//
// Notes:
//   - Inputs are words.Word values, already validated to a–z.
//   - Score is the innermost loop of guess ranking; it must not allocate.
package game

import (
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// Score compares guess against answer.
//
// Pass 1:
//   - Mark exact matches as correct.
//   - Count remaining (non‑matched) answer letters by letter index.
//
// Pass 2:
//   - For each non‑correct guess letter: if there is remaining count for that
//     letter, mark present and decrement the count; otherwise absent.
//
// An answer letter satisfies at most one present/correct mark per occurrence,
// even when the guess repeats it more often than the answer does.
func Score(guess, answer words.Word) Outcome {
	var res [words.Length]Mark
	var counts [26]uint8

	// First pass: hits and the multiset of unmatched answer letters.
	for i := 0; i < words.Length; i++ {
		if guess[i] == answer[i] {
			res[i] = MarkCorrect
		} else {
			counts[idx(answer[i])]++
		}
	}

	// Second pass: presents/absents for the remaining tiles.
	var o Outcome
	for i := 0; i < words.Length; i++ {
		if res[i] != MarkCorrect {
			j := idx(guess[i])
			if counts[j] > 0 {
				res[i] = MarkPresent
				counts[j]--
			}
		}
		o = o*3 + Outcome(res[i])
	}
	return o
}

// Filter returns the words w of candidates with Score(guess, w) == outcome,
// preserving order. The input slice is not modified.
func Filter(candidates []words.Word, guess words.Word, outcome Outcome) []words.Word {
	out := make([]words.Word, 0, len(candidates))
	for _, w := range candidates {
		if Score(guess, w) == outcome {
			out = append(out, w)
		}
	}
	return out
}

// idx maps a lowercase ASCII letter to 0..25.
func idx(b byte) int { return int(b - 'a') }
