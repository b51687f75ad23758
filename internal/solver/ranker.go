// internal/solver/ranker.go
//
// Guess ranking by expected information gain.
// Responsibilities:
//   - Score every allowed guess by the Shannon entropy of the outcome
//     distribution it induces over the current candidates.
//   - Pick the best guess deterministically (max entropy, then smallest word).
//   - Fan scoring out across workers; memoize results per candidate state.
//
// Cost is O(|allowed| × |candidates|) Score calls per ranking, the dominant
// cost of the whole solver.
package solver

import (
	"context"
	"encoding/binary"
	"math"
	"runtime"
	"sort"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// tieTolerance is the entropy difference below which two guesses tie.
const tieTolerance = 1e-9

// ctxCheckEvery is how many guesses a worker scores between context checks.
const ctxCheckEvery = 64

// RankerConfig tunes a Ranker.
type RankerConfig struct {
	Workers   int // parallel scorers; <= 0 means GOMAXPROCS
	CacheSize int // memoized rankings; 0 disables the cache
}

// Scored is one guess with its expected information gain in bits.
type Scored struct {
	Word      words.Word `json:"word"`
	Entropy   float64    `json:"entropy"`
	Candidate bool       `json:"candidate"` // guess could itself be the answer
}

// Ranker selects guesses. Safe for concurrent use.
type Ranker struct {
	workers int
	cache   *lru.Cache
}

// cacheKey identifies a (candidates, allowed) pair over one corpus.
type cacheKey struct {
	corpus *words.Corpus
	sum    [blake2b.Size256]byte
}

// NewRanker builds a Ranker from cfg.
func NewRanker(cfg RankerConfig) (*Ranker, error) {
	r := &Ranker{workers: cfg.Workers}
	if r.workers <= 0 {
		r.workers = runtime.GOMAXPROCS(0)
	}
	if cfg.CacheSize > 0 {
		c, err := lru.New(cfg.CacheSize)
		if err != nil {
			return nil, err
		}
		r.cache = c
	}
	return r, nil
}

// Best returns the allowed guess with the highest entropy over candidates.
//
//   - one candidate: returned directly, nothing is scored;
//   - no candidates: ErrContradiction;
//   - ties within tieTolerance go to the lexicographically smaller word.
func (r *Ranker) Best(ctx context.Context, candidates, allowed *game.CandidateSet) (words.Word, error) {
	switch candidates.Len() {
	case 0:
		return words.Word{}, ErrContradiction
	case 1:
		w, _ := candidates.First()
		return w, nil
	}

	var key cacheKey
	if r.cache != nil {
		key = fingerprint(candidates, allowed)
		if v, ok := r.cache.Get(key); ok {
			return v.(words.Word), nil
		}
	}

	scores, err := r.score(ctx, candidates.Words(), allowed.Words())
	if err != nil {
		return words.Word{}, err
	}
	if len(scores) == 0 {
		return words.Word{}, ErrNoGuesses
	}
	best := scores[0]
	for _, s := range scores[1:] {
		if better(s, best) {
			best = s
		}
	}

	if r.cache != nil {
		r.cache.Add(key, best.Word)
	}
	return best.Word, nil
}

// Rank returns the n best allowed guesses, best first. n <= 0 returns all.
func (r *Ranker) Rank(ctx context.Context, candidates, allowed *game.CandidateSet, n int) ([]Scored, error) {
	if candidates.Len() == 0 {
		return nil, ErrContradiction
	}
	scores, err := r.score(ctx, candidates.Words(), allowed.Words())
	if err != nil {
		return nil, err
	}
	sort.SliceStable(scores, func(i, j int) bool { return better(scores[i], scores[j]) })
	if n > 0 && n < len(scores) {
		scores = scores[:n]
	}
	for i := range scores {
		scores[i].Candidate = candidates.Contains(scores[i].Word)
	}
	return scores, nil
}

// score computes the entropy of every allowed guess. Workers own contiguous
// ranges of the result slice and their own histogram.
func (r *Ranker) score(ctx context.Context, candidates, allowed []words.Word) ([]Scored, error) {
	out := make([]Scored, len(allowed))
	if len(allowed) == 0 {
		return out, nil
	}
	chunk := (len(allowed) + r.workers - 1) / r.workers

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for lo := 0; lo < len(allowed); lo += chunk {
		lo, hi := lo, min(lo+chunk, len(allowed))
		g.Go(func() error {
			var hist [game.NumOutcomes]int
			for i := lo; i < hi; i++ {
				if (i-lo)%ctxCheckEvery == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				out[i] = Scored{Word: allowed[i], Entropy: entropy(allowed[i], candidates, &hist)}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Entropy returns the expected information gain of guess over candidates.
func Entropy(guess words.Word, candidates []words.Word) float64 {
	var hist [game.NumOutcomes]int
	return entropy(guess, candidates, &hist)
}

func entropy(guess words.Word, candidates []words.Word, hist *[game.NumOutcomes]int) float64 {
	*hist = [game.NumOutcomes]int{}
	for _, a := range candidates {
		hist[game.Score(guess, a)]++
	}
	n := float64(len(candidates))
	var h float64
	for _, c := range hist {
		if c == 0 {
			continue // log(0) is undefined; empty buckets carry no information
		}
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	return h
}

// better orders a before b: higher entropy, then smaller word on a tie.
func better(a, b Scored) bool {
	if d := a.Entropy - b.Entropy; math.Abs(d) > tieTolerance {
		return d > 0
	}
	return a.Word.Less(b.Word)
}

func fingerprint(candidates, allowed *game.CandidateSet) cacheKey {
	h, _ := blake2b.New256(nil)
	var buf [8]byte
	for _, set := range []*game.CandidateSet{candidates, allowed} {
		ws := set.Words64()
		binary.LittleEndian.PutUint64(buf[:], uint64(len(ws)))
		h.Write(buf[:])
		for _, x := range ws {
			binary.LittleEndian.PutUint64(buf[:], x)
			h.Write(buf[:])
		}
	}
	k := cacheKey{corpus: candidates.Corpus()}
	copy(k.sum[:], h.Sum(nil))
	return k
}
