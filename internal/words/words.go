// internal/words/words.go
//
// Word list management for the solver.
//
// Responsibilities:
//   - Load the solver corpus and the historical answers list from files or
//     fall back to the embedded defaults in the assets package.
//   - Normalize, deduplicate and sort entries into an immutable Corpus.
//   - Index lookups (word → position) used by candidate bit sets.
//
// File format:
//   - One word per line, trimmed and lowercased.
//   - Blank lines and "#" comments are skipped.
//   - Entries that are not 5 letters a–z are dropped.
//
// A Corpus is built once at startup and only read afterwards, so it can be
// shared by every session and goroutine without locking.
package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/assets"
)

// ErrCorpusLoad marks a missing, unreadable or empty word list.
var ErrCorpusLoad = errors.New("corpus load failure")

// Corpus is a sorted, deduplicated, read-only word collection.
type Corpus struct {
	words []Word       // sorted ascending
	index map[Word]int // word → position in words
}

// NewCorpus normalizes list into a Corpus.
// Returns ErrCorpusLoad if no valid word remains.
func NewCorpus(list []string) (*Corpus, error) {
	seen := make(map[Word]struct{}, len(list))
	out := make([]Word, 0, len(list))
	dropped := 0
	for _, s := range list {
		w, err := ParseWord(s)
		if err != nil {
			dropped++
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	if dropped > 0 {
		log.Debug().Int("dropped", dropped).Msg("words: skipped malformed entries")
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no valid words", ErrCorpusLoad)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })

	idx := make(map[Word]int, len(out))
	for i, w := range out {
		idx[w] = i
	}
	return &Corpus{words: out, index: idx}, nil
}

// LoadCorpus reads the solver corpus from path, or the embedded default
// when path is empty.
func LoadCorpus(path string) (*Corpus, error) {
	if path == "" {
		list, err := readEmbedded(assets.CorpusFile)
		if err != nil {
			return nil, fmt.Errorf("%w: embedded corpus: %v", ErrCorpusLoad, err)
		}
		return NewCorpus(list)
	}
	list, err := readWordFile(path)
	if err != nil {
		return nil, err
	}
	c, err := NewCorpus(list)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadAnswers reads the historical answers list from path, or the embedded
// default when path is empty. Order is preserved; duplicates are removed.
func LoadAnswers(path string) ([]Word, error) {
	var (
		list []string
		err  error
	)
	if path == "" {
		list, err = readEmbedded(assets.AnswersFile)
		if err != nil {
			return nil, fmt.Errorf("%w: embedded answers: %v", ErrCorpusLoad, err)
		}
	} else if list, err = readWordFile(path); err != nil {
		return nil, err
	}

	seen := make(map[Word]struct{}, len(list))
	out := make([]Word, 0, len(list))
	for _, s := range list {
		w, err := ParseWord(s)
		if err != nil {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: answers list is empty", ErrCorpusLoad)
	}
	return out, nil
}

// readWordFile loads a word list from disk.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorpusLoad, err)
	}
	defer f.Close()
	out, err := scanWords(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorpusLoad, path, err)
	}
	return out, nil
}

// readEmbedded loads one of the lists bundled in assets.
func readEmbedded(name string) ([]string, error) {
	f, err := assets.FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return scanWords(f)
}

// scanWords returns one lowercased entry per line, skipping blank lines
// and "#" comments. Entries are not validated here.
func scanWords(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.ToLower(strings.TrimSpace(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		out = append(out, w)
	}
	return out, sc.Err()
}

// Len returns the number of words.
func (c *Corpus) Len() int { return len(c.words) }

// Words returns the sorted word slice. Callers must not modify it.
func (c *Corpus) Words() []Word { return c.words }

// At returns the word at position i.
func (c *Corpus) At(i int) Word { return c.words[i] }

// Index returns the position of w, if present.
func (c *Corpus) Index(w Word) (int, bool) {
	i, ok := c.index[w]
	return i, ok
}

// Contains reports whether w is in the corpus.
func (c *Corpus) Contains(w Word) bool {
	_, ok := c.index[w]
	return ok
}
