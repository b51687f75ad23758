// assets/embed.go
//
// Embedded default word lists.
//   - words.txt:   solver corpus (allowed guesses and possible answers).
//   - answers.txt: historical answers, used only by batch evaluation.
//
// Both files are newline-delimited; blank lines and "#" comments are skipped.
package assets

import "embed"

const (
	CorpusFile  = "words.txt"
	AnswersFile = "answers.txt"
)

//go:embed words.txt answers.txt
var FS embed.FS
