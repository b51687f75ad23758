package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func TestDateKeyIsUTC(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("UTC+10", 10*60*60)
	require.Equal(t, "2026-10-14", DateKey(time.Date(2026, 10, 15, 5, 0, 0, 0, loc)))
}

func TestWordIndexDeterministic(t *testing.T) {
	t.Parallel()
	day := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	i := WordIndex(day, "salt", 434)
	require.GreaterOrEqual(t, i, 0)
	require.Less(t, i, 434)
	require.Equal(t, i, WordIndex(day.Add(6*time.Hour), "salt", 434))
	require.Zero(t, WordIndex(day, "salt", 0))
}

func TestAnswer(t *testing.T) {
	t.Parallel()
	list := []words.Word{words.MustParse("crane"), words.MustParse("trace"), words.MustParse("react")}
	day := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

	w, ok := Answer(day, "salt", list)
	require.True(t, ok)
	require.Equal(t, list[WordIndex(day, "salt", len(list))], w)

	_, ok = Answer(day, "salt", nil)
	require.False(t, ok)
}
