package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func testEngine(t *testing.T) *solver.Engine {
	t.Helper()
	c, err := words.NewCorpus([]string{"crane", "trace", "react"})
	require.NoError(t, err)
	r, err := solver.NewRanker(solver.RankerConfig{})
	require.NoError(t, err)
	e, err := solver.NewEngine(c, r, solver.Config{Opening: words.MustParse("crane")})
	require.NoError(t, err)
	return e
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := NewMemoryStore()
	e := testEngine(t)

	_, err := st.Get(ctx, "a")
	require.ErrorIs(t, err, ErrNotFound)

	s := e.NewSession("a")
	require.NoError(t, st.Save(ctx, s))
	got, err := st.Get(ctx, "a")
	require.NoError(t, err)
	require.Same(t, s, got)
	require.Equal(t, 1, st.Len())

	require.NoError(t, st.Delete(ctx, "a"))
	require.ErrorIs(t, st.Delete(ctx, "a"), ErrNotFound)
	require.Zero(t, st.Len())

	require.Error(t, st.Save(ctx, e.NewSession("")))
}

func TestMemoryStoreConcurrent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := NewMemoryStore()
	e := testEngine(t)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", i%8)
			_ = st.Save(ctx, e.NewSession(id))
			_, _ = st.Get(ctx, id)
		}(i)
	}
	wg.Wait()
	require.Equal(t, 8, st.Len())
}
