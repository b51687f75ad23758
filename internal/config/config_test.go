package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Tests here mutate the environment and must not run in parallel.

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "OPENING_GUESS", "MAX_ROUNDS", "CANDIDATES_ONLY", "ROUND_TIMEOUT", "RANK_CACHE_SIZE", "DB_PATH"} {
		t.Setenv(k, "")
	}
	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, "5175", c.Port)
	require.Equal(t, "arise", c.Opening)
	require.Equal(t, 6, c.MaxRounds)
	require.False(t, c.CandidatesOnly)
	require.Equal(t, 10*time.Second, c.RoundTimeout)
	require.Equal(t, 4096, c.RankCacheSize)
	require.Empty(t, c.DBPath)

	sc := c.SolverConfig()
	require.Equal(t, "arise", sc.Opening.String())
	require.Equal(t, 6, sc.MaxRounds)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OPENING_GUESS", "CRANE")
	t.Setenv("MAX_ROUNDS", "8")
	t.Setenv("CANDIDATES_ONLY", "true")
	t.Setenv("ROUND_TIMEOUT", "250ms")
	t.Setenv("RANK_WORKERS", "3")

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, "crane", c.SolverConfig().Opening.String())
	require.Equal(t, 8, c.MaxRounds)
	require.True(t, c.CandidatesOnly)
	require.Equal(t, 250*time.Millisecond, c.RoundTimeout)
	require.Equal(t, 3, c.RankerConfig().Workers)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"MAX_ROUNDS":      "six",
		"CANDIDATES_ONLY": "maybe",
		"ROUND_TIMEOUT":   "soon",
		"OPENING_GUESS":   "toolong",
	}
	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv(k, v)
			_, err := Load()
			require.Error(t, err)
		})
	}

	t.Run("zero rounds", func(t *testing.T) {
		t.Setenv("MAX_ROUNDS", "0")
		_, err := Load()
		require.Error(t, err)
	})
}
