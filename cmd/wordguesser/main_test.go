package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordguesser/internal/guesser"
	"github.com/robalobadob/wordguesser/internal/results"
)

// execute runs the CLI with a three-word dictionary and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{"WORDS_FILE", "DB_PATH", "LOG_LEVEL", "MAX_WRONG", "BENCH_WORKERS"} {
		t.Setenv(k, "")
	}
	wordsFile := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(wordsFile, []byte("# test list\ncat car can\n"), 0o644))

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--words", wordsFile, "--log-level", "warn"}, args...))
	err := root.Execute()
	return stdout.String(), err
}

func TestGuessCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"fresh game", []string{"--length", "3"}, "c\n"},
		{"length from pattern", []string{"--pattern", "c__"}, "a\n"},
		{"revealed letters count as guessed", []string{"--pattern", "ca_"}, "t\n"},
		{"misses", []string{"-p", "ca_", "-g", "t"}, "r\n"},
		{"nothing fits", []string{"--length", "3", "--guessed", "c"}, "none\n"},
		{"no word that long", []string{"--length", "7"}, "none\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"guess"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	t.Run("pattern length mismatch", func(t *testing.T) {
		_, err := execute(t, "guess", "--length", "4", "--pattern", "c__")
		assert.ErrorIs(t, err, guesser.ErrLength)
	})
}

func TestBenchCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "results.db")
	out, err := execute(t, "bench", "--workers", "2", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "Guesser won for 3 out of 3 (100.0%) words\n", out)

	rdb, err := results.Open(db)
	require.NoError(t, err)
	defer rdb.Close()
	runs, err := rdb.RecentBenchRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 3, runs[0].Wins)
	assert.Equal(t, 2, runs[0].Workers)
	assert.Equal(t, 5, runs[0].MaxWrong)

	out, err = execute(t, "bench", "--limit", "1", "--max-wrong", "1")
	require.NoError(t, err)
	assert.Equal(t, "Guesser won for 1 out of 1 (100.0%) words\n", out)

	_, err = execute(t, "bench", "--length", "9")
	assert.ErrorContains(t, err, "no words of length 9")
}

func TestRootErrors(t *testing.T) {
	_, err := execute(t, "--log-level", "loud", "guess", "--length", "3")
	assert.ErrorContains(t, err, `log level "loud"`)

	_, err = execute(t, "--words", filepath.Join(t.TempDir(), "missing.txt"), "guess", "--length", "3")
	assert.Error(t, err)
}
