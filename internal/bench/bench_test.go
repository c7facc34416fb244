package bench

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/robalobadob/wordguesser/internal/words"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var catDict = []string{"cat", "car", "can"}

func TestPlay(t *testing.T) {
	tests := []struct {
		secret   string
		maxWrong int
		want     Outcome
	}{
		// c, a, t
		{"cat", 5, Outcome{Word: "cat", Won: true, Guesses: 3, Wrong: 0}},
		// c, a, t (miss), r
		{"car", 5, Outcome{Word: "car", Won: true, Guesses: 4, Wrong: 1}},
		// c, a, t (miss), r (miss), n
		{"can", 5, Outcome{Word: "can", Won: true, Guesses: 5, Wrong: 2}},
		{"can", 1, Outcome{Word: "can", Won: false, Guesses: 4, Wrong: 2}},
		// Not in the dictionary: nothing of length 4 to guess from.
		{"cart", 5, Outcome{Word: "cart", Won: false, Guesses: 0, Wrong: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.secret, func(t *testing.T) {
			assert.Equal(t, tt.want, Play(catDict, tt.secret, tt.maxWrong))
		})
	}
}

func TestRun(t *testing.T) {
	var calls atomic.Int32
	rep, err := Run(context.Background(), catDict, catDict, Options{
		Workers:       2,
		ProgressEvery: 1,
		Progress: func(p Progress) {
			calls.Add(1)
			assert.Equal(t, 3, p.Total)
			assert.LessOrEqual(t, p.Wins, p.Played)
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, rep.Total)
	assert.Equal(t, 3, rep.Played)
	assert.Equal(t, 3, rep.Wins)
	assert.Equal(t, DefaultMaxWrong, rep.MaxWrong)
	assert.Equal(t, 2, rep.Workers)
	assert.InDelta(t, 100.0, rep.WinRate(), 1e-9)
	assert.Empty(t, rep.Losses)
	assert.EqualValues(t, 3, calls.Load())
}

func TestRunZeroTolerance(t *testing.T) {
	rep, err := Run(context.Background(), catDict, catDict, Options{MaxWrong: -1})
	require.NoError(t, err)
	assert.Equal(t, 0, rep.MaxWrong)
	assert.Equal(t, 1, rep.Wins)
	assert.ElementsMatch(t, []string{"car", "can"}, rep.Losses)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, err := Run(ctx, catDict, catDict, Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, rep.Played)
}

func TestDefaultDictionaryWinRate(t *testing.T) {
	if testing.Short() {
		t.Skip("plays the whole embedded dictionary")
	}
	dict := words.Default()
	rep, err := Run(context.Background(), dict, dict, Options{})
	require.NoError(t, err)
	assert.Equal(t, len(dict), rep.Played)
	// Every secret is in the dictionary, so most games should be won.
	assert.Greater(t, rep.WinRate(), 50.0)
}

func BenchmarkPlay(b *testing.B) {
	dict := words.Default()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Play(dict, dict[i%len(dict)], DefaultMaxWrong)
	}
}
