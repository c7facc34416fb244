package guesser

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var catDict = []string{"cat", "car", "can"}

func TestNew(t *testing.T) {
	dict := []string{"cat", "horse", "cat"}
	g := New(dict, 3)

	assert.Equal(t, []rune{Unknown, Unknown, Unknown}, g.Pattern())
	assert.Empty(t, g.Guessed())
	assert.Equal(t, dict, g.Remaining(), "construction must not filter by length")

	dict[0] = "dog"
	assert.Equal(t, "cat", g.Remaining()[0], "dictionary is copied")

	assert.Equal(t, 0, New(nil, -2).Len())
}

func TestGuessTieBreak(t *testing.T) {
	g := New(catDict, 3)
	g.Eliminate()

	letter, ok := g.Guess()
	require.True(t, ok)
	// c:3 and a:3 tie; the greater letter wins.
	assert.Equal(t, 'c', letter)
	assert.Equal(t, []rune{'c'}, g.Guessed())

	letter, ok = g.Guess()
	require.True(t, ok)
	assert.Equal(t, 'a', letter)

	// t, r and n all count 1.
	letter, ok = g.Guess()
	require.True(t, ok)
	assert.Equal(t, 't', letter)
}

func TestGuessCountsRepeats(t *testing.T) {
	// "aa" contributes 2; counting words instead would tie a with z and pick z.
	g := New([]string{"aa", "z"}, 0)
	letter, ok := g.Guess()
	require.True(t, ok)
	assert.Equal(t, 'a', letter)
}

func TestEliminate(t *testing.T) {
	tests := []struct {
		name    string
		dict    []string
		pattern string
		guessed []rune
		want    []string
	}{
		{
			name:    "known prefix keeps all",
			dict:    catDict,
			pattern: "c__",
			want:    []string{"cat", "car", "can"},
		},
		{
			name:    "guessed letter excluded from unknown slots",
			dict:    catDict,
			pattern: "c__",
			guessed: []rune{'t'},
			want:    []string{"car", "can"},
		},
		{
			name:    "length filter",
			dict:    []string{"cat", "cart", "ca", "dog"},
			pattern: "___",
			want:    []string{"cat", "dog"},
		},
		{
			name:    "known slot mismatch",
			dict:    []string{"cat", "cot", "cut"},
			pattern: "_o_",
			guessed: []rune{'o'},
			want:    []string{"cot"},
		},
		{
			name:    "revealed letter cannot also sit in unknown slot",
			dict:    []string{"eve", "ewe", "eye", "ebb"},
			pattern: "e__",
			guessed: []rune{'e'},
			want:    []string{"ebb"},
		},
		{
			name:    "multibyte runes count as one slot",
			dict:    []string{"café", "cafe", "cafés"},
			pattern: "caf_",
			guessed: []rune{'c', 'a', 'f', 'e'},
			want:    []string{"café"},
		},
		{
			name:    "case sensitive",
			dict:    []string{"Cat", "cat"},
			pattern: "c__",
			want:    []string{"cat"},
		},
		{
			name:    "nothing survives",
			dict:    catDict,
			pattern: "d__",
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tt.dict, len([]rune(tt.pattern)))
			require.NoError(t, g.SetPattern(ParsePattern(tt.pattern)))
			g.guessed = append(g.guessed, tt.guessed...)

			g.Eliminate()
			if diff := cmp.Diff(tt.want, g.Remaining(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("remaining mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGuessNoneAvailable(t *testing.T) {
	t.Run("empty dictionary", func(t *testing.T) {
		g := New(nil, 3)
		g.Eliminate()
		_, ok := g.Guess()
		assert.False(t, ok)
		assert.Empty(t, g.Guessed())
	})

	t.Run("all letters guessed", func(t *testing.T) {
		g := New([]string{"ab"}, 2)
		for range 2 {
			_, ok := g.Guess()
			require.True(t, ok)
		}
		letter, ok := g.Guess()
		assert.False(t, ok)
		assert.Equal(t, Unknown, letter)
		assert.Equal(t, 1, g.RemainingCount())
		assert.Len(t, g.Guessed(), 2)
	})

	t.Run("everything eliminated", func(t *testing.T) {
		g := New(catDict, 4)
		g.Eliminate()
		_, ok := g.Guess()
		assert.False(t, ok)
	})
}

func TestWonAndWrong(t *testing.T) {
	g := New(catDict, 3)
	assert.False(t, g.Won())
	assert.Equal(t, 0, g.Wrong())

	g.guessed = []rune{'c', 'x', 'a', 'z'}
	require.NoError(t, g.Reveal('c', 0))
	assert.Equal(t, 3, g.Wrong(), "a is guessed but not yet revealed")

	require.NoError(t, g.Reveal('a', 1))
	require.NoError(t, g.Reveal('t', 2))
	assert.True(t, g.Won())
	assert.Equal(t, 2, g.Wrong())

	require.NoError(t, g.Hide(2))
	assert.False(t, g.Won())

	assert.True(t, New(nil, 0).Won(), "zero-length pattern has no unknown slot")
}

func TestPatternEdits(t *testing.T) {
	g := New(catDict, 3)

	require.NoError(t, g.Reveal('a', 0, 2))
	assert.Equal(t, "a_a", PatternString(g.Pattern()))

	assert.ErrorIs(t, g.Reveal('b', 3), ErrPosition)
	assert.ErrorIs(t, g.Reveal('b', 1, -1), ErrPosition)
	assert.Equal(t, "a_a", PatternString(g.Pattern()), "failed reveal writes nothing")
	assert.ErrorIs(t, g.Reveal(Unknown, 1), ErrUnknownLetter)
	assert.ErrorIs(t, g.Hide(5), ErrPosition)
	assert.ErrorIs(t, g.SetPattern([]rune{'a'}), ErrLength)

	require.NoError(t, g.Reveal('x'))
	assert.Empty(t, g.Guessed(), "pattern edits never touch the guessed set")
	assert.Len(t, g.Remaining(), 3)
}

func TestMarkGuessed(t *testing.T) {
	g := New(catDict, 3)
	g.MarkGuessed('c', 'c', Unknown, 'z')
	assert.Equal(t, "cz", string(g.Guessed()))
	assert.Equal(t, 2, g.Wrong())

	g.Eliminate()
	assert.Empty(t, g.Remaining(), "every candidate holds an unrevealed c")

	g = New(catDict, 3)
	require.NoError(t, g.SetPattern(ParsePattern("c__")))
	g.MarkGuessed('c')
	g.Eliminate()
	letter, ok := g.Guess()
	require.True(t, ok)
	assert.Equal(t, 'a', letter)
}

func TestClone(t *testing.T) {
	g := New(catDict, 3)
	c := g.Clone()
	c.Eliminate()
	_, _ = c.Guess()
	require.NoError(t, c.Reveal('c', 0))

	assert.Empty(t, g.Guessed())
	assert.Equal(t, "___", PatternString(g.Pattern()))
	assert.Equal(t, "c__", PatternString(c.Pattern()))
}

func TestMask(t *testing.T) {
	assert.Equal(t, "_a_a_a", PatternString(Mask("banana", []rune{'a'})))
	assert.Equal(t, "b_nan_", PatternString(Mask("bonanz", []rune{'b', 'n', 'a'})))
	assert.Equal(t, "___", PatternString(Mask("cat", nil)))
}

// TestPlayProperties plays every word of a small dictionary and checks the
// elimination and selection invariants after each step.
func TestPlayProperties(t *testing.T) {
	dict := []string{
		"cat", "car", "can", "cot", "dog", "dot", "den", "bee", "ebb",
		"tree", "tart", "toad", "rose", "nose", "hose", "a", "at",
	}
	for _, secret := range dict {
		t.Run(secret, func(t *testing.T) {
			g := New(dict, len([]rune(secret)))
			for !g.Won() {
				before := g.Remaining()
				g.Eliminate()
				after := g.Remaining()

				assert.Subset(t, before, after)
				assert.Contains(t, after, secret, "a truthful caller never loses the secret")
				for _, w := range after {
					assert.True(t, g.consistent(w), "kept %q", w)
				}

				g.Eliminate()
				assert.Equal(t, after, g.Remaining(), "eliminate is idempotent")

				peek := g.Clone()
				want, wantOK := peek.Guess()
				guessedBefore := g.Guessed()
				got, ok := g.Guess()
				require.Equal(t, wantOK, ok)
				require.True(t, ok, "secret is a candidate so some letter must remain")
				assert.Equal(t, want, got, "selection is deterministic")
				assert.False(t, slices.Contains(guessedBefore, got))
				assert.Len(t, g.Guessed(), len(guessedBefore)+1)

				require.NoError(t, g.SetPattern(Mask(secret, g.Guessed())))
			}
			assert.Equal(t, secret, string(g.Pattern()))
		})
	}
}

func BenchmarkEliminateGuess(b *testing.B) {
	dict := NewDefault(0).Remaining()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g := New(dict, 5)
		g.Eliminate()
		_, _ = g.Guess()
	}
}
