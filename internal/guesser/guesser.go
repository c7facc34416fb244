// internal/guesser/guesser.go
//
// Candidate elimination and letter selection for a single hangman game.
// Responsibilities:
//   - Build solver state from a dictionary and a target length.
//   - Prune candidates against the revealed pattern and guessed letters.
//   - Pick the next letter by total occurrence count over the candidates.
//   - Report win and wrong-guess counts for the caller's stopping policy.
//
// Notes:
//   - Lengths and positions are counted in runes, never bytes.
//   - Every guessed letter is treated as absent from all unrevealed slots, so the
//     caller must reveal every occurrence of a correct letter before the next
//     Eliminate. Reveal takes all positions at once for that reason.

package guesser

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/robalobadob/wordguesser/internal/words"
)

// New constructs solver state for a word of the given length.
// The dictionary is copied and not filtered; length filtering happens in Eliminate.
func New(dict []string, length int) *Guesser {
	if length < 0 {
		length = 0
	}
	return &Guesser{
		remaining: slices.Clone(dict),
		guessed:   []rune{},
		pattern:   make([]rune, length),
	}
}

// NewDefault constructs solver state over the embedded default dictionary.
func NewDefault(length int) *Guesser {
	return New(words.Default(), length)
}

// Eliminate drops every remaining candidate that contradicts the pattern or
// places a guessed letter in an unrevealed slot. It only ever shrinks the set.
func (g *Guesser) Eliminate() {
	g.remaining = slices.DeleteFunc(g.remaining, func(w string) bool {
		return !g.consistent(w)
	})
}

// consistent reports whether w could still be the secret word.
func (g *Guesser) consistent(w string) bool {
	if utf8.RuneCountInString(w) != len(g.pattern) {
		return false
	}
	i := 0
	for _, c := range w {
		switch slot := g.pattern[i]; {
		case slot == Unknown:
			if slices.Contains(g.guessed, c) {
				return false
			}
		case slot != c:
			return false
		}
		i++
	}
	return true
}

// Guess picks the letter with the most occurrences across remaining candidates,
// skipping letters already guessed. Ties go to the greatest letter.
// The chosen letter is recorded as guessed. ok is false when no candidate
// holds an unguessed letter, including when no candidates remain.
func (g *Guesser) Guess() (letter rune, ok bool) {
	counts := make(map[rune]int)
	for _, w := range g.remaining {
		for _, c := range w {
			counts[c]++
		}
	}

	best := 0
	for c, n := range counts {
		if slices.Contains(g.guessed, c) {
			continue
		}
		if n > best || (n == best && c > letter) {
			letter, best = c, n
		}
	}
	if best == 0 {
		return Unknown, false
	}
	g.guessed = append(g.guessed, letter)
	return letter, true
}

// Won reports whether every slot has been revealed.
func (g *Guesser) Won() bool {
	return !slices.Contains(g.pattern, Unknown)
}

// Wrong counts guessed letters that appear nowhere in the revealed pattern.
func (g *Guesser) Wrong() int {
	n := 0
	for _, c := range g.guessed {
		if !slices.Contains(g.pattern, c) {
			n++
		}
	}
	return n
}

// Reveal writes letter into each of the given positions.
// Pass every occurrence of a correct letter in one call; passing no positions
// records nothing and is how a caller confirms a miss.
func (g *Guesser) Reveal(letter rune, positions ...int) error {
	if letter == Unknown {
		return ErrUnknownLetter
	}
	for _, p := range positions {
		if p < 0 || p >= len(g.pattern) {
			return fmt.Errorf("reveal %d: %w", p, ErrPosition)
		}
	}
	for _, p := range positions {
		g.pattern[p] = letter
	}
	return nil
}

// Hide clears a revealed slot.
func (g *Guesser) Hide(position int) error {
	if position < 0 || position >= len(g.pattern) {
		return fmt.Errorf("hide %d: %w", position, ErrPosition)
	}
	g.pattern[position] = Unknown
	return nil
}

// SetPattern replaces the whole pattern. The length is fixed for the lifetime
// of the Guesser.
func (g *Guesser) SetPattern(p []rune) error {
	if len(p) != len(g.pattern) {
		return fmt.Errorf("set pattern: got %d slots, want %d: %w", len(p), len(g.pattern), ErrLength)
	}
	copy(g.pattern, p)
	return nil
}

// MarkGuessed records letters as already guessed without going through Guess.
// Duplicates and Unknown are skipped.
func (g *Guesser) MarkGuessed(letters ...rune) {
	for _, c := range letters {
		if c != Unknown && !slices.Contains(g.guessed, c) {
			g.guessed = append(g.guessed, c)
		}
	}
}

// Clone returns a deep copy, safe to hand to another goroutine.
func (g *Guesser) Clone() *Guesser {
	return &Guesser{
		remaining: slices.Clone(g.remaining),
		guessed:   slices.Clone(g.guessed),
		pattern:   slices.Clone(g.pattern),
	}
}

func (g *Guesser) Pattern() []rune     { return slices.Clone(g.pattern) }
func (g *Guesser) Guessed() []rune     { return slices.Clone(g.guessed) }
func (g *Guesser) Remaining() []string { return slices.Clone(g.remaining) }
func (g *Guesser) RemainingCount() int { return len(g.remaining) }
func (g *Guesser) Len() int            { return len(g.pattern) }

// Mask returns the pattern a truthful caller shows for secret once the given
// letters have been guessed: every occurrence of a guessed letter is revealed.
func Mask(secret string, guessed []rune) []rune {
	out := make([]rune, 0, utf8.RuneCountInString(secret))
	for _, c := range secret {
		if slices.Contains(guessed, c) {
			out = append(out, c)
		} else {
			out = append(out, Unknown)
		}
	}
	return out
}

// PatternString renders a pattern with '_' for unknown slots.
func PatternString(p []rune) string {
	b := make([]rune, len(p))
	for i, c := range p {
		if c == Unknown {
			b[i] = '_'
		} else {
			b[i] = c
		}
	}
	return string(b)
}

// ParsePattern reads a pattern written with '_' for unknown slots.
func ParsePattern(s string) []rune {
	p := []rune(s)
	for i, c := range p {
		if c == '_' {
			p[i] = Unknown
		}
	}
	return p
}
