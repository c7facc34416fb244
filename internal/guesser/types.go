// internal/guesser/types.go
//
// Core type definitions for the letter solver.
// Defines:
//   - Unknown: the slot value for an unrevealed position.
//   - Guesser: per-game solver state (pattern, guessed letters, candidates).
//   - Sentinel errors for caller-side pattern edits.

package guesser

import "errors"

// Unknown marks a pattern slot whose letter has not been revealed.
const Unknown rune = 0

var (
	ErrPosition      = errors.New("guesser: position out of range")
	ErrUnknownLetter = errors.New("guesser: cannot reveal the unknown letter")
	ErrLength        = errors.New("guesser: pattern length mismatch")
)

// Guesser holds the state of one game from the solver's side.
//
// The pattern is edited by the caller (Reveal, Hide, SetPattern). The guessed
// set only grows through Guess, and remaining only shrinks through Eliminate.
// A Guesser is not safe for concurrent use.
type Guesser struct {
	remaining []string // candidates consistent with pattern+guessed as of the last Eliminate
	guessed   []rune   // letters proposed so far, in order, no duplicates
	pattern   []rune   // one slot per position; Unknown when unrevealed
}
