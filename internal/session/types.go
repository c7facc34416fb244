// internal/session/types.go
//
// Types for an interactive game where the computer guesses and a human
// reveals letters.
// Defines:
//   - Phase: where the game is in its guess/reveal cycle.
//   - Step: the result of one background Elimination+Selection pair.
//   - View: a render-ready snapshot for front ends.

package session

import (
	"errors"

	"github.com/robalobadob/wordguesser/internal/guesser"
)

// DefaultMaxWrong is the number of wrong guesses tolerated; one more loses.
const DefaultMaxWrong = 5

// Phase is the coarse state of a session.
type Phase string

const (
	PhaseReady          Phase = "ready"           // waiting for the next guess to be computed
	PhaseThinking       Phase = "thinking"        // a Step is being computed in the background
	PhaseAwaitingReveal Phase = "awaiting_reveal" // the human marks where the guess occurs
	PhaseWon            Phase = "won"             // the computer completed the word
	PhaseLost           Phase = "lost"            // the computer used up its wrong guesses
	PhaseStuck          Phase = "stuck"           // no letter left to try; the human wins
	PhaseAbandoned      Phase = "abandoned"
)

// Done reports whether p is terminal.
func (p Phase) Done() bool {
	switch p {
	case PhaseWon, PhaseLost, PhaseStuck, PhaseAbandoned:
		return true
	}
	return false
}

var (
	ErrPhase  = errors.New("session: operation not allowed in current phase")
	ErrLocked = errors.New("session: slot holds an earlier letter")
)

// Step carries a solver snapshot back from the background computation.
// Snapshot is owned by the receiver once delivered.
type Step struct {
	Snapshot *guesser.Guesser
	Letter   rune
	OK       bool
}

// View is what a front end needs to draw the game.
type View struct {
	ID          string   `json:"id"`
	Phase       Phase    `json:"phase"`
	Length      int      `json:"length"`
	Pattern     string   `json:"pattern"`
	Guess       string   `json:"guess,omitempty"`
	Guessed     string   `json:"guessed"`
	Wrong       int      `json:"wrong"`
	GuessesLeft int      `json:"guessesLeft"`
	Remaining   int      `json:"remaining"`
	Candidates  []string `json:"candidates,omitempty"` // listed only when fewer than 5 remain
	Message     string   `json:"message"`
}
