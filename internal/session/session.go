// internal/session/session.go
//
// Interactive game driver around a Guesser.
// Responsibilities:
//   - Run each Elimination+Selection pair on a goroutine over a private clone.
//   - Hand the updated clone back over a channel; the caller installs it with Apply.
//   - Let the human toggle slots for the current guess, then confirm.
//   - Apply the stopping policy (MaxWrong) and decide the outcome.
//
// Notes:
//   - A Session is not safe for concurrent use. The store serializes callers.
//   - The foreground copy is never touched while a Step is in flight, so there is
//     no shared mutable state between the two goroutines.

package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordguesser/internal/guesser"
)

// Session is one game from the interactive driver's side.
type Session struct {
	ID         string
	MaxWrong   int
	StartedAt  time.Time
	FinishedAt time.Time

	g       *guesser.Guesser
	phase   Phase
	current rune
}

// New starts a session over dict for a word of the given length.
// An empty id gets a random one; maxWrong <= 0 means DefaultMaxWrong.
func New(id string, dict []string, length, maxWrong int) *Session {
	if id == "" {
		id = uuid.NewString()
	}
	if maxWrong <= 0 {
		maxWrong = DefaultMaxWrong
	}
	return &Session{
		ID:        id,
		MaxWrong:  maxWrong,
		StartedAt: time.Now().UTC(),
		g:         guesser.New(dict, length),
		phase:     PhaseReady,
	}
}

func (s *Session) Phase() Phase { return s.phase }

// Current returns the letter awaiting reveal, or guesser.Unknown.
func (s *Session) Current() rune { return s.current }

// Guesser returns a copy of the solver state.
func (s *Session) Guesser() *guesser.Guesser { return s.g.Clone() }

// Think starts computing the next guess in the background.
// The returned channel yields exactly one Step and is then closed.
func (s *Session) Think() (<-chan Step, error) {
	if s.phase != PhaseReady {
		return nil, fmt.Errorf("think in %s: %w", s.phase, ErrPhase)
	}
	s.phase = PhaseThinking

	snapshot := s.g.Clone()
	ch := make(chan Step, 1)
	go func() {
		defer close(ch)
		snapshot.Eliminate()
		letter, ok := snapshot.Guess()
		ch <- Step{Snapshot: snapshot, Letter: letter, OK: ok}
	}()
	return ch, nil
}

// Apply installs a Step produced by Think.
func (s *Session) Apply(st Step) error {
	if s.phase != PhaseThinking {
		return fmt.Errorf("apply in %s: %w", s.phase, ErrPhase)
	}
	s.g = st.Snapshot
	if !st.OK {
		s.current = guesser.Unknown
		if s.g.Won() {
			s.finish(PhaseWon)
		} else {
			s.finish(PhaseStuck)
		}
		return nil
	}
	s.current = st.Letter
	s.phase = PhaseAwaitingReveal
	return nil
}

// Next runs Think and waits for its Step. If ctx ends first the in-flight
// Step is discarded and the session returns to PhaseReady.
func (s *Session) Next(ctx context.Context) error {
	ch, err := s.Think()
	if err != nil {
		return err
	}
	select {
	case st := <-ch:
		return s.Apply(st)
	case <-ctx.Done():
		s.phase = PhaseReady
		return ctx.Err()
	}
}

// Toggle flips a slot between unknown and the current guess.
func (s *Session) Toggle(position int) error {
	if s.phase != PhaseAwaitingReveal {
		return fmt.Errorf("toggle in %s: %w", s.phase, ErrPhase)
	}
	p := s.g.Pattern()
	if position < 0 || position >= len(p) {
		return fmt.Errorf("toggle %d: %w", position, guesser.ErrPosition)
	}
	switch p[position] {
	case guesser.Unknown:
		return s.g.Reveal(s.current, position)
	case s.current:
		return s.g.Hide(position)
	default:
		return fmt.Errorf("toggle %d: %w", position, ErrLocked)
	}
}

// Confirm ends the reveal for the current guess. Every occurrence of the
// letter must be marked by now; the solver treats unmarked slots as not
// holding it.
func (s *Session) Confirm() error {
	if s.phase != PhaseAwaitingReveal {
		return fmt.Errorf("confirm in %s: %w", s.phase, ErrPhase)
	}
	s.current = guesser.Unknown
	switch {
	case s.g.Won():
		s.finish(PhaseWon)
	case s.g.Wrong() > s.MaxWrong:
		s.finish(PhaseLost)
	default:
		s.phase = PhaseReady
	}
	return nil
}

// Abandon stops the game without an outcome.
func (s *Session) Abandon() {
	if !s.phase.Done() {
		s.finish(PhaseAbandoned)
	}
}

func (s *Session) finish(p Phase) {
	s.phase = p
	s.FinishedAt = time.Now().UTC()
}

// View renders the session for a front end.
func (s *Session) View() View {
	wrong := s.g.Wrong()
	v := View{
		ID:          s.ID,
		Phase:       s.phase,
		Length:      s.g.Len(),
		Pattern:     guesser.PatternString(s.g.Pattern()),
		Guessed:     string(s.g.Guessed()),
		Wrong:       wrong,
		GuessesLeft: max(s.MaxWrong-wrong, 0),
		Remaining:   s.g.RemainingCount(),
	}
	if s.current != guesser.Unknown {
		v.Guess = string(s.current)
	}
	if v.Remaining < 5 {
		v.Candidates = s.g.Remaining()
	}
	v.Message = s.message(v)
	return v
}

func (s *Session) message(v View) string {
	switch s.phase {
	case PhaseReady:
		return "Ready for the next guess."
	case PhaseThinking:
		return "Working..."
	case PhaseAwaitingReveal:
		return fmt.Sprintf("The computer guesses %s! Mark the letters it got correct.", v.Guess)
	case PhaseWon:
		return fmt.Sprintf("The computer wins! Your word was %s.", v.Pattern)
	case PhaseLost:
		return "The computer ran out of guesses!"
	case PhaseStuck:
		return "You win!!!"
	case PhaseAbandoned:
		return "Game abandoned."
	}
	return ""
}

// Considering describes the candidate set the way the status line shows it.
func (v View) Considering() string {
	switch {
	case v.Remaining == 0:
		return "no words"
	case len(v.Candidates) > 0:
		return strings.Join(v.Candidates, ", ")
	}
	return fmt.Sprintf("%d words", v.Remaining)
}
