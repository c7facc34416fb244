// Package tui is the terminal front end: the player thinks of a word, the
// computer guesses letters, and the player marks where each guess occurs.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordguesser/internal/guesser"
	"github.com/robalobadob/wordguesser/internal/session"
	"github.com/robalobadob/wordguesser/internal/words"
)

const maxLength = 64

// stepMsg delivers a background Step for the session with the given id.
type stepMsg struct {
	id   string
	step session.Step
}

// Model is the bubbletea model for one terminal game at a time.
type Model struct {
	dict     words.Dictionary
	maxWrong int
	styles   Styles
	spinner  spinner.Model

	length int
	sess   *session.Session
	view   session.View
	cursor int
	err    error
	width  int
}

// New returns a model in the length-selection screen.
func New(dict words.Dictionary, maxWrong int) Model {
	st := DefaultStyles()
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.Spinner
	return Model{dict: dict, maxWrong: maxWrong, styles: st, spinner: sp}
}

// Run starts the program on the terminal and blocks until it exits.
func Run(dict words.Dictionary, maxWrong int) error {
	_, err := tea.NewProgram(New(dict, maxWrong)).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.thinking() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case stepMsg:
		// Steps from a game that was restarted in the meantime are dropped.
		if m.sess == nil || msg.id != m.sess.ID {
			return m, nil
		}
		if err := m.sess.Apply(msg.step); err != nil {
			m.err = err
			return m, nil
		}
		m.cursor = 0
		m.refresh()
		if m.view.Phase.Done() {
			log.Debug().Str("gameId", m.sess.ID).Str("phase", string(m.view.Phase)).Msg("game finished")
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		switch {
		case m.sess == nil:
			return m.updateSetup(msg)
		case m.view.Phase == session.PhaseAwaitingReveal:
			return m.updateReveal(msg)
		case m.view.Phase.Done():
			if msg.String() == "r" {
				m.sess = nil
				m.view = session.View{}
				m.err = nil
			}
		}
	}
	return m, nil
}

func (m Model) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		if m.length > 0 {
			m.length--
		}
	case "right", "l":
		if m.length < maxLength {
			m.length++
		}
	case "enter":
		m.sess = session.New("", m.dict, m.length, m.maxWrong)
		m.err = nil
		cmd := m.think()
		return m, cmd
	}
	return m, nil
}

func (m Model) updateReveal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	key := msg.String()
	switch key {
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < m.view.Length-1 {
			m.cursor++
		}
	case " ":
		m.toggle(m.cursor)
	case "enter":
		if err := m.sess.Confirm(); err != nil {
			m.err = err
			return m, nil
		}
		m.refresh()
		if m.view.Phase == session.PhaseReady {
			cmd := m.think()
			return m, cmd
		}
	case "esc":
		m.sess.Abandon()
		m.refresh()
	default:
		// 1-9 address the first nine slots, 0 the tenth.
		if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
			pos := int(key[0]-'0') - 1
			if pos < 0 {
				pos = 9
			}
			m.cursor = min(pos, max(m.view.Length-1, 0))
			m.toggle(pos)
		}
	}
	return m, nil
}

func (m *Model) toggle(pos int) {
	if err := m.sess.Toggle(pos); err != nil {
		m.err = err
	}
	m.refresh()
}

// think hands the next Elimination+Selection pair to a background command.
func (m *Model) think() tea.Cmd {
	ch, err := m.sess.Think()
	if err != nil {
		m.err = err
		return nil
	}
	m.refresh()
	id := m.sess.ID
	wait := func() tea.Msg {
		return stepMsg{id: id, step: <-ch}
	}
	return tea.Batch(wait, m.spinner.Tick)
}

func (m *Model) refresh() { m.view = m.sess.View() }

func (m Model) thinking() bool {
	return m.sess != nil && m.view.Phase == session.PhaseThinking
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Word Guesser"))
	b.WriteString("\n")

	switch {
	case m.sess == nil:
		b.WriteString("To start the game, set the length of your word.\n\n")
		fmt.Fprintf(&b, "  <  %d  >\n", m.length)
		b.WriteString(m.styles.Help.Render("←/→ adjust • enter go • q quit"))

	case m.thinking():
		fmt.Fprintf(&b, "%s Working...\n", m.spinner.View())

	case m.view.Phase == session.PhaseAwaitingReveal:
		fmt.Fprintf(&b, "The computer guesses %s!\n", m.styles.Current.Render(m.view.Guess))
		b.WriteString(m.styles.Status.Render(fmt.Sprintf(
			"The computer has %d guesses left, and is considering %s.",
			m.view.GuessesLeft, m.view.Considering())))
		b.WriteString("\nMark the letters it got correct!\n\n")
		b.WriteString(m.renderSlots())
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("←/→ move • space or 1-9 toggle • enter next guess • esc give up • q quit"))

	default:
		// Outcomes are coloured from the player's side.
		style := m.styles.Win
		switch m.view.Phase {
		case session.PhaseWon:
			style = m.styles.Loss
		case session.PhaseAbandoned:
			style = m.styles.Status
		}
		b.WriteString(style.Render(m.view.Message))
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("r restart • q quit"))
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(describe(m.err)))
	}
	return b.String() + "\n"
}

func (m Model) renderSlots() string {
	slots := make([]string, 0, m.view.Length)
	for i, r := range []rune(m.view.Pattern) {
		st := m.styles.Slot
		switch {
		case i == m.cursor:
			st = m.styles.Cursor
		case string(r) == m.view.Guess:
			st = m.styles.Current
		}
		slots = append(slots, st.Render(string(r)))
	}
	return strings.Join(slots, "")
}

func describe(err error) string {
	switch {
	case errors.Is(err, session.ErrLocked):
		return "That slot already holds an earlier letter."
	case errors.Is(err, guesser.ErrPosition):
		return "No such slot."
	}
	return err.Error()
}
