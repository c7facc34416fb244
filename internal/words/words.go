// internal/words/words.go
//
// Provides dictionaries for the solver.
//
// Responsibilities:
//   - Parse whitespace-delimited word lists (one or many words per line).
//   - Load a list from a file named by WORDS_FILE, or fall back to the embedded default.
//   - Small helpers over a loaded list (length histogram, length filter).
//
// Word lists:
//   - Words are kept exactly as supplied: no case folding, no deduplication.
//   - Lines starting with '#' are comments.
//   - Every call returns a fresh slice owned by the caller; there is no package state.
//
// Environment variables:
//   WORDS_FILE=/path/to/words.txt

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/robalobadob/wordguesser/assets"
)

// ErrEmpty is returned when a list yields no words.
var ErrEmpty = errors.New("words: list is empty")

// Dictionary is an ordered word list. Consumers treat it as read-only.
type Dictionary []string

// Parse reads whitespace-delimited words from r, skipping comment lines.
func Parse(r io.Reader) (Dictionary, error) {
	var out Dictionary
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, strings.Fields(line)...)
	}
	return out, sc.Err()
}

// Load reads a word list file.
func Load(path string) (Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	d, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return d, nil
}

// Default returns a fresh copy of the embedded dictionary.
func Default() Dictionary {
	d, _ := Parse(strings.NewReader(assets.WordList())) // in-memory reads do not fail
	return d
}

// FromEnv loads WORDS_FILE when set, else the embedded list.
// The second return value names the source for logging.
func FromEnv() (Dictionary, string, error) {
	return Resolve(os.Getenv("WORDS_FILE"))
}

// Resolve loads path when non-empty, else the embedded list.
func Resolve(path string) (Dictionary, string, error) {
	var (
		d   Dictionary
		src = "embedded"
		err error
	)
	if path != "" {
		src = path
		if d, err = Load(path); err != nil {
			return nil, src, err
		}
	} else {
		d = Default()
	}
	if len(d) == 0 {
		return nil, src, ErrEmpty
	}
	return d, src, nil
}

// Lengths counts words per rune length.
func (d Dictionary) Lengths() map[int]int {
	m := make(map[int]int)
	for _, w := range d {
		m[utf8.RuneCountInString(w)]++
	}
	return m
}

// OfLength returns the words with exactly n runes, in order.
func (d Dictionary) OfLength(n int) Dictionary {
	out := make(Dictionary, 0, len(d))
	for _, w := range d {
		if utf8.RuneCountInString(w) == n {
			out = append(out, w)
		}
	}
	return out
}
