// Command wordguesser runs the hangman solver: as an HTTP service, in the
// terminal, as a one-shot guess, or as a benchmark over the dictionary.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordguesser/internal/config"
	"github.com/robalobadob/wordguesser/internal/words"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries what every subcommand shares once the root has run.
type app struct {
	cfg       config.Config
	logLevel  string
	wordsFile string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "wordguesser",
		Short: "Letter-guessing solver for hangman",
		Long: `wordguesser guesses the letters of a word you are thinking of.

It keeps every dictionary word that still fits what you have revealed and
guesses the letter that occurs most often across them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.cfg = config.Load()
			if a.logLevel == "" {
				a.logLevel = a.cfg.LogLevel
			}
			if a.wordsFile == "" {
				a.wordsFile = a.cfg.WordsFile
			}
			return setupLogging(a.logLevel, cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error); default $LOG_LEVEL or info")
	root.PersistentFlags().StringVar(&a.wordsFile, "words", "", "dictionary file; default $WORDS_FILE or the embedded list")

	root.AddCommand(
		newServeCmd(a),
		newBenchCmd(a),
		newPlayCmd(a),
		newGuessCmd(a),
	)
	return root
}

// setupLogging points the global zerolog logger at w, human-readable on a terminal.
func setupLogging(level string, w io.Writer) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)

	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen})
	} else {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	}
	return nil
}

// dictionary loads the configured word list.
func (a *app) dictionary() (words.Dictionary, error) {
	dict, src, err := words.Resolve(a.wordsFile)
	if err != nil {
		return nil, fmt.Errorf("load words from %s: %w", src, err)
	}
	log.Debug().Str("source", src).Int("words", len(dict)).Msg("dictionary loaded")
	return dict, nil
}
