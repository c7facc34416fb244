package main

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordguesser/internal/guesser"
)

func newGuessCmd(a *app) *cobra.Command {
	var (
		length           int
		pattern, guessed string
	)
	cmd := &cobra.Command{
		Use:   "guess",
		Short: "Print the next letter for a game in progress",
		Example: `  wordguesser guess --length 5
  wordguesser guess --length 3 --pattern c__ --guessed e`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pattern != "" && !cmd.Flags().Changed("length") {
				length = len([]rune(pattern))
			}
			if length < 0 {
				return errors.New("length must not be negative")
			}

			dict, err := a.dictionary()
			if err != nil {
				return err
			}

			g := guesser.New(dict, length)
			if pattern != "" {
				p := guesser.ParsePattern(pattern)
				if err := g.SetPattern(p); err != nil {
					return err
				}
				// Revealed letters were guessed at some point.
				g.MarkGuessed(p...)
			}
			g.MarkGuessed([]rune(guessed)...)

			g.Eliminate()
			letter, ok := g.Guess()
			log.Debug().
				Str("pattern", guesser.PatternString(g.Pattern())).
				Int("remaining", g.RemainingCount()).
				Int("wrong", g.Wrong()).
				Msg("guess")

			out := cmd.OutOrStdout()
			if !ok {
				_, err := fmt.Fprintln(out, "none")
				return err
			}
			_, err = fmt.Fprintln(out, string(letter))
			return err
		},
	}
	cmd.Flags().IntVar(&length, "length", 0, "word length; defaults to the pattern's length")
	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "revealed slots, '_' for unknown (e.g. c__)")
	cmd.Flags().StringVarP(&guessed, "guessed", "g", "", "letters already guessed")
	return cmd
}
