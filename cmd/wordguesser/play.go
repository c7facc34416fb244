package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordguesser/internal/tui"
)

func newPlayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Think of a word and let the computer guess it in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dict, err := a.dictionary()
			if err != nil {
				return err
			}
			// The UI owns the terminal; log lines would tear the screen.
			zerolog.SetGlobalLevel(zerolog.Disabled)
			return tui.Run(dict, a.cfg.MaxWrong)
		},
	}
}
