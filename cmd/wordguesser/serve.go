package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordguesser/internal/httpserver"
	"github.com/robalobadob/wordguesser/internal/results"
	"github.com/robalobadob/wordguesser/internal/store"
)

func newServeCmd(a *app) *cobra.Command {
	var addr, dbPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve interactive games over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = ":" + a.cfg.Port
			}
			if dbPath == "" {
				dbPath = a.cfg.DBPath
			}

			dict, err := a.dictionary()
			if err != nil {
				return err
			}

			var db *results.DB
			if dbPath != "" {
				if db, err = results.Open(dbPath); err != nil {
					return err
				}
				defer db.Close()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := httpserver.New(store.NewMemoryStore(), dict, httpserver.Options{
				DB:           db,
				MaxWrong:     a.cfg.MaxWrong,
				ClientOrigin: a.cfg.ClientOrigin,
			})
			log.Info().Str("addr", addr).Int("words", len(dict)).Bool("db", db != nil).Msg("starting wordguesser")
			if err := srv.Run(ctx, addr); err != nil {
				return err
			}
			log.Info().Msg("server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address; default :$PORT")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite file for finished games; default $DB_PATH, empty disables")
	return cmd
}
