package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordguesser/internal/bench"
	"github.com/robalobadob/wordguesser/internal/results"
)

func newBenchCmd(a *app) *cobra.Command {
	var (
		workers, maxWrong int
		length, limit     int
		dbPath            string
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Play every dictionary word against the solver and report the win rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.BenchWorkers
			}
			if !cmd.Flags().Changed("max-wrong") {
				maxWrong = a.cfg.MaxWrong
			}
			if dbPath == "" {
				dbPath = a.cfg.DBPath
			}

			dict, err := a.dictionary()
			if err != nil {
				return err
			}
			secrets := dict
			if length > 0 {
				secrets = dict.OfLength(length)
			}
			if limit > 0 && limit < len(secrets) {
				secrets = secrets[:limit]
			}
			if len(secrets) == 0 {
				return fmt.Errorf("no words of length %d", length)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			log.Info().Int("games", len(secrets)).Int("workers", workers).Msg("starting to guess")
			rep, err := bench.Run(ctx, dict, secrets, bench.Options{
				Workers:       workers,
				MaxWrong:      maxWrong,
				ProgressEvery: max(len(secrets)/20, 1),
				Progress: func(p bench.Progress) {
					log.Info().
						Int("played", p.Played).
						Int("total", p.Total).
						Str("winRate", fmt.Sprintf("%.1f%%", p.WinRate())).
						Str("rate", fmt.Sprintf("%.1f/s", p.PerSecond())).
						Msg("working")
				},
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Guesser won for %d out of %d (%.1f%%) words\n", rep.Wins, rep.Played, rep.WinRate())
			if len(rep.Losses) > 0 {
				log.Debug().Strs("losses", rep.Losses).Msg("lost words")
			}
			if err != nil {
				log.Warn().Int("played", rep.Played).Int("total", rep.Total).Msg("benchmark interrupted")
				return nil
			}

			if dbPath == "" {
				return nil
			}
			db, err := results.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			src := a.wordsFile
			if src == "" {
				src = "embedded"
			}
			run := results.BenchRun{
				ID:        uuid.NewString(),
				Source:    src,
				Total:     rep.Played,
				Wins:      rep.Wins,
				MaxWrong:  rep.MaxWrong,
				Workers:   rep.Workers,
				ElapsedMs: rep.Elapsed.Milliseconds(),
			}
			if err := db.InsertBenchRun(context.Background(), run); err != nil {
				return fmt.Errorf("store bench run: %w", err)
			}
			log.Info().Str("id", run.ID).Str("db", dbPath).Msg("bench run stored")
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel games; default $BENCH_WORKERS or GOMAXPROCS")
	cmd.Flags().IntVar(&maxWrong, "max-wrong", bench.DefaultMaxWrong, "wrong guesses tolerated; default $MAX_WRONG")
	cmd.Flags().IntVar(&length, "length", 0, "only play words of this length")
	cmd.Flags().IntVar(&limit, "limit", 0, "play at most this many words")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite file to record the run in; default $DB_PATH")
	return cmd
}
