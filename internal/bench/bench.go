// internal/bench/bench.go
//
// Benchmark harness: plays one simulated game per secret word and reports
// how often the solver wins.
//
// Each game owns its own Guesser, so games share nothing but the read-only
// dictionary and the atomic counters.

package bench

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordguesser/internal/guesser"
)

const (
	DefaultMaxWrong = 5
	maxLosses       = 50 // losses listed in a Report
)

// Outcome is the result of one simulated game.
type Outcome struct {
	Word    string
	Won     bool
	Guesses int
	Wrong   int
}

// Play simulates a truthful human holding secret: after every guess all
// occurrences of guessed letters are revealed. The game is lost when the
// solver has no letter left or makes more than maxWrong wrong guesses.
func Play(dict []string, secret string, maxWrong int) Outcome {
	g := guesser.New(dict, utf8.RuneCountInString(secret))
	out := Outcome{Word: secret}
	for !g.Won() {
		g.Eliminate()
		if _, ok := g.Guess(); !ok {
			break
		}
		// Mask has the secret's length, which is the pattern's length.
		_ = g.SetPattern(guesser.Mask(secret, g.Guessed()))
		if g.Wrong() > maxWrong {
			break
		}
	}
	out.Won = g.Won()
	out.Guesses = len(g.Guessed())
	out.Wrong = g.Wrong()
	return out
}

// Progress is a point-in-time view of a running benchmark.
type Progress struct {
	Played  int
	Wins    int
	Total   int
	Elapsed time.Duration
}

func (p Progress) WinRate() float64 { return rate(p.Wins, p.Played) }

func (p Progress) PerSecond() float64 {
	if p.Elapsed <= 0 {
		return 0
	}
	return float64(p.Played) / p.Elapsed.Seconds()
}

// Options tune Run. Zero values pick defaults.
type Options struct {
	Workers       int // parallel games; default GOMAXPROCS
	MaxWrong      int // default DefaultMaxWrong; negative means zero tolerance
	ProgressEvery int // call Progress every N games; 0 disables
	// Progress is called from worker goroutines and must be safe for concurrent use.
	Progress func(Progress)
}

// Report summarizes a finished (or cancelled) run.
type Report struct {
	Total    int
	Played   int
	Wins     int
	Elapsed  time.Duration
	MaxWrong int
	Workers  int
	Losses   []string // first few lost words, in completion order
}

func (r Report) WinRate() float64 { return rate(r.Wins, r.Played) }

func (r Report) PerSecond() float64 {
	return Progress{Played: r.Played, Elapsed: r.Elapsed}.PerSecond()
}

// Run plays every secret against dict. On cancellation it stops scheduling
// new games and returns the partial report with the context error.
func Run(ctx context.Context, dict, secrets []string, opts Options) (Report, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	maxWrong := opts.MaxWrong
	switch {
	case maxWrong == 0:
		maxWrong = DefaultMaxWrong
	case maxWrong < 0:
		maxWrong = 0
	}

	var (
		played, wins atomic.Int64
		mu           sync.Mutex
		losses       []string
		start        = time.Now()
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for _, secret := range secrets {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			o := Play(dict, secret, maxWrong)
			if o.Won {
				wins.Add(1)
			} else {
				mu.Lock()
				if len(losses) < maxLosses {
					losses = append(losses, o.Word)
				}
				mu.Unlock()
			}
			n := played.Add(1)
			if opts.Progress != nil && opts.ProgressEvery > 0 && n%int64(opts.ProgressEvery) == 0 {
				opts.Progress(Progress{
					Played:  int(n),
					Wins:    int(wins.Load()),
					Total:   len(secrets),
					Elapsed: time.Since(start),
				})
			}
			return nil
		})
	}
	err := eg.Wait()
	if err == nil {
		err = ctx.Err()
	}

	return Report{
		Total:    len(secrets),
		Played:   int(played.Load()),
		Wins:     int(wins.Load()),
		Elapsed:  time.Since(start),
		MaxWrong: maxWrong,
		Workers:  workers,
		Losses:   losses,
	}, err
}

func rate(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return 100 * float64(n) / float64(d)
}
