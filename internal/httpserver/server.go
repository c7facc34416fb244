// internal/httpserver/server.go
//
// HTTP server wiring for interactive play.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints: create a session, compute the next guess, toggle slots,
//     confirm a reveal, abandon, read the current view.
//   - Best-effort persistence of finished games and a stats endpoint.
//
// Notes:
//   - The computer guesses; the client plays the human who knows the word.
//   - Each request holds the session's store lock for its whole operation, so a
//     session only ever sees one writer.
//   - CORS is origin-aware and credentials-enabled.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordguesser/internal/guesser"
	"github.com/robalobadob/wordguesser/internal/results"
	"github.com/robalobadob/wordguesser/internal/session"
	"github.com/robalobadob/wordguesser/internal/store"
	"github.com/robalobadob/wordguesser/internal/words"
)

// maxLength bounds the word length a client may ask for.
const maxLength = 64

// Options configure a Server. DB may be nil to disable persistence.
type Options struct {
	DB           *results.DB
	MaxWrong     int
	ClientOrigin string
	Timeout      time.Duration // per-request bound; default 10s
}

// Server bundles router, session store, dictionary and results DB.
type Server struct {
	r        *chi.Mux
	store    store.Store
	dict     words.Dictionary
	db       *results.DB
	maxWrong int
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, dict words.Dictionary, opts Options) *Server {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{r: chi.NewRouter(), store: st, dict: dict, db: opts.DB, maxWrong: opts.MaxWrong}

	// --- middleware ---
	s.r.Use(chimw.RequestID)             // add X-Request-ID
	s.r.Use(chimw.RealIP)                // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)             // recover from panics
	s.r.Use(chimw.Timeout(opts.Timeout)) // bound handler time
	s.r.Use(jsonContentType)             // default JSON responses
	s.r.Use(corsFor(opts.ClientOrigin))  // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordguesser","endpoints":["/health","POST /game/new","POST /game/{id}/next","POST /game/{id}/toggle","POST /game/{id}/confirm","GET /game/{id}","DELETE /game/{id}","/stats"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"count":   len(s.dict),
			"lengths": s.dict.Lengths(),
			"games":   s.store.Len(),
		})
	})

	// --- game ---
	s.r.Post("/game/new", s.handleNewGame)
	s.r.Route("/game/{id}", func(r chi.Router) {
		r.Get("/", s.handleGetGame)
		r.Delete("/", s.handleDeleteGame)
		r.Post("/next", s.handleNext)
		r.Post("/toggle", s.handleToggle)
		r.Post("/confirm", s.handleConfirm)
		r.Post("/abandon", s.handleAbandon)
	})

	s.r.Get("/stats", s.handleStats)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFor enables credentialed CORS for a single origin.
func corsFor(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ GAME ---------------------------------------

type newGameReq struct {
	Length   int `json:"length"`
	MaxWrong int `json:"maxWrong"` // optional; server default when 0
}
type newGameRes struct {
	GameID string       `json:"gameId"`
	View   session.View `json:"view"`
}

// handleNewGame creates an in-memory session for a word of the requested length.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.Length < 1 || req.Length > maxLength {
		writeError(w, http.StatusBadRequest, "length must be 1-64")
		return
	}
	maxWrong := req.MaxWrong
	if maxWrong <= 0 {
		maxWrong = s.maxWrong
	}

	sess := session.New("", s.dict, req.Length, maxWrong)
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	log.Debug().Str("gameId", sess.ID).Int("length", req.Length).Msg("new game")
	_ = json.NewEncoder(w).Encode(newGameRes{GameID: sess.ID, View: sess.View()})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	v, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// handleDeleteGame drops a session. Unknown IDs are not an error.
func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleNext runs one Elimination+Selection pair and returns the new view.
func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(sess *session.Session) error {
		return sess.Next(r.Context())
	})
}

type toggleReq struct {
	Position *int `json:"position"`
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	var req toggleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Position == nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.mutate(w, r, func(sess *session.Session) error {
		return sess.Toggle(*req.Position)
	})
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(sess *session.Session) error { return sess.Confirm() })
}

func (s *Server) handleAbandon(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(sess *session.Session) error {
		sess.Abandon()
		return nil
	})
}

// mutate applies op under the session lock, records finished games, and
// writes the resulting view.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, op func(*session.Session) error) {
	var v session.View
	err := s.store.Update(r.Context(), chi.URLParam(r, "id"), func(sess *session.Session) error {
		wasDone := sess.Phase().Done()
		if err := op(sess); err != nil {
			return err
		}
		if !wasDone && sess.Phase().Done() {
			s.record(r.Context(), sess)
		}
		v = sess.View()
		return nil
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// record persists a finished game (best effort, non-fatal if it fails).
func (s *Server) record(ctx context.Context, sess *session.Session) {
	v := sess.View()
	log.Info().Str("gameId", sess.ID).Str("phase", string(v.Phase)).
		Str("pattern", v.Pattern).Int("wrong", v.Wrong).Msg("game finished")
	if s.db == nil {
		return
	}
	err := s.db.InsertGame(ctx, results.GameRecord{
		ID:         sess.ID,
		Length:     v.Length,
		Pattern:    v.Pattern,
		Guessed:    v.Guessed,
		Wrong:      v.Wrong,
		Status:     string(v.Phase),
		StartedAt:  sess.StartedAt,
		FinishedAt: sess.FinishedAt,
	})
	if err != nil {
		log.Warn().Err(err).Str("gameId", sess.ID).Msg("insert game row")
	}
}

// ------------------------------ STATS --------------------------------------

type statsRes struct {
	Live      int                `json:"live"`
	Games     results.GameStats  `json:"games"`
	BenchRuns []results.BenchRun `json:"benchRuns"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	res := statsRes{Live: s.store.Len(), Games: results.GameStats{ByStatus: map[string]int{}}, BenchRuns: []results.BenchRun{}}
	if s.db != nil {
		var err error
		if res.Games, err = s.db.GameStats(r.Context()); err != nil {
			log.Error().Err(err).Msg("game stats")
			writeError(w, http.StatusInternalServerError, "db_error")
			return
		}
		if res.BenchRuns, err = s.db.RecentBenchRuns(r.Context(), 10); err != nil {
			log.Error().Err(err).Msg("bench runs")
			writeError(w, http.StatusInternalServerError, "db_error")
			return
		}
	}
	_ = json.NewEncoder(w).Encode(res)
}

// ------------------------------- errors ------------------------------------

// fail maps domain errors to HTTP statuses.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, session.ErrPhase), errors.Is(err, session.ErrLocked):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, guesser.ErrPosition):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "timeout")
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
