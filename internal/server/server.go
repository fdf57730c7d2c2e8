// Package server exposes drill sessions over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/luiz1745/jogo-de-matematica/internal/drill"
	"github.com/luiz1745/jogo-de-matematica/internal/explain"
	"github.com/luiz1745/jogo-de-matematica/internal/journal"
	"github.com/luiz1745/jogo-de-matematica/internal/session"
	"github.com/luiz1745/jogo-de-matematica/internal/store"
	"github.com/luiz1745/jogo-de-matematica/internal/validate"
)

var (
	// ErrSessionNotFound is returned for unknown or expired session IDs.
	ErrSessionNotFound = errors.New("session not found")

	// ErrTooManySessions is returned when MaxSessions are live.
	ErrTooManySessions = errors.New("too many sessions")
)

// Config wires a Server.
type Config struct {
	// NewGenerator returns the generator for a new session.
	NewGenerator func() *drill.Generator

	// Repo is the answer journal. Nil disables journaling.
	Repo store.EventRepo

	// Explainer serves /explain. Nil or unconfigured answers 503.
	Explainer *explain.Service

	Log *logrus.Entry

	AllowedOrigins []string
	MaxSessions    int

	// IdleTimeout expires sessions not touched for this long. Zero keeps
	// sessions until they are deleted.
	IdleTimeout time.Duration
}

// Server hosts many independent drill sessions in memory.
type Server struct {
	cfg      Config
	log      *logrus.Entry
	validate *validate.Validator
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[string]*liveSession
}

// liveSession serialises access to one controller.
type liveSession struct {
	mu       sync.Mutex
	ctrl     *session.Controller
	rec      *journal.Recorder
	lastMiss *session.Feedback
	lastSeen time.Time
}

// New creates a Server.
func New(cfg Config) *Server {
	if cfg.NewGenerator == nil {
		cfg.NewGenerator = func() *drill.Generator {
			return drill.NewSeededGenerator(uint64(time.Now().UnixNano()))
		}
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = 1000
	}
	log := cfg.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Server{
		cfg:      cfg,
		log:      log,
		validate: validate.New("json"),
		now:      time.Now,
		sessions: make(map[string]*liveSession),
	}
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, s.requestLogger, middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/history", s.handleHistory)
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSession)
				r.Delete("/", s.handleDeleteSession)
				r.Post("/answers", s.handleSubmitAnswer)
				r.Post("/explain", s.handleExplain)
			})
		})
	})

	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
// Idle sessions are reaped in the background.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.cfg.IdleTimeout > 0 {
		go s.reapLoop(ctx)
	}

	errc := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.closeAll(shutdownCtx)
	s.log.Info("server stopped")
	return nil
}

func (s *Server) create(ctx context.Context) (string, *liveSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sessions) >= s.cfg.MaxSessions {
		return "", nil, ErrTooManySessions
	}

	id := uuid.NewString()
	ls := &liveSession{
		ctrl: session.New(s.cfg.NewGenerator(),
			session.WithLogger(s.log.WithField("session_id", id))),
		rec:      journal.NewRecorder(s.cfg.Repo, id, journal.SourceHTTP, s.log),
		lastSeen: s.now(),
	}
	s.sessions[id] = ls
	ls.rec.Start(ctx, ls.ctrl.Snapshot())
	return id, ls, nil
}

func (s *Server) get(id string) (*liveSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ls, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return ls, nil
}

func (s *Server) remove(id string) (*liveSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ls, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	delete(s.sessions, id)
	return ls, nil
}

// Len returns the number of live sessions.
func (s *Server) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Reap ends sessions idle for longer than IdleTimeout and returns how many
// were removed.
func (s *Server) Reap(ctx context.Context) int {
	if s.cfg.IdleTimeout <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.cfg.IdleTimeout)

	s.mu.Lock()
	var expired []*liveSession
	for id, ls := range s.sessions {
		ls.mu.Lock()
		idle := ls.lastSeen.Before(cutoff)
		ls.mu.Unlock()
		if idle {
			expired = append(expired, ls)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, ls := range expired {
		ls.end(ctx)
	}
	if len(expired) > 0 {
		s.log.WithField("count", len(expired)).Info("expired idle sessions")
	}
	return len(expired)
}

func (s *Server) reapLoop(ctx context.Context) {
	interval := s.cfg.IdleTimeout / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Reap(ctx)
		}
	}
}

func (s *Server) closeAll(ctx context.Context) {
	s.mu.Lock()
	all := s.sessions
	s.sessions = make(map[string]*liveSession)
	s.mu.Unlock()

	for _, ls := range all {
		ls.end(ctx)
	}
}

func (ls *liveSession) end(ctx context.Context) *session.Summary {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	sum := ls.ctrl.BuildSummary()
	ls.rec.End(ctx, sum)
	return sum
}
