// Package server exposes the annotation document and the jump list of one
// relation file over HTTP, for editors that fetch tags instead of reading
// a file written by the command line tool.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"PageLens/config"
	"PageLens/storage_engine/bufferpool"
	diskmanager "PageLens/storage_engine/disk_manager"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	httpAddr string
	engine   *chi.Mux
	cfg      config.Config
	dm       *diskmanager.DiskManager // jump lists only; each walk opens its own
	pool     *bufferpool.BufferPool
	log      *zap.Logger
}

func NewServer(cfg config.Config, dm *diskmanager.DiskManager, pool *bufferpool.BufferPool, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	srv := &Server{
		httpAddr: cfg.ServeAddr,
		engine:   chi.NewRouter(),
		cfg:      cfg,
		dm:       dm,
		pool:     pool,
		log:      log,
	}
	srv.engine.Use(middleware.RequestID)
	srv.engine.Use(requestLogger(log))
	srv.engine.Use(middleware.Recoverer)
	srv.registerRoutes()
	return srv
}

// Handler is the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{Addr: s.httpAddr, Handler: s.engine}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("server running", zap.String("addr", s.httpAddr), zap.String("path", s.cfg.Path))
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.Wrap(err, "serve")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) registerRoutes() {
	s.engine.Get("/health", s.health)
	s.engine.Get("/tags", s.tags)
	s.engine.Get("/jump", s.jump)
	s.engine.Get("/stats", s.stats)
}

// requestLogger logs one line per request through zap.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			started := time.Now()
			next.ServeHTTP(ww, r)
			log.Info("request",
				zap.String("method", r.Method),
				zap.String("uri", r.RequestURI),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.Duration("elapsed", time.Since(started)),
			)
		})
	}
}
