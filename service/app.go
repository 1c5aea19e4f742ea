package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"bloghouse/app/repositories"
	"bloghouse/app/routes"
	"bloghouse/app/sessions"

	"go.uber.org/zap"
)

// Server is the blog application bound to its stores.
type Server struct {
	cfg      *Config
	logger   *zap.Logger
	repo     *repositories.Repository
	sessions *sessions.BadgerStore
	http     *http.Server
}

// NewServer opens the stores and builds the router.
func NewServer(cfg *Config, logger *zap.Logger) (*Server, error) {
	repo, err := repositories.NewRepository(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store, err := sessions.OpenBadgerStore(cfg.SessionDir, cfg.SessionTTL, logger)
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	router, err := routes.SetupRoutes(routes.Deps{
		Users:    repo.Users,
		Posts:    repo.Posts,
		Comments: repo.Comments,
		Sessions: sessions.NewManager(store, cfg.SecureCookies),
		Logger:   logger,
	})
	if err != nil {
		store.Close()
		repo.Close()
		return nil, err
	}

	return &Server{
		cfg:      cfg,
		logger:   logger,
		repo:     repo,
		sessions: store,
		http: &http.Server{
			Handler:           router,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			ErrorLog:          zap.NewStdLog(logger),
		},
	}, nil
}

// Serve accepts connections on ln until ctx is cancelled, then drains
// in-flight requests.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("blog service listening", zap.String("addr", ln.Addr().String()))
		errCh <- s.http.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// Close releases the stores.
func (s *Server) Close() error {
	return errors.Join(s.sessions.Close(), s.repo.Close())
}

// RunAppServer starts the blog service and blocks until SIGINT or SIGTERM.
func RunAppServer(cfg *Config) error {
	logger, err := NewLogger(cfg.LogLevel, cfg.Dev)
	if err != nil {
		return err
	}
	defer logger.Sync()

	srv, err := NewServer(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := srv.Close(); err != nil {
			logger.Error("failed to close stores", zap.Error(err))
		}
	}()

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Addr, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	err = srv.Serve(ctx, ln)
	logger.Info("blog service stopped", zap.Duration("uptime", time.Since(start)))
	return err
}
