package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/plus3/boxpush/internal/config"
	"github.com/plus3/boxpush/internal/game"
	"github.com/plus3/boxpush/internal/level"
	"github.com/plus3/boxpush/internal/platform"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on.
	Address string

	// HostKeyPath is the host key file, generated on first start if missing.
	HostKeyPath string

	IdleTimeout time.Duration

	// Pack is the set of levels sessions may pick with `ssh host <level>`.
	Pack *level.Pack
	// DefaultLevel is played when the session names no level.
	DefaultLevel string

	Game   game.Options
	Glyphs map[string]config.GlyphConfig
	Saver  platform.SolveSaver
	Logger *log.Logger
}

// SSHServer serves one game per SSH session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	logger *log.Logger
}

// NewSSHServer creates a server. Sessions never play sound.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.Pack == nil || len(cfg.Pack.Levels) == 0 {
		return nil, errors.New("tui: ssh server needs at least one level")
	}
	if cfg.DefaultLevel == "" {
		cfg.DefaultLevel = cfg.Pack.Levels[0].Name
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 30 * time.Minute
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	cfg.Game.Audio = game.NopAudio{}

	if dir := filepath.Dir(cfg.HostKeyPath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("tui: create host key directory: %w", err)
		}
	}

	srv := &SSHServer{config: cfg, logger: cfg.Logger}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: create ssh server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// sessionModel builds the model for a session that asked for ref.
func (s *SSHServer) sessionModel(ref, user string) (Model, error) {
	if ref == "" {
		ref = s.config.DefaultLevel
	}

	lvl, err := s.config.Pack.Find(ref)
	if err != nil {
		return Model{}, err
	}
	m, err := lvl.Parsed()
	if err != nil {
		return Model{}, err
	}

	opts := s.config.Game
	opts.Logger = s.logger.With("user", user, "level", lvl.Name)
	g := game.NewGame(m, opts)

	return NewModel(g, ModelOptions{
		Level:      lvl.Name,
		TickRate:   opts.TickRate,
		TileWidth:  opts.TileWidth,
		TileHeight: opts.TileHeight,
		Glyphs:     s.config.Glyphs,
		Recorder:   platform.NewSolveRecorder(s.config.Saver, lvl.Name, opts.Logger),
	}), nil
}

func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	if _, _, ok := sess.Pty(); !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		wish.Fatalln(sess, "boxpush needs a terminal, connect with ssh -t")
		return nil, nil
	}

	var ref string
	if cmd := sess.Command(); len(cmd) > 0 {
		ref = cmd[0]
	}

	model, err := s.sessionModel(ref, sess.User())
	if err != nil {
		s.logger.Warn("could not start level", "user", sess.User(), "level", ref, "err", err)
		wish.Fatalln(sess, err)
		return nil, nil
	}

	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.logger.Info("session started", "user", sess.User(), "remote", sess.RemoteAddr().String())
		next(sess)
		s.logger.Info("session ended", "user", sess.User(), "remote", sess.RemoteAddr().String())
	}
}

// ListenAndServe starts the server and blocks until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("tui: serve: %w", err)
	case <-done:
	}

	s.logger.Info("shutting down")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
