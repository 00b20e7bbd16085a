// Package ssh serves the tab viewer over SSH with Wish.
package ssh

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"tabkit/internal/config"
	"tabkit/internal/dom"
	"tabkit/internal/logger"
	"tabkit/internal/tabs"
	"tabkit/internal/tui"
	"tabkit/internal/tui/themes"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	gossh "golang.org/x/crypto/ssh"
)

// Server is the SSH server for remote viewer sessions. Every session
// parses its own copy of the document, so sessions never share tab state.
type Server struct {
	cfg    config.SSHConfig
	viewer config.ViewerConfig
	source []byte
	title  string

	selectors  tabs.Selectors
	theme      *themes.Theme
	log        *logger.Logger
	authorized []gossh.PublicKey

	server   *ssh.Server
	listener net.Listener
}

// ServerOption configures the SSH server.
type ServerOption func(*Server)

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) ServerOption {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithSelectors sets the markers tab groups are discovered by.
func WithSelectors(sel tabs.Selectors) ServerOption {
	return func(s *Server) {
		s.selectors = sel
	}
}

// WithViewer sets the viewer options used for every session.
func WithViewer(v config.ViewerConfig) ServerOption {
	return func(s *Server) {
		s.viewer = v
	}
}

// WithTheme sets the theme sessions start with.
func WithTheme(t *themes.Theme) ServerOption {
	return func(s *Server) {
		s.theme = t
	}
}

// WithTitle sets the heading sessions show.
func WithTitle(title string) ServerOption {
	return func(s *Server) {
		s.title = title
	}
}

// NewServer creates a server for the given HTML source. The source is
// parsed once up front so a malformed selector or file fails here rather
// than in the first session.
func NewServer(cfg config.SSHConfig, source []byte, opts ...ServerOption) (*Server, error) {
	s := &Server{
		cfg:       cfg,
		source:    source,
		selectors: tabs.DefaultSelectors(),
		log:       logger.Discard(),
		viewer:    config.DefaultConfig().Viewer,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithComponent("ssh")

	if _, err := s.newModel(); err != nil {
		return nil, fmt.Errorf("failed to prepare document: %w", err)
	}

	if cfg.AuthorizedKeysPath != "" {
		keys, err := LoadAuthorizedKeys(cfg.AuthorizedKeysPath)
		if err != nil {
			return nil, err
		}
		s.authorized = keys
	}

	return s, nil
}

// Start binds the listen address with ctx and serves sessions in the
// background. Bind failures are returned; later serve errors are logged.
func (s *Server) Start(ctx context.Context) error {
	addr := s.cfg.Address()

	if dir := filepath.Dir(s.cfg.HostKeyPath); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create host key directory: %w", err)
		}
	}

	srv, err := wish.NewServer(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(s.cfg.HostKeyPath),
		wish.WithPublicKeyAuth(s.publicKeyHandler),
		wish.WithMiddleware(
			s.tuiMiddleware(),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.server = srv
	s.listener = ln

	s.log.Info("starting SSH server", "addr", ln.Addr().String(), "restricted", len(s.authorized) > 0)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.log.Error("SSH server error", logger.WithError(err))
		}
	}()

	return nil
}

// Addr returns the bound listen address, or nil before Start.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop stops the SSH server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	s.log.Info("stopping SSH server")
	err := s.server.Shutdown(ctx)
	// Shutdown only closes listeners Serve has started tracking.
	if cerr := s.listener.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) && err == nil {
		err = cerr
	}
	return err
}

// publicKeyHandler accepts every key when no authorized keys are
// configured, and only the listed keys otherwise.
func (s *Server) publicKeyHandler(_ ssh.Context, key ssh.PublicKey) bool {
	if len(s.authorized) == 0 {
		return true
	}
	for _, k := range s.authorized {
		if ssh.KeysEqual(k, key) {
			return true
		}
	}
	s.log.Debug("rejected public key", "fingerprint", gossh.FingerprintSHA256(key))
	return false
}

func (s *Server) newModel() (*tui.Model, error) {
	doc, err := dom.Parse(bytes.NewReader(s.source))
	if err != nil {
		return nil, err
	}
	opts := []tui.Option{
		tui.WithSelectors(s.selectors),
		tui.WithLogger(s.log),
		tui.WithTitle(s.title),
	}
	if s.theme != nil {
		opts = append(opts, tui.WithTheme(s.theme))
	}
	return tui.New(doc, opts...)
}

// tuiMiddleware creates the Bubble Tea middleware that runs one viewer
// per session.
func (s *Server) tuiMiddleware() wish.Middleware {
	teaHandler := func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		if _, _, active := sess.Pty(); !active {
			return nil, nil
		}

		cc := logger.NewSessionContext("view", sess.User(), sess.RemoteAddr().String())
		log := s.log.With(cc.LogGroup())

		m, err := s.newModel()
		if err != nil {
			log.Error("failed to start session", logger.WithError(err))
			return nil, nil
		}
		log.Info("session started", "groups", len(m.Groups()))

		return m, tui.ProgramOptions(s.viewer)
	}

	return bubbletea.Middleware(teaHandler)
}

// LoadAuthorizedKeys reads an OpenSSH authorized_keys file.
func LoadAuthorizedKeys(path string) ([]gossh.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read authorized keys: %w", err)
	}

	var keys []gossh.PublicKey
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, _, _, _, err := gossh.ParseAuthorizedKey([]byte(line))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s line %d: %w", path, i+1, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}
