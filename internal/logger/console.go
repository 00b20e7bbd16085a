package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	charmlog "github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// PrefixStyle renders the app name prefix.
var PrefixStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("212"))

// CharmHandler wraps charmbracelet/log to implement slog.Handler.
type CharmHandler struct {
	logger *charmlog.Logger
	writer io.Writer
	opts   CharmHandlerOptions
	attrs  []slog.Attr
	groups []string
}

// CharmHandlerOptions configures the Charm handler.
type CharmHandlerOptions struct {
	// Level is the minimum level to log.
	Level slog.Leveler
	// NoColor disables colored output.
	NoColor bool
	// TimeFormat is the format for timestamps.
	TimeFormat string
	// ShowCaller shows file:line in logs.
	ShowCaller bool
	// Prefix is prepended to all log messages.
	Prefix string
}

func applyCharmStyles(logger *charmlog.Logger) {
	styles := charmlog.DefaultStyles()

	styles.Levels[charmlog.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBUG").
		Bold(true).
		Foreground(lipgloss.Color("63"))
	styles.Levels[charmlog.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO ").
		Bold(true).
		Foreground(lipgloss.Color("42"))
	styles.Levels[charmlog.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN ").
		Bold(true).
		Foreground(lipgloss.Color("214"))
	styles.Levels[charmlog.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Bold(true).
		Foreground(lipgloss.Color("196"))

	styles.Key = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	styles.Value = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	styles.Separator = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styles.Timestamp = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	styles.Prefix = PrefixStyle

	logger.SetStyles(styles)
}

// NewCharmHandler creates a new Charm-based slog handler.
func NewCharmHandler(w io.Writer, opts *CharmHandlerOptions) *CharmHandler {
	if opts == nil {
		opts = &CharmHandlerOptions{}
	}
	if opts.Level == nil {
		opts.Level = slog.LevelInfo
	}
	if opts.TimeFormat == "" {
		opts.TimeFormat = "15:04:05"
	}

	return &CharmHandler{
		logger: newCharmLogger(w, *opts),
		writer: w,
		opts:   *opts,
	}
}

func newCharmLogger(w io.Writer, opts CharmHandlerOptions) *charmlog.Logger {
	logger := charmlog.NewWithOptions(w, charmlog.Options{
		ReportCaller:    opts.ShowCaller,
		ReportTimestamp: true,
		TimeFormat:      opts.TimeFormat,
		Prefix:          opts.Prefix,
		Level:           charmLogLevel(opts.Level.Level()),
	})
	applyCharmStyles(logger)
	if opts.NoColor {
		logger.SetColorProfile(termenv.Ascii)
	}
	return logger
}

// Enabled implements slog.Handler.
func (h *CharmHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

// Handle implements slog.Handler.
func (h *CharmHandler) Handle(_ context.Context, r slog.Record) error {
	kvs := make([]interface{}, 0, (len(h.attrs)+r.NumAttrs())*2)

	for _, attr := range h.attrs {
		if k, v := h.formatAttr(attr); k != "" {
			kvs = append(kvs, k, v)
		}
	}
	r.Attrs(func(a slog.Attr) bool {
		if k, v := h.formatAttr(a); k != "" {
			kvs = append(kvs, k, v)
		}
		return true
	})

	switch {
	case r.Level >= slog.LevelError:
		h.logger.Error(r.Message, kvs...)
	case r.Level >= slog.LevelWarn:
		h.logger.Warn(r.Message, kvs...)
	case r.Level >= slog.LevelInfo:
		h.logger.Info(r.Message, kvs...)
	default:
		h.logger.Debug(r.Message, kvs...)
	}

	return nil
}

// formatAttr flattens groups with dot notation.
func (h *CharmHandler) formatAttr(attr slog.Attr) (string, interface{}) {
	if attr.Key == "" {
		return "", nil
	}

	key := attr.Key
	if len(h.groups) > 0 {
		key = strings.Join(h.groups, ".") + "." + key
	}

	if attr.Value.Kind() == slog.KindGroup {
		groupAttrs := attr.Value.Group()
		if len(groupAttrs) == 0 {
			return "", nil
		}
		parts := make([]string, 0, len(groupAttrs))
		for _, ga := range groupAttrs {
			if k, v := h.formatAttr(ga); k != "" {
				parts = append(parts, fmt.Sprintf("%s=%v", k, v))
			}
		}
		return key, strings.Join(parts, " ")
	}

	return key, formatSlogValue(attr.Value)
}

// WithAttrs implements slog.Handler.
func (h *CharmHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := h.clone()
	clone.attrs = append(clone.attrs, attrs...)
	return clone
}

// WithGroup implements slog.Handler.
func (h *CharmHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := h.clone()
	clone.groups = append(clone.groups, name)
	return clone
}

func (h *CharmHandler) clone() *CharmHandler {
	return &CharmHandler{
		logger: newCharmLogger(h.writer, h.opts),
		writer: h.writer,
		opts:   h.opts,
		attrs:  append([]slog.Attr{}, h.attrs...),
		groups: append([]string{}, h.groups...),
	}
}

func formatSlogValue(v slog.Value) interface{} {
	switch v.Kind() {
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindAny:
		val := v.Any()
		if err, ok := val.(error); ok {
			return err.Error()
		}
		return val
	default:
		return v.Any()
	}
}

func charmLogLevel(level slog.Level) charmlog.Level {
	switch {
	case level >= slog.LevelError:
		return charmlog.ErrorLevel
	case level >= slog.LevelWarn:
		return charmlog.WarnLevel
	case level >= slog.LevelInfo:
		return charmlog.InfoLevel
	default:
		return charmlog.DebugLevel
	}
}

// isTerminal checks if the writer is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
