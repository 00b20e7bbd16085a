package logger

import (
	"context"
	"log/slog"
	"os"
	"os/user"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type contextKey int

const (
	commandKey contextKey = iota
	loggerKey
)

// CommandContext identifies one CLI invocation or SSH viewer session in
// log records.
type CommandContext struct {
	RequestID  string   `json:"request_id"`
	Command    string   `json:"command"`
	Args       []string `json:"args,omitempty"`
	User       string   `json:"user,omitempty"`
	WorkingDir string   `json:"working_dir,omitempty"`
	Remote     string   `json:"remote,omitempty"`
}

// NewCommandContext describes a local run of cmd.
func NewCommandContext(cmd *cobra.Command, args []string) *CommandContext {
	cc := &CommandContext{
		RequestID: uuid.NewString(),
		Command:   cmd.CommandPath(),
		Args:      args,
	}
	if u, err := user.Current(); err == nil {
		cc.User = u.Username
	}
	if wd, err := os.Getwd(); err == nil {
		cc.WorkingDir = wd
	}
	return cc
}

// NewSessionContext describes a remote session opened by user from remote.
func NewSessionContext(command, user, remote string) *CommandContext {
	return &CommandContext{
		RequestID: uuid.NewString(),
		Command:   command,
		User:      user,
		Remote:    remote,
	}
}

// WithCommandContext stores cc in ctx.
func WithCommandContext(ctx context.Context, cc *CommandContext) context.Context {
	return context.WithValue(ctx, commandKey, cc)
}

// CommandContextFrom returns the CommandContext stored in ctx, or nil.
func CommandContextFrom(ctx context.Context) *CommandContext {
	if ctx == nil {
		return nil
	}
	cc, _ := ctx.Value(commandKey).(*CommandContext)
	return cc
}

// WithLogger stores l in ctx.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// LoggerFrom returns the Logger stored in ctx. A nil ctx or one without a
// logger gives Default.
func LoggerFrom(ctx context.Context) *Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*Logger); ok {
			return l
		}
	}
	return Default()
}

// LogAttrs returns the non-empty fields of cc as slog attributes.
func (cc *CommandContext) LogAttrs() []slog.Attr {
	if cc == nil {
		return nil
	}
	attrs := []slog.Attr{
		slog.String("request_id", cc.RequestID),
		slog.String("command", cc.Command),
	}
	for _, f := range []struct{ key, val string }{
		{"user", cc.User},
		{"working_dir", cc.WorkingDir},
		{"remote", cc.Remote},
	} {
		if f.val != "" {
			attrs = append(attrs, slog.String(f.key, f.val))
		}
	}
	if len(cc.Args) > 0 {
		attrs = append(attrs, slog.Any("args", cc.Args))
	}
	return attrs
}

// LogGroup returns LogAttrs grouped under "context".
func (cc *CommandContext) LogGroup() slog.Attr {
	if cc == nil {
		return slog.Attr{}
	}
	return slog.Attr{Key: "context", Value: slog.GroupValue(cc.LogAttrs()...)}
}
