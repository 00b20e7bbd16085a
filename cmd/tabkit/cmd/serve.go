package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	clierrors "tabkit/internal/cli/errors"
	"tabkit/internal/ssh"
	"tabkit/internal/tui/themes"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var (
	serveTitle string
	serveHost  string
	servePort  int
)

var serveCmd = &cobra.Command{
	Use:   "serve FILE",
	Short: "Serve the viewer over SSH",
	Long: `Serve a document to remote viewers over SSH. Every session gets its
own copy of the document, so viewers switch tabs independently.

When ssh.authorized_keys_path is set only the listed keys may connect;
otherwise every key is accepted.

Examples:
  tabkit serve page.html
  tabkit serve --port 2222 page.html
  ssh -p 2323 localhost`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveTitle, "title", "", "heading shown to viewers")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (overrides ssh.host)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides ssh.port)")
}

func runServe(cmd *cobra.Command, args []string) error {
	source, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}

	sshCfg := cfg.SSH
	if serveHost != "" {
		sshCfg.Host = serveHost
	}
	if servePort != 0 {
		sshCfg.Port = servePort
	}

	theme, err := themes.Global().Lookup(cfg.Viewer.Theme)
	if err != nil {
		return clierrors.Wrap(err, clierrors.CodeValidation, "Unknown theme")
	}

	srv, err := ssh.NewServer(sshCfg, source,
		ssh.WithLogger(commandLogger()),
		ssh.WithSelectors(selectors()),
		ssh.WithViewer(cfg.Viewer),
		ssh.WithTheme(theme),
		ssh.WithTitle(serveTitle),
	)
	if err != nil {
		return selectorError(err)
	}

	ctx, stop := signal.NotifyContext(Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		return clierrors.Wrap(err, clierrors.CodeServer, "SSH server could not start").
			WithDetails("Address: " + sshCfg.Address())
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Stop(shutdownCtx)
}
