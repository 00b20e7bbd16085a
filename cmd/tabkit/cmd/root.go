package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	clierrors "tabkit/internal/cli/errors"
	"tabkit/internal/cli/output"
	"tabkit/internal/config"
	"tabkit/internal/logger"
	"tabkit/internal/tui/themes"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	// cfgFile is the path to the config file (set via --config flag)
	cfgFile string

	// cfg holds the loaded configuration
	cfg *config.Config

	// log is the logger instance
	log *logger.Logger

	// cmdStartTime tracks when command execution started
	cmdStartTime time.Time

	// cmdCtx carries the logger and command context
	cmdCtx context.Context

	// Global output flags
	outputFormat string
	verboseMode  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tabkit",
	Short: "tabkit drives keyboard-accessible tab groups in HTML documents",
	Long: `tabkit finds tab groups in HTML documents and drives them the way a
browser would: clicks and arrow keys switch the active tab, and the
is-active, aria-selected and tabindex markers are kept in sync.

Documents can be browsed in the terminal, inspected, rendered with chosen
tabs active, or served to remote viewers over SSH.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}

		var err error
		log, err = logger.New(cfg.Log)
		if err != nil {
			return clierrors.ConfigInvalid(cfgFile, err)
		}

		cc := logger.NewCommandContext(cmd, args)
		cmdCtx = logger.WithCommandContext(cmd.Context(), cc)
		cmdCtx = logger.WithLogger(cmdCtx, log.With(cc.LogGroup()))
		cmdStartTime = time.Now()

		log.Debug("command started",
			"command", cc.Command,
			"args", cc.Args,
			"request_id", cc.RequestID,
			"user", cc.User,
			"working_dir", cc.WorkingDir,
		)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if log == nil {
			return nil
		}
		cc := logger.CommandContextFrom(cmdCtx)
		log.Debug("command completed",
			"command", cc.Command,
			"duration_ms", time.Since(cmdStartTime).Milliseconds(),
			"request_id", cc.RequestID,
		)
		return log.Close()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if term.IsTerminal(int(os.Stderr.Fd())) {
			fmt.Fprintln(os.Stderr, clierrors.Display(err, themes.Global().Active()))
		} else {
			fmt.Fprint(os.Stderr, clierrors.DisplaySimple(err))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/tabkit/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format (table, json, yaml, quiet)")
	rootCmd.PersistentFlags().BoolVarP(&verboseMode, "verbose", "v", false, "verbose output (debug logging)")

	rootCmd.AddCommand(viewCmd, inspectCmd, renderCmd, serveCmd, configCmd, versionCmd)
}

// loadConfig loads the configuration and applies flag overrides
func loadConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return clierrors.ConfigInvalid(cfgFile, err)
	}

	if outputFormat != "" {
		cfg.Output.Format = outputFormat
	}
	if verboseMode {
		cfg.Log.Level = "debug"
	}
	return nil
}

// newOutput returns a writer for the configured output format
func newOutput(cmd *cobra.Command) (*output.Writer, error) {
	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, clierrors.Wrap(err, clierrors.CodeValidation, "Invalid output format").
			WithSuggestions("Use one of: table, json, yaml, quiet")
	}
	return output.NewWriter(format).
		WithOutput(cmd.OutOrStdout()).
		WithError(cmd.ErrOrStderr()), nil
}

// Context returns the command context (for use by subcommands)
func Context() context.Context {
	return cmdCtx
}

// commandLogger returns the logger of the running command, tagged with its
// command context.
func commandLogger() *logger.Logger {
	return logger.LoggerFrom(cmdCtx)
}
