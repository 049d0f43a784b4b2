// Package main is the entry point for frustumview.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/frustumview/internal/config"
	"github.com/Faultbox/frustumview/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "frustumview",
		Short:         "wireframe viewer showing one scene through several cameras",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := config.BindFlags(rootCmd.PersistentFlags())

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := setup(flags, os.Stderr)
		if err != nil {
			return err
		}
		defer logger.Sync()
		return runWindow(cmd.Context(), cfg)
	}

	rootCmd.AddCommand(
		newRenderCmd(flags),
		newTUICmd(flags),
		newCornersCmd(flags),
		newConfigCmd(flags),
	)
	return rootCmd
}

// setup loads the configuration and configures logging. console may be nil
// to keep log output off the terminal.
func setup(flags *config.Flags, console io.Writer) (*config.Config, error) {
	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return nil, err
	}

	opts := logger.Options{Level: cfg.Logging.Level, Console: console}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.Setup(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return nil, err
	}

	logger.Info("=== frustumview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)
	return cfg, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func fail(msg string, err error) error {
	logger.Error(msg, zap.Error(err))
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	return err
}
