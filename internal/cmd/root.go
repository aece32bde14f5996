// Package cmd holds the queuepipe command line.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/huynhanx03/go-queue/internal/pipe"
	"github.com/huynhanx03/go-queue/pkg/logger"
	"github.com/huynhanx03/go-queue/pkg/settings"
)

// options holds the state shared between the hooks of the root command.
type options struct {
	environ []string
	log     *zap.Logger
}

// newOptions creates options reading configuration from environ.
func newOptions(environ []string) *options {
	return &options{environ: environ}
}

// setup loads the configuration and builds the logger.
func (o *options) setup(cmd *cobra.Command) error {
	cfg, err := settings.FromEnv(o.environ)
	if err != nil {
		return err
	}

	o.log, err = logger.NewWithWriter(cfg.Logger, cmd.ErrOrStderr())
	return err
}

// NewCmdQueuepipe creates the root `queuepipe` command. Configuration comes
// from QUEUEPIPE_* variables in environ.
func NewCmdQueuepipe(environ []string) *cobra.Command {
	o := newOptions(environ)

	return &cobra.Command{
		Use:   "queuepipe [input output]",
		Short: "Copy the integers of a file through a queue into another file",
		Long: "queuepipe reads whitespace-separated integers from the input file, " +
			"skipping anything that is not an integer, and writes them to the output " +
			"file one per line. Without two arguments the paths are read from the " +
			"first two lines of standard input.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			defer func() { _ = o.log.Sync() }()
			return pipe.New(o.log, cmd.InOrStdin(), cmd.OutOrStdout()).Run(args)
		},
	}
}

// Execute runs the root command against the process environment and exits
// non-zero only when it cannot start.
func Execute() {
	cmd := NewCmdQueuepipe(os.Environ())
	if err := cmd.Execute(); err != nil {
		cmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
