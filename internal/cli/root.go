// Package cli is the operator command line for momentum shift scoring.
package cli

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/okian/momentum/internal/config"
	"github.com/okian/momentum/pkg/logger"
)

type rootOptions struct {
	configPath string
	logLevel   string
	logJSON    bool
}

// NewRootCommand builds the mss command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "mss",
		Short:         "Momentum Shift Score tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.InitWithWriter(cmd.ErrOrStderr(), opts.logJSON); err != nil {
				return err
			}
			return logger.SetLevelString(opts.logLevel)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file (defaults to $MSS_CONFIG)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&opts.logJSON, "log-json", false, "log as JSON")

	root.AddCommand(
		newScoreCommand(opts),
		newAggregateCommand(),
		newCompareCommand(opts),
		newReplayCommand(),
	)
	return root
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context, args []string, out, errOut io.Writer) error {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)
	return root.ExecuteContext(ctx)
}

func (o *rootOptions) load(ctx context.Context) (*config.Config, error) {
	if o.configPath != "" {
		return config.LoadFile(ctx, o.configPath)
	}
	return config.Load(ctx)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
