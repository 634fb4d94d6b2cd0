package terminal

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/de-tools/deal-atlas/pkg/runtime/terminal/commands"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	env     *commands.Env
	logger  zerolog.Logger
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	Logger *zerolog.Logger
	Now    func() time.Time
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	cli := &CLI{
		env: &commands.Env{
			Out: opts.Output,
			Now: opts.Now,
		},
		logger: logger,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.ExecuteContext(context.Background())
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(cli.logger.WithContext(ctx))
}

// SetArgs overrides os.Args[1:], for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "deal-atlas",
		Short:         "Freight deal analytics: win rates, revenue forecast and deal risk",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cli.env.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(commands.NewHistoricalCmd(cli.env))
	cmd.AddCommand(commands.NewForecastCmd(cli.env))
	cmd.AddCommand(commands.NewTrendsCmd(cli.env))
	cmd.AddCommand(commands.NewSeedCmd(cli.env))
	cmd.AddCommand(commands.NewSyncCmd(cli.env))

	return cmd
}
