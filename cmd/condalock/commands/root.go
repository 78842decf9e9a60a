// Package commands implements the CLI commands for condalock.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/condalock/internal/app"
	"go.trai.ch/condalock/internal/build"
)

// CLI represents the command line interface for condalock.
type CLI struct {
	app     Application
	rootCmd *cobra.Command

	verbosity int
	logFormat string
}

// Application represents the application logic interface.
type Application interface {
	ConfigureLogging(verbosity int, format string) error
	Freeze(ctx context.Context, opts app.FreezeOptions) error
	Create(ctx context.Context, opts app.CreateOptions) error
	CheckEnv(ctx context.Context, specPath string) error
	CheckLocks(ctx context.Context, specPath string, lockPaths []string) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:           "condalock",
		Short:         "Reproducible conda environments from hashed lockfiles",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return c.app.ConfigureLogging(c.verbosity, c.logFormat)
		},
	}

	rootCmd.PersistentFlags().CountVarP(&c.verbosity, "verbose", "v", "Increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&c.logFormat, "log-format", "auto", "Log format: auto, pretty or json")

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c.rootCmd = rootCmd
	rootCmd.AddCommand(c.newFreezeCmd())
	rootCmd.AddCommand(c.newCreateCmd())
	rootCmd.AddCommand(c.newCheckEnvCmd())
	rootCmd.AddCommand(c.newCheckLocksCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
