package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newCheckEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkenv [spec-path]",
		Short: "Verify the installed environment was created from the spec",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.CheckEnv(cmd.Context(), arg(args, 0))
		},
	}
}

func (c *CLI) newCheckLocksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checklocks [spec-path] [lock-paths...]",
		Short: "Verify lockfiles were frozen from the spec",
		Long: `Verify lockfiles were frozen from the spec.

Without lock paths every <spec>.*.lock next to the spec is checked. All lockfiles
are checked and every failure is reported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var locks []string
			if len(args) > 1 {
				locks = args[1:]
			}
			return c.app.CheckLocks(cmd.Context(), arg(args, 0), locks)
		},
	}
}
