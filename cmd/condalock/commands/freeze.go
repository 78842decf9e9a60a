package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/condalock/internal/app"
)

func (c *CLI) newFreezeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "freeze [spec-path] [lock-path] [target-platform]",
		Short: "Resolve a spec into a hashed lockfile",
		Long: `Resolve a spec into a fully pinned lockfile for a target platform.

The spec defaults to deps.yml, the target to the host platform and the lockfile
to <spec>.<target>.lock. A macOS host can freeze Linux lockfiles inside a container.`,
		Args: cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Freeze(cmd.Context(), app.FreezeOptions{
				SpecPath: arg(args, 0),
				LockPath: arg(args, 1),
				Target:   arg(args, 2),
			})
		},
	}
}
