package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/condalock/internal/app"
)

func (c *CLI) newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create [lock-path] [target-platform]",
		Short: "Install the environment described by a lockfile",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Create(cmd.Context(), app.CreateOptions{
				LockPath: arg(args, 0),
				Target:   arg(args, 1),
			})
		},
	}
}
