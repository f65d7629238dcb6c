package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Print the development session environment, one KEY=VALUE per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := c.app.Env(cmd.Context(), invocation(cmd))
			if err != nil {
				return err
			}
			for _, kv := range env {
				fmt.Fprintln(cmd.OutOrStdout(), kv)
			}
			return nil
		},
	}
}
