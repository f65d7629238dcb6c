package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newToolkitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toolkit",
		Short: "Compose the declared native packages into a toolkit bundle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			toolkit, err := c.app.Toolkit(cmd.Context(), invocation(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), toolkit.Root)
			return nil
		},
	}
}
