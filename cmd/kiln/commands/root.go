// Package commands implements the CLI commands for the kiln build tool.
package commands

import (
	"context"
	"io"

	"github.com/kilnhq/kiln/internal/app"
	"github.com/kilnhq/kiln/internal/build"
	"github.com/spf13/cobra"
)

// CLI represents the command line interface for kiln.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "kiln",
		Short:         "A reproducible build orchestrator for pinned toolchains",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "kiln.yaml", "Path to the project configuration file")
	rootCmd.PersistentFlags().StringP("platform", "p", "", "Target platform in os-arch form (defaults to the host)")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newDepsCmd())
	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newToolkitCmd())
	rootCmd.AddCommand(c.newEnvCmd())
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

// SetOutput redirects command output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}

func invocation(cmd *cobra.Command) app.Invocation {
	configPath, _ := cmd.Flags().GetString("config")
	platform, _ := cmd.Flags().GetString("platform")
	return app.Invocation{ConfigPath: configPath, Platform: platform}
}
