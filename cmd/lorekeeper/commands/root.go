// ABOUTME: Root Cobra command with global flags for the lorekeeper CLI
// ABOUTME: Registers all subcommands and drives execution
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lorekeeper",
		Short: "Game knowledge agent for lore, compendium, and map questions",
		Long: `Lorekeeper answers questions about the game world.

It searches ingested lore transcripts semantically, resolves named
creatures and items through the compendium, renders location maps,
and finds walkthrough guides when you are truly stuck.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")

	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewIngestCmd())
	cmd.AddCommand(NewMapCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the CLI
func Execute() error {
	return NewRootCmd().Execute()
}
