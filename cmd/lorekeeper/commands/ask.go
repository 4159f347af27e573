// ABOUTME: Ask command routes a question through the knowledge sources
// ABOUTME: Prints the tagged response, or plain prose with --plain
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/lorekeeper/internal/tags"
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	var (
		sessionID string
		plain     bool
	)

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the lorekeeper a question",
		Long: `Ask the lorekeeper a question about the game world.

The question is routed to the best source: semantic lore search,
the compendium, the location atlas with map rendering, or
walkthrough video search.`,
		Args: cobra.MinimumNArgs(1),
		Example: `  # Lore question, answered from ingested transcripts
  lorekeeper ask "What happened during the Imprisoning War?"

  # Named entity, answered from the wiki or compendium
  lorekeeper ask "What is a Bokoblin?"

  # Location question, renders a map
  lorekeeper ask "Where are the monster camps in eldin?"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			rt, _, cleanup, err := buildAgent(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			question := strings.Join(args, " ")
			answer := rt.Answer(cmd.Context(), sessionID, question)

			if plain {
				answer = tags.Strip(answer)
			}
			fmt.Fprintln(cmd.OutOrStdout(), answer)
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "cli", "session identifier for walkthrough throttling")
	cmd.Flags().BoolVar(&plain, "plain", false, "strip response tags and print prose only")

	return cmd
}
