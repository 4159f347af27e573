// ABOUTME: Map command finds locations and renders them onto a base map
// ABOUTME: Thin CLI front for the atlas and renderer via the router
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/lorekeeper/internal/tags"
)

// NewMapCmd creates the map command
func NewMapCmd() *cobra.Command {
	var (
		name   string
		region string
		layer  string
	)

	cmd := &cobra.Command{
		Use:   "map <category>",
		Short: "Render matching locations onto the map",
		Long: `Find locations by category, optionally filtered by name or
region, and render them onto the base map for the chosen layer.
Prints the path of the rendered image.`,
		Args: cobra.ExactArgs(1),
		Example: `  # All monster camps on the surface
  lorekeeper map monster

  # Shrines in a region
  lorekeeper map shrine --region eldin

  # Named locations in the depths
  lorekeeper map mine --name goron --layer depths`,
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

			answer := rt.ShowLocations(cmd.Context(), args[0], name, region, layer)

			fmt.Fprintln(cmd.OutOrStdout(), tags.Strip(answer))
			for _, res := range tags.Resources(answer) {
				if res.Kind == tags.KindMap {
					fmt.Fprintf(cmd.OutOrStdout(), "Map written to %s\n", res.Text)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "filter locations by name substring")
	cmd.Flags().StringVar(&region, "region", "", "restrict to a named region, e.g. eldin")
	cmd.Flags().StringVar(&layer, "layer", "surface", "map layer: surface, sky, or depths")

	return cmd
}
